package cms

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Page tree paths are materialised: every level adds one fixed-width step.
const (
	PathStepLen   = 4
	pathAlphabet  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	RootPageLabel = "wagtailcore.Page"
)

type Page struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Path             string         `gorm:"column:path;not null;uniqueIndex" json:"path"`
	Depth            int            `gorm:"column:depth;not null;index" json:"depth"`
	NumChild         int            `gorm:"column:numchild;not null;default:0" json:"numchild"`
	Title            string         `gorm:"column:title;not null" json:"title"`
	Slug             string         `gorm:"column:slug;not null;index" json:"slug"`
	ContentType      string         `gorm:"column:content_type;not null;index" json:"content_type"`
	Live             bool           `gorm:"column:live;not null;default:true;index" json:"live"`
	URLPath          string         `gorm:"column:url_path;type:text" json:"url_path"`
	SeoTitle         string         `gorm:"column:seo_title" json:"seo_title"`
	SearchDesc       string         `gorm:"column:search_description;type:text" json:"search_description"`
	ShowInMenus      bool           `gorm:"column:show_in_menus;not null;default:false" json:"show_in_menus"`
	FirstPublishedAt *time.Time     `gorm:"column:first_published_at" json:"first_published_at,omitempty"`
	LastPublishedAt  *time.Time     `gorm:"column:last_published_at" json:"last_published_at,omitempty"`
	LocaleID         uint           `gorm:"column:locale_id;not null;index" json:"locale_id"`
	Locale           *Locale        `gorm:"foreignKey:LocaleID;references:ID" json:"locale,omitempty"`
	TranslationKey   string         `gorm:"column:translation_key;type:varchar(36);index" json:"translation_key"`
	Data             datatypes.JSON `gorm:"column:data" json:"data,omitempty"`
	CreatedAt        time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Page) TableName() string { return "cms_page" }

// IsRoot reports whether p is the tree root (the page above every site root).
func (p *Page) IsRoot() bool { return p != nil && p.Depth <= 1 }

func (p *Page) ParentPath() string {
	if p == nil || len(p.Path) <= PathStepLen {
		return ""
	}
	return p.Path[:len(p.Path)-PathStepLen]
}

func (p *Page) IsDescendantOf(ancestor *Page, inclusive bool) bool {
	if p == nil || ancestor == nil {
		return false
	}
	if p.Path == ancestor.Path {
		return inclusive
	}
	return strings.HasPrefix(p.Path, ancestor.Path)
}

// ChildPath returns the path of the n-th (1-based) child under parentPath.
func ChildPath(parentPath string, n int) string {
	return parentPath + encodeStep(n)
}

func encodeStep(n int) string {
	base := len(pathAlphabet)
	buf := []byte(strings.Repeat(string(pathAlphabet[0]), PathStepLen))
	for i := PathStepLen - 1; i >= 0 && n > 0; i-- {
		buf[i] = pathAlphabet[n%base]
		n /= base
	}
	return string(buf)
}
