package cms

import (
	"encoding/json"

	"gorm.io/datatypes"
)

const (
	RestrictionPassword = "password"
	RestrictionLogin    = "login"
	RestrictionGroups   = "groups"
)

type PageViewRestriction struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	PageID          uint           `gorm:"column:page_id;not null;index" json:"page_id"`
	Page            *Page          `gorm:"foreignKey:PageID;references:ID" json:"page,omitempty"`
	RestrictionType string         `gorm:"column:restriction_type;not null" json:"restriction_type"`
	PasswordHash    string         `gorm:"column:password_hash" json:"-"`
	Groups          datatypes.JSON `gorm:"column:groups" json:"groups,omitempty"`
}

func (PageViewRestriction) TableName() string { return "cms_page_view_restriction" }

func (r *PageViewRestriction) GroupNames() []string {
	if r == nil || len(r.Groups) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(r.Groups, &out); err != nil {
		return nil
	}
	return out
}

// PageRelatedItem is a row of an inline child relation (e.g. a page's related links).
type PageRelatedItem struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PageID    uint           `gorm:"column:page_id;not null;index:idx_page_related,priority:1" json:"page_id"`
	Relation  string         `gorm:"column:relation;not null;index:idx_page_related,priority:2" json:"relation"`
	SortOrder int            `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	Data      datatypes.JSON `gorm:"column:data" json:"data,omitempty"`
}

func (PageRelatedItem) TableName() string { return "cms_page_related_item" }
