package testutil

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/pagebridge/internal/domain"
	"github.com/yungbote/pagebridge/internal/domain/cms"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func SeedLocale(tb testing.TB, ctx context.Context, tx *gorm.DB, code string) *types.Locale {
	tb.Helper()
	l := &types.Locale{LanguageCode: code}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed locale: %v", err)
	}
	return l
}

func SeedRoot(tb testing.TB, ctx context.Context, tx *gorm.DB, locale *types.Locale) *types.Page {
	tb.Helper()
	root := &types.Page{
		Title:          "Root",
		Slug:           "root",
		ContentType:    types.RootPageLabel,
		Live:           true,
		LocaleID:       locale.ID,
		TranslationKey: uuid.NewString(),
	}
	var count int64
	if err := tx.WithContext(ctx).Model(&types.Page{}).Where("depth = ?", 1).Count(&count).Error; err != nil {
		tb.Fatalf("count roots: %v", err)
	}
	root.Path = cms.ChildPath("", int(count)+1)
	root.Depth = 1
	root.URLPath = "/"
	if err := tx.WithContext(ctx).Create(root).Error; err != nil {
		tb.Fatalf("seed root: %v", err)
	}
	return root
}

// SeedPage adds a live child under parent; data is stored as the page's field JSON.
func SeedPage(tb testing.TB, ctx context.Context, tx *gorm.DB, parent *types.Page, slug, contentType string, data map[string]any) *types.Page {
	tb.Helper()
	raw := []byte("{}")
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			tb.Fatalf("marshal page data: %v", err)
		}
		raw = b
	}
	now := time.Now().UTC()
	p := &types.Page{
		Title:            slug,
		Slug:             slug,
		ContentType:      contentType,
		Live:             true,
		FirstPublishedAt: PtrTime(now),
		LastPublishedAt:  PtrTime(now),
		TranslationKey:   uuid.NewString(),
		Data:             datatypes.JSON(raw),
	}
	var fresh types.Page
	if err := tx.WithContext(ctx).Where("id = ?", parent.ID).First(&fresh).Error; err != nil {
		tb.Fatalf("reload parent: %v", err)
	}
	p.Path = cms.ChildPath(fresh.Path, fresh.NumChild+1)
	p.Depth = fresh.Depth + 1
	p.URLPath = strings.TrimSuffix(fresh.URLPath, "/") + "/" + slug + "/"
	p.LocaleID = fresh.LocaleID
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed page %q: %v", slug, err)
	}
	if err := tx.WithContext(ctx).Model(&types.Page{}).Where("id = ?", fresh.ID).
		Update("numchild", fresh.NumChild+1).Error; err != nil {
		tb.Fatalf("bump numchild: %v", err)
	}
	parent.NumChild = fresh.NumChild + 1
	return p
}

func SeedSite(tb testing.TB, ctx context.Context, tx *gorm.DB, hostname string, port int, root *types.Page, isDefault bool) *types.Site {
	tb.Helper()
	s := &types.Site{
		Hostname:      hostname,
		Port:          port,
		SiteName:      hostname,
		RootPageID:    root.ID,
		IsDefaultSite: isDefault,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed site: %v", err)
	}
	return s
}

func SeedPasswordRestriction(tb testing.TB, ctx context.Context, tx *gorm.DB, page *types.Page, password string) *types.PageViewRestriction {
	tb.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		tb.Fatalf("hash password: %v", err)
	}
	r := &types.PageViewRestriction{
		PageID:          page.ID,
		RestrictionType: types.RestrictionPassword,
		PasswordHash:    string(hash),
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed restriction: %v", err)
	}
	return r
}

func SeedGroupRestriction(tb testing.TB, ctx context.Context, tx *gorm.DB, page *types.Page, groups ...string) *types.PageViewRestriction {
	tb.Helper()
	b, _ := json.Marshal(groups)
	r := &types.PageViewRestriction{
		PageID:          page.ID,
		RestrictionType: types.RestrictionGroups,
		Groups:          datatypes.JSON(b),
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed restriction: %v", err)
	}
	return r
}

func PtrUint(v uint) *uint { return &v }

func PtrTime(v time.Time) *time.Time { return &v }
