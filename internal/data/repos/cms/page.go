package cms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	types "github.com/yungbote/pagebridge/internal/domain"
	"github.com/yungbote/pagebridge/internal/domain/cms"
	"github.com/yungbote/pagebridge/internal/platform/logger"
	"gorm.io/gorm"
)

// PageFilter narrows ListLive. Empty fields do not filter.
type PageFilter struct {
	// IncludePrefixes keeps pages whose path starts with any prefix (site roots).
	IncludePrefixes []string
	// ExcludePrefixes drops whole subtrees (restricted pages).
	ExcludePrefixes []string
	ContentType     string
	Limit           int
	Offset          int
}

type PageRepo interface {
	AddRoot(ctx context.Context, tx *gorm.DB, root *types.Page) (*types.Page, error)
	AddChild(ctx context.Context, tx *gorm.DB, parent *types.Page, child *types.Page) (*types.Page, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*types.Page, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Page, error)
	GetByPaths(ctx context.Context, tx *gorm.DB, paths []string) ([]*types.Page, error)
	GetChildBySlug(ctx context.Context, tx *gorm.DB, parent *types.Page, slug string) (*types.Page, error)
	GetTranslations(ctx context.Context, tx *gorm.DB, translationKey string) ([]*types.Page, error)
	ListLive(ctx context.Context, tx *gorm.DB, filter PageFilter) ([]*types.Page, error)
}

type pageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPageRepo(db *gorm.DB, baseLog *logger.Logger) PageRepo {
	repoLog := baseLog.With("repo", "PageRepo")
	return &pageRepo{db: db, log: repoLog}
}

func (r *pageRepo) AddRoot(ctx context.Context, tx *gorm.DB, root *types.Page) (*types.Page, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if root == nil {
		return nil, fmt.Errorf("nil root page")
	}
	var count int64
	if err := t.WithContext(ctx).Model(&types.Page{}).Where("depth = ?", 1).Count(&count).Error; err != nil {
		return nil, err
	}
	root.Path = cms.ChildPath("", int(count)+1)
	root.Depth = 1
	root.NumChild = 0
	root.URLPath = "/"
	if err := t.WithContext(ctx).Create(root).Error; err != nil {
		return nil, err
	}
	return root, nil
}

func (r *pageRepo) AddChild(ctx context.Context, tx *gorm.DB, parent *types.Page, child *types.Page) (*types.Page, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if parent == nil || child == nil {
		return nil, fmt.Errorf("nil parent or child page")
	}
	err := t.WithContext(ctx).Transaction(func(txx *gorm.DB) error {
		// Re-read numchild so concurrent inserts under one parent do not collide.
		var fresh types.Page
		if err := txx.Where("id = ?", parent.ID).First(&fresh).Error; err != nil {
			return err
		}
		child.Path = cms.ChildPath(fresh.Path, fresh.NumChild+1)
		child.Depth = fresh.Depth + 1
		child.NumChild = 0
		child.URLPath = strings.TrimSuffix(fresh.URLPath, "/") + "/" + child.Slug + "/"
		if child.LocaleID == 0 {
			child.LocaleID = fresh.LocaleID
		}
		if err := txx.Create(child).Error; err != nil {
			return err
		}
		if err := txx.Model(&types.Page{}).
			Where("id = ?", fresh.ID).
			Update("numchild", gorm.Expr("numchild + 1")).Error; err != nil {
			return err
		}
		parent.NumChild = fresh.NumChild + 1
		return nil
	})
	if err != nil {
		return nil, err
	}
	return child, nil
}

func (r *pageRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*types.Page, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var results []*types.Page
	if len(ids) == 0 {
		return results, nil
	}
	if err := t.WithContext(ctx).
		Preload("Locale").
		Where("id IN ?", ids).
		Order("path ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByID returns (nil, nil) when the page does not exist.
func (r *pageRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Page, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var p types.Page
	err := t.WithContext(ctx).Preload("Locale").Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pageRepo) GetByPaths(ctx context.Context, tx *gorm.DB, paths []string) ([]*types.Page, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var results []*types.Page
	if len(paths) == 0 {
		return results, nil
	}
	if err := t.WithContext(ctx).
		Where("path IN ?", paths).
		Order("path ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *pageRepo) GetChildBySlug(ctx context.Context, tx *gorm.DB, parent *types.Page, slug string) (*types.Page, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if parent == nil {
		return nil, nil
	}
	var p types.Page
	err := t.WithContext(ctx).
		Preload("Locale").
		Where("path LIKE ? AND depth = ? AND slug = ?", parent.Path+"%", parent.Depth+1, slug).
		Order("path ASC").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pageRepo) GetTranslations(ctx context.Context, tx *gorm.DB, translationKey string) ([]*types.Page, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var results []*types.Page
	if strings.TrimSpace(translationKey) == "" {
		return results, nil
	}
	if err := t.WithContext(ctx).
		Preload("Locale").
		Where("translation_key = ?", translationKey).
		Order("path ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *pageRepo) ListLive(ctx context.Context, tx *gorm.DB, filter PageFilter) ([]*types.Page, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	results := []*types.Page{}
	if len(filter.IncludePrefixes) == 0 {
		return results, nil
	}

	q := t.WithContext(ctx).Preload("Locale").Model(&types.Page{}).Where("live = ?", true)

	inc := t.Session(&gorm.Session{NewDB: true}).Where("1 = 0")
	for _, prefix := range filter.IncludePrefixes {
		inc = inc.Or("path LIKE ?", prefix+"%")
	}
	q = q.Where(inc)

	for _, prefix := range filter.ExcludePrefixes {
		q = q.Where("path NOT LIKE ?", prefix+"%")
	}
	if ct := strings.TrimSpace(filter.ContentType); ct != "" {
		q = q.Where("content_type = ?", ct)
	}
	q = q.Order("path ASC")
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
