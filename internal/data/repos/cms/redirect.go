package cms

import (
	"context"
	"errors"

	types "github.com/yungbote/pagebridge/internal/domain"
	"github.com/yungbote/pagebridge/internal/platform/logger"
	"gorm.io/gorm"
)

type RedirectRepo interface {
	Create(ctx context.Context, tx *gorm.DB, redirects []*types.Redirect) ([]*types.Redirect, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Redirect, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Redirect, error)
	// FindByOldPath returns matches for siteID first, then site-less ones.
	FindByOldPath(ctx context.Context, tx *gorm.DB, oldPath string, siteID *uint) ([]*types.Redirect, error)
}

type redirectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRedirectRepo(db *gorm.DB, baseLog *logger.Logger) RedirectRepo {
	repoLog := baseLog.With("repo", "RedirectRepo")
	return &redirectRepo{db: db, log: repoLog}
}

func (r *redirectRepo) Create(ctx context.Context, tx *gorm.DB, redirects []*types.Redirect) ([]*types.Redirect, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(redirects) == 0 {
		return []*types.Redirect{}, nil
	}
	if err := t.WithContext(ctx).Create(&redirects).Error; err != nil {
		return nil, err
	}
	return redirects, nil
}

func (r *redirectRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Redirect, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	results := []*types.Redirect{}
	if err := t.WithContext(ctx).
		Preload("RedirectPage").
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByID returns (nil, nil) when the redirect does not exist.
func (r *redirectRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Redirect, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var rd types.Redirect
	err := t.WithContext(ctx).Preload("RedirectPage").Where("id = ?", id).First(&rd).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rd, nil
}

func (r *redirectRepo) FindByOldPath(ctx context.Context, tx *gorm.DB, oldPath string, siteID *uint) ([]*types.Redirect, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	results := []*types.Redirect{}
	q := t.WithContext(ctx).Preload("RedirectPage").Where("old_path = ?", oldPath)
	if siteID != nil {
		q = q.Where("site_id = ? OR site_id IS NULL", *siteID).
			Order("CASE WHEN site_id IS NULL THEN 1 ELSE 0 END")
	} else {
		q = q.Where("site_id IS NULL")
	}
	if err := q.Order("id ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
