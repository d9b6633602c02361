package cms

import (
	"context"

	types "github.com/yungbote/pagebridge/internal/domain"
	"github.com/yungbote/pagebridge/internal/platform/logger"
	"gorm.io/gorm"
)

type PageViewRestrictionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.PageViewRestriction) ([]*types.PageViewRestriction, error)
	// ListAll returns every restriction with its page preloaded.
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.PageViewRestriction, error)
}

type pageViewRestrictionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPageViewRestrictionRepo(db *gorm.DB, baseLog *logger.Logger) PageViewRestrictionRepo {
	repoLog := baseLog.With("repo", "PageViewRestrictionRepo")
	return &pageViewRestrictionRepo{db: db, log: repoLog}
}

func (r *pageViewRestrictionRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.PageViewRestriction) ([]*types.PageViewRestriction, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.PageViewRestriction{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *pageViewRestrictionRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.PageViewRestriction, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	results := []*types.PageViewRestriction{}
	if err := t.WithContext(ctx).Preload("Page").Order("id ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
