package cms

import (
	"context"

	types "github.com/yungbote/pagebridge/internal/domain"
	"github.com/yungbote/pagebridge/internal/platform/logger"
	"gorm.io/gorm"
)

type PageRelatedItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.PageRelatedItem) ([]*types.PageRelatedItem, error)
	GetByPageAndRelation(ctx context.Context, tx *gorm.DB, pageID uint, relation string) ([]*types.PageRelatedItem, error)
}

type pageRelatedItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPageRelatedItemRepo(db *gorm.DB, baseLog *logger.Logger) PageRelatedItemRepo {
	repoLog := baseLog.With("repo", "PageRelatedItemRepo")
	return &pageRelatedItemRepo{db: db, log: repoLog}
}

func (r *pageRelatedItemRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.PageRelatedItem) ([]*types.PageRelatedItem, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.PageRelatedItem{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *pageRelatedItemRepo) GetByPageAndRelation(ctx context.Context, tx *gorm.DB, pageID uint, relation string) ([]*types.PageRelatedItem, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	results := []*types.PageRelatedItem{}
	if err := t.WithContext(ctx).
		Where("page_id = ? AND relation = ?", pageID, relation).
		Order("sort_order ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
