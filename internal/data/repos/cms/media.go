package cms

import (
	"context"

	types "github.com/yungbote/pagebridge/internal/domain"
	"github.com/yungbote/pagebridge/internal/platform/logger"
	"gorm.io/gorm"
)

type ImageRepo interface {
	Create(ctx context.Context, tx *gorm.DB, images []*types.Image) ([]*types.Image, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*types.Image, error)
}

type DocumentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, docs []*types.Document) ([]*types.Document, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*types.Document, error)
}

type imageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewImageRepo(db *gorm.DB, baseLog *logger.Logger) ImageRepo {
	repoLog := baseLog.With("repo", "ImageRepo")
	return &imageRepo{db: db, log: repoLog}
}

func (r *imageRepo) Create(ctx context.Context, tx *gorm.DB, images []*types.Image) ([]*types.Image, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(images) == 0 {
		return []*types.Image{}, nil
	}
	if err := t.WithContext(ctx).Create(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *imageRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*types.Image, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var results []*types.Image
	if len(ids) == 0 {
		return results, nil
	}
	if err := t.WithContext(ctx).Where("id IN ?", ids).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type documentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger) DocumentRepo {
	repoLog := baseLog.With("repo", "DocumentRepo")
	return &documentRepo{db: db, log: repoLog}
}

func (r *documentRepo) Create(ctx context.Context, tx *gorm.DB, docs []*types.Document) ([]*types.Document, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(docs) == 0 {
		return []*types.Document{}, nil
	}
	if err := t.WithContext(ctx).Create(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*types.Document, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var results []*types.Document
	if len(ids) == 0 {
		return results, nil
	}
	if err := t.WithContext(ctx).Where("id IN ?", ids).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
