package cms

import (
	"context"
	"errors"

	types "github.com/yungbote/pagebridge/internal/domain"
	"github.com/yungbote/pagebridge/internal/platform/logger"
	"gorm.io/gorm"
)

type LocaleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, locales []*types.Locale) ([]*types.Locale, error)
	GetByLanguageCode(ctx context.Context, tx *gorm.DB, code string) (*types.Locale, error)
}

type localeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLocaleRepo(db *gorm.DB, baseLog *logger.Logger) LocaleRepo {
	repoLog := baseLog.With("repo", "LocaleRepo")
	return &localeRepo{db: db, log: repoLog}
}

func (r *localeRepo) Create(ctx context.Context, tx *gorm.DB, locales []*types.Locale) ([]*types.Locale, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(locales) == 0 {
		return []*types.Locale{}, nil
	}
	if err := t.WithContext(ctx).Create(&locales).Error; err != nil {
		return nil, err
	}
	return locales, nil
}

// GetByLanguageCode returns (nil, nil) for unknown codes.
func (r *localeRepo) GetByLanguageCode(ctx context.Context, tx *gorm.DB, code string) (*types.Locale, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var l types.Locale
	err := t.WithContext(ctx).Where("language_code = ?", code).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}
