package cms

import (
	"context"
	"errors"
	"strings"

	types "github.com/yungbote/pagebridge/internal/domain"
	"github.com/yungbote/pagebridge/internal/platform/logger"
	"gorm.io/gorm"
)

type SiteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sites []*types.Site) ([]*types.Site, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Site, error)
	GetByHostname(ctx context.Context, tx *gorm.DB, hostname string) ([]*types.Site, error)
	GetDefault(ctx context.Context, tx *gorm.DB) (*types.Site, error)
}

type siteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSiteRepo(db *gorm.DB, baseLog *logger.Logger) SiteRepo {
	repoLog := baseLog.With("repo", "SiteRepo")
	return &siteRepo{db: db, log: repoLog}
}

func (r *siteRepo) Create(ctx context.Context, tx *gorm.DB, sites []*types.Site) ([]*types.Site, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(sites) == 0 {
		return []*types.Site{}, nil
	}
	if err := t.WithContext(ctx).Create(&sites).Error; err != nil {
		return nil, err
	}
	return sites, nil
}

func (r *siteRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Site, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var results []*types.Site
	if err := t.WithContext(ctx).
		Preload("RootPage").
		Preload("RootPage.Locale").
		Order("hostname ASC, port ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *siteRepo) GetByHostname(ctx context.Context, tx *gorm.DB, hostname string) ([]*types.Site, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var results []*types.Site
	hostname = strings.ToLower(strings.TrimSpace(hostname))
	if hostname == "" {
		return results, nil
	}
	if err := t.WithContext(ctx).
		Preload("RootPage").
		Preload("RootPage.Locale").
		Where("LOWER(hostname) = ?", hostname).
		Order("port ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetDefault returns (nil, nil) when no site is flagged as default.
func (r *siteRepo) GetDefault(ctx context.Context, tx *gorm.DB) (*types.Site, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var s types.Site
	err := t.WithContext(ctx).
		Preload("RootPage").
		Preload("RootPage.Locale").
		Where("is_default_site = ?", true).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
