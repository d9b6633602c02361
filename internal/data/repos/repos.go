package repos

import (
	"github.com/yungbote/pagebridge/internal/data/repos/cms"
	"github.com/yungbote/pagebridge/internal/platform/logger"
	"gorm.io/gorm"
)

type PageRepo = cms.PageRepo
type PageFilter = cms.PageFilter
type SiteRepo = cms.SiteRepo
type LocaleRepo = cms.LocaleRepo
type RedirectRepo = cms.RedirectRepo
type ImageRepo = cms.ImageRepo
type DocumentRepo = cms.DocumentRepo
type PageViewRestrictionRepo = cms.PageViewRestrictionRepo
type PageRelatedItemRepo = cms.PageRelatedItemRepo

func NewPageRepo(db *gorm.DB, baseLog *logger.Logger) PageRepo { return cms.NewPageRepo(db, baseLog) }
func NewSiteRepo(db *gorm.DB, baseLog *logger.Logger) SiteRepo { return cms.NewSiteRepo(db, baseLog) }
func NewLocaleRepo(db *gorm.DB, baseLog *logger.Logger) LocaleRepo {
	return cms.NewLocaleRepo(db, baseLog)
}
func NewRedirectRepo(db *gorm.DB, baseLog *logger.Logger) RedirectRepo {
	return cms.NewRedirectRepo(db, baseLog)
}

func NewImageRepo(db *gorm.DB, baseLog *logger.Logger) ImageRepo {
	return cms.NewImageRepo(db, baseLog)
}
func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger) DocumentRepo {
	return cms.NewDocumentRepo(db, baseLog)
}

func NewPageViewRestrictionRepo(db *gorm.DB, baseLog *logger.Logger) PageViewRestrictionRepo {
	return cms.NewPageViewRestrictionRepo(db, baseLog)
}
func NewPageRelatedItemRepo(db *gorm.DB, baseLog *logger.Logger) PageRelatedItemRepo {
	return cms.NewPageRelatedItemRepo(db, baseLog)
}
