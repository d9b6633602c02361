package domain

import "github.com/yungbote/pagebridge/internal/domain/cms"

type Page = cms.Page
type Locale = cms.Locale
type Site = cms.Site
type SiteRootPath = cms.SiteRootPath
type Redirect = cms.Redirect
type Image = cms.Image
type Document = cms.Document
type PageViewRestriction = cms.PageViewRestriction
type PageRelatedItem = cms.PageRelatedItem

const (
	RestrictionPassword = cms.RestrictionPassword
	RestrictionLogin    = cms.RestrictionLogin
	RestrictionGroups   = cms.RestrictionGroups

	RootPageLabel     = cms.RootPageLabel
	ImageTypeLabel    = cms.ImageTypeLabel
	DocumentTypeLabel = cms.DocumentTypeLabel
)

// AllModels lists every persisted model in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&cms.Locale{},
		&cms.Page{},
		&cms.Site{},
		&cms.Redirect{},
		&cms.Image{},
		&cms.Document{},
		&cms.PageViewRestriction{},
		&cms.PageRelatedItem{},
	}
}
