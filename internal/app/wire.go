package app

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/pagebridge/internal/content/richtext"
	"github.com/yungbote/pagebridge/internal/data/repos"
	types "github.com/yungbote/pagebridge/internal/domain"
	apphttp "github.com/yungbote/pagebridge/internal/http"
	httpH "github.com/yungbote/pagebridge/internal/http/handlers"
	httpMW "github.com/yungbote/pagebridge/internal/http/middleware"
	"github.com/yungbote/pagebridge/internal/http/response"
	"github.com/yungbote/pagebridge/internal/observability"
	"github.com/yungbote/pagebridge/internal/platform/cache"
	"github.com/yungbote/pagebridge/internal/platform/logger"
	"github.com/yungbote/pagebridge/internal/platform/storage"
	"github.com/yungbote/pagebridge/internal/services"
)

type Repos struct {
	Page        repos.PageRepo
	Site        repos.SiteRepo
	Locale      repos.LocaleRepo
	Redirect    repos.RedirectRepo
	Image       repos.ImageRepo
	Document    repos.DocumentRepo
	Restriction repos.PageViewRestrictionRepo
	RelatedItem repos.PageRelatedItemRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Page:        repos.NewPageRepo(db, log),
		Site:        repos.NewSiteRepo(db, log),
		Locale:      repos.NewLocaleRepo(db, log),
		Redirect:    repos.NewRedirectRepo(db, log),
		Image:       repos.NewImageRepo(db, log),
		Document:    repos.NewDocumentRepo(db, log),
		Restriction: repos.NewPageViewRestrictionRepo(db, log),
		RelatedItem: repos.NewPageRelatedItemRepo(db, log),
	}
}

type Services struct {
	Site     services.SiteService
	Media    services.MediaService
	Page     services.PageService
	Redirect services.RedirectService
}

func wireServices(
	log *logger.Logger,
	cfg Config,
	sch *Schema,
	r Repos,
	store storage.URLResolver,
	rootCache cache.Cache[[]types.SiteRootPath],
	metrics *observability.Metrics,
) Services {
	log.Info("Wiring services...")
	sites := services.NewSiteService(log, r.Site, r.Page, rootCache, metrics, cfg.I18N)
	media := services.NewMediaService(log, r.Image, r.Document, store)
	links := services.NewRichTextLinks(r.Page, r.Document, r.Image, sites, store)
	pages := services.NewPageService(log,
		services.PageServiceConfig{I18N: cfg.I18N, DefaultLimit: cfg.DefaultLimit, LimitMax: cfg.LimitMax},
		sch.Registry, r.Page, r.Restriction, r.RelatedItem,
		sites, media, richtext.NewExpander(links, log),
	)
	return Services{
		Site:     sites,
		Media:    media,
		Page:     pages,
		Redirect: services.NewRedirectService(log, r.Redirect, sites),
	}
}

func wireRouter(log *logger.Logger, cfg Config, db *gorm.DB, sch *Schema, svc Services, metrics *observability.Metrics) *gin.Engine {
	log.Info("Wiring handlers...")
	writer := response.NewWriter(log, metrics, cfg.ResponseValidation)
	ops := sch.Operations
	return apphttp.NewRouter(apphttp.RouterConfig{
		Log:              log,
		ServiceName:      serviceName,
		APIBase:          cfg.APIBase,
		CORSOrigins:      cfg.CORSOrigins,
		Tracing:          cfg.Otel.Enabled,
		Metrics:          metrics,
		ExposeMetrics:    cfg.ExposeMetrics,
		ViewerMiddleware: httpMW.NewViewerMiddleware(log, cfg.JWTSecret),
		PageHandler:      httpH.NewPageHandler(log, svc.Site, svc.Page, ops, writer, cfg.APIBase),
		RedirectHandler:  httpH.NewRedirectHandler(log, svc.Site, svc.Redirect, ops, writer),
		DocumentHandler:  httpH.NewDocumentHandler(log, svc.Media, ops, writer),
		OpenAPIHandler:   httpH.NewOpenAPIHandler(sch.Document),
		HealthHandler:    httpH.NewHealthHandler(db),
	})
}
