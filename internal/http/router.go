package http

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/pagebridge/internal/http/handlers"
	httpMW "github.com/yungbote/pagebridge/internal/http/middleware"
	"github.com/yungbote/pagebridge/internal/observability"
	"github.com/yungbote/pagebridge/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	APIBase     string
	CORSOrigins []string
	Tracing     bool

	Metrics       *observability.Metrics
	ExposeMetrics bool

	ViewerMiddleware *httpMW.ViewerMiddleware

	PageHandler     *httpH.PageHandler
	RedirectHandler *httpH.RedirectHandler
	DocumentHandler *httpH.DocumentHandler
	OpenAPIHandler  *httpH.OpenAPIHandler
	HealthHandler   *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	if cfg.ViewerMiddleware != nil {
		r.Use(cfg.ViewerMiddleware.AttachViewer())
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.ExposeMetrics && cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics))
	}

	// Documents are served outside the API base, at their public path.
	if cfg.DocumentHandler != nil {
		r.GET("/documents/:document_id/:document_filename", cfg.DocumentHandler.Serve)
	}

	base := "/" + strings.Trim(cfg.APIBase, "/")
	api := r.Group(base)
	{
		if cfg.OpenAPIHandler != nil {
			api.GET("/openapi.json", cfg.OpenAPIHandler.Document)
		}

		// Pages
		if cfg.PageHandler != nil {
			api.GET("/pages/", cfg.PageHandler.List)
			api.GET("/pages/find/", cfg.PageHandler.Find)
			api.GET("/pages/:page_id/", cfg.PageHandler.Retrieve)
		}

		// Redirects
		if cfg.RedirectHandler != nil {
			api.GET("/redirects/", cfg.RedirectHandler.List)
			api.GET("/redirects/find/", cfg.RedirectHandler.Find)
			api.GET("/redirects/:redirect_id/", cfg.RedirectHandler.Retrieve)
		}
	}

	return r
}
