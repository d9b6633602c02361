package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/pagebridge/internal/content/api"
	"github.com/yungbote/pagebridge/internal/http/response"
	pkgerrors "github.com/yungbote/pagebridge/internal/pkg/errors"
	"github.com/yungbote/pagebridge/internal/platform/logger"
	"github.com/yungbote/pagebridge/internal/schema"
	"github.com/yungbote/pagebridge/internal/services"
)

type PageHandler struct {
	log     *logger.Logger
	sites   services.SiteService
	pages   services.PageService
	ops     *schema.Operations
	writer  *response.Writer
	apiBase string
}

func NewPageHandler(log *logger.Logger, sites services.SiteService, pages services.PageService, ops *schema.Operations, writer *response.Writer, apiBase string) *PageHandler {
	return &PageHandler{
		log:     log.With("handler", "PageHandler"),
		sites:   sites,
		pages:   pages,
		ops:     ops,
		writer:  writer,
		apiBase: apiBase,
	}
}

// GET /pages/
func (h *PageHandler) List(c *gin.Context) {
	site, err := resolveSite(c, h.sites)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	pages, err := h.pages.List(c.Request.Context(), services.ListQuery{
		Site:   site,
		Type:   c.Query("type"),
		Limit:  limit,
		Offset: offset,
		URLs:   requestURLs(c, h.apiBase),
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	h.writer.Write(c, h.ops.ListPages, http.StatusOK, pages)
}

// GET /pages/find/?html_path=...
func (h *PageHandler) Find(c *gin.Context) {
	htmlPath, ok := c.GetQuery("html_path")
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("html_path is required"))
		return
	}
	filter, err := resolveSite(c, h.sites)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	// Routing always starts at the site serving the request; ?site only
	// narrows the pages that may be returned.
	site, err := h.sites.Resolve(c.Request.Context(), "", c.Request.Host)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	id, err := h.pages.Find(c.Request.Context(), site, filter, htmlPath, c.Query("locale"))
	if errors.Is(err, pkgerrors.ErrNotFound) {
		h.writer.Write(c, h.ops.FindPage, http.StatusNotFound, api.HTTP404Response{Detail: "Not found."})
		return
	}
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	urls := requestURLs(c, h.apiBase)
	location := fmt.Sprintf("%s/pages/%d/", urls.APIBase, id)
	if q := passThroughQuery(c); q != "" {
		location += "?" + q
	}
	c.Header("Location", location)
	h.writer.Write(c, h.ops.FindPage, http.StatusFound, nil)
}

// GET /pages/:page_id/
func (h *PageHandler) Retrieve(c *gin.Context) {
	id, err := pathID(c, "page_id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	site, err := resolveSite(c, h.sites)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	body, err := h.pages.Detail(c.Request.Context(), site, id, requestURLs(c, h.apiBase))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	h.writer.Write(c, h.ops.RetrievePage, http.StatusOK, body)
}

// passThroughQuery keeps the find query minus the lookup parameters so the
// detail request sees the same site filter.
func passThroughQuery(c *gin.Context) string {
	q := c.Request.URL.Query()
	q.Del("html_path")
	q.Del("locale")
	return strings.TrimSpace(q.Encode())
}
