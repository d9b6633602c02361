package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/pagebridge/internal/http/response"
	"github.com/yungbote/pagebridge/internal/platform/logger"
	"github.com/yungbote/pagebridge/internal/schema"
	"github.com/yungbote/pagebridge/internal/services"
)

type RedirectHandler struct {
	log       *logger.Logger
	sites     services.SiteService
	redirects services.RedirectService
	ops       *schema.Operations
	writer    *response.Writer
}

func NewRedirectHandler(log *logger.Logger, sites services.SiteService, redirects services.RedirectService, ops *schema.Operations, writer *response.Writer) *RedirectHandler {
	return &RedirectHandler{
		log:       log.With("handler", "RedirectHandler"),
		sites:     sites,
		redirects: redirects,
		ops:       ops,
		writer:    writer,
	}
}

// GET /redirects/
func (h *RedirectHandler) List(c *gin.Context) {
	site, err := resolveSite(c, h.sites)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	out, err := h.redirects.List(c.Request.Context(), site)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	h.writer.Write(c, h.ops.ListRedirects, http.StatusOK, out)
}

// GET /redirects/find/?html_path=...
func (h *RedirectHandler) Find(c *gin.Context) {
	htmlPath, ok := c.GetQuery("html_path")
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("html_path is required"))
		return
	}
	site, err := resolveSite(c, h.sites)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	rd, err := h.redirects.Find(c.Request.Context(), site, htmlPath)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	h.writer.Write(c, h.ops.FindRedirect, http.StatusOK, rd)
}

// GET /redirects/:redirect_id/
func (h *RedirectHandler) Retrieve(c *gin.Context) {
	id, err := pathID(c, "redirect_id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	site, err := resolveSite(c, h.sites)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	rd, err := h.redirects.Get(c.Request.Context(), site, id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	h.writer.Write(c, h.ops.RetrieveRedirect, http.StatusOK, rd)
}
