package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/pagebridge/internal/content/api"
	"github.com/yungbote/pagebridge/internal/http/response"
	pkgerrors "github.com/yungbote/pagebridge/internal/pkg/errors"
	"github.com/yungbote/pagebridge/internal/platform/logger"
	"github.com/yungbote/pagebridge/internal/schema"
	"github.com/yungbote/pagebridge/internal/services"
)

type DocumentHandler struct {
	log    *logger.Logger
	media  services.MediaService
	ops    *schema.Operations
	writer *response.Writer
}

func NewDocumentHandler(log *logger.Logger, media services.MediaService, ops *schema.Operations, writer *response.Writer) *DocumentHandler {
	return &DocumentHandler{log: log.With("handler", "DocumentHandler"), media: media, ops: ops, writer: writer}
}

// GET /documents/:document_id/:document_filename
func (h *DocumentHandler) Serve(c *gin.Context) {
	notFound := func() {
		h.writer.Write(c, h.ops.ServeDocument, http.StatusNotFound, api.HTTP404Response{Detail: "Not found."})
	}
	id, err := pathID(c, "document_id")
	if err != nil {
		notFound()
		return
	}
	target, err := h.media.DocumentFileURL(c.Request.Context(), id, c.Param("document_filename"))
	if errors.Is(err, pkgerrors.ErrNotFound) {
		notFound()
		return
	}
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.Header("Location", target)
	h.writer.Write(c, h.ops.ServeDocument, http.StatusFound, nil)
}
