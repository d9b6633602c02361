package handlers

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
)

type OpenAPIHandler struct {
	doc *openapi3.T
}

func NewOpenAPIHandler(doc *openapi3.T) *OpenAPIHandler { return &OpenAPIHandler{doc: doc} }

// GET /openapi.json
func (h *OpenAPIHandler) Document(c *gin.Context) {
	c.JSON(http.StatusOK, h.doc)
}
