package app

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/yungbote/pagebridge/internal/content/models"
	"github.com/yungbote/pagebridge/internal/platform/logger"
	"github.com/yungbote/pagebridge/internal/schema"
)

// Schema is everything derived from the content models at startup.
type Schema struct {
	Registry   *models.Registry
	Typer      *schema.Typer
	Pages      *schema.PageSchemas
	Operations *schema.Operations
	Document   *openapi3.T
}

// BuildSchema loads the content models and derives the OpenAPI document.
func BuildSchema(cfg Config, log *logger.Logger) (*Schema, error) {
	reg := models.NewRegistry()
	if err := models.LoadInto(reg, cfg.ContentModelsPath); err != nil {
		return nil, fmt.Errorf("load content models: %w", err)
	}
	ty := schema.NewTyper(cfg.TypeStreamfieldBlocks, log)
	st, err := schema.RegisterStatic(ty)
	if err != nil {
		return nil, fmt.Errorf("register static schemas: %w", err)
	}
	ps := schema.BuildPageSchemas(ty, reg, st)
	ops := schema.BuildOperations(cfg.APIBase, ps)
	doc := schema.NewDocument(schema.DocumentInfo{
		Title:       serviceName,
		Version:     Version,
		Description: "Read-only content API for published pages, redirects and documents.",
	}, ty, ops.All())

	log.Info("schema built",
		"content_types", reg.Len(),
		"components", len(ty.ComponentNames()),
		"typed_blocks", cfg.TypeStreamfieldBlocks,
	)
	return &Schema{Registry: reg, Typer: ty, Pages: ps, Operations: ops, Document: doc}, nil
}
