package models

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"

	types "github.com/yungbote/pagebridge/internal/domain"
)

var builtins = map[string]Resolver{
	"url_path": {
		Schema: openapi3.NewStringSchema(),
		Resolve: func(_ context.Context, p *types.Page) (any, error) {
			return p.URLPath, nil
		},
	},
	"depth": {
		Schema: openapi3.NewIntegerSchema(),
		Resolve: func(_ context.Context, p *types.Page) (any, error) {
			return p.Depth, nil
		},
	},
	"has_children": {
		Schema: openapi3.NewBoolSchema(),
		Resolve: func(_ context.Context, p *types.Page) (any, error) {
			return p.NumChild > 0, nil
		},
	},
	"translation_key": {
		Schema: openapi3.NewUUIDSchema(),
		Resolve: func(_ context.Context, p *types.Page) (any, error) {
			return p.TranslationKey, nil
		},
	},
}

// Builtin returns a named resolver usable from content model files.
func Builtin(name string) (Resolver, bool) {
	r, ok := builtins[name]
	return r, ok
}
