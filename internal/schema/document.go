package schema

import (
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

type DocumentInfo struct {
	Title       string
	Version     string
	Description string
}

// NewDocument assembles the OpenAPI document for ops over the typer's components.
func NewDocument(info DocumentInfo, t *Typer, ops []*Operation) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       info.Title,
			Version:     info.Version,
			Description: info.Description,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: t.Components(),
		},
	}

	for _, op := range ops {
		if op == nil {
			continue
		}
		o := openapi3.NewOperation()
		o.OperationID = op.ID
		o.Summary = op.Summary
		o.Tags = op.Tags
		for _, p := range op.Parameters {
			o.Parameters = append(o.Parameters, &openapi3.ParameterRef{Value: p})
		}
		o.Responses = openapi3.NewResponsesWithCapacity(len(op.Responses))
		for _, status := range op.Statuses() {
			resp := openapi3.NewResponse().WithDescription(describe(status))
			if s := op.Responses[status]; s != nil {
				resp = resp.WithJSONSchemaRef(s)
			}
			key := "default"
			if status != DefaultStatus {
				key = strconv.Itoa(status)
			}
			o.Responses.Set(key, &openapi3.ResponseRef{Value: resp})
		}

		item := doc.Paths.Value(op.Path)
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths.Set(op.Path, item)
		}
		item.SetOperation(strings.ToUpper(op.Method), o)
	}
	return doc
}
