package schema

import (
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Operations are the API routes with their declared responses.
type Operations struct {
	ListPages        *Operation
	FindPage         *Operation
	RetrievePage     *Operation
	ListRedirects    *Operation
	FindRedirect     *Operation
	RetrieveRedirect *Operation
	ServeDocument    *Operation
}

func (o *Operations) All() []*Operation {
	return []*Operation{
		o.ListPages, o.FindPage, o.RetrievePage,
		o.ListRedirects, o.FindRedirect, o.RetrieveRedirect,
		o.ServeDocument,
	}
}

func queryParam(name, desc string, s *openapi3.Schema) *openapi3.Parameter {
	return openapi3.NewQueryParameter(name).WithDescription(desc).WithSchema(s)
}

func pathParam(name string, s *openapi3.Schema) *openapi3.Parameter {
	return openapi3.NewPathParameter(name).WithSchema(s)
}

func arrayOf(item *openapi3.SchemaRef) *openapi3.SchemaRef {
	s := openapi3.NewArraySchema()
	s.Items = item
	return openapi3.NewSchemaRef("", s)
}

// BuildOperations declares every route under apiBase (e.g. "/api/v2").
func BuildOperations(apiBase string, ps *PageSchemas) *Operations {
	base := "/" + strings.Trim(apiBase, "/")
	if base == "/" {
		base = ""
	}
	st := ps.Static
	site := queryParam("site", "Filter by site hostname, optionally with :port.", openapi3.NewStringSchema())
	htmlPath := queryParam("html_path", "Front-end path to look up.", openapi3.NewStringSchema())
	htmlPath.Required = true

	return &Operations{
		ListPages: &Operation{
			ID:      "list_pages",
			Method:  http.MethodGet,
			Path:    base + "/pages/",
			Summary: "List live pages of the site in tree order",
			Tags:    []string{"pages"},
			Parameters: []*openapi3.Parameter{
				site,
				queryParam("type", "Restrict to one content type (app_label.Model).", openapi3.NewStringSchema()),
				queryParam("limit", "Page size.", openapi3.NewIntegerSchema().WithMin(0)),
				queryParam("offset", "Items to skip.", openapi3.NewIntegerSchema().WithMin(0)),
			},
			Responses: map[int]*openapi3.SchemaRef{
				http.StatusOK:         arrayOf(st.BasePage),
				http.StatusBadRequest: st.ErrorEnvelope,
				DefaultStatus:         st.ErrorEnvelope,
			},
		},
		FindPage: &Operation{
			ID:      "find_page",
			Method:  http.MethodGet,
			Path:    base + "/pages/find/",
			Summary: "Redirect to the page served at an HTML path",
			Tags:    []string{"pages"},
			Parameters: []*openapi3.Parameter{
				htmlPath,
				queryParam("locale", "Language code of the translated site root to route from.", openapi3.NewStringSchema()),
				site,
			},
			Responses: map[int]*openapi3.SchemaRef{
				http.StatusMovedPermanently: nil,
				http.StatusFound:            nil,
				http.StatusNotFound:         st.Http404Response,
				http.StatusBadRequest:       st.ErrorEnvelope,
				DefaultStatus:               st.ErrorEnvelope,
			},
		},
		RetrievePage: &Operation{
			ID:         "retrieve_page",
			Method:     http.MethodGet,
			Path:       base + "/pages/{page_id}/",
			Summary:    "Page detail, typed by content type",
			Tags:       []string{"pages"},
			Parameters: []*openapi3.Parameter{pathParam("page_id", openapi3.NewIntegerSchema()), site},
			Responses: map[int]*openapi3.SchemaRef{
				http.StatusOK:         ps.Detail,
				http.StatusNotFound:   st.ErrorEnvelope,
				http.StatusBadRequest: st.ErrorEnvelope,
				DefaultStatus:         st.ErrorEnvelope,
			},
		},
		ListRedirects: &Operation{
			ID:         "list_redirects",
			Method:     http.MethodGet,
			Path:       base + "/redirects/",
			Summary:    "List redirects",
			Tags:       []string{"redirects"},
			Parameters: []*openapi3.Parameter{site},
			Responses: map[int]*openapi3.SchemaRef{
				http.StatusOK: arrayOf(st.Redirect),
				DefaultStatus: st.ErrorEnvelope,
			},
		},
		FindRedirect: &Operation{
			ID:         "find_redirect",
			Method:     http.MethodGet,
			Path:       base + "/redirects/find/",
			Summary:    "Find the redirect for an HTML path",
			Tags:       []string{"redirects"},
			Parameters: []*openapi3.Parameter{htmlPath, site},
			Responses: map[int]*openapi3.SchemaRef{
				http.StatusOK:         st.Redirect,
				http.StatusNotFound:   st.ErrorEnvelope,
				http.StatusBadRequest: st.ErrorEnvelope,
				DefaultStatus:         st.ErrorEnvelope,
			},
		},
		RetrieveRedirect: &Operation{
			ID:         "retrieve_redirect",
			Method:     http.MethodGet,
			Path:       base + "/redirects/{redirect_id}/",
			Summary:    "Redirect detail",
			Tags:       []string{"redirects"},
			Parameters: []*openapi3.Parameter{pathParam("redirect_id", openapi3.NewIntegerSchema()), site},
			Responses: map[int]*openapi3.SchemaRef{
				http.StatusOK:       st.Redirect,
				http.StatusNotFound: st.ErrorEnvelope,
				DefaultStatus:       st.ErrorEnvelope,
			},
		},
		ServeDocument: &Operation{
			ID:      "serve_document",
			Method:  http.MethodGet,
			Path:    "/documents/{document_id}/{document_filename}",
			Summary: "Redirect to a document's file",
			Tags:    []string{"documents"},
			Parameters: []*openapi3.Parameter{
				pathParam("document_id", openapi3.NewIntegerSchema()),
				pathParam("document_filename", openapi3.NewStringSchema()),
			},
			Responses: map[int]*openapi3.SchemaRef{
				http.StatusFound:    nil,
				http.StatusNotFound: st.Http404Response,
			},
		},
	}
}
