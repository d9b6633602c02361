package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/invopop/jsonschema"

	"github.com/yungbote/pagebridge/internal/content/api"
)

// Static holds references to the components reflected from the response structs.
type Static struct {
	PageMeta        *openapi3.SchemaRef
	PageDetailMeta  *openapi3.SchemaRef
	PageParentMeta  *openapi3.SchemaRef
	PageParent      *openapi3.SchemaRef
	BasePage        *openapi3.SchemaRef
	BasePageDetail  *openapi3.SchemaRef
	Image           *openapi3.SchemaRef
	Document        *openapi3.SchemaRef
	Redirect        *openapi3.SchemaRef
	Http404Response *openapi3.SchemaRef
	ErrorEnvelope   *openapi3.SchemaRef
}

// RegisterStatic reflects the response structs and publishes them on t.
func RegisterStatic(t *Typer) (*Static, error) {
	st := &Static{}
	entries := []struct {
		name  string
		value interface{}
		dst   **openapi3.SchemaRef
	}{
		{"PageMeta", api.PageMeta{}, &st.PageMeta},
		{"PageDetailMeta", api.PageDetailMeta{}, &st.PageDetailMeta},
		{"PageParentMeta", api.PageParentMeta{}, &st.PageParentMeta},
		{"PageParent", api.PageParent{}, &st.PageParent},
		{"BasePage", api.BasePage{}, &st.BasePage},
		{"BasePageDetail", api.BasePageDetail{}, &st.BasePageDetail},
		{"WagtailImage", api.Image{}, &st.Image},
		{"WagtailDocument", api.Document{}, &st.Document},
		{"Redirect", api.Redirect{}, &st.Redirect},
		{"Http404Response", api.HTTP404Response{}, &st.Http404Response},
		{"ErrorEnvelope", api.ErrorEnvelope{}, &st.ErrorEnvelope},
	}
	for _, e := range entries {
		s, err := Reflect(e.value)
		if err != nil {
			return nil, fmt.Errorf("reflect %s: %w", e.name, err)
		}
		*e.dst = t.Register(e.name, s)
	}
	return st, nil
}

// Reflect converts a Go struct into an OpenAPI schema. Pointer fields are nullable.
func Reflect(v interface{}) (*openapi3.Schema, error) {
	r := &jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
		ExpandedStruct: true,
	}
	js := r.Reflect(v)
	js.Version = ""
	js.ID = ""
	js.Definitions = nil

	raw, err := json.Marshal(js)
	if err != nil {
		return nil, err
	}
	out := &openapi3.Schema{}
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, err
	}
	markNullable(reflect.TypeOf(v), out)
	return out, nil
}

func markNullable(rt reflect.Type, s *openapi3.Schema) {
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct || s == nil {
		return
	}
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		if f.Anonymous && name == "" {
			markNullable(f.Type, s)
			continue
		}
		if name == "" || name == "-" {
			continue
		}
		prop, ok := s.Properties[name]
		if !ok || prop == nil || prop.Value == nil {
			continue
		}
		if f.Type.Kind() == reflect.Ptr {
			prop.Value.Nullable = true
		}
		markNullable(f.Type, prop.Value)
	}
}
