package schema

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/pagebridge/internal/content/models"
	"github.com/yungbote/pagebridge/internal/platform/logger"
)

func sampleRegistry(t *testing.T) *models.Registry {
	t.Helper()
	_, file, _, _ := runtime.Caller(0)
	reg := models.NewRegistry()
	require.NoError(t, models.LoadInto(reg, filepath.Join(filepath.Dir(file), "..", "..", "config", "content_models.yaml")))
	return reg
}

func build(t *testing.T, typed bool) (*Typer, *PageSchemas) {
	t.Helper()
	ty := NewTyper(typed, logger.Nop())
	st, err := RegisterStatic(ty)
	require.NoError(t, err)
	return ty, BuildPageSchemas(ty, sampleRegistry(t), st)
}

// jsonValue round-trips v so that it has the shape VisitJSON expects.
func jsonValue(t *testing.T, v interface{}) interface{} {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var out interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestStaticSchemas(t *testing.T) {
	ty := NewTyper(true, logger.Nop())
	st, err := RegisterStatic(ty)
	require.NoError(t, err)

	meta := asMap(t, st.PageDetailMeta.Value)
	props := meta["properties"].(map[string]interface{})
	for _, k := range []string{"type", "detail_url", "html_url", "slug", "first_published_at", "last_published_at", "locale", "show_in_menus", "seo_title", "search_description", "parent"} {
		assert.Contains(t, props, k)
	}
	assert.Equal(t, true, props["parent"].(map[string]interface{})["nullable"])
	assert.Equal(t, true, props["first_published_at"].(map[string]interface{})["nullable"])
	assert.Equal(t, "date-time", props["first_published_at"].(map[string]interface{})["format"])
	assert.Nil(t, props["slug"].(map[string]interface{})["nullable"])

	redirect := asMap(t, ty.Component("Redirect"))
	assert.ElementsMatch(t, []interface{}{"id", "old_path", "is_permanent", "location"}, redirect["required"])

	assert.NotNil(t, ty.Component("Http404Response"))
	assert.NotNil(t, ty.Component("WagtailImage"))
	assert.NotNil(t, ty.Component("WagtailDocument"))
}

func TestPageSchemas(t *testing.T) {
	ty, ps := build(t, true)

	require.Len(t, ps.ByLabel, 2)
	assert.Equal(t, "#/components/schemas/BlogPage", ps.ByLabel["blog.BlogPage"].Ref)

	blog := asMap(t, ty.Component("BlogPage"))
	props := blog["properties"].(map[string]interface{})
	assert.Equal(t, []interface{}{"blog.BlogPage"}, props["content_type"].(map[string]interface{})["enum"])
	assert.Equal(t, "#/components/schemas/PageDetailMeta", props["meta"].(map[string]interface{})["$ref"])
	assert.Equal(t, "#/components/schemas/BlogPage.body.StreamField", props["body"].(map[string]interface{})["$ref"])
	assert.Equal(t, map[string]interface{}{
		"nullable": true,
		"allOf":    []interface{}{map[string]interface{}{"$ref": "#/components/schemas/WagtailDocument"}},
	}, props["attachment"])
	assert.Equal(t, map[string]interface{}{"type": "integer", "nullable": true}, props["author_page"])
	assert.Equal(t, "array", props["related_links"].(map[string]interface{})["type"])
	assert.Equal(t, map[string]interface{}{"type": "string", "nullable": true}, props["subtitle"])
	assert.Equal(t, map[string]interface{}{"type": "string"}, props["url_path"])

	// The person struct block is declared identically by both models.
	assert.NotNil(t, ty.Component("PersonBlockValue"))
	assert.Nil(t, ty.Component("PersonBlockValue2"))
	assert.NotNil(t, ty.Component("QuoteBlockValue"))

	union := asMap(t, ps.Union.Value)
	disc := union["discriminator"].(map[string]interface{})
	assert.Equal(t, "content_type", disc["propertyName"])
	assert.Equal(t, map[string]interface{}{
		"home.HomePage": "#/components/schemas/HomePage",
		"blog.BlogPage": "#/components/schemas/BlogPage",
	}, disc["mapping"])
}

func TestPageSchemasAreStable(t *testing.T) {
	ty1, _ := build(t, true)
	ty2, _ := build(t, true)
	assert.Equal(t, ty1.ComponentNames(), ty2.ComponentNames())
	assert.Equal(t, asMap(t, ty1.Component("BlogPage")), asMap(t, ty2.Component("BlogPage")))
}

func TestDetailValidation(t *testing.T) {
	_, ps := build(t, true)

	meta := map[string]interface{}{
		"type": "blog.BlogPage", "detail_url": "http://x/api/v2/pages/3/", "html_url": "http://x/blog/",
		"slug": "blog", "first_published_at": nil, "last_published_at": "2026-10-15T10:00:00Z",
		"locale": "en", "show_in_menus": false, "seo_title": "", "search_description": "", "parent": nil,
	}
	page := map[string]interface{}{
		"id": 3, "title": "Blog", "meta": meta, "content_type": "blog.BlogPage",
		"subtitle": nil, "attachment": nil, "author_page": nil, "related_links": []int{1, 2},
		"reading_minutes": 4, "first_published_at": nil, "url_path": "/home/blog/",
		"body": []interface{}{
			map[string]interface{}{"type": "heading", "value": "Hello", "id": "0b5a5a8e-8f4c-4c38-9d43-5f2a3f4f8e01"},
			map[string]interface{}{"type": "person", "id": "1b5a5a8e-8f4c-4c38-9d43-5f2a3f4f8e02",
				"value": map[string]interface{}{"first_name": "Ada", "surname": "L", "role": "editor"}},
		},
	}
	require.NoError(t, ps.Detail.Value.VisitJSON(jsonValue(t, page)))

	bad := jsonValue(t, page).(map[string]interface{})
	bad["body"] = []interface{}{
		map[string]interface{}{"type": "person", "id": "1b5a5a8e-8f4c-4c38-9d43-5f2a3f4f8e02",
			"value": map[string]interface{}{"first_name": "Ada", "surname": "L", "role": "janitor"}},
	}
	assert.Error(t, ps.Union.Value.VisitJSON(bad))

	// Unregistered content types are served with the base detail shape.
	base := map[string]interface{}{"id": 9, "title": "Root", "meta": meta, "content_type": "wagtailcore.Page"}
	require.NoError(t, ps.Detail.Value.VisitJSON(jsonValue(t, base)))
}

func TestMemberSchemaNullability(t *testing.T) {
	ty := NewTyper(true, logger.Nop())
	st, err := RegisterStatic(ty)
	require.NoError(t, err)
	ct := &models.ContentType{AppLabel: "events", Name: "EventPage"}
	schemaOf := func(f *models.Field) map[string]interface{} {
		return asMap(t, memberSchema(ty, ct, models.Member{Name: f.Name, Field: f}, st).Value)
	}

	assert.Equal(t, map[string]interface{}{"type": "string"}, schemaOf(&models.Field{Name: "title", Kind: models.FieldChar}))
	assert.Equal(t, map[string]interface{}{"type": "integer"}, schemaOf(&models.Field{Name: "seats", Kind: models.FieldInteger}))
	// No usable empty value, so a missing one is served as null.
	assert.Equal(t, true, schemaOf(&models.Field{Name: "starts", Kind: models.FieldDate})["nullable"])
	assert.Equal(t, true, schemaOf(&models.Field{Name: "link", Kind: models.FieldURL})["nullable"])
	assert.Equal(t, true, schemaOf(&models.Field{Name: "title", Kind: models.FieldChar, Null: true})["nullable"])

	// Zero values of non-null members validate against their schema.
	for _, f := range []*models.Field{
		{Name: "title", Kind: models.FieldChar},
		{Name: "seats", Kind: models.FieldInteger},
		{Name: "price", Kind: models.FieldFloat},
		{Name: "open", Kind: models.FieldBoolean},
		{Name: "starts", Kind: models.FieldDate},
	} {
		s := memberSchema(ty, ct, models.Member{Name: f.Name, Field: f}, st).Value
		assert.NoError(t, s.VisitJSON(jsonValue(t, f.Zero())), f.Name)
	}
}

func TestDocument(t *testing.T) {
	ty, ps := build(t, true)
	ops := []*Operation{
		{
			ID: "get_page", Method: http.MethodGet, Path: "/api/v2/pages/{page_id}/",
			Parameters: []*openapi3.Parameter{openapi3.NewPathParameter("page_id").WithSchema(openapi3.NewIntegerSchema())},
			Responses:  map[int]*openapi3.SchemaRef{200: ps.Detail, 404: ps.Static.Http404Response},
		},
		{
			ID: "find_page", Method: http.MethodGet, Path: "/api/v2/pages/find/",
			Parameters: []*openapi3.Parameter{openapi3.NewQueryParameter("html_path").WithSchema(openapi3.NewStringSchema())},
			Responses:  map[int]*openapi3.SchemaRef{302: nil, 404: ps.Static.Http404Response, DefaultStatus: ps.Static.ErrorEnvelope},
		},
	}
	doc := NewDocument(DocumentInfo{Title: "pagebridge", Version: "test"}, ty, ops)
	require.NoError(t, doc.Validate(context.Background()))

	find := doc.Paths.Value("/api/v2/pages/find/").Get
	require.NotNil(t, find)
	assert.NotNil(t, find.Responses.Value("302"))
	assert.Nil(t, find.Responses.Value("302").Value.Content)
	assert.NotNil(t, find.Responses.Value("default"))
	assert.Contains(t, doc.Components.Schemas, "BlogPage.body.StreamField")
}

func TestOperationResponseSchema(t *testing.T) {
	op := &Operation{Responses: map[int]*openapi3.SchemaRef{200: openapi3.NewSchemaRef("", openapi3.NewStringSchema()), 302: nil}}
	s, err := op.ResponseSchema(200)
	require.NoError(t, err)
	assert.NotNil(t, s)

	s, err = op.ResponseSchema(302)
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = op.ResponseSchema(500)
	require.ErrorContains(t, err, "schema for status 500 is not set")

	op.Responses[DefaultStatus] = nil
	_, err = op.ResponseSchema(500)
	require.NoError(t, err)
}
