package schema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOperationsDocument(t *testing.T) {
	ty, ps := build(t, true)
	ops := BuildOperations("api/v2/", ps)

	doc := NewDocument(DocumentInfo{Title: "pagebridge", Version: "test"}, ty, ops.All())
	require.NoError(t, doc.Validate(context.Background()))

	for _, path := range []string{
		"/api/v2/pages/",
		"/api/v2/pages/find/",
		"/api/v2/pages/{page_id}/",
		"/api/v2/redirects/",
		"/api/v2/redirects/find/",
		"/api/v2/redirects/{redirect_id}/",
		"/documents/{document_id}/{document_filename}",
	} {
		item := doc.Paths.Value(path)
		require.NotNil(t, item, path)
		assert.NotNil(t, item.Get, path)
	}

	detail := doc.Paths.Value("/api/v2/pages/{page_id}/").Get.Responses.Value("200")
	require.NotNil(t, detail)
	assert.Equal(t, "#/components/schemas/PageDetail", detail.Value.Content.Get("application/json").Schema.Ref)

	_, err := ops.ServeDocument.ResponseSchema(500)
	assert.Error(t, err, "document serving declares no default response")
}

func TestBuildOperationsRootBase(t *testing.T) {
	_, ps := build(t, false)
	ops := BuildOperations("/", ps)
	assert.Equal(t, "/pages/", ops.ListPages.Path)
}
