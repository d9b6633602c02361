package schema

import (
	"encoding/json"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/pagebridge/internal/content/blocks"
	"github.com/yungbote/pagebridge/internal/platform/logger"
)

func asMap(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func person() *blocks.Block {
	return &blocks.Block{Name: "person", Kind: blocks.KindStruct, ClassName: "PersonBlock", Children: []*blocks.Block{
		{Name: "first_name", Kind: blocks.KindChar},
		{Name: "age", Kind: blocks.KindInteger},
		{Name: "role", Kind: blocks.KindChoice, Choices: []blocks.Choice{{Value: "author"}, {Value: "editor"}}},
	}}
}

func TestLeafInference(t *testing.T) {
	ty := NewTyper(true, logger.Nop())
	cases := []struct {
		block *blocks.Block
		want  map[string]interface{}
	}{
		{&blocks.Block{Kind: blocks.KindChar}, map[string]interface{}{"type": "string"}},
		{&blocks.Block{Kind: blocks.KindText}, map[string]interface{}{"type": "string"}},
		{&blocks.Block{Kind: blocks.KindRichText}, map[string]interface{}{"type": "string"}},
		{&blocks.Block{Kind: blocks.KindBoolean}, map[string]interface{}{"type": "boolean"}},
		{&blocks.Block{Kind: blocks.KindInteger}, map[string]interface{}{"type": "integer"}},
		{&blocks.Block{Kind: blocks.KindChoice}, map[string]interface{}{"type": "string"}},
		{&blocks.Block{Kind: blocks.KindDate}, map[string]interface{}{"nullable": true}},
		{&blocks.Block{Kind: blocks.KindList, Item: &blocks.Block{Kind: blocks.KindChar}}, map[string]interface{}{"nullable": true}},
		{nil, map[string]interface{}{"nullable": true}},
	}
	for _, c := range cases {
		got := asMap(t, ty.BlockSchema(c.block, "x"))
		assert.Equal(t, c.want, got, "%v", c.block)
	}

	f := asMap(t, ty.BlockSchema(&blocks.Block{Kind: blocks.KindFloat}, "x"))
	assert.Equal(t, "number", f["type"])

	choice := asMap(t, ty.BlockSchema(&blocks.Block{Kind: blocks.KindChoice, Choices: []blocks.Choice{{Value: "b"}, {Value: "a"}}}, "x"))
	assert.Equal(t, []interface{}{"b", "a"}, choice["enum"])

	declared := openapi3.NewIntegerSchema()
	got := ty.BlockSchema(&blocks.Block{Kind: blocks.KindChar, APISchema: declared}, "x")
	assert.Same(t, declared, got.Value)

	assert.Empty(t, ty.ComponentNames(), "leaf blocks never create components")
}

func TestStructMemoization(t *testing.T) {
	ty := NewTyper(true, logger.Nop())

	a := ty.BlockSchema(person(), "person")
	b := ty.BlockSchema(person(), "person")
	assert.Equal(t, "#/components/schemas/PersonBlockValue", a.Ref)
	assert.Equal(t, a.Ref, b.Ref)

	value := ty.Component("PersonBlockValue")
	require.NotNil(t, value)
	assert.Equal(t, []string{"first_name", "age", "role"}, value.Required)

	// Same ident and class, different shape: its own component.
	other := person()
	other.Children = other.Children[:1]
	c := ty.BlockSchema(other, "person")
	assert.Equal(t, "#/components/schemas/PersonBlockValue2", c.Ref)

	empty := ty.BlockSchema(&blocks.Block{Kind: blocks.KindStruct}, "empty")
	emptyMap := asMap(t, ty.Component("StructBlockValue"))
	assert.Equal(t, "#/components/schemas/StructBlockValue", empty.Ref)
	assert.Equal(t, "object", emptyMap["type"])
	assert.Nil(t, emptyMap["required"])
}

func bodyBlock(children ...*blocks.Block) *blocks.Block {
	return &blocks.Block{Name: "body", Kind: blocks.KindStream, Children: children}
}

func TestStreamFieldSharing(t *testing.T) {
	ty := NewTyper(true, logger.Nop())

	heading := func() *blocks.Block { return &blocks.Block{Name: "heading", Kind: blocks.KindChar} }
	home := ty.StreamFieldSchema("HomePage", "body", bodyBlock(heading(), person()))
	blog := ty.StreamFieldSchema("BlogPage", "body", bodyBlock(heading(), person()))
	assert.Equal(t, "#/components/schemas/HomePage.body.StreamField", home.Ref)
	assert.Equal(t, home.Ref, blog.Ref, "identical stream definitions share a component")

	// A different ordered set of entries gets its own list component but
	// reuses the entry components.
	other := ty.StreamFieldSchema("BlogPage", "sidebar", bodyBlock(person()))
	assert.Equal(t, "#/components/schemas/BlogPage.sidebar.StreamField", other.Ref)

	names := ty.ComponentNames()
	assert.Equal(t, []string{
		"BlogPage.sidebar.StreamField",
		"CharBlock.heading",
		"HomePage.body.StreamField",
		"PersonBlock.person",
		"PersonBlockValue",
	}, names)

	list := asMap(t, ty.Component("HomePage.body.StreamField"))
	assert.Equal(t, "array", list["type"])
	items := list["items"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{
		"propertyName": "type",
		"mapping": map[string]interface{}{
			"heading": "#/components/schemas/CharBlock.heading",
			"person":  "#/components/schemas/PersonBlock.person",
		},
	}, items["discriminator"])
	assert.Len(t, items["oneOf"], 2)

	entry := asMap(t, ty.Component("PersonBlock.person"))
	props := entry["properties"].(map[string]interface{})
	assert.Equal(t, []interface{}{"person"}, props["type"].(map[string]interface{})["enum"])
	assert.Equal(t, "#/components/schemas/PersonBlockValue", props["value"].(map[string]interface{})["$ref"])
	assert.Equal(t, "uuid", props["id"].(map[string]interface{})["format"])
	assert.Equal(t, []interface{}{"type", "value", "id"}, entry["required"])
}

func TestStreamEntryCacheKeyedOnValueType(t *testing.T) {
	ty := NewTyper(true, logger.Nop())
	a := ty.StreamFieldSchema("A", "body", bodyBlock(&blocks.Block{Name: "item", Kind: blocks.KindChar}))
	b := ty.StreamFieldSchema("B", "body", bodyBlock(&blocks.Block{Name: "item", Kind: blocks.KindInteger}))
	assert.NotEqual(t, a.Ref, b.Ref)
	assert.NotNil(t, ty.Component("CharBlock.item"))
	assert.NotNil(t, ty.Component("IntegerBlock.item"))
}

func TestUntypedStreamBlocks(t *testing.T) {
	ty := NewTyper(false, logger.Nop())
	ref := ty.StreamFieldSchema("HomePage", "body", bodyBlock(&blocks.Block{Name: "heading", Kind: blocks.KindChar}, person()))
	require.NotNil(t, ref)

	entry := asMap(t, ty.Component("PersonBlock.person"))
	props := entry["properties"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"nullable": true}, props["value"])
	assert.Nil(t, ty.Component("PersonBlockValue"), "struct values are not inferred when typing is off")

	again := ty.StreamFieldSchema("BlogPage", "body", bodyBlock(&blocks.Block{Name: "heading", Kind: blocks.KindText}, person()))
	assert.Equal(t, ref.Ref, again.Ref, "untyped entries are keyed by ident alone")
}

func TestEmptyAndNestedStreams(t *testing.T) {
	ty := NewTyper(true, logger.Nop())

	empty := asMap(t, ty.Component(refName(ty.StreamFieldSchema("P", "body", bodyBlock()))))
	assert.Equal(t, map[string]interface{}{"type": "array", "items": map[string]interface{}{"nullable": true}}, empty)

	nested := bodyBlock(&blocks.Block{Name: "section", Kind: blocks.KindStream, Children: []*blocks.Block{
		{Name: "text", Kind: blocks.KindText},
	}})
	ty.StreamFieldSchema("P", "content", nested)

	section := asMap(t, ty.Component("StreamBlock.section"))
	value := section["properties"].(map[string]interface{})["value"].(map[string]interface{})
	assert.Equal(t, "array", value["type"])
	items := value["items"].(map[string]interface{})
	assert.Equal(t, []interface{}{map[string]interface{}{"$ref": "#/components/schemas/TextBlock.text"}}, items["oneOf"])
}

func TestNilBlocksAreSkipped(t *testing.T) {
	ty := NewTyper(true, logger.Nop())

	body := bodyBlock(nil, &blocks.Block{Name: "card", Kind: blocks.KindStruct, ClassName: "CardBlock", Children: []*blocks.Block{
		nil,
		{Name: "title", Kind: blocks.KindChar},
	}})
	var stream *openapi3.SchemaRef
	require.NotPanics(t, func() { stream = ty.StreamFieldSchema("P", "body", body) })
	items := asMap(t, ty.Component(refName(stream)))["items"].(map[string]interface{})
	assert.Len(t, items["oneOf"], 1)

	card := asMap(t, ty.Component("CardBlockValue"))
	assert.Equal(t, []interface{}{"title"}, card["required"])

	var none *openapi3.SchemaRef
	require.NotPanics(t, func() { none = ty.StreamFieldSchema("P", "extra", nil) })
	assert.Equal(t, map[string]interface{}{"type": "array", "items": map[string]interface{}{"nullable": true}}, asMap(t, ty.Component(refName(none))))
}

func TestRegisterUniqueNames(t *testing.T) {
	ty := NewTyper(true, logger.Nop())
	a := ty.Register("Blog Page", openapi3.NewObjectSchema())
	b := ty.Register("Blog Page", openapi3.NewObjectSchema())
	assert.Equal(t, "#/components/schemas/Blog_Page", a.Ref)
	assert.Equal(t, "#/components/schemas/Blog_Page2", b.Ref)
}

func refName(r *openapi3.SchemaRef) string {
	return r.Ref[len(refPrefix):]
}
