package schema

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/yungbote/pagebridge/internal/content/models"
)

// PageSchemas are the components describing page responses.
type PageSchemas struct {
	Static *Static
	// ByLabel maps a content type label to its page component.
	ByLabel map[string]*openapi3.SchemaRef
	// Union is oneOf every page component, discriminated on content_type.
	Union *openapi3.SchemaRef
	// Detail is the detail response: the union, or the base detail schema for
	// pages of unregistered types.
	Detail *openapi3.SchemaRef
}

// BuildPageSchemas derives one component per registered content type.
func BuildPageSchemas(t *Typer, reg *models.Registry, st *Static) *PageSchemas {
	ps := &PageSchemas{Static: st, ByLabel: map[string]*openapi3.SchemaRef{}}

	union := &openapi3.Schema{
		Discriminator: &openapi3.Discriminator{PropertyName: "content_type", Mapping: map[string]string{}},
	}
	for _, ct := range reg.All() {
		r := t.Register(ct.Name, PageSchema(t, ct, st))
		ps.ByLabel[ct.Label()] = r
		union.OneOf = append(union.OneOf, r)
		union.Discriminator.Mapping[ct.Label()] = r.Ref
	}

	if len(union.OneOf) == 0 {
		ps.Union = st.BasePageDetail
		ps.Detail = st.BasePageDetail
		return ps
	}
	ps.Union = t.Register("PageDetailUnion", union)
	ps.Detail = t.Register("PageDetail", &openapi3.Schema{
		AnyOf: openapi3.SchemaRefs{ps.Union, st.BasePageDetail},
	})
	return ps
}

// PageSchema builds the object schema of one content type.
func PageSchema(t *Typer, ct *models.ContentType, st *Static) *openapi3.Schema {
	obj := openapi3.NewObjectSchema()
	obj.Properties["id"] = openapi3.NewSchemaRef("", openapi3.NewIntegerSchema())
	obj.Properties["title"] = openapi3.NewSchemaRef("", openapi3.NewStringSchema())
	obj.Properties["meta"] = st.PageDetailMeta
	obj.Properties["content_type"] = openapi3.NewSchemaRef("", openapi3.NewStringSchema().WithEnum(ct.Label()))
	obj.Required = []string{"id", "title", "meta", "content_type"}

	for _, m := range ct.Members() {
		if _, taken := obj.Properties[m.Name]; taken {
			continue
		}
		obj.Properties[m.Name] = memberSchema(t, ct, m, st)
		obj.Required = append(obj.Required, m.Name)
	}
	return obj
}

func memberSchema(t *Typer, ct *models.ContentType, m models.Member, st *Static) *openapi3.SchemaRef {
	if m.Resolver != nil {
		if m.Resolver.Schema != nil {
			return openapi3.NewSchemaRef("", m.Resolver.Schema)
		}
		return openapi3.NewSchemaRef("", AnySchema())
	}
	f := m.Field
	var s *openapi3.Schema
	switch f.Kind {
	case models.FieldStream:
		return t.StreamFieldSchema(ct.Name, f.Name, f.StreamBlock())
	case models.FieldImage:
		return nullableRef(st.Image)
	case models.FieldDocument:
		return nullableRef(st.Document)
	case models.FieldChildRelation:
		return openapi3.NewSchemaRef("", openapi3.NewArraySchema().WithItems(openapi3.NewIntegerSchema()))
	case models.FieldForeignKey:
		return openapi3.NewSchemaRef("", openapi3.NewIntegerSchema().WithNullable())
	case models.FieldRichText, models.FieldChar, models.FieldText, models.FieldSlug:
		s = openapi3.NewStringSchema()
	case models.FieldURL:
		s = openapi3.NewStringSchema().WithFormat("uri")
	case models.FieldEmail:
		s = openapi3.NewStringSchema().WithFormat("email")
	case models.FieldInteger:
		s = openapi3.NewIntegerSchema()
	case models.FieldFloat:
		s = openapi3.NewFloat64Schema()
	case models.FieldBoolean:
		s = openapi3.NewBoolSchema()
	case models.FieldDate:
		s = openapi3.NewStringSchema().WithFormat("date")
	case models.FieldDateTime:
		s = openapi3.NewDateTimeSchema()
	default:
		s = AnySchema()
	}
	if f.Null || f.Zero() == nil {
		s = s.WithNullable()
	}
	return openapi3.NewSchemaRef("", s)
}

func nullableRef(r *openapi3.SchemaRef) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("", &openapi3.Schema{
		Nullable: true,
		AllOf:    openapi3.SchemaRefs{r},
	})
}
