package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/yungbote/pagebridge/internal/content/blocks"
	types "github.com/yungbote/pagebridge/internal/domain"
	pkgerrors "github.com/yungbote/pagebridge/internal/pkg/errors"
)

type FieldKind string

const (
	FieldChar          FieldKind = "char"
	FieldText          FieldKind = "text"
	FieldSlug          FieldKind = "slug"
	FieldURL           FieldKind = "url"
	FieldEmail         FieldKind = "email"
	FieldInteger       FieldKind = "integer"
	FieldFloat         FieldKind = "float"
	FieldBoolean       FieldKind = "boolean"
	FieldDate          FieldKind = "date"
	FieldDateTime      FieldKind = "datetime"
	FieldRichText      FieldKind = "rich_text"
	FieldStream        FieldKind = "stream"
	FieldImage         FieldKind = "image"
	FieldDocument      FieldKind = "document"
	FieldForeignKey    FieldKind = "foreign_key"
	FieldChildRelation FieldKind = "child_relation"
)

var knownFieldKinds = map[FieldKind]bool{
	FieldChar: true, FieldText: true, FieldSlug: true, FieldURL: true, FieldEmail: true,
	FieldInteger: true, FieldFloat: true, FieldBoolean: true, FieldDate: true, FieldDateTime: true,
	FieldRichText: true, FieldStream: true, FieldImage: true, FieldDocument: true,
	FieldForeignKey: true, FieldChildRelation: true,
}

// Field is a model field. Values of non-core fields live in the page's data
// document under Name; child relations are read from related items.
type Field struct {
	Name   string          `yaml:"name"`
	Kind   FieldKind       `yaml:"kind"`
	Null   bool            `yaml:"nullable"`
	Blocks []*blocks.Block `yaml:"blocks"`
	// Target is the referenced model label for foreign keys and the relation
	// name for child relations (defaults to Name).
	Target string `yaml:"target"`
	// Core marks page columns rather than data document entries.
	Core bool `yaml:"-"`
}

// StreamBlock wraps the field's child blocks into the top-level stream block.
func (f *Field) StreamBlock() *blocks.Block {
	if f == nil {
		return nil
	}
	return &blocks.Block{Name: f.Name, Kind: blocks.KindStream, Children: f.Blocks}
}

// Zero is the API value of a field whose stored value is missing. It is nil
// for nullable fields and for kinds with no usable empty value.
func (f *Field) Zero() any {
	if f == nil || f.Null {
		return nil
	}
	switch f.Kind {
	case FieldChar, FieldText, FieldSlug, FieldRichText:
		return ""
	case FieldInteger:
		return 0
	case FieldFloat:
		return 0.0
	case FieldBoolean:
		return false
	default:
		return nil
	}
}

func (f *Field) Relation() string {
	if f == nil {
		return ""
	}
	if t := strings.TrimSpace(f.Target); t != "" {
		return t
	}
	return f.Name
}

var coreFields = []*Field{
	{Name: "title", Kind: FieldChar, Core: true},
	{Name: "slug", Kind: FieldSlug, Core: true},
	{Name: "seo_title", Kind: FieldChar, Core: true},
	{Name: "search_description", Kind: FieldText, Core: true},
	{Name: "show_in_menus", Kind: FieldBoolean, Core: true},
	{Name: "first_published_at", Kind: FieldDateTime, Null: true, Core: true},
	{Name: "last_published_at", Kind: FieldDateTime, Null: true, Core: true},
}

// Resolver computes an API field for a page. A nil Schema is typed as any.
type Resolver struct {
	Schema  *openapi3.Schema
	Resolve func(ctx context.Context, page *types.Page) (any, error)
}

type APIField struct {
	Name       string `yaml:"name"`
	Serializer string `yaml:"serializer"`
	// Resolver names a built-in resolver to use for this field.
	Resolver string `yaml:"resolver"`
}

type ContentType struct {
	AppLabel  string              `yaml:"app_label"`
	Name      string              `yaml:"name"`
	Fields    []*Field            `yaml:"fields"`
	APIFields []APIField          `yaml:"api_fields"`
	Resolvers map[string]Resolver `yaml:"-"`
}

func (ct *ContentType) Label() string {
	if ct == nil {
		return ""
	}
	return ct.AppLabel + "." + ct.Name
}

// Field looks up a declared field, then the core page attributes.
func (ct *ContentType) Field(name string) *Field {
	if ct == nil {
		return nil
	}
	for _, f := range ct.Fields {
		if f != nil && f.Name == name {
			return f
		}
	}
	for _, f := range coreFields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (ct *ContentType) Validate() error {
	if ct == nil {
		return fmt.Errorf("%w: nil content type", pkgerrors.ErrConfiguration)
	}
	if strings.TrimSpace(ct.AppLabel) == "" || strings.TrimSpace(ct.Name) == "" {
		return fmt.Errorf("%w: content type needs app_label and name", pkgerrors.ErrConfiguration)
	}
	seen := map[string]bool{}
	for _, f := range ct.Fields {
		if f == nil || strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("%w: %s: field without name", pkgerrors.ErrConfiguration, ct.Label())
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: %s: duplicate field %q", pkgerrors.ErrConfiguration, ct.Label(), f.Name)
		}
		seen[f.Name] = true
		if !knownFieldKinds[f.Kind] {
			return fmt.Errorf("%w: %s.%s: unknown field kind %q", pkgerrors.ErrConfiguration, ct.Label(), f.Name, f.Kind)
		}
		if f.Kind == FieldStream {
			if err := f.StreamBlock().Validate(); err != nil {
				return fmt.Errorf("%w: %s: %v", pkgerrors.ErrConfiguration, ct.Label(), err)
			}
		}
	}
	for _, af := range ct.APIFields {
		if strings.TrimSpace(af.Serializer) != "" {
			return fmt.Errorf("%w: api_fields cannot contain serializers: %s for %s",
				pkgerrors.ErrConfiguration, af.Name, ct.Label())
		}
	}
	return nil
}

// Member is one resolved API field of a content type.
type Member struct {
	Name     string
	Field    *Field
	Resolver *Resolver
}

// Members resolves the API fields in declaration order. A resolver named like a
// field overrides it; a resolver with an unknown name is a computed member;
// names matching neither are skipped.
func (ct *ContentType) Members() []Member {
	if ct == nil {
		return nil
	}
	out := make([]Member, 0, len(ct.APIFields))
	seen := map[string]bool{}
	for _, af := range ct.APIFields {
		name := strings.TrimSpace(af.Name)
		if name == "" || seen[name] {
			continue
		}
		if res, ok := ct.Resolvers[name]; ok {
			r := res
			seen[name] = true
			out = append(out, Member{Name: name, Field: ct.Field(name), Resolver: &r})
			continue
		}
		if f := ct.Field(name); f != nil {
			seen[name] = true
			out = append(out, Member{Name: name, Field: f})
		}
	}
	return out
}
