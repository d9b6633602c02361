package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/yungbote/pagebridge/internal/content/blocks"
	"github.com/yungbote/pagebridge/internal/platform/logger"
)

const refPrefix = "#/components/schemas/"

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Typer infers schemas for content blocks and owns the component registry the
// inferred types are published in. It is safe for concurrent use.
type Typer struct {
	mu         sync.Mutex
	typed      bool
	components openapi3.Schemas
	used       map[string]bool

	// memo keys -> component names
	structs map[string]string
	entries map[string]string
	streams map[string]string

	log *logger.Logger
}

// NewTyper creates a Typer. With typedBlocks off every stream entry value is untyped.
func NewTyper(typedBlocks bool, baseLog *logger.Logger) *Typer {
	return &Typer{
		typed:      typedBlocks,
		components: openapi3.Schemas{},
		used:       map[string]bool{},
		structs:    map[string]string{},
		entries:    map[string]string{},
		streams:    map[string]string{},
		log:        baseLog.With("service", "SchemaTyper"),
	}
}

// AnySchema is the untyped schema. It is nullable so that null values validate.
func AnySchema() *openapi3.Schema {
	return &openapi3.Schema{Nullable: true}
}

func ref(name string, s *openapi3.Schema) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Ref: refPrefix + name, Value: s}
}

// BlockSchema infers the schema of values produced by b, registered under ident.
func (t *Typer) BlockSchema(b *blocks.Block, ident string) *openapi3.SchemaRef {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.blockSchema(b, ident)
}

func (t *Typer) blockSchema(b *blocks.Block, ident string) *openapi3.SchemaRef {
	if b == nil {
		return openapi3.NewSchemaRef("", AnySchema())
	}
	if b.APISchema != nil {
		return openapi3.NewSchemaRef("", b.APISchema)
	}
	switch b.Kind {
	case blocks.KindChar, blocks.KindText, blocks.KindRichText:
		return openapi3.NewSchemaRef("", openapi3.NewStringSchema())
	case blocks.KindBoolean:
		return openapi3.NewSchemaRef("", openapi3.NewBoolSchema())
	case blocks.KindInteger:
		return openapi3.NewSchemaRef("", openapi3.NewIntegerSchema())
	case blocks.KindFloat:
		return openapi3.NewSchemaRef("", openapi3.NewFloat64Schema())
	case blocks.KindChoice:
		s := openapi3.NewStringSchema()
		values := b.ChoiceValues()
		if len(values) > 0 {
			enum := make([]interface{}, 0, len(values))
			for _, v := range values {
				enum = append(enum, v)
			}
			s = s.WithEnum(enum...)
		}
		return openapi3.NewSchemaRef("", s)
	case blocks.KindStruct:
		return t.structSchema(b, ident)
	case blocks.KindStream:
		items := t.entryUnion(t.streamEntries(b))
		return openapi3.NewSchemaRef("", openapi3.NewArraySchema().WithItems(items))
	default:
		return openapi3.NewSchemaRef("", AnySchema())
	}
}

func (t *Typer) structSchema(b *blocks.Block, ident string) *openapi3.SchemaRef {
	obj := openapi3.NewObjectSchema()
	for _, c := range b.Children {
		if c == nil {
			continue
		}
		obj.Properties[c.Name] = t.blockSchema(c, c.Name)
		obj.Required = append(obj.Required, c.Name)
	}
	key := ident + "\x00" + b.Class() + "\x00" + fingerprint(obj)
	if name, ok := t.structs[key]; ok {
		return ref(name, t.components[name].Value)
	}
	name := t.allocate(b.Class() + "Value")
	t.components[name] = openapi3.NewSchemaRef("", obj)
	t.structs[key] = name
	return ref(name, obj)
}

type entry struct {
	ident string
	ref   *openapi3.SchemaRef
}

func (t *Typer) streamEntries(b *blocks.Block) []entry {
	if b == nil {
		return nil
	}
	out := make([]entry, 0, len(b.Children))
	for _, c := range b.Children {
		if c == nil {
			continue
		}
		value := openapi3.NewSchemaRef("", AnySchema())
		if t.typed {
			value = t.blockSchema(c, c.Name)
		}
		key := c.Name + "\x00" + fingerprint(value)
		if name, ok := t.entries[key]; ok {
			out = append(out, entry{ident: c.Name, ref: ref(name, t.components[name].Value)})
			continue
		}
		obj := openapi3.NewObjectSchema()
		obj.Properties["type"] = openapi3.NewSchemaRef("", openapi3.NewStringSchema().WithEnum(c.Name))
		obj.Properties["value"] = value
		obj.Properties["id"] = openapi3.NewSchemaRef("", openapi3.NewUUIDSchema())
		obj.Required = []string{"type", "value", "id"}

		name := t.allocate(c.Class() + "." + c.Name)
		t.components[name] = openapi3.NewSchemaRef("", obj)
		t.entries[key] = name
		out = append(out, entry{ident: c.Name, ref: ref(name, obj)})
	}
	return out
}

// entryUnion is the item schema of a stream: a oneOf discriminated on "type".
func (t *Typer) entryUnion(entries []entry) *openapi3.Schema {
	if len(entries) == 0 {
		return AnySchema()
	}
	u := &openapi3.Schema{
		Discriminator: &openapi3.Discriminator{PropertyName: "type", Mapping: map[string]string{}},
	}
	for _, e := range entries {
		u.OneOf = append(u.OneOf, e.ref)
		u.Discriminator.Mapping[e.ident] = e.ref.Ref
	}
	return u
}

// StreamFieldSchema returns a reference to the list component for a stream
// field. Fields with the same ordered entry types share one component.
func (t *Typer) StreamFieldSchema(model, field string, b *blocks.Block) *openapi3.SchemaRef {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := t.streamEntries(b)
	key := ""
	for i, e := range entries {
		if i > 0 {
			key += ","
		}
		key += e.ref.Ref
	}
	if name, ok := t.streams[key]; ok {
		return ref(name, t.components[name].Value)
	}
	arr := openapi3.NewArraySchema().WithItems(t.entryUnion(entries))
	name := t.allocate(model + "." + field + ".StreamField")
	t.components[name] = openapi3.NewSchemaRef("", arr)
	t.streams[key] = name
	t.log.Debug("stream field component", "component", name, "entries", len(entries))
	return ref(name, arr)
}

// Register publishes s under name (made unique if taken) and returns a reference.
func (t *Typer) Register(name string, s *openapi3.Schema) *openapi3.SchemaRef {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := t.allocate(name)
	t.components[n] = openapi3.NewSchemaRef("", s)
	return ref(n, s)
}

// Components returns a snapshot of the registered components.
func (t *Typer) Components() openapi3.Schemas {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(openapi3.Schemas, len(t.components))
	for k, v := range t.components {
		out[k] = v
	}
	return out
}

// ComponentNames returns registered component names in sorted order.
func (t *Typer) ComponentNames() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.components))
	for k := range t.components {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (t *Typer) Component(name string) *openapi3.Schema {
	t.mu.Lock()
	defer t.mu.Unlock()
	if r, ok := t.components[name]; ok {
		return r.Value
	}
	return nil
}

func (t *Typer) allocate(base string) string {
	base = unsafeNameChars.ReplaceAllString(base, "_")
	if base == "" {
		base = "Schema"
	}
	name := base
	for i := 2; t.used[name]; i++ {
		name = base + strconv.Itoa(i)
	}
	t.used[name] = true
	return name
}

func fingerprint(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:16])
}
