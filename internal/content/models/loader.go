package models

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	pkgerrors "github.com/yungbote/pagebridge/internal/pkg/errors"
)

type fileFormat struct {
	ContentTypes []*ContentType `yaml:"content_types"`
}

// UnmarshalYAML accepts either a bare field name or a mapping.
func (af *APIField) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		af.Name = node.Value
		return nil
	}
	type plain APIField
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*af = APIField(p)
	return nil
}

var fieldKeys = map[string]bool{"name": true, "kind": true, "nullable": true, "blocks": true, "target": true}

// UnmarshalYAML reads a field mapping. The "null" key is a YAML null scalar
// and never matches a struct tag, so it is picked out by hand; "nullable" is
// accepted as an alias.
func (f *Field) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: field must be a mapping", node.Line)
	}
	rest := &yaml.Node{Kind: yaml.MappingNode, Tag: node.Tag, Line: node.Line, Column: node.Column}
	var null *bool
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if key.Tag == "!!null" || key.Value == "null" {
			var b bool
			if err := val.Decode(&b); err != nil {
				return fmt.Errorf("line %d: null: %w", val.Line, err)
			}
			null = &b
			continue
		}
		if !fieldKeys[key.Value] {
			return fmt.Errorf("line %d: field %s not found in type models.Field", key.Line, key.Value)
		}
		rest.Content = append(rest.Content, key, val)
	}
	type plain Field
	var p plain
	if err := rest.Decode(&p); err != nil {
		return err
	}
	*f = Field(p)
	if null != nil {
		f.Null = *null
	}
	return nil
}

// Load reads content types from YAML and attaches built-in resolvers named by api_fields.
func Load(r io.Reader) ([]*ContentType, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f fileFormat
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode content models: %w", err)
	}
	for _, ct := range f.ContentTypes {
		if ct == nil {
			continue
		}
		for _, af := range ct.APIFields {
			if af.Resolver == "" {
				continue
			}
			res, ok := Builtin(af.Resolver)
			if !ok {
				return nil, fmt.Errorf("%w: %s.%s: unknown resolver %q",
					pkgerrors.ErrConfiguration, ct.Label(), af.Name, af.Resolver)
			}
			if ct.Resolvers == nil {
				ct.Resolvers = map[string]Resolver{}
			}
			ct.Resolvers[af.Name] = res
		}
	}
	return f.ContentTypes, nil
}

func LoadFile(path string) ([]*ContentType, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content models %s: %w", path, err)
	}
	return Load(bytes.NewReader(b))
}

// LoadInto registers every content type from path into reg.
func LoadInto(reg *Registry, path string) error {
	cts, err := LoadFile(path)
	if err != nil {
		return err
	}
	for _, ct := range cts {
		if err := reg.Register(ct); err != nil {
			return err
		}
	}
	return nil
}
