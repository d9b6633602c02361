package blocks

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

type blockYAML struct {
	Name      string         `yaml:"name"`
	Kind      Kind           `yaml:"kind"`
	ClassName string         `yaml:"class"`
	Choices   []Choice       `yaml:"choices"`
	Children  []*Block       `yaml:"children"`
	Item      *Block         `yaml:"item"`
	APISchema map[string]any `yaml:"api_schema"`
}

// UnmarshalYAML accepts an optional api_schema mapping written as an OpenAPI schema object.
func (b *Block) UnmarshalYAML(node *yaml.Node) error {
	var raw blockYAML
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*b = Block{
		Name:      raw.Name,
		Kind:      raw.Kind,
		ClassName: raw.ClassName,
		Choices:   raw.Choices,
		Children:  raw.Children,
		Item:      raw.Item,
	}
	if len(raw.APISchema) > 0 {
		js, err := json.Marshal(raw.APISchema)
		if err != nil {
			return fmt.Errorf("block %q api_schema: %w", raw.Name, err)
		}
		s := &openapi3.Schema{}
		if err := s.UnmarshalJSON(js); err != nil {
			return fmt.Errorf("block %q api_schema: %w", raw.Name, err)
		}
		b.APISchema = s
	}
	return nil
}
