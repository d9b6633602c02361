package blocks

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

type Kind string

const (
	KindChar     Kind = "char"
	KindText     Kind = "text"
	KindRichText Kind = "rich_text"
	KindBoolean  Kind = "boolean"
	KindInteger  Kind = "integer"
	KindFloat    Kind = "float"
	KindChoice   Kind = "choice"
	KindStruct   Kind = "struct"
	KindStream   Kind = "stream"

	// Kinds below are stored and represented but carry no inferred type.
	KindList     Kind = "list"
	KindDate     Kind = "date"
	KindURL      Kind = "url"
	KindEmail    Kind = "email"
	KindImage    Kind = "image"
	KindDocument Kind = "document"
	KindPage     Kind = "page"
	KindRawHTML  Kind = "raw_html"
)

var defaultClassNames = map[Kind]string{
	KindChar:     "CharBlock",
	KindText:     "TextBlock",
	KindRichText: "RichTextBlock",
	KindBoolean:  "BooleanBlock",
	KindInteger:  "IntegerBlock",
	KindFloat:    "FloatBlock",
	KindChoice:   "ChoiceBlock",
	KindStruct:   "StructBlock",
	KindStream:   "StreamBlock",
	KindList:     "ListBlock",
	KindDate:     "DateBlock",
	KindURL:      "URLBlock",
	KindEmail:    "EmailBlock",
	KindImage:    "ImageChooserBlock",
	KindDocument: "DocumentChooserBlock",
	KindPage:     "PageChooserBlock",
	KindRawHTML:  "RawHTMLBlock",
}

type Choice struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label,omitempty" json:"label,omitempty"`
}

// Block is a content block definition. Name is the block's identifier inside
// its parent (struct child name or stream variant tag).
type Block struct {
	Name      string   `yaml:"name" json:"name"`
	Kind      Kind     `yaml:"kind" json:"kind"`
	ClassName string   `yaml:"class,omitempty" json:"class,omitempty"`
	Choices   []Choice `yaml:"choices,omitempty" json:"choices,omitempty"`
	Children  []*Block `yaml:"children,omitempty" json:"children,omitempty"`
	// Item is the child definition of a list block.
	Item *Block `yaml:"item,omitempty" json:"item,omitempty"`
	// APISchema, when set, is the declared shape of the block's API value and
	// takes precedence over kind-based inference.
	APISchema *openapi3.Schema `yaml:"-" json:"-"`
}

func (b *Block) Class() string {
	if b == nil {
		return ""
	}
	if c := strings.TrimSpace(b.ClassName); c != "" {
		return c
	}
	if c, ok := defaultClassNames[b.Kind]; ok {
		return c
	}
	return "Block"
}

// Known reports whether k is one of the built-in kinds.
func Known(k Kind) bool {
	_, ok := defaultClassNames[k]
	return ok
}

func (b *Block) Child(name string) *Block {
	if b == nil {
		return nil
	}
	for _, c := range b.Children {
		if c != nil && c.Name == name {
			return c
		}
	}
	return nil
}

func (b *Block) ChoiceValues() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.Choices))
	for _, c := range b.Choices {
		out = append(out, c.Value)
	}
	return out
}

// Validate checks the definition tree: named unique children, choice values
// without duplicates, list blocks with an item.
func (b *Block) Validate() error {
	return b.validate(b.Name)
}

func (b *Block) validate(path string) error {
	if b == nil {
		return fmt.Errorf("%s: nil block", path)
	}
	if strings.TrimSpace(string(b.Kind)) == "" {
		return fmt.Errorf("%s: missing kind", path)
	}
	switch b.Kind {
	case KindStruct, KindStream:
		seen := map[string]bool{}
		for i, c := range b.Children {
			if c == nil || strings.TrimSpace(c.Name) == "" {
				return fmt.Errorf("%s: child %d has no name", path, i)
			}
			if seen[c.Name] {
				return fmt.Errorf("%s: duplicate child %q", path, c.Name)
			}
			seen[c.Name] = true
			if err := c.validate(path + "." + c.Name); err != nil {
				return err
			}
		}
	case KindChoice:
		seen := map[string]bool{}
		for _, c := range b.Choices {
			if seen[c.Value] {
				return fmt.Errorf("%s: duplicate choice %q", path, c.Value)
			}
			seen[c.Value] = true
		}
	case KindList:
		if b.Item == nil {
			return fmt.Errorf("%s: list block without item", path)
		}
		if err := b.Item.validate(path + ".item"); err != nil {
			return err
		}
	}
	return nil
}
