package blocks

import (
	"context"

	"github.com/google/uuid"
)

// RichTextExpander turns stored rich text into front-end HTML.
type RichTextExpander interface {
	Expand(ctx context.Context, html string) string
}

// StreamEntry is the stored and API shape of one stream item.
type StreamEntry struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
	ID    string `json:"id"`
}

// Represent converts a stored value for b into its API value. Stream items of
// unknown type are dropped; items without an id get a fresh one. A missing
// value is represented as the block's zero value.
func (b *Block) Represent(ctx context.Context, value any, rt RichTextExpander) any {
	if b == nil {
		return value
	}
	if value == nil {
		return b.zero(ctx, rt)
	}
	switch b.Kind {
	case KindRichText:
		s, ok := value.(string)
		if !ok || rt == nil {
			return value
		}
		return rt.Expand(ctx, s)
	case KindStruct:
		m, ok := value.(map[string]any)
		if !ok {
			return value
		}
		out := make(map[string]any, len(b.Children))
		for _, c := range b.Children {
			if c == nil {
				continue
			}
			out[c.Name] = c.Represent(ctx, m[c.Name], rt)
		}
		return out
	case KindStream:
		return b.representStream(ctx, value, rt)
	case KindList:
		items, ok := value.([]any)
		if !ok {
			return value
		}
		out := make([]any, 0, len(items))
		for _, it := range items {
			if m, ok := it.(map[string]any); ok && m["type"] == "item" {
				if v, has := m["value"]; has {
					it = v
				}
			}
			out = append(out, b.Item.Represent(ctx, it, rt))
		}
		return out
	default:
		return value
	}
}

// zero is the API value of an absent stored value. Kinds without an inferred
// type stay null.
func (b *Block) zero(ctx context.Context, rt RichTextExpander) any {
	if b.APISchema != nil {
		return nil
	}
	switch b.Kind {
	case KindChar, KindText, KindRichText:
		return ""
	case KindBoolean:
		return false
	case KindInteger:
		return 0
	case KindFloat:
		return 0.0
	case KindChoice:
		if values := b.ChoiceValues(); len(values) > 0 {
			return values[0]
		}
		return ""
	case KindStruct:
		return b.Represent(ctx, map[string]any{}, rt)
	case KindStream:
		return []StreamEntry{}
	case KindList:
		return []any{}
	default:
		return nil
	}
}

func (b *Block) representStream(ctx context.Context, value any, rt RichTextExpander) any {
	items, ok := value.([]any)
	if !ok {
		return []StreamEntry{}
	}
	out := make([]StreamEntry, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		typ, _ := m["type"].(string)
		child := b.Child(typ)
		if child == nil {
			continue
		}
		id, _ := m["id"].(string)
		if id == "" {
			id = uuid.NewString()
		}
		out = append(out, StreamEntry{
			Type:  typ,
			Value: child.Represent(ctx, m["value"], rt),
			ID:    id,
		})
	}
	return out
}
