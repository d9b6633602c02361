package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/pagebridge/internal/content/blocks"
	"github.com/yungbote/pagebridge/internal/content/models"
	types "github.com/yungbote/pagebridge/internal/domain"
)

const memberConcurrency = 8

// memberValues serializes a page's API fields. Media lookups, child
// relations, resolvers and stream/rich text expansion run concurrently.
func (s *pageService) memberValues(ctx context.Context, ct *models.ContentType, page *types.Page, urls RequestURLs) (map[string]any, error) {
	data := map[string]any{}
	if len(page.Data) > 0 {
		if err := json.Unmarshal(page.Data, &data); err != nil {
			return nil, fmt.Errorf("page %d data: %w", page.ID, err)
		}
	}

	var rt blocks.RichTextExpander
	if s.richText != nil {
		rt = s.richText
	}

	members := ct.Members()
	values := make([]any, len(members))
	var imageIDs, docIDs []uint

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(memberConcurrency)
	for i, m := range members {
		if m.Resolver != nil {
			res := m.Resolver
			g.Go(func() error {
				v, err := res.Resolve(gctx, page)
				if err != nil {
					return fmt.Errorf("resolve %s.%s: %w", ct.Label(), m.Name, err)
				}
				values[i] = v
				return nil
			})
			continue
		}
		f := m.Field
		if f.Core {
			values[i] = coreValue(page, f.Name)
			continue
		}
		raw := data[f.Name]
		if raw == nil {
			raw = f.Zero()
		}
		switch f.Kind {
		case models.FieldStream:
			block := f.StreamBlock()
			g.Go(func() error {
				values[i] = block.Represent(gctx, raw, rt)
				return nil
			})
		case models.FieldRichText:
			if str, ok := raw.(string); ok && s.richText != nil {
				g.Go(func() error {
					values[i] = s.richText.Expand(gctx, str)
					return nil
				})
			} else {
				values[i] = raw
			}
		case models.FieldImage:
			if id, ok := toID(raw); ok {
				imageIDs = append(imageIDs, id)
			}
		case models.FieldDocument:
			if id, ok := toID(raw); ok {
				docIDs = append(docIDs, id)
			}
		case models.FieldForeignKey:
			if id, ok := toID(raw); ok {
				values[i] = id
			}
		case models.FieldChildRelation:
			relation := f.Relation()
			g.Go(func() error {
				rows, err := s.relatedRepo.GetByPageAndRelation(gctx, nil, page.ID, relation)
				if err != nil {
					return err
				}
				ids := make([]uint, 0, len(rows))
				for _, r := range rows {
					ids = append(ids, r.ID)
				}
				values[i] = ids
				return nil
			})
		default:
			values[i] = raw
		}
	}

	images := map[uint]any{}
	docs := map[uint]any{}
	if len(imageIDs) > 0 {
		g.Go(func() error {
			rows, err := s.media.Images(gctx, imageIDs, urls)
			if err != nil {
				return err
			}
			for id, img := range rows {
				images[id] = img
			}
			return nil
		})
	}
	if len(docIDs) > 0 {
		g.Go(func() error {
			rows, err := s.media.Documents(gctx, docIDs, urls)
			if err != nil {
				return err
			}
			for id, doc := range rows {
				docs[id] = doc
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]any, len(members))
	for i, m := range members {
		v := values[i]
		if m.Resolver == nil && !m.Field.Core {
			switch m.Field.Kind {
			case models.FieldImage:
				v = lookupMedia(images, data[m.Name])
			case models.FieldDocument:
				v = lookupMedia(docs, data[m.Name])
			}
		}
		out[m.Name] = v
	}
	return out, nil
}

func lookupMedia(loaded map[uint]any, raw any) any {
	id, ok := toID(raw)
	if !ok {
		return nil
	}
	if v, ok := loaded[id]; ok {
		return v
	}
	return nil
}

func coreValue(p *types.Page, name string) any {
	switch name {
	case "title":
		return p.Title
	case "slug":
		return p.Slug
	case "seo_title":
		return p.SeoTitle
	case "search_description":
		return p.SearchDesc
	case "show_in_menus":
		return p.ShowInMenus
	case "first_published_at":
		return p.FirstPublishedAt
	case "last_published_at":
		return p.LastPublishedAt
	default:
		return nil
	}
}

// toID reads a stored primary key; JSON numbers decode as float64.
func toID(v any) (uint, bool) {
	switch n := v.(type) {
	case float64:
		if n <= 0 || n != math.Trunc(n) {
			return 0, false
		}
		return uint(n), true
	case int:
		if n <= 0 {
			return 0, false
		}
		return uint(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil || i <= 0 {
			return 0, false
		}
		return uint(i), true
	default:
		return 0, false
	}
}
