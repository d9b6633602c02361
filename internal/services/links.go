package services

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/pagebridge/internal/content/richtext"
	"github.com/yungbote/pagebridge/internal/data/repos"
	"github.com/yungbote/pagebridge/internal/platform/storage"
)

type richTextLinks struct {
	pages  repos.PageRepo
	docs   repos.DocumentRepo
	images repos.ImageRepo
	sites  SiteService
	store  storage.URLResolver
}

// NewRichTextLinks resolves rich text link targets from the content store.
// Page links use the page's public URL, documents their serve path and
// images their storage URL.
func NewRichTextLinks(pages repos.PageRepo, docs repos.DocumentRepo, images repos.ImageRepo, sites SiteService, store storage.URLResolver) richtext.LinkResolver {
	return &richTextLinks{pages: pages, docs: docs, images: images, sites: sites, store: store}
}

func (l *richTextLinks) ResolveLinks(ctx context.Context, refs richtext.Refs) (richtext.Links, error) {
	links := richtext.Links{
		Pages:     map[uint]string{},
		Documents: map[uint]string{},
		Images:    map[uint]richtext.Image{},
	}
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	if len(refs.Pages) > 0 {
		g.Go(func() error {
			pages, err := l.pages.GetByIDs(gctx, nil, refs.Pages)
			if err != nil {
				return err
			}
			for _, p := range pages {
				if !p.Live {
					continue
				}
				u, err := l.sites.PageURL(gctx, p, nil)
				if err != nil {
					return err
				}
				if u != nil {
					mu.Lock()
					links.Pages[p.ID] = *u
					mu.Unlock()
				}
			}
			return nil
		})
	}
	if len(refs.Documents) > 0 {
		g.Go(func() error {
			docs, err := l.docs.GetByIDs(gctx, nil, refs.Documents)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			for _, d := range docs {
				links.Documents[d.ID] = DocumentServePath(d)
			}
			return nil
		})
	}
	if len(refs.Images) > 0 {
		g.Go(func() error {
			imgs, err := l.images.GetByIDs(gctx, nil, refs.Images)
			if err != nil {
				return err
			}
			for _, img := range imgs {
				src, err := l.store.URL(gctx, img.File)
				if err != nil {
					return err
				}
				mu.Lock()
				links.Images[img.ID] = richtext.Image{Src: src, Width: img.Width, Height: img.Height}
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return richtext.Links{}, err
	}
	return links, nil
}
