package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/yungbote/pagebridge/internal/content/api"
	"github.com/yungbote/pagebridge/internal/data/repos"
	types "github.com/yungbote/pagebridge/internal/domain"
	pkgerrors "github.com/yungbote/pagebridge/internal/pkg/errors"
	"github.com/yungbote/pagebridge/internal/platform/logger"
	"github.com/yungbote/pagebridge/internal/platform/storage"
)

type MediaService interface {
	Images(ctx context.Context, ids []uint, urls RequestURLs) (map[uint]api.Image, error)
	Documents(ctx context.Context, ids []uint, urls RequestURLs) (map[uint]api.Document, error)
	// DocumentFileURL resolves the storage URL behind a document serve link.
	DocumentFileURL(ctx context.Context, id uint, filename string) (string, error)
}

type mediaService struct {
	log       *logger.Logger
	imageRepo repos.ImageRepo
	docRepo   repos.DocumentRepo
	store     storage.URLResolver
}

func NewMediaService(baseLog *logger.Logger, imageRepo repos.ImageRepo, docRepo repos.DocumentRepo, store storage.URLResolver) MediaService {
	return &mediaService{
		log:       baseLog.With("service", "MediaService"),
		imageRepo: imageRepo,
		docRepo:   docRepo,
		store:     store,
	}
}

func (s *mediaService) Images(ctx context.Context, ids []uint, urls RequestURLs) (map[uint]api.Image, error) {
	out := map[uint]api.Image{}
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := s.imageRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, err
	}
	for _, img := range rows {
		u, err := s.store.URL(ctx, img.File)
		if err != nil {
			return nil, fmt.Errorf("image %d url: %w", img.ID, err)
		}
		out[img.ID] = api.Image{
			ID:     img.ID,
			Title:  img.Title,
			Width:  img.Width,
			Height: img.Height,
			Meta:   api.MediaMeta{Type: types.ImageTypeLabel, DownloadURL: absolute(urls.Origin, u)},
		}
	}
	return out, nil
}

func (s *mediaService) Documents(ctx context.Context, ids []uint, urls RequestURLs) (map[uint]api.Document, error) {
	out := map[uint]api.Document{}
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := s.docRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, err
	}
	for _, doc := range rows {
		out[doc.ID] = api.Document{
			ID:    doc.ID,
			Title: doc.Title,
			Meta:  api.MediaMeta{Type: types.DocumentTypeLabel, DownloadURL: absolute(urls.Origin, DocumentServePath(doc))},
		}
	}
	return out, nil
}

func (s *mediaService) DocumentFileURL(ctx context.Context, id uint, filename string) (string, error) {
	rows, err := s.docRepo.GetByIDs(ctx, nil, []uint{id})
	if err != nil {
		return "", err
	}
	if len(rows) == 0 || rows[0].Filename() != filename {
		return "", fmt.Errorf("%w: document %d", pkgerrors.ErrNotFound, id)
	}
	return s.store.URL(ctx, rows[0].File)
}

// DocumentServePath is the site-relative link that redirects to a document's file.
func DocumentServePath(doc *types.Document) string {
	return fmt.Sprintf("/documents/%d/%s", doc.ID, url.PathEscape(doc.Filename()))
}

func absolute(origin, u string) string {
	if origin == "" || !strings.HasPrefix(u, "/") || strings.HasPrefix(u, "//") {
		return u
	}
	return strings.TrimRight(origin, "/") + u
}
