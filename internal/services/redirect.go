package services

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/yungbote/pagebridge/internal/content/api"
	"github.com/yungbote/pagebridge/internal/data/repos"
	types "github.com/yungbote/pagebridge/internal/domain"
	pkgerrors "github.com/yungbote/pagebridge/internal/pkg/errors"
	"github.com/yungbote/pagebridge/internal/platform/logger"
)

type RedirectService interface {
	List(ctx context.Context, site *types.Site) ([]api.Redirect, error)
	Get(ctx context.Context, site *types.Site, id uint) (*api.Redirect, error)
	Find(ctx context.Context, site *types.Site, htmlPath string) (*api.Redirect, error)
}

type redirectService struct {
	log          *logger.Logger
	redirectRepo repos.RedirectRepo
	sites        SiteService
}

func NewRedirectService(baseLog *logger.Logger, redirectRepo repos.RedirectRepo, sites SiteService) RedirectService {
	return &redirectService{
		log:          baseLog.With("service", "RedirectService"),
		redirectRepo: redirectRepo,
		sites:        sites,
	}
}

func (s *redirectService) List(ctx context.Context, site *types.Site) ([]api.Redirect, error) {
	rows, err := s.redirectRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make([]api.Redirect, 0, len(rows))
	for _, rd := range rows {
		item, err := s.represent(ctx, site, rd)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *redirectService) Get(ctx context.Context, site *types.Site, id uint) (*api.Redirect, error) {
	rd, err := s.redirectRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if rd == nil {
		return nil, fmt.Errorf("%w: redirect %d", pkgerrors.ErrNotFound, id)
	}
	item, err := s.represent(ctx, site, rd)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Find matches a normalised path against the request site's redirects, then
// site-less ones, then the same without the query string.
func (s *redirectService) Find(ctx context.Context, site *types.Site, htmlPath string) (*api.Redirect, error) {
	if strings.TrimSpace(htmlPath) == "" {
		return nil, fmt.Errorf("%w: html_path is required", pkgerrors.ErrInvalidArgument)
	}
	var siteID *uint
	if site != nil {
		id := site.ID
		siteID = &id
	}
	path := NormalisePath(htmlPath)
	candidates := []string{path}
	if i := strings.Index(path, "?"); i >= 0 {
		candidates = append(candidates, path[:i])
	}
	for _, candidate := range candidates {
		rows, err := s.redirectRepo.FindByOldPath(ctx, nil, candidate, siteID)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			item, err := s.represent(ctx, site, rows[0])
			if err != nil {
				return nil, err
			}
			return &item, nil
		}
	}
	return nil, fmt.Errorf("%w: no redirect for %s", pkgerrors.ErrNotFound, path)
}

func (s *redirectService) represent(ctx context.Context, site *types.Site, rd *types.Redirect) (api.Redirect, error) {
	location := rd.RedirectLink
	if rd.RedirectPage != nil {
		u, err := s.sites.PageURL(ctx, rd.RedirectPage, site)
		if err != nil {
			return api.Redirect{}, err
		}
		if u != nil {
			location = *u
		}
	}
	return api.Redirect{
		ID:          rd.ID,
		OldPath:     rd.OldPath,
		IsPermanent: rd.IsPermanent,
		Location:    location,
	}, nil
}

// NormalisePath canonicalises a redirect path: leading slash, no trailing
// slash, sorted parameters and query string, no scheme, host or fragment.
func NormalisePath(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		u = &url.URL{Path: raw}
	}
	p := u.Path
	params := ""
	if i := strings.Index(p, ";"); i >= 0 {
		p, params = p[:i], p[i+1:]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	if params != "" {
		p += ";" + sortJoin(params, ";")
	}
	if u.RawQuery != "" {
		p += "?" + sortJoin(u.RawQuery, "&")
	}
	return p
}

func sortJoin(s, sep string) string {
	parts := strings.Split(s, sep)
	sort.Strings(parts)
	return strings.Join(parts, sep)
}
