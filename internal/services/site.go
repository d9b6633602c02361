package services

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"

	"github.com/yungbote/pagebridge/internal/data/repos"
	types "github.com/yungbote/pagebridge/internal/domain"
	"github.com/yungbote/pagebridge/internal/observability"
	pkgerrors "github.com/yungbote/pagebridge/internal/pkg/errors"
	"github.com/yungbote/pagebridge/internal/platform/cache"
	"github.com/yungbote/pagebridge/internal/platform/logger"
)

const siteRootPathsKey = "site_root_paths"

// RequestURLs are the absolute bases a response links against.
type RequestURLs struct {
	// Origin is scheme://host[:port] of the request.
	Origin string
	// APIBase is Origin plus the API mount path, without trailing slash.
	APIBase string
}

type SiteService interface {
	// Resolve picks the site for a request: an explicit ?site=host[:port]
	// filter wins over the Host header. A nil site means no site matched.
	Resolve(ctx context.Context, siteFilter, host string) (*types.Site, error)
	RootPaths(ctx context.Context) ([]types.SiteRootPath, error)
	// PageURL is the public URL of a page, nil when no site routes to it.
	PageURL(ctx context.Context, page *types.Page, current *types.Site) (*string, error)
	Invalidate(ctx context.Context) error
}

type siteService struct {
	log      *logger.Logger
	siteRepo repos.SiteRepo
	pageRepo repos.PageRepo
	cache    cache.Cache[[]types.SiteRootPath]
	metrics  *observability.Metrics
	i18n     bool
}

func NewSiteService(
	baseLog *logger.Logger,
	siteRepo repos.SiteRepo,
	pageRepo repos.PageRepo,
	rootPathCache cache.Cache[[]types.SiteRootPath],
	metrics *observability.Metrics,
	i18n bool,
) SiteService {
	if rootPathCache == nil {
		rootPathCache = cache.Noop[[]types.SiteRootPath]{}
	}
	return &siteService{
		log:      baseLog.With("service", "SiteService"),
		siteRepo: siteRepo,
		pageRepo: pageRepo,
		cache:    rootPathCache,
		metrics:  metrics,
		i18n:     i18n,
	}
}

func (s *siteService) Resolve(ctx context.Context, siteFilter, host string) (*types.Site, error) {
	if f := strings.TrimSpace(siteFilter); f != "" {
		return s.fromFilter(ctx, f)
	}
	return s.fromHost(ctx, host)
}

func (s *siteService) fromFilter(ctx context.Context, filter string) (*types.Site, error) {
	hostname, port, hasPort := splitHostPort(filter)
	sites, err := s.siteRepo.GetByHostname(ctx, nil, hostname)
	if err != nil {
		return nil, err
	}
	if hasPort {
		matched := sites[:0:0]
		for _, site := range sites {
			if site.Port == port {
				matched = append(matched, site)
			}
		}
		sites = matched
	}
	switch len(sites) {
	case 0:
		return nil, nil
	case 1:
		return sites[0], nil
	default:
		return nil, fmt.Errorf("%w: multiple sites found with hostname %q, add a port to the site filter", pkgerrors.ErrAmbiguousSite, hostname)
	}
}

func (s *siteService) fromHost(ctx context.Context, host string) (*types.Site, error) {
	hostname, port, hasPort := splitHostPort(host)
	if !hasPort {
		port = 80
	}
	sites, err := s.siteRepo.GetByHostname(ctx, nil, hostname)
	if err != nil {
		return nil, err
	}
	for _, site := range sites {
		if site.Port == port {
			return site, nil
		}
	}
	if len(sites) == 1 {
		return sites[0], nil
	}
	return s.siteRepo.GetDefault(ctx, nil)
}

func splitHostPort(raw string) (string, int, bool) {
	raw = strings.TrimSpace(raw)
	h, p, err := net.SplitHostPort(raw)
	if err != nil {
		return strings.Trim(raw, "[]"), 0, false
	}
	port, err := strconv.Atoi(p)
	if err != nil {
		return h, 0, false
	}
	return h, port, true
}

func (s *siteService) RootPaths(ctx context.Context) ([]types.SiteRootPath, error) {
	cached, ok, err := s.cache.Get(ctx, siteRootPathsKey)
	if err != nil {
		s.log.Warn("site root path cache read failed", "error", err)
	}
	s.metrics.ObserveCache(siteRootPathsKey, ok)
	if ok {
		return cached, nil
	}

	sites, err := s.siteRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := []types.SiteRootPath{}
	for _, site := range sites {
		root := site.RootPage
		if root == nil {
			continue
		}
		out = append(out, rootPath(site, root))
		if !s.i18n || root.TranslationKey == "" {
			continue
		}
		translations, err := s.pageRepo.GetTranslations(ctx, nil, root.TranslationKey)
		if err != nil {
			return nil, err
		}
		for _, tr := range translations {
			if tr.ID != root.ID {
				out = append(out, rootPath(site, tr))
			}
		}
	}
	// Deeper roots first so the most specific site wins a prefix match.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RootURLPath != out[j].RootURLPath {
			return out[i].RootURLPath > out[j].RootURLPath
		}
		return out[i].SiteID < out[j].SiteID
	})
	if err := s.cache.Set(ctx, siteRootPathsKey, out); err != nil {
		s.log.Warn("site root path cache write failed", "error", err)
	}
	return out, nil
}

func rootPath(site *types.Site, root *types.Page) types.SiteRootPath {
	lang := ""
	if root.Locale != nil {
		lang = root.Locale.LanguageCode
	}
	return types.SiteRootPath{
		SiteID:       site.ID,
		RootPath:     root.Path,
		RootURLPath:  root.URLPath,
		RootURL:      site.RootURL(),
		LanguageCode: lang,
	}
}

func (s *siteService) Invalidate(ctx context.Context) error {
	return s.cache.Delete(ctx, siteRootPathsKey)
}

func (s *siteService) PageURL(ctx context.Context, page *types.Page, current *types.Site) (*string, error) {
	if page == nil || page.URLPath == "" {
		return nil, nil
	}
	paths, err := s.RootPaths(ctx)
	if err != nil {
		return nil, err
	}
	possible := []types.SiteRootPath{}
	for _, rp := range paths {
		if rp.RootURLPath != "" && strings.HasPrefix(page.URLPath, rp.RootURLPath) {
			possible = append(possible, rp)
		}
	}
	if len(possible) == 0 {
		return nil, nil
	}
	if s.i18n && page.Locale != nil && len(possible) > 1 {
		sameLang := []types.SiteRootPath{}
		for _, rp := range possible {
			if rp.LanguageCode == page.Locale.LanguageCode {
				sameLang = append(sameLang, rp)
			}
		}
		if len(sameLang) > 0 {
			possible = sameLang
		}
	}
	chosen := possible[0]
	if current != nil {
		for _, rp := range possible {
			if rp.SiteID == current.ID {
				chosen = rp
				break
			}
		}
	}
	u := chosen.RootURL + page.URLPath[len(chosen.RootURLPath)-1:]
	return &u, nil
}
