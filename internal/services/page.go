package services

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/pagebridge/internal/content/api"
	"github.com/yungbote/pagebridge/internal/content/models"
	"github.com/yungbote/pagebridge/internal/content/richtext"
	"github.com/yungbote/pagebridge/internal/data/repos"
	types "github.com/yungbote/pagebridge/internal/domain"
	"github.com/yungbote/pagebridge/internal/observability"
	pkgerrors "github.com/yungbote/pagebridge/internal/pkg/errors"
	"github.com/yungbote/pagebridge/internal/platform/ctxutil"
	"github.com/yungbote/pagebridge/internal/platform/logger"
)

type PageServiceConfig struct {
	I18N         bool
	DefaultLimit int
	LimitMax     int
}

type ListQuery struct {
	Site   *types.Site
	Type   string
	Limit  int
	Offset int
	URLs   RequestURLs
}

type PageService interface {
	List(ctx context.Context, q ListQuery) ([]api.BasePage, error)
	// Detail serializes a page with its content type's API fields, or as a
	// base detail when the type is not registered.
	Detail(ctx context.Context, site *types.Site, id uint, urls RequestURLs) (map[string]any, error)
	// Find routes an HTML path from the root of the request's site and returns
	// the page id. The page must also belong to the filter site's queryset.
	Find(ctx context.Context, site, filter *types.Site, htmlPath, locale string) (uint, error)
}

type pageService struct {
	log             *logger.Logger
	cfg             PageServiceConfig
	registry        *models.Registry
	pageRepo        repos.PageRepo
	restrictionRepo repos.PageViewRestrictionRepo
	relatedRepo     repos.PageRelatedItemRepo
	sites           SiteService
	media           MediaService
	richText        *richtext.Expander
}

func NewPageService(
	baseLog *logger.Logger,
	cfg PageServiceConfig,
	registry *models.Registry,
	pageRepo repos.PageRepo,
	restrictionRepo repos.PageViewRestrictionRepo,
	relatedRepo repos.PageRelatedItemRepo,
	sites SiteService,
	media MediaService,
	richText *richtext.Expander,
) PageService {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 20
	}
	if cfg.LimitMax <= 0 {
		cfg.LimitMax = 20
	}
	return &pageService{
		log:             baseLog.With("service", "PageService"),
		cfg:             cfg,
		registry:        registry,
		pageRepo:        pageRepo,
		restrictionRepo: restrictionRepo,
		relatedRepo:     relatedRepo,
		sites:           sites,
		media:           media,
		richText:        richText,
	}
}

// baseQueryset is the set of pages a request may see: live pages under the
// site's roots, minus restricted subtrees.
type baseQueryset struct {
	site    *types.Site
	include []string
	exclude []string
}

func (q *baseQueryset) contains(p *types.Page) bool {
	if q == nil || p == nil || !p.Live {
		return false
	}
	in := false
	for _, prefix := range q.include {
		if strings.HasPrefix(p.Path, prefix) {
			in = true
			break
		}
	}
	if !in {
		return false
	}
	for _, prefix := range q.exclude {
		if strings.HasPrefix(p.Path, prefix) {
			return false
		}
	}
	return true
}

func (q *baseQueryset) filter(contentType string, limit, offset int) repos.PageFilter {
	return repos.PageFilter{
		IncludePrefixes: q.include,
		ExcludePrefixes: q.exclude,
		ContentType:     contentType,
		Limit:           limit,
		Offset:          offset,
	}
}

func (s *pageService) baseQueryset(ctx context.Context, site *types.Site) (*baseQueryset, error) {
	qs := &baseQueryset{site: site}
	if site == nil || site.RootPage == nil {
		return qs, nil
	}
	qs.include = []string{site.RootPage.Path}
	if s.cfg.I18N {
		paths, err := s.sites.RootPaths(ctx)
		if err != nil {
			return nil, err
		}
		for _, rp := range paths {
			if rp.SiteID == site.ID && rp.RootPath != site.RootPage.Path {
				qs.include = append(qs.include, rp.RootPath)
			}
		}
	}
	excluded, err := s.restrictedPaths(ctx)
	if err != nil {
		return nil, err
	}
	qs.exclude = excluded
	return qs, nil
}

// restrictedPaths lists the roots of every subtree whose view restriction the
// current viewer does not pass.
func (s *pageService) restrictedPaths(ctx context.Context) ([]string, error) {
	rows, err := s.restrictionRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	viewer := ctxutil.GetViewer(ctx)
	out := []string{}
	for _, r := range rows {
		if r.Page == nil || passesRestriction(viewer, r) {
			continue
		}
		out = append(out, r.Page.Path)
	}
	return out, nil
}

func passesRestriction(v *ctxutil.Viewer, r *types.PageViewRestriction) bool {
	switch r.RestrictionType {
	case types.RestrictionPassword:
		if r.PasswordHash == "" {
			return false
		}
		for _, pw := range v.Passwords {
			if bcrypt.CompareHashAndPassword([]byte(r.PasswordHash), []byte(pw)) == nil {
				return true
			}
		}
		return false
	case types.RestrictionLogin:
		return v.Authenticated()
	case types.RestrictionGroups:
		return v.Authenticated() && v.InGroup(r.GroupNames())
	default:
		return false
	}
}

func (s *pageService) List(ctx context.Context, q ListQuery) ([]api.BasePage, error) {
	if t := strings.TrimSpace(q.Type); t != "" {
		if _, ok := s.registry.Get(t); !ok && t != types.RootPageLabel {
			return nil, fmt.Errorf("%w: type doesn't exist", pkgerrors.ErrInvalidArgument)
		}
	}
	if q.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must be a positive integer", pkgerrors.ErrInvalidArgument)
	}
	limit := q.Limit
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be a positive integer", pkgerrors.ErrInvalidArgument)
	}
	if limit == 0 {
		limit = s.cfg.DefaultLimit
	}
	if limit > s.cfg.LimitMax {
		return nil, fmt.Errorf("%w: limit cannot be higher than %d", pkgerrors.ErrInvalidArgument, s.cfg.LimitMax)
	}

	qs, err := s.baseQueryset(ctx, q.Site)
	if err != nil {
		return nil, err
	}
	pages, err := s.pageRepo.ListLive(ctx, nil, qs.filter(strings.TrimSpace(q.Type), limit, q.Offset))
	if err != nil {
		return nil, err
	}
	out := make([]api.BasePage, 0, len(pages))
	for _, p := range pages {
		meta, err := s.pageMeta(ctx, p, q.Site, q.URLs)
		if err != nil {
			return nil, err
		}
		out = append(out, api.BasePage{ID: p.ID, Title: p.Title, Meta: meta, ContentType: p.ContentType})
	}
	return out, nil
}

func (s *pageService) Detail(ctx context.Context, site *types.Site, id uint, urls RequestURLs) (map[string]any, error) {
	ctx, span := observability.Tracer().Start(ctx, "PageService.Detail")
	defer span.End()
	span.SetAttributes(attribute.Int64("page.id", int64(id)))

	qs, err := s.baseQueryset(ctx, site)
	if err != nil {
		return nil, err
	}
	page, err := s.pageRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if page == nil || !qs.contains(page) {
		return nil, fmt.Errorf("%w: no page matches the given query", pkgerrors.ErrNotFound)
	}
	span.SetAttributes(attribute.String("page.content_type", page.ContentType))

	meta, err := s.pageMeta(ctx, page, site, urls)
	if err != nil {
		return nil, err
	}
	detail := api.PageDetailMeta{
		PageMeta:          meta,
		ShowInMenus:       page.ShowInMenus,
		SeoTitle:          page.SeoTitle,
		SearchDescription: page.SearchDesc,
	}
	if detail.Parent, err = s.parent(ctx, qs, page, urls); err != nil {
		return nil, err
	}

	body := map[string]any{
		"id":           page.ID,
		"title":        page.Title,
		"meta":         detail,
		"content_type": page.ContentType,
	}
	ct, ok := s.registry.Get(page.ContentType)
	if !ok {
		return body, nil
	}
	values, err := s.memberValues(ctx, ct, page, urls)
	if err != nil {
		return nil, err
	}
	for k, v := range values {
		body[k] = v
	}
	return body, nil
}

func (s *pageService) parent(ctx context.Context, qs *baseQueryset, page *types.Page, urls RequestURLs) (*api.PageParent, error) {
	parentPath := page.ParentPath()
	if parentPath == "" {
		return nil, nil
	}
	rows, err := s.pageRepo.GetByPaths(ctx, nil, []string{parentPath})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || rows[0].IsRoot() || !qs.contains(rows[0]) {
		return nil, nil
	}
	parent := rows[0]
	htmlURL, err := s.sites.PageURL(ctx, parent, qs.site)
	if err != nil {
		return nil, err
	}
	return &api.PageParent{
		ID:    parent.ID,
		Title: parent.Title,
		Meta: api.PageParentMeta{
			Type:      parent.ContentType,
			DetailURL: pageDetailURL(urls, parent.ID),
			HTMLURL:   htmlURL,
		},
	}, nil
}

func (s *pageService) pageMeta(ctx context.Context, p *types.Page, site *types.Site, urls RequestURLs) (api.PageMeta, error) {
	htmlURL, err := s.sites.PageURL(ctx, p, site)
	if err != nil {
		return api.PageMeta{}, err
	}
	locale := ""
	if p.Locale != nil {
		locale = p.Locale.LanguageCode
	}
	return api.PageMeta{
		Type:             p.ContentType,
		DetailURL:        pageDetailURL(urls, p.ID),
		HTMLURL:          htmlURL,
		Slug:             p.Slug,
		FirstPublishedAt: p.FirstPublishedAt,
		LastPublishedAt:  p.LastPublishedAt,
		Locale:           locale,
	}, nil
}

func pageDetailURL(urls RequestURLs, id uint) string {
	return fmt.Sprintf("%s/pages/%d/", strings.TrimRight(urls.APIBase, "/"), id)
}

func (s *pageService) Find(ctx context.Context, site, filter *types.Site, htmlPath, locale string) (uint, error) {
	notFound := fmt.Errorf("%w: not found", pkgerrors.ErrNotFound)
	if site == nil || site.RootPage == nil {
		return 0, notFound
	}
	root := site.RootPage
	if locale = strings.TrimSpace(locale); locale != "" && root.TranslationKey != "" {
		translations, err := s.pageRepo.GetTranslations(ctx, nil, root.TranslationKey)
		if err != nil {
			return 0, err
		}
		for _, tr := range translations {
			if tr.Locale != nil && strings.EqualFold(tr.Locale.LanguageCode, locale) {
				root = tr
				break
			}
		}
	}

	cur := root
	for _, slug := range strings.Split(htmlPath, "/") {
		if slug = strings.TrimSpace(slug); slug == "" {
			continue
		}
		child, err := s.pageRepo.GetChildBySlug(ctx, nil, cur, slug)
		if err != nil {
			return 0, err
		}
		if child == nil {
			return 0, notFound
		}
		cur = child
	}

	qs, err := s.baseQueryset(ctx, filter)
	if err != nil {
		return 0, err
	}
	if !qs.contains(cur) {
		return 0, notFound
	}
	return cur.ID, nil
}
