package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/pagebridge/internal/content/models"
	"github.com/yungbote/pagebridge/internal/content/richtext"
	"github.com/yungbote/pagebridge/internal/data/repos"
	"github.com/yungbote/pagebridge/internal/data/repos/testutil"
	types "github.com/yungbote/pagebridge/internal/domain"
	"github.com/yungbote/pagebridge/internal/observability"
	"github.com/yungbote/pagebridge/internal/platform/cache"
	"github.com/yungbote/pagebridge/internal/platform/storage"
)

const contentModelsPath = "../../config/content_models.yaml"

// world is a seeded content store:
//
//	root (/)
//	  home      home.HomePage   site example.com:80
//	    blog    blog.BlogPage
//	    secret  blog.BlogPage   password "letmein"
//	    draft   blog.BlogPage   not live
type world struct {
	ctx       context.Context
	db        *gorm.DB
	registry  *models.Registry
	metrics   *observability.Metrics
	sites     SiteService
	pages     PageService
	redirects RedirectService
	media     MediaService
	urls      RequestURLs

	locale *types.Locale
	root   *types.Page
	home   *types.Page
	blog   *types.Page
	secret *types.Page
	draft  *types.Page
	site   *types.Site
	doc    *types.Document
	image  *types.Image
}

func newWorld(t *testing.T, i18n bool) *world {
	t.Helper()
	ctx := context.Background()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	reg := models.NewRegistry()
	if err := models.LoadInto(reg, contentModelsPath); err != nil {
		t.Fatalf("load content models: %v", err)
	}

	w := &world{ctx: ctx, db: db, registry: reg, metrics: observability.NewMetrics()}
	w.urls = RequestURLs{Origin: "http://example.com", APIBase: "http://example.com/api/v2"}

	imageRepo := repos.NewImageRepo(db, log)
	docRepo := repos.NewDocumentRepo(db, log)
	imgs, err := imageRepo.Create(ctx, nil, []*types.Image{{Title: "Cat", File: "images/cat.jpg", Width: 640, Height: 480}})
	if err != nil {
		t.Fatalf("seed image: %v", err)
	}
	docs, err := docRepo.Create(ctx, nil, []*types.Document{{Title: "Report", File: "documents/report.pdf"}})
	if err != nil {
		t.Fatalf("seed document: %v", err)
	}
	w.image, w.doc = imgs[0], docs[0]

	w.locale = testutil.SeedLocale(t, ctx, db, "en")
	w.root = testutil.SeedRoot(t, ctx, db, w.locale)
	w.home = testutil.SeedPage(t, ctx, db, w.root, "home", "home.HomePage", map[string]any{
		"intro":      `<p>Read the <a linktype="document" id="1">report</a></p>`,
		"hero_image": w.image.ID,
		"body":       []any{map[string]any{"type": "heading", "value": "Welcome", "id": "b1"}},
	})
	w.blog = testutil.SeedPage(t, ctx, db, w.home, "blog", "blog.BlogPage", map[string]any{
		"subtitle": "All the news",
		"body": []any{
			map[string]any{"type": "heading", "value": "Hello", "id": "h1"},
			map[string]any{"type": "paragraph", "value": `<p>Back <a linktype="page" id="2">home</a></p>`, "id": "p1"},
			map[string]any{"type": "retired_block", "value": "gone", "id": "x1"},
			map[string]any{"type": "quote", "value": map[string]any{"text": "Ship it", "attribution": "Ana", "featured": true, "legacy": 1}},
		},
		"attachment":      w.doc.ID,
		"author_page":     w.home.ID,
		"reading_minutes": 4,
	})
	w.secret = testutil.SeedPage(t, ctx, db, w.home, "secret", "blog.BlogPage", nil)
	testutil.SeedPasswordRestriction(t, ctx, db, w.secret, "letmein")
	w.draft = testutil.SeedPage(t, ctx, db, w.home, "draft", "blog.BlogPage", nil)
	if err := db.Model(&types.Page{}).Where("id = ?", w.draft.ID).Update("live", false).Error; err != nil {
		t.Fatalf("unpublish draft: %v", err)
	}
	w.site = testutil.SeedSite(t, ctx, db, "example.com", 80, w.home, true)

	if _, err := repos.NewPageRelatedItemRepo(db, log).Create(ctx, nil, []*types.PageRelatedItem{
		{PageID: w.blog.ID, Relation: "related_links", SortOrder: 2},
		{PageID: w.blog.ID, Relation: "related_links", SortOrder: 1},
	}); err != nil {
		t.Fatalf("seed related items: %v", err)
	}

	pageRepo := repos.NewPageRepo(db, log)
	store := storage.NewLocal("/media/")
	w.sites = NewSiteService(log, repos.NewSiteRepo(db, log), pageRepo, cache.NewMemory[[]types.SiteRootPath](4, 0), w.metrics, i18n)
	w.media = NewMediaService(log, imageRepo, docRepo, store)
	links := NewRichTextLinks(pageRepo, docRepo, imageRepo, w.sites, store)
	w.pages = NewPageService(log, PageServiceConfig{I18N: i18n, LimitMax: 50}, reg, pageRepo,
		repos.NewPageViewRestrictionRepo(db, log), repos.NewPageRelatedItemRepo(db, log),
		w.sites, w.media, richtext.NewExpander(links, log))
	w.redirects = NewRedirectService(log, repos.NewRedirectRepo(db, log), w.sites)

	// Reload the site with its root page preloaded, as request resolution does.
	site, err := w.sites.Resolve(ctx, "", "example.com")
	if err != nil || site == nil {
		t.Fatalf("resolve seeded site: site=%v err=%v", site, err)
	}
	w.site = site
	return w
}
