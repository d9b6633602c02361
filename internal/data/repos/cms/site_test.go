package cms

import (
	"context"
	"testing"

	"github.com/yungbote/pagebridge/internal/data/repos/testutil"
	types "github.com/yungbote/pagebridge/internal/domain"
)

func TestSiteAndLocaleRepos(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	sites := NewSiteRepo(db, testutil.Logger(t))
	locales := NewLocaleRepo(db, testutil.Logger(t))

	if _, err := locales.Create(ctx, tx, []*types.Locale{{LanguageCode: "en"}}); err != nil {
		t.Fatalf("Create locale: %v", err)
	}
	en, err := locales.GetByLanguageCode(ctx, tx, "en")
	if err != nil || en == nil {
		t.Fatalf("GetByLanguageCode: err=%v locale=%v", err, en)
	}
	if l, err := locales.GetByLanguageCode(ctx, tx, "de"); err != nil || l != nil {
		t.Fatalf("GetByLanguageCode unknown: err=%v locale=%v", err, l)
	}

	root := testutil.SeedRoot(t, ctx, tx, en)
	home := testutil.SeedPage(t, ctx, tx, root, "home", "home.HomePage", nil)

	if d, err := sites.GetDefault(ctx, tx); err != nil || d != nil {
		t.Fatalf("GetDefault before seeding: err=%v site=%v", err, d)
	}

	if _, err := sites.Create(ctx, tx, []*types.Site{
		{Hostname: "example.com", Port: 80, RootPageID: home.ID, IsDefaultSite: true},
		{Hostname: "example.com", Port: 8080, RootPageID: home.ID},
		{Hostname: "other.org", Port: 443, RootPageID: home.ID},
	}); err != nil {
		t.Fatalf("Create sites: %v", err)
	}

	all, err := sites.List(ctx, tx)
	if err != nil || len(all) != 3 {
		t.Fatalf("List: err=%v len=%d", err, len(all))
	}
	if all[0].RootPage == nil || all[0].RootPage.Locale == nil {
		t.Fatalf("List: root page and locale should be preloaded")
	}

	byHost, err := sites.GetByHostname(ctx, tx, "EXAMPLE.com")
	if err != nil || len(byHost) != 2 || byHost[0].Port != 80 {
		t.Fatalf("GetByHostname: err=%v len=%d", err, len(byHost))
	}

	d, err := sites.GetDefault(ctx, tx)
	if err != nil || d == nil || d.Port != 80 {
		t.Fatalf("GetDefault: err=%v site=%v", err, d)
	}
}
