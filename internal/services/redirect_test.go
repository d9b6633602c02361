package services

import (
	"errors"
	"testing"

	"github.com/yungbote/pagebridge/internal/data/repos"
	"github.com/yungbote/pagebridge/internal/data/repos/testutil"
	types "github.com/yungbote/pagebridge/internal/domain"
	pkgerrors "github.com/yungbote/pagebridge/internal/pkg/errors"
)

func TestNormalisePath(t *testing.T) {
	cases := map[string]string{
		"":                          "/",
		"/":                         "/",
		"old":                       "/old",
		"/old/":                     "/old",
		"/old///":                   "/old",
		"/old?b=2&a=1":              "/old?a=1&b=2",
		"/old/#section":             "/old",
		"http://example.com/old/":   "/old",
		"/old;z=1;a=2?q=1":          "/old;a=2;z=1?q=1",
		"/Case/Sensitive/?x=1#frag": "/Case/Sensitive?x=1",
	}
	for in, want := range cases {
		if got := NormalisePath(in); got != want {
			t.Fatalf("NormalisePath(%q): got=%q want=%q", in, got, want)
		}
	}
}

func TestRedirects(t *testing.T) {
	w := newWorld(t, false)
	other := testutil.SeedSite(t, w.ctx, w.db, "other.test", 80, w.home, false)
	repo := repos.NewRedirectRepo(w.db, testutil.Logger(t))
	rows, err := repo.Create(w.ctx, nil, []*types.Redirect{
		{OldPath: "/old-blog", IsPermanent: true, RedirectPageID: testutil.PtrUint(w.blog.ID)},
		{OldPath: "/promo", RedirectLink: "https://elsewhere.test/promo"},
		{OldPath: "/promo", SiteID: testutil.PtrUint(w.site.ID), RedirectLink: "https://example.com/offers/"},
		{OldPath: "/only-other", SiteID: testutil.PtrUint(other.ID), RedirectLink: "https://other.test/"},
	})
	if err != nil {
		t.Fatalf("seed redirects: %v", err)
	}

	all, err := w.redirects.List(w.ctx, w.site)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("List: got %d redirects", len(all))
	}
	if all[0].Location != "http://example.com/blog/" || !all[0].IsPermanent {
		t.Fatalf("page redirect: got=%+v", all[0])
	}

	got, err := w.redirects.Get(w.ctx, w.site, rows[1].ID)
	if err != nil || got.Location != "https://elsewhere.test/promo" {
		t.Fatalf("Get: got=%+v err=%v", got, err)
	}
	if _, err := w.redirects.Get(w.ctx, w.site, 999); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("Get missing: expected not found, got %v", err)
	}

	found, err := w.redirects.Find(w.ctx, w.site, "/promo/")
	if err != nil || found.ID != rows[2].ID {
		t.Fatalf("Find should prefer the site's redirect: got=%+v err=%v", found, err)
	}
	found, err = w.redirects.Find(w.ctx, nil, "promo")
	if err != nil || found.ID != rows[1].ID {
		t.Fatalf("Find without site should use site-less redirect: got=%+v err=%v", found, err)
	}
	found, err = w.redirects.Find(w.ctx, w.site, "/old-blog/?utm_source=mail")
	if err != nil || found.ID != rows[0].ID {
		t.Fatalf("Find should retry without query string: got=%+v err=%v", found, err)
	}
	if _, err := w.redirects.Find(w.ctx, w.site, "/only-other"); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("other site's redirect must not match: %v", err)
	}
	if _, err := w.redirects.Find(w.ctx, w.site, "  "); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("empty path: expected invalid argument, got %v", err)
	}
}

func TestDocumentFileURL(t *testing.T) {
	w := newWorld(t, false)

	u, err := w.media.DocumentFileURL(w.ctx, w.doc.ID, "report.pdf")
	if err != nil || u != "/media/documents/report.pdf" {
		t.Fatalf("DocumentFileURL: got=%q err=%v", u, err)
	}
	if _, err := w.media.DocumentFileURL(w.ctx, w.doc.ID, "other.pdf"); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("wrong filename: expected not found, got %v", err)
	}
	if _, err := w.media.DocumentFileURL(w.ctx, 42, "report.pdf"); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("missing document: expected not found, got %v", err)
	}
}
