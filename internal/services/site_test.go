package services

import (
	"errors"
	"testing"

	"github.com/yungbote/pagebridge/internal/data/repos/testutil"
	pkgerrors "github.com/yungbote/pagebridge/internal/pkg/errors"
)

func TestSiteResolve(t *testing.T) {
	w := newWorld(t, false)
	testutil.SeedSite(t, w.ctx, w.db, "multi.test", 8080, w.home, false)
	testutil.SeedSite(t, w.ctx, w.db, "multi.test", 8081, w.home, false)

	cases := []struct {
		name   string
		filter string
		host   string
		want   string
		port   int
		err    error
	}{
		{name: "host header", host: "example.com", want: "example.com", port: 80},
		{name: "host header with port falls back to only hostname match", host: "example.com:8000", want: "example.com", port: 80},
		{name: "unknown host uses default", host: "nowhere.test", want: "example.com", port: 80},
		{name: "filter wins over host", filter: "multi.test:8081", host: "example.com", want: "multi.test", port: 8081},
		{name: "ambiguous filter", filter: "multi.test", err: pkgerrors.ErrAmbiguousSite},
		{name: "unknown filter", filter: "nowhere.test"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			site, err := w.sites.Resolve(w.ctx, tc.filter, tc.host)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("expected %v, got %v", tc.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if tc.want == "" {
				if site != nil {
					t.Fatalf("expected no site, got %+v", site)
				}
				return
			}
			if site == nil || site.Hostname != tc.want || site.Port != tc.port {
				t.Fatalf("Resolve: got=%+v want=%s:%d", site, tc.want, tc.port)
			}
		})
	}
}

func TestPageURL(t *testing.T) {
	w := newWorld(t, false)

	u, err := w.sites.PageURL(w.ctx, w.home, w.site)
	if err != nil || u == nil || *u != "http://example.com/" {
		t.Fatalf("home url: got=%v err=%v", u, err)
	}
	u, err = w.sites.PageURL(w.ctx, w.blog, nil)
	if err != nil || u == nil || *u != "http://example.com/blog/" {
		t.Fatalf("blog url: got=%v err=%v", u, err)
	}
	u, err = w.sites.PageURL(w.ctx, w.root, nil)
	if err != nil || u != nil {
		t.Fatalf("tree root has no site: got=%v err=%v", u, err)
	}
}

func TestRootPathsAreCached(t *testing.T) {
	w := newWorld(t, false)
	if _, err := w.sites.RootPaths(w.ctx); err != nil {
		t.Fatalf("RootPaths: %v", err)
	}
	testutil.SeedSite(t, w.ctx, w.db, "late.test", 80, w.home, false)

	paths, err := w.sites.RootPaths(w.ctx)
	if err != nil {
		t.Fatalf("RootPaths: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("expected cached single root path, got %+v", paths)
	}
	if err := w.sites.Invalidate(w.ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	paths, err = w.sites.RootPaths(w.ctx)
	if err != nil {
		t.Fatalf("RootPaths: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected refreshed root paths, got %+v", paths)
	}
}
