package cms

import "testing"

func TestChildPath(t *testing.T) {
	if got := ChildPath("", 1); got != "0001" {
		t.Fatalf("root path: got=%q", got)
	}
	if got := ChildPath("0001", 36); got != "00010010" {
		t.Fatalf("base36 carry: got=%q", got)
	}
}

func TestPageTreeHelpers(t *testing.T) {
	root := &Page{Path: "0001", Depth: 1}
	home := &Page{Path: "00010001", Depth: 2}
	blog := &Page{Path: "000100010002", Depth: 3}

	if !root.IsRoot() || home.IsRoot() {
		t.Fatalf("IsRoot mismatch")
	}
	if got := blog.ParentPath(); got != home.Path {
		t.Fatalf("ParentPath: got=%q want=%q", got, home.Path)
	}
	if root.ParentPath() != "" {
		t.Fatalf("root has no parent")
	}
	if !blog.IsDescendantOf(home, false) || !home.IsDescendantOf(home, true) || home.IsDescendantOf(home, false) {
		t.Fatalf("IsDescendantOf mismatch")
	}
}

func TestSiteRootURL(t *testing.T) {
	cases := map[int]string{80: "http://example.com", 443: "https://example.com", 8000: "http://example.com:8000"}
	for port, want := range cases {
		s := &Site{Hostname: "example.com", Port: port}
		if got := s.RootURL(); got != want {
			t.Fatalf("port %d: got=%q want=%q", port, got, want)
		}
	}
}
