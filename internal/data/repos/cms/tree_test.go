package cms

import (
	"context"
	"testing"

	"github.com/yungbote/pagebridge/internal/data/repos/testutil"
	types "github.com/yungbote/pagebridge/internal/domain"
)

func TestPageRepoAddRootAndChild(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewPageRepo(db, testutil.Logger(t))

	en := testutil.SeedLocale(t, ctx, tx, "en")
	root, err := repo.AddRoot(ctx, tx, &types.Page{Title: "Root", Slug: "root", ContentType: types.RootPageLabel, Live: true, LocaleID: en.ID})
	if err != nil {
		t.Fatalf("AddRoot: %v", err)
	}
	if root.Path != "0001" || root.Depth != 1 || root.URLPath != "/" {
		t.Fatalf("AddRoot: path=%s depth=%d url=%s", root.Path, root.Depth, root.URLPath)
	}

	a, err := repo.AddChild(ctx, tx, root, &types.Page{Title: "A", Slug: "a", ContentType: "home.HomePage", Live: true})
	if err != nil {
		t.Fatalf("AddChild a: %v", err)
	}
	b, err := repo.AddChild(ctx, tx, root, &types.Page{Title: "B", Slug: "b", ContentType: "home.HomePage", Live: true})
	if err != nil {
		t.Fatalf("AddChild b: %v", err)
	}
	if a.Path != "00010001" || b.Path != "00010002" {
		t.Fatalf("AddChild paths: a=%s b=%s", a.Path, b.Path)
	}
	if b.LocaleID != en.ID || b.URLPath != "/b/" {
		t.Fatalf("AddChild inherited fields: locale=%d url=%s", b.LocaleID, b.URLPath)
	}
	if root.NumChild != 2 {
		t.Fatalf("AddChild numchild: got=%d", root.NumChild)
	}
}
