package richtext

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"

	nethtml "golang.org/x/net/html"

	"github.com/yungbote/pagebridge/internal/platform/logger"
)

// Refs are the ids referenced by one rich text value.
type Refs struct {
	Pages     []uint
	Documents []uint
	Images    []uint
}

func (r Refs) Empty() bool {
	return len(r.Pages) == 0 && len(r.Documents) == 0 && len(r.Images) == 0
}

type Image struct {
	Src    string
	Width  int
	Height int
}

// Links maps referenced ids to their front-end targets; missing ids are unknown.
type Links struct {
	Pages     map[uint]string
	Documents map[uint]string
	Images    map[uint]Image
}

type LinkResolver interface {
	ResolveLinks(ctx context.Context, refs Refs) (Links, error)
}

type Expander struct {
	resolver LinkResolver
	log      *logger.Logger
}

func NewExpander(resolver LinkResolver, baseLog *logger.Logger) *Expander {
	return &Expander{resolver: resolver, log: baseLog.With("service", "RichTextExpander")}
}

type token struct {
	raw string
	tok nethtml.Token
}

// Expand rewrites stored link and embed markup into front-end HTML.
func (e *Expander) Expand(ctx context.Context, src string) string {
	if !strings.Contains(src, "linktype") && !strings.Contains(src, "embedtype") {
		return src
	}
	toks := tokenize(src)
	refs := collectRefs(toks)
	links := Links{}
	if !refs.Empty() && e.resolver != nil {
		l, err := e.resolver.ResolveLinks(ctx, refs)
		if err != nil {
			e.log.Warn("rich text link resolution failed", "error", err)
		} else {
			links = l
		}
	}
	return render(toks, links)
}

func tokenize(src string) []token {
	z := nethtml.NewTokenizer(strings.NewReader(src))
	var out []token
	for {
		tt := z.Next()
		if tt == nethtml.ErrorToken {
			return out
		}
		raw := string(z.Raw())
		out = append(out, token{raw: raw, tok: z.Token()})
	}
}

func attr(t nethtml.Token, key string) (string, bool) {
	for _, a := range t.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attrID(t nethtml.Token) (uint, bool) {
	v, ok := attr(t, "id")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func isTag(t nethtml.Token, name string) bool {
	return (t.Type == nethtml.StartTagToken || t.Type == nethtml.SelfClosingTagToken) && t.Data == name
}

func collectRefs(toks []token) Refs {
	pages := map[uint]bool{}
	docs := map[uint]bool{}
	imgs := map[uint]bool{}
	for _, t := range toks {
		switch {
		case isTag(t.tok, "a"):
			id, ok := attrID(t.tok)
			if !ok {
				continue
			}
			switch lt, _ := attr(t.tok, "linktype"); lt {
			case "page":
				pages[id] = true
			case "document":
				docs[id] = true
			}
		case isTag(t.tok, "embed"):
			if et, _ := attr(t.tok, "embedtype"); et != "image" {
				continue
			}
			if id, ok := attrID(t.tok); ok {
				imgs[id] = true
			}
		}
	}
	return Refs{Pages: keys(pages), Documents: keys(docs), Images: keys(imgs)}
}

func keys(m map[uint]bool) []uint {
	out := make([]uint, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func render(toks []token, links Links) string {
	var b strings.Builder
	for _, t := range toks {
		switch {
		case isTag(t.tok, "a"):
			lt, has := attr(t.tok, "linktype")
			if !has {
				b.WriteString(t.raw)
				continue
			}
			b.WriteString(renderLink(t.tok, lt, links))
		case isTag(t.tok, "embed"):
			et, _ := attr(t.tok, "embedtype")
			if et != "image" {
				b.WriteString(t.raw)
				continue
			}
			b.WriteString(renderImage(t.tok, links))
		default:
			b.WriteString(t.raw)
		}
	}
	return b.String()
}

func renderLink(t nethtml.Token, linktype string, links Links) string {
	id, ok := attrID(t)
	href := ""
	if ok {
		switch linktype {
		case "page":
			href = links.Pages[id]
		case "document":
			href = links.Documents[id]
		}
	}
	if href == "" {
		return "<a>"
	}
	return `<a href="` + html.EscapeString(href) + `">`
}

func renderImage(t nethtml.Token, links Links) string {
	id, ok := attrID(t)
	if !ok {
		return ""
	}
	img, ok := links.Images[id]
	if !ok || img.Src == "" {
		return ""
	}
	alt, _ := attr(t, "alt")
	format, _ := attr(t, "format")
	class := "richtext-image"
	if f := strings.TrimSpace(format); f != "" {
		class += " " + f
	}
	return fmt.Sprintf(`<img alt="%s" class="%s" height="%d" src="%s" width="%d">`,
		html.EscapeString(alt), html.EscapeString(class), img.Height, html.EscapeString(img.Src), img.Width)
}
