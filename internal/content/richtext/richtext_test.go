package richtext

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yungbote/pagebridge/internal/platform/logger"
)

type fakeResolver struct {
	calls int
	got   Refs
	err   error
}

func (f *fakeResolver) ResolveLinks(_ context.Context, refs Refs) (Links, error) {
	f.calls++
	f.got = refs
	if f.err != nil {
		return Links{}, f.err
	}
	return Links{
		Pages:     map[uint]string{3: "http://example.com/blog/"},
		Documents: map[uint]string{5: "http://example.com/documents/5/report.pdf"},
		Images:    map[uint]Image{7: {Src: "http://cdn.test/cat.jpg", Width: 640, Height: 480}},
	}, nil
}

func TestExpand(t *testing.T) {
	res := &fakeResolver{}
	e := NewExpander(res, logger.Nop())

	in := `<p>See <a linktype="page" id="3">the blog</a>, <a linktype="document" id="5">report</a>` +
		` and <a linktype="page" id="99">gone</a> or <a href="https://x.test">ext</a>.</p>` +
		`<embed embedtype="image" id="7" format="left" alt="A &amp; B"/><embed embedtype="image" id="8" format="right" alt=""/>`
	want := `<p>See <a href="http://example.com/blog/">the blog</a>, <a href="http://example.com/documents/5/report.pdf">report</a>` +
		` and <a>gone</a> or <a href="https://x.test">ext</a>.</p>` +
		`<img alt="A &amp; B" class="richtext-image left" height="480" src="http://cdn.test/cat.jpg" width="640">`

	assert.Equal(t, want, e.Expand(context.Background(), in))
	assert.Equal(t, 1, res.calls)
	assert.Equal(t, Refs{Pages: []uint{3, 99}, Documents: []uint{5}, Images: []uint{7, 8}}, res.got)
}

func TestExpandPlainTextSkipsResolver(t *testing.T) {
	res := &fakeResolver{}
	e := NewExpander(res, logger.Nop())
	in := `<p>Hello &amp; welcome</p>`
	assert.Equal(t, in, e.Expand(context.Background(), in))
	assert.Equal(t, 0, res.calls)
}

func TestExpandResolverErrorDropsTargets(t *testing.T) {
	e := NewExpander(&fakeResolver{err: errors.New("db down")}, logger.Nop())
	got := e.Expand(context.Background(), `<a linktype="page" id="3">x</a><embed embedtype="image" id="7"/>`)
	assert.Equal(t, `<a>x</a>`, got)
}
