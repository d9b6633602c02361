package ctxutil

import (
	"context"
	"strings"
)

type traceDataKey struct{}
type viewerKey struct{}

type TraceData struct {
	TraceID   string
	RequestID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}

// Viewer is whoever is reading the API. Anonymous requests carry a zero Viewer.
type Viewer struct {
	Subject   string
	Groups    []string
	Passwords []string
}

func (v *Viewer) Authenticated() bool {
	return v != nil && strings.TrimSpace(v.Subject) != ""
}

func (v *Viewer) InGroup(names []string) bool {
	if v == nil {
		return false
	}
	for _, want := range names {
		for _, have := range v.Groups {
			if strings.EqualFold(strings.TrimSpace(want), strings.TrimSpace(have)) {
				return true
			}
		}
	}
	return false
}

func WithViewer(ctx context.Context, v *Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, v)
}

func GetViewer(ctx context.Context) *Viewer {
	if v, ok := ctx.Value(viewerKey{}).(*Viewer); ok && v != nil {
		return v
	}
	return &Viewer{}
}
