package models

import (
	"fmt"
	"sync"

	pkgerrors "github.com/yungbote/pagebridge/internal/pkg/errors"
)

// Registry holds content types in registration order.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	byLabel map[string]*ContentType
}

func NewRegistry() *Registry {
	return &Registry{byLabel: map[string]*ContentType{}}
}

func (r *Registry) Register(ct *ContentType) error {
	if err := ct.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	label := ct.Label()
	if _, exists := r.byLabel[label]; exists {
		return fmt.Errorf("%w: content type %s registered twice", pkgerrors.ErrConfiguration, label)
	}
	r.byLabel[label] = ct
	r.order = append(r.order, label)
	return nil
}

// RegisterResolver attaches a Go resolver to a registered content type.
func (r *Registry) RegisterResolver(label, name string, res Resolver) error {
	if res.Resolve == nil {
		return fmt.Errorf("%w: resolver %s.%s has no Resolve func", pkgerrors.ErrConfiguration, label, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ct, ok := r.byLabel[label]
	if !ok {
		return fmt.Errorf("%w: resolver %s for unknown content type %s", pkgerrors.ErrConfiguration, name, label)
	}
	if ct.Resolvers == nil {
		ct.Resolvers = map[string]Resolver{}
	}
	ct.Resolvers[name] = res
	return nil
}

func (r *Registry) Get(label string) (*ContentType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ct, ok := r.byLabel[label]
	return ct, ok
}

func (r *Registry) All() []*ContentType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*ContentType, 0, len(r.order))
	for _, label := range r.order {
		out = append(out, r.byLabel[label])
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
