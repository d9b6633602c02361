package schema

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	pkgerrors "github.com/yungbote/pagebridge/internal/pkg/errors"
)

// DefaultStatus keys the fallback response of an operation.
const DefaultStatus = 0

// Operation declares one route and the response schema of every status it
// may answer with. A nil schema declares an empty body.
type Operation struct {
	ID         string
	Method     string
	Path       string
	Summary    string
	Tags       []string
	Parameters []*openapi3.Parameter
	Responses  map[int]*openapi3.SchemaRef
}

// ResponseSchema selects the schema for status, falling back to the default
// entry. An undeclared status is a configuration error.
func (o *Operation) ResponseSchema(status int) (*openapi3.SchemaRef, error) {
	if o == nil {
		return nil, fmt.Errorf("%w: nil operation", pkgerrors.ErrConfiguration)
	}
	if s, ok := o.Responses[status]; ok {
		return s, nil
	}
	if s, ok := o.Responses[DefaultStatus]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: schema for status %d is not set in responses %v",
		pkgerrors.ErrConfiguration, status, o.Statuses())
}

// Statuses lists the declared statuses in ascending order (default first).
func (o *Operation) Statuses() []int {
	out := make([]int, 0, len(o.Responses))
	for k := range o.Responses {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

func describe(status int) string {
	if status == DefaultStatus {
		return "Default response"
	}
	if txt := http.StatusText(status); txt != "" {
		return txt
	}
	return fmt.Sprintf("Status %d", status)
}
