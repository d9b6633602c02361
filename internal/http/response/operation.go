package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/pagebridge/internal/observability"
	"github.com/yungbote/pagebridge/internal/platform/logger"
	"github.com/yungbote/pagebridge/internal/schema"
)

// Writer answers requests through an operation's declared responses.
type Writer struct {
	log      *logger.Logger
	metrics  *observability.Metrics
	validate bool
}

// NewWriter builds a Writer; with validate set, bodies are checked against
// the declared schema before they are written.
func NewWriter(log *logger.Logger, metrics *observability.Metrics, validate bool) *Writer {
	return &Writer{log: log.With("component", "ResponseWriter"), metrics: metrics, validate: validate}
}

// Write sends body with status. A status the operation does not declare is a
// server configuration error; a nil schema sends no body.
func (w *Writer) Write(c *gin.Context, op *schema.Operation, status int, body any) {
	ref, err := op.ResponseSchema(status)
	if err != nil {
		w.log.Error("undeclared response status", "operation", op.ID, "status", status, "error", err)
		_ = c.Error(err)
		RespondError(c, http.StatusInternalServerError, "configuration_error", fmt.Errorf("response for status %d is not declared", status))
		return
	}
	if ref == nil {
		c.Status(status)
		c.Writer.WriteHeaderNow()
		return
	}

	raw, err := json.Marshal(body)
	if err != nil {
		RespondServiceError(c, fmt.Errorf("encode %s response: %w", op.ID, err))
		return
	}
	if w.validate && ref.Value != nil {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			RespondServiceError(c, err)
			return
		}
		if err := ref.Value.VisitJSON(decoded); err != nil {
			w.metrics.IncInvalidResponse(op.ID)
			w.log.Error("response failed schema validation", "operation", op.ID, "status", status, "error", err)
			_ = c.Error(err)
			RespondError(c, http.StatusInternalServerError, "invalid_response", fmt.Errorf("response does not match its schema"))
			return
		}
	}
	c.Data(status, "application/json; charset=utf-8", raw)
}
