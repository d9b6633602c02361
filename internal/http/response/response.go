package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/pagebridge/internal/content/api"
	pkgerrors "github.com/yungbote/pagebridge/internal/pkg/errors"
	"github.com/yungbote/pagebridge/internal/platform/apierr"
)

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
		_ = c.Error(err)
	}
	c.JSON(status, api.ErrorEnvelope{
		Error: api.ErrorBody{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// FromError maps service errors onto API errors. Internal failures keep
// their cause for logging but do not leak it to clients.
func FromError(err error) *apierr.Error {
	var ae *apierr.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ae):
		return ae
	case errors.Is(err, pkgerrors.ErrNotFound):
		return apierr.New(http.StatusNotFound, "not_found", err)
	case errors.Is(err, pkgerrors.ErrAmbiguousSite), errors.Is(err, pkgerrors.ErrInvalidArgument):
		return apierr.New(http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, pkgerrors.ErrUnauthorized):
		return apierr.New(http.StatusUnauthorized, "unauthorized", err)
	default:
		return apierr.New(http.StatusInternalServerError, "internal_error", err)
	}
}

// RespondServiceError writes the error envelope for err.
func RespondServiceError(c *gin.Context, err error) {
	ae := FromError(err)
	if ae.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(ae.Status, api.ErrorEnvelope{Error: api.ErrorBody{Message: "internal server error", Code: ae.Code}})
		return
	}
	RespondError(c, ae.Status, ae.Code, ae.Err)
}
