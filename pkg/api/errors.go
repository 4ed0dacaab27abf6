package api

import (
	"errors"
	"net/http"

	"github.com/platinummonkey/menuboard/pkg/httputil"
	"github.com/platinummonkey/menuboard/pkg/menus"
	"github.com/platinummonkey/menuboard/pkg/observability"
	"github.com/platinummonkey/menuboard/pkg/tasks"
	"github.com/platinummonkey/menuboard/pkg/users"
)

const (
	msgMissingFields   = "Missing required fields"
	msgPasswordTooLong = "password must be at most 72 bytes"
)

// denial is the response written when a resource is absent or owned by
// someone else
type denial struct {
	status  int
	message string
}

func unauthorized(message string) denial {
	return denial{status: http.StatusUnauthorized, message: message}
}

func notFound(message string) denial {
	return denial{status: http.StatusNotFound, message: message}
}

// writeError maps a domain error to its response. Unknown errors are logged
// and answered with the generic 500 body.
func writeError(w http.ResponseWriter, r *http.Request, err error, d denial) {
	switch {
	case errors.Is(err, menus.ErrNotFound), errors.Is(err, tasks.ErrNotFound):
		httputil.WriteMessage(w, d.status, d.message)
	case errors.Is(err, menus.ErrInvalidPrice):
		httputil.WriteBadRequest(w, "Price must be between 0 and 99999999.99")
	case errors.Is(err, menus.ErrInvalidInput), errors.Is(err, tasks.ErrInvalidInput), errors.Is(err, users.ErrInvalidInput):
		httputil.WriteBadRequest(w, "Value is too long or out of range")
	case errors.Is(err, tasks.ErrInvalidStatus):
		httputil.WriteBadRequest(w, `Status must be one of "pending", "completed" or "cancel"`)
	case errors.Is(err, tasks.ErrNotDeletable):
		httputil.WriteBadRequest(w, `Only tasks with status "cancel" or "completed" can be deleted`)
	default:
		serverError(w, r, err)
	}
}

// serverError logs err with the request context and writes the generic 500
func serverError(w http.ResponseWriter, r *http.Request, err error) {
	observability.FromContext(r.Context()).
		WithError(err).
		WithField("path", r.URL.Path).
		Error("request failed")
	httputil.WriteServerError(w)
}

// writeJSON writes a success payload, logging encoder failures
func writeJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if err := httputil.WriteJSON(w, status, data); err != nil {
		observability.FromContext(r.Context()).WithError(err).Warn("failed to encode response")
	}
}
