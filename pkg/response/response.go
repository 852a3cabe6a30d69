// Package response writes JSON bodies and the error envelope
// {"status":<code>,"message":"...","errors":{...}}.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shashiranjanraj/catalog/pkg/e"
	"github.com/shashiranjanraj/catalog/pkg/logger"
)

type envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// JSON writes v as-is with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// NoContent sends 204 with an empty body.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error sends the error envelope.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, envelope{Status: status, Message: message})
}

// ValidationError sends a 422 with the field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	JSON(w, http.StatusUnprocessableEntity, envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

func Unauthenticated(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthenticated")
}

func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}

// FromError maps err onto the taxonomy in pkg/e. Anything unrecognised is
// logged with the request logger and answered with a bare 500.
func FromError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *e.ValidationError

	switch {
	case errors.As(err, &ve):
		ValidationError(w, ve.Fields)
	case errors.Is(err, e.ErrUnauthenticated):
		Unauthenticated(w)
	case errors.Is(err, e.ErrUnauthorized):
		Error(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, e.ErrNotFound):
		NotFound(w)
	case errors.Is(err, e.ErrTooLarge):
		Error(w, http.StatusRequestEntityTooLarge, "Request body too large")
	case errors.Is(err, e.ErrBadRequest):
		Error(w, http.StatusBadRequest, "Malformed JSON body")
	default:
		logger.WithCtx(r.Context()).Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
