package api

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tagcloud/pkg/errors"
)

// errorBody is the JSON error envelope.
type errorBody struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func errNotFound(format string, args ...any) error {
	return errors.New(errors.ErrCodeNotFound, format, args...)
}

// statusFor maps an error to an HTTP status by its code.
func statusFor(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeSessionExpired):
		return http.StatusGone
	case errors.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// writeError writes err as a JSON error. Errors without a code are
// logged and reported as internal errors without their message.
func writeError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error) {
	body := errorBody{
		Code:      errors.GetCode(err),
		Message:   errors.UserMessage(err),
		RequestID: requestIDFrom(r.Context()),
	}
	if body.Code == "" {
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "request_id", body.RequestID, "err", err)
		body.Code = errors.ErrCodeInternal
		body.Message = "internal server error"
	}
	writeJSON(w, statusFor(err), body)
}

// decode reads a JSON request body into v. Unknown fields are rejected.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "decode request body: %v", err)
	}
	if dec.More() {
		return errors.New(errors.ErrCodeInvalidInput, "decode request body: trailing data")
	}
	return nil
}
