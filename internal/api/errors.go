package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"vehicle-market-lab/internal/dashboard"
	"vehicle-market-lab/internal/recordstore"
)

// ErrorBody is the JSON error payload.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var loadErr *recordstore.LoadError
	switch {
	case errors.Is(err, dashboard.ErrInvalidParams), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.As(err, &loadErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Int("status", code), zap.Error(err))
	}
	writeJSON(w, code, map[string]ErrorBody{"error": {Code: code, Message: err.Error()}})
}

// writeJSON encodes v before committing the status, so an unencodable
// value turns into a 500 instead of an empty body.
func writeJSON(w http.ResponseWriter, code int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		code = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]ErrorBody{"error": {Code: code, Message: "encode response"}})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(append(body, '\n'))
}
