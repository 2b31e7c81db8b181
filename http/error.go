package http

import (
	"encoding/json"
	"net/http"

	"github.com/fwojciec/bookvox"
)

var codes = map[string]int{
	bookvox.EINVALID:     http.StatusBadRequest,
	bookvox.ENOTFOUND:    http.StatusNotFound,
	bookvox.EUNAVAILABLE: http.StatusServiceUnavailable,
	bookvox.EUPSTREAM:    http.StatusBadGateway,
	bookvox.EINTERNAL:    http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

type errorResponse struct {
	Error string `json:"error"`
}

// Error writes err as a JSON error body. Internal errors are logged and
// their details withheld.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := bookvox.ErrorCode(err), bookvox.ErrorMessage(err)
	if code == bookvox.EINTERNAL {
		s.Logger.Error("internal error", "method", r.Method, "path", r.URL.Path, "err", err)
		msg = "internal error"
	}
	writeJSON(w, ErrorStatusCode(code), errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
