// Package respond writes JSON responses in the shape API clients expect:
// successful payloads as-is and failures as {"detail": "..."}.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorBody is the body of every non-2xx response.
type ErrorBody struct {
	Detail string `json:"detail" example:"fetch content: client error '404 Not Found' for url 'https://example.com/missing'"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// headers are gone already
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// Detail writes {"detail": msg}.
func Detail(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, ErrorBody{Detail: msg})
}

// Error writes err's message verbatim as the detail. A nil err writes the
// status text instead.
func Error(w http.ResponseWriter, code int, err error) {
	if err == nil {
		Detail(w, code, http.StatusText(code))
		return
	}
	Detail(w, code, err.Error())
}
