package httpx

import (
	"encoding/json"
	"io"
	"net/http"
)

// WriteJSON serializes v as JSON with the provided status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Text writes body as plain text with the provided status code.
func Text(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// Error writes an error response. Bodies are plain text so that clients of
// the lookup API can match them verbatim.
func Error(w http.ResponseWriter, status int, message string) {
	Text(w, status, message)
}
