package kit

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON leaves &, < and > unescaped so URLs in bodies stay readable.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func WriteError(w http.ResponseWriter, status int, msg string, details any) {
	WriteJSON(w, status, ErrorResponse{
		Message: msg,
		Details: details,
	})
}

func WriteText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
