package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Error writes the gateway's JSON error envelope. Upstream-originated
// errors never pass through here; they are relayed verbatim.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
