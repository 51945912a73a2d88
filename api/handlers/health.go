package handlers

import "net/http"

// Health reports liveness. The server has no external dependencies to probe.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
