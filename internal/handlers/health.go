package handlers

import (
	"net/http"

	"github.com/AnshRaj112/biography-backend/internal/database"
)

// Health reports each backend; 503 when a connected one is down.
func Health(w http.ResponseWriter, r *http.Request) {
	report, ok := database.CheckHealth(r.Context())
	status := http.StatusOK
	if !ok {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{"success": ok, "services": report})
}
