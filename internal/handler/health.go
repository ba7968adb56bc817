package handler

import "net/http"

// HandleHealth is the liveness probe.
//
// HTTP: GET /health (public — load balancers don't hold session tokens)
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
