package handlers

import (
	_ "embed"
	"net/http"
)

//go:embed index.html
var indexHTML []byte

// GetDashboardPage serves the single dashboard page. Everything dynamic
// on it comes from the /api/v1 endpoints.
func GetDashboardPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}
