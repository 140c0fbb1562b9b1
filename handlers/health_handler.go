package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/lawoh/bixi-stats/analysis"
	"github.com/lawoh/bixi-stats/config"
)

type HealthResponse struct {
	Status    string   `json:"status"`
	DataDir   string   `json:"data_dir"`
	Years     []string `json:"years,omitempty"`
	Error     string   `json:"error,omitempty"`
	Timestamp string   `json:"timestamp"`
}

// HealthCheck reports whether the data root is readable and which years
// it currently exposes.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		DataDir:   config.App.DataDir,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if _, err := os.Stat(config.App.DataDir); err != nil {
		response.Status = "error"
		response.Error = "data directory not accessible: " + err.Error()
	} else if years, err := analysis.ListYears(config.App.DataDir); err != nil {
		response.Status = "error"
		response.Error = err.Error()
	} else {
		response.Years = years
	}

	writeJSON(w, response)
}
