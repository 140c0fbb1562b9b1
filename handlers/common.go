package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/lawoh/bixi-stats/analysis"
	"github.com/lawoh/bixi-stats/utils/logger"
)

func sendErrorResponse(w http.ResponseWriter, message string, code int) {
	logger.Get().Warn().Int("code", code).Msg(message)

	response := map[string]interface{}{
		"error":     message,
		"code":      code,
		"status":    http.StatusText(code),
		"timestamp": time.Now().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// sendAnalysisError maps aggregator failures onto HTTP statuses. The
// dashboard shows one failure notification per year; nothing partial is
// ever returned.
func sendAnalysisError(w http.ResponseWriter, err error) {
	var formatErr *analysis.DataFormatError
	switch {
	case errors.Is(err, analysis.ErrMissingYear):
		sendErrorResponse(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, analysis.ErrNoTripData),
		errors.Is(err, analysis.ErrEmptyDataset),
		errors.As(err, &formatErr):
		sendErrorResponse(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		sendErrorResponse(w, "Failed to load year data", http.StatusInternalServerError)
	}
}
