package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	gocache "github.com/patrickmn/go-cache"

	"github.com/lawoh/bixi-stats/analysis"
	"github.com/lawoh/bixi-stats/charts"
	"github.com/lawoh/bixi-stats/config"
	"github.com/lawoh/bixi-stats/maps"
	"github.com/lawoh/bixi-stats/models"
	"github.com/lawoh/bixi-stats/utils"
	"github.com/lawoh/bixi-stats/utils/logger"
)

// basemaps is the catalog served in every map document, resolved once
// at startup.
var basemaps = maps.DefaultBasemaps()

// InitBasemaps swaps in a catalog from a YAML file when one is
// configured; a broken file keeps the bundled catalog.
func InitBasemaps(path string) {
	if path == "" {
		return
	}
	catalog, err := maps.LoadBasemaps(path)
	if err != nil {
		logger.Get().Warn().Err(err).Str("file", path).Msg("using bundled basemap catalog")
		return
	}
	basemaps = catalog
}

// cachedAnalysis returns the memoized YearlyAnalysis for a year,
// computing it on first use. Only successes are cached, so a year whose
// files were fixed on disk can recover without a restart.
func cachedAnalysis(year string) (*models.YearlyAnalysis, error) {
	key := config.GetCacheKey("analysis", year)
	if v, ok := config.AnalysisCache.Get(key); ok {
		return v.(*models.YearlyAnalysis), nil
	}

	start := time.Now()
	result, err := analysis.Analyze(year, config.App.DataDir)
	if err != nil {
		return nil, err
	}
	logger.Get().Info().
		Str("year", year).
		Int("trips", result.TotalTrips).
		Int("stations", len(result.Stations)).
		Dur("elapsed", time.Since(start)).
		Msg("year aggregated")

	config.AnalysisCache.Set(key, result, gocache.NoExpiration)
	return result, nil
}

// GetYears lists the year directories under the data root and the year
// the dashboard should open on.
func GetYears(w http.ResponseWriter, r *http.Request) {
	years, err := analysis.ListYears(config.App.DataDir)
	if err != nil {
		sendErrorResponse(w, "Unable to read data directory", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"years":     years,
		"count":     len(years),
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if def, ok := analysis.DefaultYear(years, config.App.PreferredYear); ok {
		response["default"] = def
	}
	writeJSON(w, response)
}

// GetYearlyAnalysis serves the metric cards for one year: raw values
// plus the display strings the cards show.
func GetYearlyAnalysis(w http.ResponseWriter, r *http.Request) {
	year := mux.Vars(r)["year"]
	result, err := cachedAnalysis(year)
	if err != nil {
		sendAnalysisError(w, err)
		return
	}

	response := map[string]interface{}{
		"year": result.Year,
		"metrics": map[string]interface{}{
			"avg_duration_min":    result.AvgDurationMin,
			"loop_proportion_pct": result.LoopProportionPct,
			"member_trips":        result.MemberTrips,
			"casual_trips":        result.CasualTrips,
			"total_trips":         result.TotalTrips,
		},
		"display": map[string]string{
			"avg_duration":    utils.FormatMinutes(result.AvgDurationMin),
			"loop_proportion": utils.FormatPercent(result.LoopProportionPct),
			"member_trips":    utils.FormatCount(result.MemberTrips),
			"casual_trips":    utils.FormatCount(result.CasualTrips),
		},
		"period_distribution": result.PeriodDistribution,
		"station_count":       len(result.Stations),
		"timestamp":           time.Now().Format(time.RFC3339),
	}
	writeJSON(w, response)
}

// GetStationMap serves the map document for one year.
func GetStationMap(w http.ResponseWriter, r *http.Request) {
	year := mux.Vars(r)["year"]
	result, err := cachedAnalysis(year)
	if err != nil {
		sendAnalysisError(w, err)
		return
	}
	writeJSON(w, maps.BuildWith(result.Stations, basemaps))
}

// GetStations serves the year's stations as a bare GeoJSON feature
// collection.
func GetStations(w http.ResponseWriter, r *http.Request) {
	year := mux.Vars(r)["year"]
	result, err := cachedAnalysis(year)
	if err != nil {
		sendAnalysisError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	writeJSON(w, maps.StationFeatures(result.Stations))
}

// GetPeriodChart serves the period-distribution bar chart as a PNG.
func GetPeriodChart(w http.ResponseWriter, r *http.Request) {
	year := mux.Vars(r)["year"]
	result, err := cachedAnalysis(year)
	if err != nil {
		sendAnalysisError(w, err)
		return
	}

	// Render to a buffer first so a renderer failure can still become a
	// clean JSON error instead of a truncated image.
	var buf bytes.Buffer
	if err := charts.RenderPeriodDistribution(result.PeriodDistribution, &buf); err != nil {
		logger.Get().Error().Err(err).Str("year", year).Msg("chart render failed")
		sendErrorResponse(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}
