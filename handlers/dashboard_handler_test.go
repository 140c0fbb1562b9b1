package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"

	"github.com/lawoh/bixi-stats/config"
)

const testStationsCSV = "code,name,latitude,longitude\n" +
	"A,Station A,45.51,-73.56\n" +
	"B,Station B,45.52,-73.57\n"

const testTripsCSV = "start_date,end_date,duration_sec,start_station_code,end_station_code,is_member\n" +
	"2014-07-01 08:00:00,2014-07-01 08:10:00,600,A,A,1\n" +
	"2014-07-01 14:00:00,2014-07-01 14:20:00,1200,A,B,0\n"

func setupTestData(t *testing.T) string {
	t.Helper()
	dataDir := t.TempDir()
	yearDir := filepath.Join(dataDir, "2014")
	if err := os.Mkdir(yearDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range map[string]string{
		"Stations_2014.csv": testStationsCSV,
		"OD_2014.csv":       testTripsCSV,
	} {
		if err := os.WriteFile(filepath.Join(yearDir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	config.App.DataDir = dataDir
	config.App.PreferredYear = "2014"
	config.InitCache()
	return dataDir
}

func newTestRouter() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/years", GetYears).Methods("GET")
	api.HandleFunc("/analysis/{year}", GetYearlyAnalysis).Methods("GET")
	api.HandleFunc("/map/{year}", GetStationMap).Methods("GET")
	api.HandleFunc("/stations/{year}", GetStations).Methods("GET")
	api.HandleFunc("/chart/{year}", GetPeriodChart).Methods("GET")
	api.HandleFunc("/health", HealthCheck).Methods("GET")
	return r
}

func doRequest(t *testing.T, r *mux.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestGetYears(t *testing.T) {
	setupTestData(t)
	w := doRequest(t, newTestRouter(), "/api/v1/years")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["default"] != "2014" {
		t.Errorf("default = %v, want 2014", body["default"])
	}
	years, ok := body["years"].([]interface{})
	if !ok || len(years) != 1 || years[0] != "2014" {
		t.Errorf("years = %v, want [2014]", body["years"])
	}
}

func TestGetYearlyAnalysis(t *testing.T) {
	setupTestData(t)
	w := doRequest(t, newTestRouter(), "/api/v1/analysis/2014")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)

	display := body["display"].(map[string]interface{})
	if display["avg_duration"] != "15.0 min" {
		t.Errorf("avg_duration = %v, want 15.0 min", display["avg_duration"])
	}
	if display["loop_proportion"] != "50.0%" {
		t.Errorf("loop_proportion = %v, want 50.0%%", display["loop_proportion"])
	}

	metrics := body["metrics"].(map[string]interface{})
	if metrics["member_trips"].(float64) != 1 || metrics["casual_trips"].(float64) != 1 {
		t.Errorf("member/casual = %v/%v, want 1/1", metrics["member_trips"], metrics["casual_trips"])
	}

	distribution := body["period_distribution"].([]interface{})
	if len(distribution) != 4 {
		t.Errorf("period buckets = %d, want 4", len(distribution))
	}
}

func TestAnalysisUnknownYear(t *testing.T) {
	setupTestData(t)
	w := doRequest(t, newTestRouter(), "/api/v1/analysis/1999")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] == nil {
		t.Error("expected an error field")
	}
}

func TestAnalysisYearWithoutTrips(t *testing.T) {
	dataDir := setupTestData(t)
	bare := filepath.Join(dataDir, "2015")
	if err := os.Mkdir(bare, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(bare, "Stations_2015.csv"), []byte(testStationsCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	w := doRequest(t, newTestRouter(), "/api/v1/analysis/2015")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
}

// Re-selecting a year must serve from the memo without touching storage.
// Deleting the files between requests proves no re-read happens.
func TestAnalysisIsMemoized(t *testing.T) {
	dataDir := setupTestData(t)
	r := newTestRouter()

	if w := doRequest(t, r, "/api/v1/analysis/2014"); w.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", w.Code)
	}
	if err := os.RemoveAll(filepath.Join(dataDir, "2014")); err != nil {
		t.Fatal(err)
	}
	if w := doRequest(t, r, "/api/v1/analysis/2014"); w.Code != http.StatusOK {
		t.Fatalf("cached request status = %d, want 200", w.Code)
	}
}

func TestGetStationMap(t *testing.T) {
	setupTestData(t)
	w := doRequest(t, newTestRouter(), "/api/v1/map/2014")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)

	basemaps := body["basemaps"].([]interface{})
	if len(basemaps) != 4 {
		t.Errorf("basemaps = %d, want 4", len(basemaps))
	}
	cluster := body["cluster"].(map[string]interface{})
	markers := cluster["markers"].(map[string]interface{})
	features := markers["features"].([]interface{})
	if len(features) != 2 {
		t.Errorf("marker features = %d, want 2", len(features))
	}
}

func TestGetPeriodChart(t *testing.T) {
	setupTestData(t)
	w := doRequest(t, newTestRouter(), "/api/v1/chart/2014")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}
	if w.Body.Len() == 0 {
		t.Error("chart body is empty")
	}
}

func TestHealthCheck(t *testing.T) {
	setupTestData(t)
	w := doRequest(t, newTestRouter(), "/api/v1/health")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
}
