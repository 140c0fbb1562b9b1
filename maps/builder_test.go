package maps

import (
	"os"
	"testing"

	"github.com/paulmach/orb"

	"github.com/lawoh/bixi-stats/models"
)

func testStations() []models.Station {
	return []models.Station{
		{Code: "A", Name: "Station A", Latitude: 45.51, Longitude: -73.56, Geometry: orb.Point{-73.56, 45.51}},
		{Code: "B", Name: "Station B", Latitude: 45.52, Longitude: -73.57, Geometry: orb.Point{-73.57, 45.52}},
	}
}

func TestBuildViewport(t *testing.T) {
	doc := Build(testStations())

	if doc.Center.Latitude != 45.5236 || doc.Center.Longitude != -73.5985 {
		t.Errorf("center = %+v, want 45.5236,-73.5985", doc.Center)
	}
	if doc.Zoom != 12 {
		t.Errorf("zoom = %d, want 12", doc.Zoom)
	}
	if doc.ControlPosition != "topright" {
		t.Errorf("control position = %q, want topright", doc.ControlPosition)
	}
}

func TestBuildBasemapOrder(t *testing.T) {
	doc := Build(nil)

	want := []string{"Satellite", "Terrain", "Sombre", "OpenStreetMap"}
	if len(doc.Basemaps) != len(want) {
		t.Fatalf("basemaps = %d, want %d", len(doc.Basemaps), len(want))
	}
	for i, name := range want {
		if doc.Basemaps[i].Name != name {
			t.Errorf("basemap[%d] = %q, want %q", i, doc.Basemaps[i].Name, name)
		}
		if doc.Basemaps[i].Tiles == "" {
			t.Errorf("basemap %q has no tiles URL", name)
		}
	}
}

func TestBuildMarkers(t *testing.T) {
	doc := Build(testStations())

	features := doc.Cluster.Markers.Features
	if len(features) != 2 {
		t.Fatalf("markers = %d, want 2", len(features))
	}
	first := features[0]
	if first.Properties["name"] != "Station A" {
		t.Errorf("marker label = %v, want Station A", first.Properties["name"])
	}
	if first.Properties["color"] != "#BC1E45" {
		t.Errorf("marker color = %v, want #BC1E45", first.Properties["color"])
	}
	point, ok := first.Geometry.(orb.Point)
	if !ok {
		t.Fatalf("marker geometry is %T, want orb.Point", first.Geometry)
	}
	if point != (orb.Point{-73.56, 45.51}) {
		t.Errorf("marker point = %v", point)
	}
}

func TestBuildNoStations(t *testing.T) {
	doc := Build(nil)

	if doc.Cluster.Markers == nil {
		t.Fatal("empty station set must still produce a cluster layer")
	}
	if len(doc.Cluster.Markers.Features) != 0 {
		t.Errorf("markers = %d, want 0", len(doc.Cluster.Markers.Features))
	}
}

func TestLoadBasemaps(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/basemaps.yaml"
	content := "- name: Local\n  tiles: http://tiles.local/{z}/{x}/{y}.png\n  attribution: internal\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	catalog, err := LoadBasemaps(path)
	if err != nil {
		t.Fatalf("LoadBasemaps failed: %v", err)
	}
	if len(catalog) != 1 || catalog[0].Name != "Local" {
		t.Errorf("catalog = %+v", catalog)
	}
}

func TestLoadBasemapsRejectsIncomplete(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/basemaps.yaml"
	if err := os.WriteFile(path, []byte("- name: NoTiles\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadBasemaps(path); err == nil {
		t.Fatal("expected error for entry without tiles URL")
	}
}
