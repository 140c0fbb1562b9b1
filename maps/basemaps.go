package maps

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Basemap is one selectable background tile layer. Tiles is a Leaflet
// style URL template.
type Basemap struct {
	Name        string `json:"name" yaml:"name"`
	Tiles       string `json:"tiles" yaml:"tiles"`
	Attribution string `json:"attribution" yaml:"attribution"`
}

// DefaultBasemaps returns the bundled catalog. Registration order
// matters: the first entry is the layer active when the map loads.
func DefaultBasemaps() []Basemap {
	return []Basemap{
		{
			Name:        "Satellite",
			Tiles:       "https://mt1.google.com/vt/lyrs=s&x={x}&y={y}&z={z}",
			Attribution: "© Google Maps",
		},
		{
			Name:        "Terrain",
			Tiles:       "https://mt1.google.com/vt/lyrs=p&x={x}&y={y}&z={z}",
			Attribution: "© Google Maps",
		},
		{
			Name:        "Sombre",
			Tiles:       "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png",
			Attribution: "© OpenStreetMap contributors",
		},
		{
			Name:        "OpenStreetMap",
			Tiles:       "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png",
			Attribution: "© OpenStreetMap contributors",
		},
	}
}

// LoadBasemaps reads a basemap catalog from a YAML file, letting a
// deployment swap tile providers without a rebuild.
func LoadBasemaps(path string) ([]Basemap, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read basemap catalog: %w", err)
	}
	var catalog []Basemap
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("parse basemap catalog: %w", err)
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("basemap catalog %s is empty", path)
	}
	for _, b := range catalog {
		if b.Name == "" || b.Tiles == "" {
			return nil, fmt.Errorf("basemap catalog %s: every entry needs a name and a tiles URL", path)
		}
	}
	return catalog, nil
}
