// Package maps turns the enriched station table into a renderable map
// document: fixed Montréal viewport, selectable basemaps, and one
// cluster layer of labeled circle markers.
package maps

import (
	"github.com/paulmach/orb/geojson"

	"github.com/lawoh/bixi-stats/models"
)

// BIXI brand red, used for the station markers.
const markerColor = "#BC1E45"

const (
	centerLatitude  = 45.5236
	centerLongitude = -73.5985
	zoomLevel       = 12
	controlPosition = "topright"
	clusterName     = "Stations BIXI"
)

// Center is the initial map viewpoint.
type Center struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ClusterLayer groups every station marker under one clustering layer;
// the client delegates the actual clustering to the map widget.
type ClusterLayer struct {
	Name    string                     `json:"name"`
	Markers *geojson.FeatureCollection `json:"markers"`
}

// MapDocument is everything the dashboard page needs to draw the map.
type MapDocument struct {
	Center          Center       `json:"center"`
	Zoom            int          `json:"zoom"`
	Basemaps        []Basemap    `json:"basemaps"`
	Cluster         ClusterLayer `json:"cluster"`
	ControlPosition string       `json:"control_position"`
}

// Build produces the map document with the bundled basemap catalog.
func Build(stations []models.Station) *MapDocument {
	return BuildWith(stations, DefaultBasemaps())
}

// BuildWith produces the map document with a caller-supplied basemap
// catalog. The first registered basemap is the one active on load; no
// stations yields an empty cluster layer, not an error.
func BuildWith(stations []models.Station, basemaps []Basemap) *MapDocument {
	return &MapDocument{
		Center:          Center{Latitude: centerLatitude, Longitude: centerLongitude},
		Zoom:            zoomLevel,
		Basemaps:        basemaps,
		Cluster:         ClusterLayer{Name: clusterName, Markers: StationFeatures(stations)},
		ControlPosition: controlPosition,
	}
}

// StationFeatures converts the station table into a GeoJSON feature
// collection of circle markers, each labeled with the station name.
func StationFeatures(stations []models.Station) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, s := range stations {
		f := geojson.NewFeature(s.Geometry)
		f.Properties["code"] = s.Code
		f.Properties["name"] = s.Name
		f.Properties["radius"] = 10
		f.Properties["color"] = markerColor
		f.Properties["fillColor"] = markerColor
		f.Properties["fillOpacity"] = 0.7
		f.Properties["weight"] = 2
		fc.Append(f)
	}
	return fc
}
