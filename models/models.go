package models

import (
	"time"

	"github.com/paulmach/orb"
)

// Station is one BIXI dock location as listed in the yearly station file.
// Geometry duplicates Longitude/Latitude as an orb point so geo consumers
// (map document, GeoJSON endpoint) do not rebuild it per request.
type Station struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Geometry  orb.Point `json:"geometry"`
}

// Trip is one recorded rental. IsMember is the raw membership flag from
// the export: 1 for members, 0 for casual riders, -1 when the field held
// anything else.
type Trip struct {
	StartStationCode string
	EndStationCode   string
	StartDate        time.Time
	EndDate          time.Time
	DurationSec      float64
	IsMember         int
}

// PeriodShare is one time-of-day bucket's share of all trips in a year.
type PeriodShare struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
}

// YearlyAnalysis is the full result of aggregating one year of data.
// It is computed wholesale from one immutable load of the year's files
// and cached as-is; nothing updates it incrementally.
type YearlyAnalysis struct {
	Year               string        `json:"year"`
	AvgDurationMin     float64       `json:"avg_duration_min"`
	LoopProportionPct  float64       `json:"loop_proportion_pct"`
	MemberTrips        int           `json:"member_trips"`
	CasualTrips        int           `json:"casual_trips"`
	TotalTrips         int           `json:"total_trips"`
	PeriodDistribution []PeriodShare `json:"period_distribution"`
	Stations           []Station     `json:"stations"`
}
