// Package charts renders the period-distribution bar chart served next
// to the map on the dashboard.
package charts

import (
	"fmt"
	"io"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/lawoh/bixi-stats/models"
)

var barColor = drawing.ColorFromHex("BC1E45")

// SortedDescending returns a copy of the distribution ordered by share,
// largest first. Ties keep the original bucket order.
func SortedDescending(distribution []models.PeriodShare) []models.PeriodShare {
	sorted := make([]models.PeriodShare, len(distribution))
	copy(sorted, distribution)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Percent > sorted[j].Percent
	})
	return sorted
}

// RenderPeriodDistribution writes a PNG bar chart of the time-of-day
// distribution, sorted descending by value.
func RenderPeriodDistribution(distribution []models.PeriodShare, w io.Writer) error {
	if len(distribution) == 0 {
		return fmt.Errorf("nothing to chart: empty distribution")
	}

	sorted := SortedDescending(distribution)
	bars := make([]chart.Value, len(sorted))
	for i, share := range sorted {
		bars[i] = chart.Value{
			Label: share.Label,
			Value: share.Percent,
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		}
	}

	graph := chart.BarChart{
		Title:    "Trips by time of day",
		Width:    800,
		Height:   600,
		BarWidth: 70,
		Bars:     bars,
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f%%", f)
				}
				return ""
			},
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
	}
	return graph.Render(chart.PNG, w)
}
