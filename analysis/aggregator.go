// Package analysis loads one year of BIXI station and trip exports and
// reduces them to the dashboard's yearly statistics.
package analysis

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"

	"github.com/lawoh/bixi-stats/models"
)

const (
	stationFilePrefix = "Stations"
	tabularExt        = ".csv"
)

// periodLabels are the four time-of-day buckets, in hour order. A trip
// belongs to bucket StartDate.Hour()/6, so hour 0 lands in 0h-6h and
// hour 23 in 18h-24h.
var periodLabels = [4]string{"0h-6h", "6h-12h", "12h-18h", "18h-24h"}

var tripTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02",
}

// ListYears returns the sorted names of the year directories under the
// data root.
func ListYears(dataDir string) ([]string, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("read data directory: %w", err)
	}
	var years []string
	for _, e := range entries {
		if e.IsDir() {
			years = append(years, e.Name())
		}
	}
	sort.Strings(years)
	return years, nil
}

// DefaultYear resolves the year the dashboard should open on: the
// preferred year when available, otherwise the most recent one. The
// second return is false only when no years exist at all.
func DefaultYear(years []string, preferred string) (string, bool) {
	if len(years) == 0 {
		return "", false
	}
	for _, y := range years {
		if y == preferred {
			return y, true
		}
	}
	return years[len(years)-1], true
}

// Analyze loads the station file and every trip file for one year and
// computes the yearly statistics. It is a pure function of the files on
// disk; memoization is the caller's concern.
func Analyze(year, dataDir string) (*models.YearlyAnalysis, error) {
	yearDir := filepath.Join(dataDir, year)
	info, err := os.Stat(yearDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrMissingYear, year)
	}

	stations, err := loadStations(yearDir, year)
	if err != nil {
		return nil, err
	}

	tripFiles, err := listTripFiles(yearDir)
	if err != nil {
		return nil, err
	}
	if len(tripFiles) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTripData, yearDir)
	}

	var trips []models.Trip
	for _, path := range tripFiles {
		rows, err := loadTrips(path)
		if err != nil {
			return nil, err
		}
		trips = append(trips, rows...)
	}
	if len(trips) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDataset, yearDir)
	}

	return summarize(year, stations, trips), nil
}

func loadStations(yearDir, year string) ([]models.Station, error) {
	path := filepath.Join(yearDir, stationFilePrefix+"_"+year+tabularExt)
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if err := t.requireColumns(path, "code", "name", "latitude", "longitude"); err != nil {
		return nil, err
	}

	stations := make([]models.Station, 0, len(t.rows))
	for _, row := range t.rows {
		if len(row) == 0 {
			continue
		}
		lat, latErr := strconv.ParseFloat(t.col(row, "latitude"), 64)
		lon, lonErr := strconv.ParseFloat(t.col(row, "longitude"), 64)
		if latErr != nil || lonErr != nil {
			return nil, &DataFormatError{File: path, Err: fmt.Errorf("station %q has unparseable coordinates", t.col(row, "code"))}
		}
		stations = append(stations, models.Station{
			Code:      t.col(row, "code"),
			Name:      t.col(row, "name"),
			Latitude:  lat,
			Longitude: lon,
			Geometry:  orb.Point{lon, lat},
		})
	}
	return stations, nil
}

// listTripFiles returns every tabular file in the year directory that is
// not the station file, in directory-enumeration order. Row order across
// files is a deterministic artifact of that order, not a contract.
func listTripFiles(yearDir string) ([]string, error) {
	entries, err := os.ReadDir(yearDir)
	if err != nil {
		return nil, fmt.Errorf("read year directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, tabularExt) || strings.HasPrefix(name, stationFilePrefix) {
			continue
		}
		files = append(files, filepath.Join(yearDir, name))
	}
	return files, nil
}

func loadTrips(path string) ([]models.Trip, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	required := []string{"start_date", "end_date", "duration_sec", "start_station_code", "end_station_code", "is_member"}
	if err := t.requireColumns(path, required...); err != nil {
		return nil, err
	}

	trips := make([]models.Trip, 0, len(t.rows))
	for _, row := range t.rows {
		if len(row) == 0 {
			continue
		}
		start, err := parseTripTime(t.col(row, "start_date"))
		if err != nil {
			return nil, &DataFormatError{File: path, Err: err}
		}
		end, err := parseTripTime(t.col(row, "end_date"))
		if err != nil {
			return nil, &DataFormatError{File: path, Err: err}
		}
		duration, err := strconv.ParseFloat(t.col(row, "duration_sec"), 64)
		if err != nil {
			return nil, &DataFormatError{File: path, Err: fmt.Errorf("bad duration_sec %q", t.col(row, "duration_sec"))}
		}

		// Flags other than 0/1 stay out of both membership buckets.
		member := -1
		if v, convErr := strconv.Atoi(strings.TrimSpace(t.col(row, "is_member"))); convErr == nil && (v == 0 || v == 1) {
			member = v
		}

		trips = append(trips, models.Trip{
			StartStationCode: t.col(row, "start_station_code"),
			EndStationCode:   t.col(row, "end_station_code"),
			StartDate:        start,
			EndDate:          end,
			DurationSec:      duration,
			IsMember:         member,
		})
	}
	return trips, nil
}

func parseTripTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range tripTimeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", value)
}

func summarize(year string, stations []models.Station, trips []models.Trip) *models.YearlyAnalysis {
	var durationSum float64
	var loops, members, casuals int
	var bucketCounts [4]int

	for _, trip := range trips {
		durationSum += trip.DurationSec
		if trip.StartStationCode == trip.EndStationCode {
			loops++
		}
		switch trip.IsMember {
		case 1:
			members++
		case 0:
			casuals++
		}
		bucketCounts[trip.StartDate.Hour()/6]++
	}

	total := len(trips)
	distribution := make([]models.PeriodShare, len(periodLabels))
	for i, label := range periodLabels {
		distribution[i] = models.PeriodShare{
			Label:   label,
			Percent: 100 * float64(bucketCounts[i]) / float64(total),
		}
	}

	return &models.YearlyAnalysis{
		Year:               year,
		AvgDurationMin:     durationSum / float64(total) / 60,
		LoopProportionPct:  100 * float64(loops) / float64(total),
		MemberTrips:        members,
		CasualTrips:        casuals,
		TotalTrips:         total,
		PeriodDistribution: distribution,
		Stations:           stations,
	}
}
