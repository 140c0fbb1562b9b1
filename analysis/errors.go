package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingYear means the selected year has no directory under the
	// data root.
	ErrMissingYear = errors.New("no data directory for the selected year")

	// ErrNoTripData means the year directory exists but holds no trip
	// files at all.
	ErrNoTripData = errors.New("year directory contains no trip files")

	// ErrEmptyDataset means the trip files parsed but contained zero
	// rows, so the ratio metrics are undefined.
	ErrEmptyDataset = errors.New("trip dataset is empty")
)

// DataFormatError marks one file that could not be turned into usable
// rows: unreadable, unparseable, missing required columns, or an
// unrecognized field separator.
type DataFormatError struct {
	File string
	Err  error
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("unusable data file %s: %v", e.File, e.Err)
}

func (e *DataFormatError) Unwrap() error { return e.Err }
