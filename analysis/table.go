package analysis

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// table is one parsed delimited file: a normalized header index plus the
// data rows in file order.
type table struct {
	index map[string]int
	rows  [][]string
}

func (t *table) col(row []string, name string) string {
	i, ok := t.index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func (t *table) requireColumns(path string, names ...string) error {
	for _, n := range names {
		if _, ok := t.index[n]; !ok {
			return &DataFormatError{File: path, Err: fmt.Errorf("missing column %q", n)}
		}
	}
	return nil
}

// readTable parses a delimited file assuming a comma separator, then
// retries with ';' when the naive parse collapses into a single column
// whose header still contains a ';'. Some yearly exports from the BIXI
// open-data portal use semicolons; both forms must load identically.
func readTable(path string) (*table, error) {
	t, err := readDelimited(path, ',')
	if err != nil {
		return nil, err
	}
	if len(t.index) == 1 && singleHeaderContains(t.index, ";") {
		t, err = readDelimited(path, ';')
		if err != nil {
			return nil, err
		}
	}
	if len(t.index) < 2 {
		return nil, &DataFormatError{File: path, Err: fmt.Errorf("parsed a single column, unknown field separator")}
	}
	return t, nil
}

func singleHeaderContains(index map[string]int, sep string) bool {
	for header := range index {
		if strings.Contains(header, sep) {
			return true
		}
	}
	return false
}

func readDelimited(path string, sep rune) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataFormatError{File: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = sep
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, &DataFormatError{File: path, Err: err}
	}
	if len(records) == 0 {
		return nil, &DataFormatError{File: path, Err: fmt.Errorf("file has no header row")}
	}

	index := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		index[normalizeHeader(h)] = i
	}
	return &table{index: index, rows: records[1:]}, nil
}

func normalizeHeader(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	return strings.ToLower(strings.TrimSpace(s))
}
