package dashdaq

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const timeHeader = "Time"

// LoadFile opens path and loads it with Load.
func LoadFile(path string) (*Catalog, *Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("dashdaq: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a complete DashDAQ export from r.
//
// The returned error is a *MalformedLogError when the log has no header row
// or no numeric time stamps, and a wrapped I/O error when r fails.
func Load(r io.Reader) (*Catalog, *Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("dashdaq: read log: %w", err)
	}
	return normalize(readRows(decodeText(data)))
}

// readRows tokenises the text into cells. Rows that the CSV reader rejects
// are skipped so that a damaged line does not hide the rest of the file.
func readRows(text string) [][]string {
	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				continue
			}
			break
		}
		rows = append(rows, rec)
	}
	return rows
}

type column struct {
	pos  int
	name string
	unit string
}

func normalize(rows [][]string) (*Catalog, *Table, error) {
	header := findHeader(rows)
	if header < 0 {
		return nil, nil, malformed(0, "no header row starting with %q", timeHeader)
	}

	names := rows[header]
	dataStart := header + 1
	var units []string
	if dataStart < len(rows) && isUnitsRow(rows[dataStart]) {
		units = rows[dataStart]
		dataStart++
	}

	cols := selectColumns(names, units)

	table := &Table{
		Metadata: rows[:header],
		TimeUnit: cellAt(units, 0),
		columns:  make(map[string]Series, len(cols)),
		order:    make([]string, len(cols)),
	}

	var rawTime []float64
	series := make([]Series, len(cols))
	for _, row := range rows[dataStart:] {
		t, ok := parseNumber(cellAt(row, 0))
		if !ok {
			table.dropped++
			continue
		}
		rawTime = append(rawTime, t)
		for i, c := range cols {
			if v, ok := parseNumber(cellAt(row, c.pos)); ok {
				series[i] = append(series[i], Num(v))
			} else {
				series[i] = append(series[i], Missing)
			}
		}
	}
	if len(rawTime) == 0 {
		return nil, nil, malformed(header+1, "time column has no numeric values")
	}

	table.time = Elapsed(rawTime, table.TimeUnit)
	signals := make([]Signal, len(cols))
	for i, c := range cols {
		signals[i] = Signal{Name: c.name, Unit: c.unit}
		table.order[i] = c.name
		table.columns[c.name] = series[i]
	}
	return newCatalog(signals), table, nil
}

// findHeader returns the index of the first row whose first cell is "Time",
// or -1.
func findHeader(rows [][]string) int {
	for i, row := range rows {
		if len(row) > 0 && strings.EqualFold(cleanCell(row[0]), timeHeader) {
			return i
		}
	}
	return -1
}

// isUnitsRow reports whether the row following the header carries units.
// A data row always starts with a numeric time stamp; a units row does not.
func isUnitsRow(row []string) bool {
	_, numeric := parseNumber(cellAt(row, 0))
	return !numeric
}

// selectColumns picks the signal columns to keep. Unnamed columns are
// dropped, which is how the trailing comma of DashDAQ rows shows up, and so
// are columns the units row does not reach when there is one.
func selectColumns(names, units []string) []column {
	limit := len(names)
	if units != nil {
		limit = min(limit, len(units))
	}

	seen := map[string]bool{timeHeader: true}
	var cols []column
	for pos := 1; pos < limit; pos++ {
		name := cleanCell(names[pos])
		if name == "" {
			continue
		}
		name = uniqueName(name, seen)
		seen[name] = true
		cols = append(cols, column{pos: pos, name: name, unit: cleanCell(cellAt(units, pos))})
	}
	return cols
}

// uniqueName suffixes repeated column names with ".1", ".2", ...
func uniqueName(name string, seen map[string]bool) string {
	if !seen[name] {
		return name
	}
	for n := 1; ; n++ {
		candidate := name + "." + strconv.Itoa(n)
		if !seen[candidate] {
			return candidate
		}
	}
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func cleanCell(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"`))
}

// parseNumber parses a cell as a finite float64.
func parseNumber(s string) (float64, bool) {
	s = cleanCell(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func isMillis(unit string) bool {
	return strings.EqualFold(cleanCell(unit), "ms")
}
