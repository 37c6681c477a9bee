package dashdaq

import "math"

// Table is the normalized content of one log. Every series has exactly
// Rows() entries, aligned with the time column.
//
// A Table is never mutated after Load; slices returned by its accessors
// share its storage and must be treated as read-only.
type Table struct {
	// Metadata holds the rows that preceded the header, verbatim.
	Metadata [][]string
	// TimeUnit is the units-row cell of the time column as written in the log.
	TimeUnit string

	time    []float64
	columns map[string]Series
	order   []string
	dropped int
}

// Rows returns the number of data rows.
func (t *Table) Rows() int { return len(t.time) }

// Time returns the elapsed-time column in seconds.
func (t *Table) Time() []float64 { return t.time }

// Series returns the column of the named signal.
func (t *Table) Series(name string) (Series, bool) {
	s, ok := t.columns[name]
	return s, ok
}

// DroppedRows returns how many data rows were discarded because their time
// cell was not numeric.
func (t *Table) DroppedRows() int { return t.dropped }

// TimeRange returns the smallest and largest elapsed time.
func (t *Table) TimeRange() (min, max float64) {
	if len(t.time) == 0 {
		return 0, 0
	}
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range t.time {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	return min, max
}

// Monotonic reports whether elapsed time never decreases. Load does not
// reorder rows, so a false result is a property of the source log.
func (t *Table) Monotonic() bool {
	for i := 1; i < len(t.time); i++ {
		if t.time[i] < t.time[i-1] {
			return false
		}
	}
	return true
}

// Summary describes the contents of one signal column.
type Summary struct {
	Name     string
	Valid    int
	Missing  int
	Min, Max float64 // zero when Valid == 0
}

// Summary returns statistics for the named signal.
func (t *Table) Summary(name string) (Summary, bool) {
	s, ok := t.columns[name]
	if !ok {
		return Summary{}, false
	}
	sum := Summary{Name: name}
	sum.Valid, sum.Missing = s.Counts()
	sum.Min, sum.Max, _ = s.MinMax()
	return sum, true
}

// Summaries returns a Summary per signal in column order.
func (t *Table) Summaries() []Summary {
	out := make([]Summary, 0, len(t.order))
	for _, name := range t.order {
		sum, _ := t.Summary(name)
		out = append(out, sum)
	}
	return out
}

// Elapsed converts raw time stamps into seconds since the first sample.
// Values are divided by 1000 when unit is "ms" (any case) and used as
// seconds otherwise. The result is freshly allocated; raw is not modified.
func Elapsed(raw []float64, unit string) []float64 {
	out := make([]float64, len(raw))
	if len(raw) == 0 {
		return out
	}
	scale := 1.0
	if isMillis(unit) {
		scale = 1000
	}
	origin := raw[0]
	for i, v := range raw {
		out[i] = (v - origin) / scale
	}
	return out
}
