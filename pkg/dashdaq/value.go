package dashdaq

import "math"

// Value is one cell of a signal column. Valid is false for cells that did
// not parse as a number; V is meaningless in that case.
type Value struct {
	V     float64
	Valid bool
}

// Num returns a valid Value holding v.
func Num(v float64) Value { return Value{V: v, Valid: true} }

// Missing is the marker stored for cells that failed numeric parsing.
var Missing = Value{}

// Series is a numeric column; missing cells keep their row position.
type Series []Value

// Counts returns the number of valid and missing cells.
func (s Series) Counts() (valid, missing int) {
	for _, v := range s {
		if v.Valid {
			valid++
		} else {
			missing++
		}
	}
	return valid, missing
}

// MinMax returns the range of the valid cells. ok is false when there are
// none.
func (s Series) MinMax() (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range s {
		if !v.Valid {
			continue
		}
		ok = true
		if v.V < min {
			min = v.V
		}
		if v.V > max {
			max = v.V
		}
	}
	if !ok {
		return 0, 0, false
	}
	return min, max, true
}

// AllMissing reports whether no cell in the series parsed.
func (s Series) AllMissing() bool {
	for _, v := range s {
		if v.Valid {
			return false
		}
	}
	return true
}
