package plotplan

import (
	"fmt"
	"math"

	"github.com/OpenTraceLab/OpenTraceDAQ/pkg/dashdaq"
)

// Resolve builds the plan for plotting names over window in the given mode.
//
// A window that reaches outside the data is clamped and a reversed window
// is swapped; both are reported through Plan.Warnings. Resolve fails with
// ErrEmptySelection, *UnknownSignalError, ErrUnknownMode, or ErrInvalidRange
// when the corrected window selects no rows.
func Resolve(table *dashdaq.Table, catalog *dashdaq.Catalog, names []string, window Window, mode Mode) (*Plan, error) {
	if len(names) == 0 {
		return nil, ErrEmptySelection
	}
	for _, name := range names {
		if !catalog.Has(name) {
			return nil, &UnknownSignalError{Name: name}
		}
		if _, ok := table.Series(name); !ok {
			return nil, &UnknownSignalError{Name: name}
		}
	}

	eff, warnings := clampWindow(window, FullWindow(table))
	rows, ok := selectRows(table.Time(), eff)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRange, eff)
	}

	plan := &Plan{
		Mode:     mode,
		Window:   eff,
		Range:    rows,
		Time:     table.Time()[rows.First : rows.Last+1],
		Warnings: warnings,
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		unit, _ := catalog.Unit(name)
		series, _ := table.Series(name)
		entries = append(entries, Entry{
			Name:   name,
			Unit:   unit,
			Label:  Label(name, unit),
			Values: series[rows.First : rows.Last+1],
		})
	}

	switch mode {
	case Overlay:
		plan.Axes = []Axis{{Entries: entries}}
	case Separate:
		plan.Axes = make([]Axis, len(entries))
		for i, e := range entries {
			plan.Axes[i] = Axis{Entries: []Entry{e}}
		}
	default:
		return nil, fmt.Errorf("%w %s", ErrUnknownMode, mode)
	}
	return plan, nil
}

// clampWindow pulls w into bounds. NaN endpoints fall back to the matching
// bound.
func clampWindow(w, bounds Window) (Window, []Warning) {
	var warnings []Warning
	eff := Window{
		Start: clamp(w.Start, bounds),
		End:   clamp(w.End, bounds),
	}
	if eff.Start != w.Start || eff.End != w.End {
		if math.IsNaN(w.Start) {
			eff.Start = bounds.Start
		}
		if math.IsNaN(w.End) {
			eff.End = bounds.End
		}
		warnings = append(warnings, Warning{
			Kind:    WarnClamped,
			Message: fmt.Sprintf("time window %s clamped to data range %s", w, eff),
		})
	}
	if eff.Start > eff.End {
		eff.Start, eff.End = eff.End, eff.Start
		warnings = append(warnings, Warning{
			Kind:    WarnSwapped,
			Message: fmt.Sprintf("start after end, using %s", eff),
		})
	}
	return eff, warnings
}

func clamp(v float64, bounds Window) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.Min(math.Max(v, bounds.Start), bounds.End)
}

// selectRows returns the span from the first to the last sample inside w.
// Time is normally non-decreasing, in which case every row of the span is
// inside w.
func selectRows(time []float64, w Window) (Range, bool) {
	first, last := -1, -1
	for i, t := range time {
		if t < w.Start || t > w.End {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		return Range{}, false
	}
	return Range{First: first, Last: last}, true
}
