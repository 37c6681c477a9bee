// Package plotplan turns a signal selection and a time window into a
// rendering plan over a loaded dashdaq.Table.
package plotplan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceDAQ/pkg/dashdaq"
)

var (
	// ErrEmptySelection is returned when no signal was selected.
	ErrEmptySelection = errors.New("plotplan: no signals selected")
	// ErrInvalidRange is returned when the clamped window contains no samples.
	ErrInvalidRange = errors.New("plotplan: time window contains no samples")
	// ErrUnknownMode is returned for a mode other than Separate or Overlay.
	ErrUnknownMode = errors.New("plotplan: unknown mode")
)

// UnknownSignalError reports a selected name that is not in the catalog.
type UnknownSignalError struct {
	Name string
}

func (e *UnknownSignalError) Error() string {
	return fmt.Sprintf("plotplan: unknown signal %q", e.Name)
}

// Mode selects how signals share axes.
type Mode int

const (
	// Separate draws each signal on its own axis.
	Separate Mode = iota
	// Overlay draws every signal on one shared axis.
	Overlay
)

func (m Mode) String() string {
	switch m {
	case Separate:
		return "separate"
	case Overlay:
		return "overlay"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts "separate" (or "subplots") and "overlay".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "separate", "subplots":
		return Separate, nil
	case "overlay":
		return Overlay, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownMode, s)
}

// Window is a closed interval of elapsed time in seconds.
type Window struct {
	Start, End float64
}

func (w Window) String() string {
	return fmt.Sprintf("[%.3f, %.3f]", w.Start, w.End)
}

// Zoom scales w about its centre. A factor below one narrows the window.
func (w Window) Zoom(factor float64) Window {
	centre := (w.Start + w.End) / 2
	half := (w.End - w.Start) / 2 * factor
	return Window{Start: centre - half, End: centre + half}
}

// FullWindow spans the whole time column of t.
func FullWindow(t *dashdaq.Table) Window {
	lo, hi := t.TimeRange()
	return Window{Start: lo, End: hi}
}

// Range is an inclusive span of row indices.
type Range struct {
	First, Last int
}

// Len returns the number of rows in the range.
func (r Range) Len() int { return r.Last - r.First + 1 }

// Entry is one signal drawn on an axis.
type Entry struct {
	Name   string
	Unit   string
	Label  string
	Values dashdaq.Series
}

// Axis groups the entries that share a y-scale.
type Axis struct {
	Entries []Entry
}

// WarningKind identifies a non-fatal correction applied to the request.
type WarningKind int

const (
	// WarnClamped means the window was pulled into the data's time range.
	WarnClamped WarningKind = iota
	// WarnSwapped means start and end were exchanged.
	WarnSwapped
)

// Warning describes a correction made while resolving.
type Warning struct {
	Kind    WarningKind
	Message string
}

func (w Warning) String() string { return w.Message }

// Plan is everything a renderer needs for one plot request.
//
// Time and every Entry.Values are slices of the source table restricted to
// Range and must not be modified.
type Plan struct {
	Mode     Mode
	Window   Window // effective window after corrections
	Range    Range
	Time     []float64
	Axes     []Axis
	Warnings []Warning
}

// EntryCount returns the total number of entries across all axes.
func (p *Plan) EntryCount() int {
	n := 0
	for _, ax := range p.Axes {
		n += len(ax.Entries)
	}
	return n
}

// Label formats a signal name for display, appending the unit in brackets
// when one is known.
func Label(name, unit string) string {
	if unit == "" {
		return name
	}
	return name + " [" + unit + "]"
}
