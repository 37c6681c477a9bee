package ui

import (
	"gioui.org/unit"

	"github.com/OpenTraceLab/OpenTraceDAQ/pkg/plotplan"
)

// Options carries the launch-time settings of the viewer. Nothing is
// persisted between runs.
type Options struct {
	DarkMode bool          // start with the dark palette
	Mode     plotplan.Mode // initial plot mode
	Width    unit.Dp
	Height   unit.Dp
	File     string // log to open at startup, optional
}

// DefaultOptions returns the settings used when no flags are given.
func DefaultOptions() Options {
	return Options{
		DarkMode: true,
		Mode:     plotplan.Separate,
		Width:    1150,
		Height:   680,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	return o
}
