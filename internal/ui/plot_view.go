package ui

import (
	"image"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/OpenTraceLab/OpenTraceDAQ/pkg/plotplan"
	"github.com/OpenTraceLab/OpenTraceDAQ/pkg/plotrender"
)

// plotKey identifies a rendered image; the plan is only redrawn when one
// of its fields changes.
type plotKey struct {
	plan  *plotplan.Plan
	size  image.Point
	theme plotrender.Theme
}

// plotView paints a gonum/plot rendering of the current plan.
type plotView struct {
	key   plotKey
	image paint.ImageOp
	valid bool
}

func (v *plotView) reset() { *v = plotView{} }

// Layout fills the constraints with the rendered plan.
func (v *plotView) Layout(gtx layout.Context, plan *plotplan.Plan, theme plotrender.Theme, title string) error {
	size := gtx.Constraints.Max
	if size.X <= 0 || size.Y <= 0 {
		return nil
	}
	key := plotKey{plan: plan, size: size, theme: theme}
	if !v.valid || key != v.key {
		img, err := plotrender.Render(plan, renderOptions(size, gtx.Metric.PxPerDp, theme, title))
		if err != nil {
			v.reset()
			return err
		}
		v.image = paint.NewImageOp(img)
		v.key = key
		v.valid = true
	}

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	v.image.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	return nil
}

func renderOptions(size image.Point, pxPerDp float32, theme plotrender.Theme, title string) plotrender.Options {
	opts := plotrender.DefaultOptions()
	opts.Width, opts.Height = size.X, size.Y
	if pxPerDp > 0 {
		opts.DPI = int(96 * pxPerDp)
	}
	opts.Theme = theme
	opts.Title = title
	return opts
}
