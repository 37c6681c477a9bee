// Package plotrender draws a plotplan.Plan into a raster image with
// gonum/plot.
package plotrender

import (
	"errors"
	"fmt"
	"image"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/OpenTraceLab/OpenTraceDAQ/pkg/dashdaq"
	"github.com/OpenTraceLab/OpenTraceDAQ/pkg/plotplan"
)

// ErrEmptyPlan is returned for a nil plan or one without axes.
var ErrEmptyPlan = errors.New("plotrender: nothing to plot")

// Options controls the rendered image.
type Options struct {
	Width  int // pixels
	Height int // pixels
	DPI    int
	Theme  Theme
	Title  string
}

// DefaultOptions returns a 960x600 dark rendering at 96 DPI.
func DefaultOptions() Options {
	return Options{Width: 960, Height: 600, DPI: 96, Theme: ThemeDark}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.DPI <= 0 {
		o.DPI = d.DPI
	}
	return o
}

// Render draws plan. Separate plans are stacked vertically with aligned
// axes, one plot per Axis; overlay plans draw a single plot with a legend.
func Render(plan *plotplan.Plan, opts Options) (image.Image, error) {
	if plan == nil || len(plan.Axes) == 0 {
		return nil, ErrEmptyPlan
	}
	opts = opts.normalized()
	pal := opts.Theme.Palette()

	plots := make([][]*plot.Plot, len(plan.Axes))
	for i, ax := range plan.Axes {
		p, err := axisPlot(plan, i, ax, pal)
		if err != nil {
			return nil, err
		}
		plots[i] = []*plot.Plot{p}
	}
	if opts.Title != "" {
		plots[0][0].Title.Text = opts.Title
	}

	c := vgimg.NewWith(
		vgimg.UseWH(toLength(opts.Width, opts.DPI), toLength(opts.Height, opts.DPI)),
		vgimg.UseDPI(opts.DPI),
		vgimg.UseBackgroundColor(pal.Background),
	)
	dc := draw.New(c)

	if len(plots) == 1 {
		plots[0][0].Draw(dc)
		return c.Image(), nil
	}

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadY:      vg.Points(6),
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}
	return c.Image(), nil
}

func axisPlot(plan *plotplan.Plan, idx int, ax plotplan.Axis, pal Palette) (*plot.Plot, error) {
	p := plot.New()
	applyPalette(p, pal)

	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Value"
	if plan.Mode == plotplan.Separate && len(ax.Entries) == 1 {
		p.Y.Label.Text = ax.Entries[0].Label
	}

	grid := plotter.NewGrid()
	grid.Vertical.Color = pal.Grid
	grid.Horizontal.Color = pal.Grid
	p.Add(grid)

	hasData := false
	for j, e := range ax.Entries {
		col := SeriesColor(idx + j)
		var thumb plot.Thumbnailer
		for _, seg := range segments(plan.Time, e.Values) {
			if len(seg) == 1 {
				sc, err := plotter.NewScatter(seg)
				if err != nil {
					return nil, fmt.Errorf("plotrender: %s: %w", e.Name, err)
				}
				sc.GlyphStyle.Color = col
				sc.GlyphStyle.Radius = vg.Points(1.5)
				sc.GlyphStyle.Shape = draw.CircleGlyph{}
				p.Add(sc)
				if thumb == nil {
					thumb = sc
				}
				continue
			}
			line, err := plotter.NewLine(seg)
			if err != nil {
				return nil, fmt.Errorf("plotrender: %s: %w", e.Name, err)
			}
			line.Color = col
			line.Width = vg.Points(1.2)
			p.Add(line)
			if thumb == nil {
				thumb = line
			}
		}
		if thumb != nil {
			hasData = true
			if plan.Mode == plotplan.Overlay {
				p.Legend.Add(e.Label, thumb)
			}
		}
	}

	if lo, hi, ok := span(plan.Time); ok {
		p.X.Min, p.X.Max = lo, hi
	}
	if !hasData {
		p.Y.Min, p.Y.Max = 0, 1
	}
	return p, nil
}

func applyPalette(p *plot.Plot, pal Palette) {
	p.BackgroundColor = pal.Panel
	p.Title.TextStyle.Color = pal.Foreground
	p.Legend.TextStyle.Color = pal.Foreground
	p.Legend.Top = true
	for _, a := range []*plot.Axis{&p.X, &p.Y} {
		a.Color = pal.Foreground
		a.Label.TextStyle.Color = pal.Foreground
		a.Tick.Color = pal.Foreground
		a.Tick.Label.Color = pal.Foreground
	}
}

// segments splits a series at missing values so that gaps are left blank
// instead of being bridged by a line.
func segments(time []float64, values dashdaq.Series) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	n := min(len(time), len(values))
	for i := 0; i < n; i++ {
		if !values[i].Valid {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: time[i], Y: values[i].V})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func span(xs []float64) (lo, hi float64, ok bool) {
	if len(xs) == 0 {
		return 0, 0, false
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi, true
}

func toLength(px, dpi int) vg.Length {
	return vg.Length(px) * vg.Inch / vg.Length(dpi)
}
