package plotrender

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// Theme selects the colour set used for rendering.
type Theme int

const (
	ThemeDark Theme = iota
	ThemeLight
)

func (t Theme) String() string {
	switch t {
	case ThemeDark:
		return "Dark"
	case ThemeLight:
		return "Light"
	}
	return "Unknown"
}

// Palette holds the colours for one theme.
type Palette struct {
	Background color.NRGBA // figure background
	Panel      color.NRGBA // plot area
	Foreground color.NRGBA // text, axes and ticks
	Grid       color.NRGBA
	Accent     color.NRGBA
}

var palettes = map[Theme]Palette{
	ThemeDark: {
		Background: color.NRGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xFF},
		Panel:      color.NRGBA{R: 0x1E, G: 0x1E, B: 0x1E, A: 0xFF},
		Foreground: color.NRGBA{R: 0xF5, G: 0xF5, B: 0xF5, A: 0xFF},
		Grid:       color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF},
		Accent:     color.NRGBA{R: 0x1F, G: 0x6F, B: 0xEB, A: 0xFF},
	},
	ThemeLight: {
		Background: color.NRGBA{R: 0xF0, G: 0xF0, B: 0xF0, A: 0xFF},
		Panel:      color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		Foreground: color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
		Grid:       color.NRGBA{R: 0xCC, G: 0xCC, B: 0xCC, A: 0xFF},
		Accent:     color.NRGBA{R: 0x19, G: 0x76, B: 0xD2, A: 0xFF},
	},
}

// Palette returns the colours of t, falling back to the dark theme.
func (t Theme) Palette() Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[ThemeDark]
}

// Line colours, cycled per signal. Chosen to stay readable on both the
// dark and the light panel.
var seriesColors = []color.Color{
	colornames.Dodgerblue,
	colornames.Orangered,
	colornames.Limegreen,
	colornames.Goldenrod,
	colornames.Mediumorchid,
	colornames.Darkturquoise,
	colornames.Tomato,
	colornames.Slateblue,
}

// SeriesColor returns the line colour for the i-th signal.
func SeriesColor(i int) color.Color {
	if i < 0 {
		i = -i
	}
	return seriesColors[i%len(seriesColors)]
}
