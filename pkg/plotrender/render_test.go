package plotrender

import (
	"errors"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceDAQ/pkg/dashdaq"
	"github.com/OpenTraceLab/OpenTraceDAQ/pkg/plotplan"
)

const testLog = `Time,Speed,RPM,AFR
ms,kph,RPM,
0,0,900,N/A
100,1,950,N/A
200,2,N/A,N/A
300,3,1100,N/A
400,5,1300,N/A
`

func resolve(t *testing.T, names []string, mode plotplan.Mode) *plotplan.Plan {
	t.Helper()
	cat, table, err := dashdaq.Load(strings.NewReader(testLog))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	plan, err := plotplan.Resolve(table, cat, names, plotplan.FullWindow(table), mode)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	return plan
}

func TestRenderModes(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		mode  plotplan.Mode
		theme Theme
	}{
		{"overlay dark", []string{"Speed", "RPM"}, plotplan.Overlay, ThemeDark},
		{"separate light", []string{"Speed", "RPM", "AFR"}, plotplan.Separate, ThemeLight},
		{"all missing", []string{"AFR"}, plotplan.Separate, ThemeDark},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := resolve(t, tt.names, tt.mode)
			img, err := Render(plan, Options{Width: 640, Height: 480, DPI: 96, Theme: tt.theme, Title: "test"})
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			b := img.Bounds()
			if abs(b.Dx()-640) > 1 || abs(b.Dy()-480) > 1 {
				t.Errorf("image size = %dx%d, want 640x480", b.Dx(), b.Dy())
			}
		})
	}
}

func TestRenderEmptyPlan(t *testing.T) {
	if _, err := Render(nil, DefaultOptions()); !errors.Is(err, ErrEmptyPlan) {
		t.Errorf("Render(nil) error = %v", err)
	}
	if _, err := Render(&plotplan.Plan{}, DefaultOptions()); !errors.Is(err, ErrEmptyPlan) {
		t.Errorf("Render(empty) error = %v", err)
	}
}

func TestSegmentsSplitAtGaps(t *testing.T) {
	time := []float64{0, 1, 2, 3, 4, 5}
	values := dashdaq.Series{
		dashdaq.Num(1), dashdaq.Num(2), dashdaq.Missing,
		dashdaq.Num(4), dashdaq.Missing, dashdaq.Missing,
	}
	segs := segments(time, values)
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	if len(segs[0]) != 2 || len(segs[1]) != 1 {
		t.Errorf("segment lengths = %d, %d", len(segs[0]), len(segs[1]))
	}
	if segs[1][0].X != 3 || segs[1][0].Y != 4 {
		t.Errorf("second segment = %v", segs[1])
	}

	if got := segments(time, dashdaq.Series{dashdaq.Missing}); len(got) != 0 {
		t.Errorf("all-missing series produced %d segments", len(got))
	}
}

func TestThemePalettesDiffer(t *testing.T) {
	if ThemeDark.Palette() == ThemeLight.Palette() {
		t.Error("dark and light palettes are identical")
	}
	if Theme(42).Palette() != ThemeDark.Palette() {
		t.Error("unknown theme does not fall back to dark")
	}
	if SeriesColor(0) == SeriesColor(1) {
		t.Error("adjacent series share a colour")
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestThemeString(t *testing.T) {
	tests := []struct {
		theme Theme
		want  string
	}{
		{ThemeDark, "Dark"},
		{ThemeLight, "Light"},
		{Theme(9), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.theme.String(); got != tt.want {
			t.Errorf("Theme(%d).String() = %q, want %q", int(tt.theme), got, tt.want)
		}
	}
}
