package dashdaq

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const scenarioA = `Time,Speed,RPM
ms,kph,RPM
0,0,900
100,1,950
200,2,1000
`

func mustLoad(t *testing.T, text string) (*Catalog, *Table) {
	t.Helper()
	cat, table, err := Load(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return cat, table
}

func TestLoadScenarioA(t *testing.T) {
	cat, table := mustLoad(t, scenarioA)

	want := []Signal{{Name: "Speed", Unit: "kph"}, {Name: "RPM", Unit: "RPM"}}
	if got := cat.Signals(); !reflect.DeepEqual(got, want) {
		t.Fatalf("catalog = %v, want %v", got, want)
	}
	if got, want := table.Time(), []float64{0.0, 0.1, 0.2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("time = %v, want %v", got, want)
	}
	if table.TimeUnit != "ms" {
		t.Errorf("TimeUnit = %q, want ms", table.TimeUnit)
	}

	rpm, ok := table.Series("RPM")
	if !ok {
		t.Fatal("RPM series missing")
	}
	if want := (Series{Num(900), Num(950), Num(1000)}); !reflect.DeepEqual(rpm, want) {
		t.Errorf("RPM = %v, want %v", rpm, want)
	}
}

func TestLoadWithoutUnitsRow(t *testing.T) {
	text := "Time,Speed,RPM\n0,0,900\n100,1,950\n200,2,1000\n"
	cat, table := mustLoad(t, text)

	want := []Signal{{Name: "Speed"}, {Name: "RPM"}}
	if got := cat.Signals(); !reflect.DeepEqual(got, want) {
		t.Fatalf("catalog = %v, want %v", got, want)
	}
	if table.Rows() != 3 {
		t.Fatalf("rows = %d, want 3", table.Rows())
	}
	// No unit means the raw values are taken as seconds.
	if got, want := table.Time(), []float64{0, 100, 200}; !reflect.DeepEqual(got, want) {
		t.Errorf("time = %v, want %v", got, want)
	}
}

func TestLoadSkipsMetadata(t *testing.T) {
	withMeta := "\"DashDAQ Log File\"\n\"Format\",\"2.0\"\n\"Vehicle\",\"Pajero\",\"4M41\"\n" + scenarioA

	catA, tableA := mustLoad(t, scenarioA)
	catB, tableB := mustLoad(t, withMeta)

	if !reflect.DeepEqual(catA.Signals(), catB.Signals()) {
		t.Errorf("catalog differs: %v vs %v", catA.Signals(), catB.Signals())
	}
	if !reflect.DeepEqual(tableA.Time(), tableB.Time()) {
		t.Errorf("time differs: %v vs %v", tableA.Time(), tableB.Time())
	}
	for _, name := range catA.Names() {
		a, _ := tableA.Series(name)
		b, _ := tableB.Series(name)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s differs: %v vs %v", name, a, b)
		}
	}
	if len(tableB.Metadata) != 3 {
		t.Errorf("metadata rows = %d, want 3", len(tableB.Metadata))
	}
	if len(tableA.Metadata) != 0 {
		t.Errorf("metadata rows = %d, want 0", len(tableA.Metadata))
	}
}

func TestLoadQuotedFieldsWithCommas(t *testing.T) {
	text := `"DashDAQ Log File"
"Vehicle","Pajero, 4M41","Driver: Smith, J."
"Time","Speed, GPS","RPM"
"ms","kph","RPM"
0,"1,5",900
100,2,950
`
	cat, table := mustLoad(t, text)

	wantSignals := []Signal{{Name: "Speed, GPS", Unit: "kph"}, {Name: "RPM", Unit: "RPM"}}
	if got := cat.Signals(); !reflect.DeepEqual(got, wantSignals) {
		t.Fatalf("signals = %v, want %v", got, wantSignals)
	}

	speed, _ := table.Series("Speed, GPS")
	if want := (Series{Missing, Num(2)}); !reflect.DeepEqual(speed, want) {
		t.Errorf("Speed = %v, want %v", speed, want)
	}
	// The quoted cell must not shift the columns after it.
	rpm, _ := table.Series("RPM")
	if want := (Series{Num(900), Num(950)}); !reflect.DeepEqual(rpm, want) {
		t.Errorf("RPM = %v, want %v", rpm, want)
	}

	if len(table.Metadata) != 2 {
		t.Fatalf("metadata rows = %d, want 2", len(table.Metadata))
	}
	if got, want := table.Metadata[1], []string{"Vehicle", "Pajero, 4M41", "Driver: Smith, J."}; !reflect.DeepEqual(got, want) {
		t.Errorf("metadata row = %q, want %q", got, want)
	}
}

func TestLoadUnparseableCellBecomesMissing(t *testing.T) {
	text := "Time,Speed,RPM\nms,kph,RPM\n0,0,900\n100,N/A,950\n200,2,1000\n"
	_, table := mustLoad(t, text)

	speed, _ := table.Series("Speed")
	want := Series{Num(0), Missing, Num(2)}
	if !reflect.DeepEqual(speed, want) {
		t.Fatalf("Speed = %v, want %v", speed, want)
	}
	rpm, _ := table.Series("RPM")
	if valid, missing := rpm.Counts(); valid != 3 || missing != 0 {
		t.Errorf("RPM counts = %d/%d, want 3/0", valid, missing)
	}
}

func TestLoadHeaderVariants(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"quoted", `"Time","Speed"`},
		{"lower case", `time,Speed`},
		{"padded", `  TIME ,Speed`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, _ := mustLoad(t, tt.header+"\nms,kph\n0,1\n")
			if got := cat.Names(); !reflect.DeepEqual(got, []string{"Speed"}) {
				t.Errorf("names = %v, want [Speed]", got)
			}
		})
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"no header", "Speed,RPM\n1,2\n"},
		{"header not first cell", "Speed,Time\nkph,ms\n1,2\n"},
		{"header only", "Time,Speed\nms,kph\n"},
		{"non numeric time", "Time,Speed\nms,kph\nstart,1\nlater,2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(strings.NewReader(tt.text))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrMalformedLog) {
				t.Errorf("error %v does not match ErrMalformedLog", err)
			}
			var me *MalformedLogError
			if !errors.As(err, &me) {
				t.Errorf("error %T is not *MalformedLogError", err)
			}
		})
	}
}

func TestLoadTrimsTrailingColumns(t *testing.T) {
	text := "Time,Speed,RPM,,Extra\nms,kph,RPM\n0,1,900,,5\n100,2,950,,6\n"
	cat, table := mustLoad(t, text)

	if got := cat.Names(); !reflect.DeepEqual(got, []string{"Speed", "RPM"}) {
		t.Fatalf("names = %v, want [Speed RPM]", got)
	}
	if _, ok := table.Series("Extra"); ok {
		t.Error("column past the units row was kept")
	}
}

func TestLoadEmptyUnitInsideRow(t *testing.T) {
	text := "Time,Speed,AFR,RPM\nms,kph,,RPM\n0,1,14.7,900\n"
	cat, _ := mustLoad(t, text)

	unit, ok := cat.Unit("AFR")
	if !ok {
		t.Fatal("AFR dropped")
	}
	if unit != "" {
		t.Errorf("AFR unit = %q, want empty", unit)
	}
}

func TestLoadRaggedAndDroppedRows(t *testing.T) {
	text := "Time,Speed,RPM\nms,kph,RPM\n0,1,900\n100,2\nbad,3,950\n300,4,1000,99\n"
	_, table := mustLoad(t, text)

	if table.Rows() != 3 {
		t.Fatalf("rows = %d, want 3", table.Rows())
	}
	if table.DroppedRows() != 1 {
		t.Errorf("dropped = %d, want 1", table.DroppedRows())
	}
	rpm, _ := table.Series("RPM")
	if rpm[1].Valid {
		t.Errorf("short row should yield a missing RPM, got %v", rpm[1])
	}
	if got, want := table.Time(), []float64{0, 0.1, 0.3}; !reflect.DeepEqual(got, want) {
		t.Errorf("time = %v, want %v", got, want)
	}
}

func TestLoadDuplicateNames(t *testing.T) {
	text := "Time,Temp,Temp,Temp\nms,C,C,C\n0,1,2,3\n"
	cat, table := mustLoad(t, text)

	want := []string{"Temp", "Temp.1", "Temp.2"}
	if got := cat.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	s, _ := table.Series("Temp.2")
	if !reflect.DeepEqual(s, Series{Num(3)}) {
		t.Errorf("Temp.2 = %v", s)
	}
}

func TestLoadNonMonotonicTimePassesThrough(t *testing.T) {
	text := "Time,Speed\nms,kph\n0,1\n200,2\n100,3\n"
	_, table := mustLoad(t, text)

	if got, want := table.Time(), []float64{0, 0.2, 0.1}; !reflect.DeepEqual(got, want) {
		t.Fatalf("time = %v, want %v", got, want)
	}
	if table.Monotonic() {
		t.Error("Monotonic() = true for decreasing time")
	}
	lo, hi := table.TimeRange()
	if lo != 0 || hi != 0.2 {
		t.Errorf("TimeRange = (%v, %v), want (0, 0.2)", lo, hi)
	}
}

func TestLoadLatin1File(t *testing.T) {
	cat, table, err := LoadFile(filepath.Join("..", "..", "testdata", "pajero_latin1.csv"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if unit, _ := cat.Unit("ECT"); unit != "°C" {
		t.Errorf("ECT unit = %q, want °C", unit)
	}
	if got, want := cat.Names(), []string{"Speed", "RPM", "ECT", "AFR"}; !reflect.DeepEqual(got, want) {
		t.Errorf("names = %v, want %v", got, want)
	}
	if unit, _ := cat.Unit("AFR"); unit != "" {
		t.Errorf("AFR unit = %q, want empty", unit)
	}
	if len(table.Metadata) != 3 {
		t.Errorf("metadata rows = %d, want 3", len(table.Metadata))
	}

	sum, ok := table.Summary("AFR")
	if !ok {
		t.Fatal("no AFR summary")
	}
	if sum.Valid != 2 || sum.Missing != 2 || sum.Min != 14.6 || sum.Max != 14.7 {
		t.Errorf("AFR summary = %+v", sum)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, _, err := LoadFile(filepath.Join(t.TempDir(), "absent.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestElapsedIsIdempotent(t *testing.T) {
	raw := []float64{1000, 1033, 1066, 1100, 5000}
	first := Elapsed(raw, "ms")
	second := Elapsed(raw, "ms")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-derivation drifted: %v vs %v", first, second)
	}
	if raw[0] != 1000 {
		t.Error("Elapsed modified its input")
	}
	if first[0] != 0 || math.Abs(first[4]-4.0) > 1e-12 {
		t.Errorf("elapsed = %v", first)
	}
	if got := Elapsed(raw, "s"); got[4] != 4000 {
		t.Errorf("seconds unit scaled: %v", got)
	}
	if got := Elapsed(raw, "MS"); got[4] != first[4] {
		t.Errorf("unit match is case sensitive: %v", got)
	}
}
