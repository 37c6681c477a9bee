package ui

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gioui.org/app"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"github.com/oligo/gioview/theme"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/OpenTraceDAQ/internal/session"
	"github.com/OpenTraceLab/OpenTraceDAQ/pkg/plotplan"
	"github.com/OpenTraceLab/OpenTraceDAQ/pkg/plotrender"
)

const zoomStep = 0.5

// loadedFile carries a log read by the file chooser goroutine back to the
// event loop, which does the actual loading.
type loadedFile struct {
	name string
	data []byte
	err  error
}

// App drives the log viewer window.
type App struct {
	window *app.Window
	ops    op.Ops

	gvTheme        *theme.Theme
	darkMode       bool
	darkModeSwitch widget.Bool

	session  *session.Session
	explorer *explorer.Explorer
	loads    chan loadedFile
	busy     bool

	openBtn    widget.Clickable
	plotBtn    widget.Clickable
	fullBtn    widget.Clickable
	clearBtn   widget.Clickable
	zoomInBtn  widget.Clickable
	zoomOutBtn widget.Clickable

	openIcon    *widget.Icon
	plotIcon    *widget.Icon
	zoomInIcon  *widget.Icon
	zoomOutIcon *widget.Icon
	clearIcon   *widget.Icon

	signalNames   []string
	signalToggles []widget.Bool
	signalList    widget.List

	modeEnum    widget.Enum
	startEditor widget.Editor
	endEditor   widget.Editor

	plot plotView

	logs          []string
	logText       string
	logSelectable widget.Selectable
	logList       widget.List

	statusText string
}

// New creates the viewer for w. A nil window gets a fresh one.
func New(w *app.Window, opts Options) *App {
	opts = opts.normalized()
	if w == nil {
		w = new(app.Window)
	}
	w.Option(app.Title("DashDAQ Log Viewer"), app.Size(opts.Width, opts.Height))

	a := &App{
		window:     w,
		gvTheme:    theme.NewTheme("", nil, true),
		darkMode:   opts.DarkMode,
		session:    session.New(),
		explorer:   explorer.NewExplorer(w),
		loads:      make(chan loadedFile, 1),
		statusText: "No log loaded",
	}
	a.darkModeSwitch.Value = a.darkMode
	a.modeEnum.Value = opts.Mode.String()
	a.startEditor.SingleLine = true
	a.endEditor.SingleLine = true
	a.startEditor.Filter = "0123456789.-+eE"
	a.endEditor.Filter = "0123456789.-+eE"
	a.signalList.Axis = layout.Vertical
	a.logList.Axis = layout.Vertical
	a.logList.ScrollToEnd = true
	a.logSelectable.WrapPolicy = text.WrapGraphemes

	a.openIcon = loadIcon(icons.FileFolderOpen)
	a.plotIcon = loadIcon(icons.EditorInsertChart)
	a.zoomInIcon = loadIcon(icons.ActionZoomIn)
	a.zoomOutIcon = loadIcon(icons.ActionZoomOut)
	a.clearIcon = loadIcon(icons.ContentClear)

	a.applyPalette()
	a.Logf("[BOOT] Viewer initialized")
	if opts.File != "" {
		a.openPath(opts.File)
	} else {
		a.Logf("[INFO] Open a DashDAQ CSV export to begin")
	}
	return a
}

func loadIcon(data []byte) *widget.Icon {
	icon, err := widget.NewIcon(data)
	if err != nil {
		return nil
	}
	return icon
}

// Run blocks processing window events until the window closes.
func (a *App) Run() error {
	for {
		e := a.window.Event()
		a.explorer.ListenEvents(e)
		switch ev := e.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			a.drainLoads()
			gtx := app.NewContext(&a.ops, ev)
			a.layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	a.handleActions(gtx)

	paint.FillShape(gtx.Ops, a.gvTheme.Palette.Bg, clip.Rect{Max: gtx.Constraints.Max}.Op())

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(a.layoutToolbar),
		layout.Flexed(1, a.layoutWorkspace),
		layout.Rigid(a.layoutLogPane),
		layout.Rigid(a.layoutStatusBar),
	)
}

func (a *App) handleActions(gtx layout.Context) {
	if a.openBtn.Clicked(gtx) {
		a.chooseFile()
	}
	if a.plotBtn.Clicked(gtx) {
		a.plotSelected()
	}
	if a.fullBtn.Clicked(gtx) {
		a.resetFullRange()
	}
	if a.zoomInBtn.Clicked(gtx) {
		a.zoom(zoomStep)
	}
	if a.zoomOutBtn.Clicked(gtx) {
		a.zoom(1 / zoomStep)
	}
	if a.clearBtn.Clicked(gtx) {
		a.clearPlot()
	}
	if a.darkModeSwitch.Update(gtx) {
		a.setDarkMode(a.darkModeSwitch.Value)
	}
	if a.modeEnum.Update(gtx) && a.session.Plan() != nil {
		a.plotSelected()
	}
}

// chooseFile shows the platform file dialog. The dialog blocks, so it runs
// on its own goroutine and only hands the file contents back.
func (a *App) chooseFile() {
	if a.busy {
		return
	}
	a.busy = true
	go func() {
		rc, err := a.explorer.ChooseFile("csv")
		if err != nil {
			if errors.Is(err, explorer.ErrUserDecline) {
				err = nil
			}
			a.loads <- loadedFile{err: err}
			a.invalidate()
			return
		}
		defer rc.Close()

		name := "log.csv"
		if f, ok := rc.(*os.File); ok {
			name = f.Name()
		}
		data, err := io.ReadAll(rc)
		a.loads <- loadedFile{name: name, data: data, err: err}
		a.invalidate()
	}()
}

func (a *App) drainLoads() {
	select {
	case lf := <-a.loads:
		a.busy = false
		switch {
		case lf.err != nil:
			a.Logf("[ERROR] File picker failed: %v", lf.err)
		case lf.name == "":
			// dialog cancelled
		default:
			a.applyLoad(lf.name, func() error {
				return a.session.Open(lf.name, bytes.NewReader(lf.data))
			})
		}
	default:
	}
}

func (a *App) openPath(path string) {
	a.applyLoad(path, func() error { return a.session.OpenFile(path) })
}

func (a *App) applyLoad(name string, open func() error) {
	if err := open(); err != nil {
		a.Logf("[ERROR] Failed to load CSV: %v", err)
		return
	}

	catalog, table := a.session.Catalog(), a.session.Table()
	a.signalNames = catalog.Names()
	a.signalToggles = make([]widget.Bool, len(a.signalNames))
	a.setWindowEditors(a.session.FullWindow())
	a.plot.reset()

	a.statusText = fmt.Sprintf("%s: %d signals, %d rows", filepath.Base(name), catalog.Len(), table.Rows())
	a.Logf("[INFO] Loaded %s (%d signals, %d rows)", name, catalog.Len(), table.Rows())
	for _, sig := range catalog.Signals() {
		if s, ok := table.Series(sig.Name); ok && s.AllMissing() {
			a.Logf("[WARN] %s has no numeric samples", sig.Name)
		}
	}
	if n := table.DroppedRows(); n > 0 {
		a.Logf("[WARN] Skipped %d rows without a numeric time stamp", n)
	}
	if !table.Monotonic() {
		a.Logf("[WARN] Time column is not monotonic; rows are shown in file order")
	}
	a.invalidate()
}

func (a *App) selectedSignals() []string {
	var names []string
	for i := range a.signalToggles {
		if a.signalToggles[i].Value {
			names = append(names, a.signalNames[i])
		}
	}
	return names
}

// requestedWindow reads the time-range editors. Blank fields mean the full
// range; unparseable ones fall back to it with a warning.
func (a *App) requestedWindow() plotplan.Window {
	full := a.session.FullWindow()
	startText := strings.TrimSpace(a.startEditor.Text())
	endText := strings.TrimSpace(a.endEditor.Text())
	if startText == "" || endText == "" {
		return full
	}
	w, err := plotplan.ParseWindow(startText, endText)
	if err != nil {
		a.Logf("[WARN] Start/End must be numbers, using full range")
		return full
	}
	return w
}

func (a *App) plotSelected() {
	if !a.session.Loaded() {
		a.Logf("[INFO] Please open a CSV file first")
		return
	}
	mode, err := plotplan.ParseMode(a.modeEnum.Value)
	if err != nil {
		mode = plotplan.Separate
	}
	a.resolve(a.selectedSignals(), a.requestedWindow(), mode)
}

func (a *App) resolve(names []string, window plotplan.Window, mode plotplan.Mode) {
	plan, err := a.session.Plot(names, window, mode)
	switch {
	case errors.Is(err, plotplan.ErrEmptySelection):
		a.Logf("[INFO] Please select one or more signals")
		return
	case errors.Is(err, plotplan.ErrInvalidRange):
		a.Logf("[WARN] %v", err)
		return
	case err != nil:
		a.Logf("[ERROR] Plot failed: %v", err)
		return
	}
	for _, w := range plan.Warnings {
		a.Logf("[WARN] %s", w)
	}
	a.setWindowEditors(plan.Window)
	a.Logf("[INFO] Plotted %d signal(s) %s over %s (%d rows)",
		plan.EntryCount(), plan.Mode, plan.Window, plan.Range.Len())
	a.invalidate()
}

func (a *App) resetFullRange() {
	if !a.session.Loaded() {
		return
	}
	a.setWindowEditors(a.session.FullWindow())
	if plan := a.session.Plan(); plan != nil {
		a.resolve(a.selectedSignals(), a.session.FullWindow(), plan.Mode)
	}
}

func (a *App) zoom(factor float64) {
	plan := a.session.Plan()
	if plan == nil {
		return
	}
	a.resolve(a.selectedSignals(), plan.Window.Zoom(factor), plan.Mode)
}

func (a *App) clearPlot() {
	a.session.ClearPlot()
	a.plot.reset()
	a.Logf("[INFO] Plot cleared")
	a.invalidate()
}

func (a *App) setWindowEditors(w plotplan.Window) {
	start, end := w.Bounds()
	a.startEditor.SetText(start)
	a.endEditor.SetText(end)
}

func (a *App) setDarkMode(enabled bool) {
	if a.darkMode == enabled {
		return
	}
	a.darkMode = enabled
	a.darkModeSwitch.Value = enabled
	a.applyPalette()
	if enabled {
		a.Logf("[INFO] Theme switched to dark mode")
	} else {
		a.Logf("[INFO] Theme switched to light mode")
	}
	a.invalidate()
}

// applyPalette maps the plot theme colours onto the widget theme so the
// panels match the rendered figure.
func (a *App) applyPalette() {
	if a.gvTheme == nil {
		return
	}
	pal := a.plotTheme().Palette()
	a.gvTheme.WithPalette(theme.Palette{
		Bg:         pal.Background,
		Fg:         pal.Foreground,
		ContrastBg: pal.Accent,
		ContrastFg: color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		Bg2:        pal.Panel,
	})
}

func (a *App) plotTheme() plotrender.Theme {
	if a.darkMode {
		return plotrender.ThemeDark
	}
	return plotrender.ThemeLight
}

func (a *App) invalidate() {
	if a.window != nil {
		a.window.Invalidate()
	}
}

// Logf appends a timestamped line to the log pane.
func (a *App) Logf(format string, args ...any) {
	prefix := time.Now().Format(time.Stamp)
	entry := fmt.Sprintf("[%s] %s", prefix, fmt.Sprintf(format, args...))
	a.logs = append(a.logs, entry)
	a.logText = strings.Join(a.logs, "\n")
	a.logSelectable.SetText(a.logText)
	a.invalidate()
}

func (a *App) th() *material.Theme { return a.gvTheme.Theme }

func (a *App) layoutStatusBar(gtx layout.Context) layout.Dimensions {
	inset := layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16), Top: unit.Dp(6), Bottom: unit.Dp(6)}
	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(material.Body2(a.th(), a.statusText).Layout),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions { return layout.Dimensions{} }),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				msg := "Ready"
				if a.busy {
					dots := int(time.Now().UnixMilli()/500) % 4
					msg = "Choosing file" + strings.Repeat(".", dots)
				}
				return material.Body2(a.th(), msg).Layout(gtx)
			}),
		)
	})
}

func (a *App) layoutLogPane(gtx layout.Context) layout.Dimensions {
	height := gtx.Dp(unit.Dp(120))
	gtx.Constraints.Min.Y = height
	gtx.Constraints.Max.Y = height
	paint.FillShape(gtx.Ops, a.gvTheme.Bg2, clip.Rect{Max: gtx.Constraints.Max}.Op())
	return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return material.List(a.th(), &a.logList).Layout(gtx, 1, func(gtx layout.Context, _ int) layout.Dimensions {
			label := material.Body2(a.th(), a.logText)
			label.State = &a.logSelectable
			return label.Layout(gtx)
		})
	})
}
