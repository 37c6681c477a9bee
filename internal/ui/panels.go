package ui

import (
	"path/filepath"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/OpenTraceLab/OpenTraceDAQ/pkg/plotplan"
)

func (a *App) layoutToolbar(gtx layout.Context) layout.Dimensions {
	buttons := []struct {
		click *widget.Clickable
		icon  *widget.Icon
		desc  string
	}{
		{&a.openBtn, a.openIcon, "Open CSV"},
		{&a.plotBtn, a.plotIcon, "Plot selected"},
		{&a.zoomInBtn, a.zoomInIcon, "Zoom in"},
		{&a.zoomOutBtn, a.zoomOutIcon, "Zoom out"},
		{&a.clearBtn, a.clearIcon, "Clear plot"},
	}
	children := make([]layout.FlexChild, 0, len(buttons)*2+2)
	for _, b := range buttons {
		b := b
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if b.icon == nil {
				return material.Button(a.th(), b.click, b.desc).Layout(gtx)
			}
			btn := material.IconButton(a.th(), b.click, b.icon, b.desc)
			btn.Size = unit.Dp(20)
			btn.Inset = layout.UniformInset(unit.Dp(8))
			return btn.Layout(gtx)
		}))
		children = append(children, layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout))
	}
	children = append(children,
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions { return layout.Dimensions{} }),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(material.Body2(a.th(), "Dark mode").Layout),
				layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
				layout.Rigid(material.Switch(a.th(), &a.darkModeSwitch, "Dark mode").Layout),
			)
		}),
	)
	return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
	})
}

func (a *App) layoutWorkspace(gtx layout.Context) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			width := gtx.Dp(unit.Dp(260))
			gtx.Constraints.Min.X = width
			gtx.Constraints.Max.X = width
			paint.FillShape(gtx.Ops, a.gvTheme.Bg2, clip.Rect{Max: gtx.Constraints.Max}.Op())
			return layout.UniformInset(unit.Dp(12)).Layout(gtx, a.layoutSidebar)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(8)).Layout(gtx, a.layoutPlot)
		}),
	)
}

func (a *App) layoutSidebar(gtx layout.Context) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(material.H6(a.th(), "Signals").Layout),
		layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
		layout.Flexed(1, a.layoutSignalList),
		layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
		layout.Rigid(material.H6(a.th(), "Plot mode").Layout),
		layout.Rigid(material.RadioButton(a.th(), &a.modeEnum, plotplan.Separate.String(), "Separate subplots").Layout),
		layout.Rigid(material.RadioButton(a.th(), &a.modeEnum, plotplan.Overlay.String(), "Overlay (same axis)").Layout),
		layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
		layout.Rigid(material.H6(a.th(), "Time range").Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.timeField(gtx, "Start", &a.startEditor)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.timeField(gtx, "End", &a.endEditor)
		}),
		layout.Rigid(material.Caption(a.th(), "(Units: seconds)").Layout),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			return material.Button(a.th(), &a.fullBtn, "Full range (reset time)").Layout(gtx)
		}),
	)
}

func (a *App) layoutSignalList(gtx layout.Context) layout.Dimensions {
	if len(a.signalNames) == 0 {
		return material.Body2(a.th(), "No log loaded").Layout(gtx)
	}
	return material.List(a.th(), &a.signalList).Layout(gtx, len(a.signalNames), func(gtx layout.Context, i int) layout.Dimensions {
		return material.CheckBox(a.th(), &a.signalToggles[i], a.signalNames[i]).Layout(gtx)
	})
}

func (a *App) timeField(gtx layout.Context, label string, editor *widget.Editor) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Dp(unit.Dp(48))
			return material.Body2(a.th(), label+":").Layout(gtx)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			ed := material.Editor(a.th(), editor, "")
			ed.TextSize = unit.Sp(14)
			return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4)}.Layout(gtx, ed.Layout)
		}),
	)
}

func (a *App) layoutPlot(gtx layout.Context) layout.Dimensions {
	plan := a.session.Plan()
	if plan == nil {
		msg := "Open a CSV and select signals to plot"
		if a.session.Loaded() {
			msg = "Loaded: " + filepath.Base(a.session.Name())
		}
		return layout.Center.Layout(gtx, material.H6(a.th(), msg).Layout)
	}
	title := filepath.Base(a.session.Name())
	if err := a.plot.Layout(gtx, plan, a.plotTheme(), title); err != nil {
		a.Logf("[ERROR] Render failed: %v", err)
		a.session.ClearPlot()
	}
	return layout.Dimensions{Size: gtx.Constraints.Max}
}
