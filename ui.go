package main

import (
	"errors"
	"image"
	"image/color"
	"log"
	"path/filepath"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"git.sr.ht/~whereswaldon/scope-view/backend"
	"git.sr.ht/~whereswaldon/scope-view/scope"
	"git.sr.ht/~whereswaldon/scope-view/theme"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var openIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.FileFolderOpen)
	return icon
}()

var resetIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVReplay)
	return icon
}()

var themeIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.ActionInvertColors)
	return icon
}()

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws     backend.WindowState
	expl   *explorer.Explorer
	engine *scope.Engine

	plot     *ScopePlot
	bode     BodePlot
	controls *Controls

	openBtn    widget.Clickable
	resetBtn   widget.Clickable
	themeBtn   widget.Clickable
	dismissBtn widget.Clickable

	// source names the file currently shown.
	source string
	// loadErr is a data error waiting to be acknowledged.
	loadErr string
	seq     uint64

	th      *material.Theme
	results *stream.Stream[backend.LoadResult]
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, engine *scope.Engine) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	ui := &UI{
		ws:       ws,
		th:       th,
		expl:     expl,
		engine:   engine,
		plot:     NewScopePlot(engine),
		controls: NewControls(engine),
		results:  stream.New(ws.Controller, ws.Bundle.Loader.Results),
	}
	applyPalette(th, theme.Lookup(engine.Theme()))
	return ui
}

// install shows a finished load. A failed load leaves the current dataset
// in place and raises the error banner.
func (ui *UI) install(res backend.LoadResult) {
	if res.Seq <= ui.seq {
		return
	}
	ui.seq = res.Seq
	if res.Err != nil {
		log.Printf("%v", res.Err)
		ui.loadErr = res.Err.Error()
		return
	}
	if err := ui.engine.Load(res.Dataset); err != nil {
		log.Printf("failed installing %s: %v", res.Source, err)
		ui.loadErr = err.Error()
		return
	}
	if msg := res.Table.Cleanup(); msg != "" {
		log.Printf("loaded %s: %s", res.Source, msg)
	}
	ui.source = res.Source
	ui.loadErr = ""
}

func (ui *UI) apply(cmd scope.Command) {
	if err := ui.engine.Apply(cmd); err != nil && !errors.Is(err, scope.ErrNoData) {
		log.Printf("failed applying %T: %v", cmd, err)
	}
}

// Update the state of the UI and send the resulting commands to the
// engine. Must be called once per frame before Layout.
func (ui *UI) Update(gtx C) {
	if res, ok := ui.results.ReadNew(gtx); ok {
		ui.install(res)
	}
	if ui.dismissBtn.Clicked(gtx) {
		ui.loadErr = ""
	}
	if ui.openBtn.Clicked(gtx) {
		go func() {
			err := ui.ws.Bundle.Loader.LoadFromExplorer(ui.expl)
			if err != nil && !errors.Is(err, explorer.ErrUserDecline) {
				log.Printf("failed choosing a file: %v", err)
			}
		}()
	}
	if ui.resetBtn.Clicked(gtx) {
		ui.apply(scope.DefaultSetup{})
	}
	if ui.themeBtn.Clicked(gtx) {
		next := theme.Dark
		if ui.engine.Theme() == theme.Dark {
			next = theme.Light
		}
		ui.apply(scope.SetTheme{Variant: next})
	}
	applyPalette(ui.th, theme.Lookup(ui.engine.Theme()))
	ui.controls.Update(gtx)
	ui.plot.Update(gtx)
}

func (ui *UI) iconButton(clk *widget.Clickable, icon *widget.Icon, desc string) layout.FlexChild {
	return layout.Rigid(func(gtx C) D {
		b := material.IconButton(ui.th, clk, icon, desc)
		b.Size = unit.Dp(20)
		b.Inset = layout.UniformInset(6)
		return layout.UniformInset(2).Layout(gtx, b.Layout)
	})
}

func (ui *UI) layoutToolbar(gtx C) D {
	title := "No file"
	if ui.source != "" {
		title = filepath.Base(ui.source) + " (" + ui.engine.Mode().String() + ")"
	}
	l := material.Body1(ui.th, title)
	l.MaxLines = 1
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		ui.iconButton(&ui.openBtn, openIcon, "Open CSV"),
		ui.iconButton(&ui.resetBtn, resetIcon, "Default setup"),
		ui.iconButton(&ui.themeBtn, themeIcon, "Toggle theme"),
		layout.Flexed(1, func(gtx C) D {
			return layout.UniformInset(8).Layout(gtx, l.Layout)
		}),
	)
}

func (ui *UI) layoutMainArea(gtx C) D {
	f, err := ui.engine.Frame()
	if err != nil && scope.ClassOf(err) != scope.ViewStateErrorClass {
		log.Printf("failed computing frame: %v", err)
	}
	pal := theme.Lookup(f.Theme)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(ui.layoutToolbar),
		layout.Flexed(1, func(gtx C) D {
			return layout.UniformInset(8).Layout(gtx, func(gtx C) D {
				if f.Mode == scope.FrequencyResponse {
					return ui.bode.Layout(gtx, ui.th, f, pal)
				}
				return ui.plot.Layout(gtx, ui.th, f, pal)
			})
		}),
		layout.Rigid(func(gtx C) D {
			return layout.UniformInset(4).Layout(gtx, func(gtx C) D {
				return ui.controls.Layout(gtx, ui.th, pal)
			})
		}),
	)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	l := material.H6(ui.th, "Load a CSV file")
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.openBtn, "Open CSV").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Body2(ui.th, "Transient captures plot every column against the first. Files with frequency, gain and phase columns open as a Bode plot.").Layout(gtx)
		}),
	)
}

// layoutBanner blocks the window with a data error until it is dismissed.
func (ui *UI) layoutBanner(gtx C) D {
	paint.FillShape(gtx.Ops, color.NRGBA{A: 120}, clip.Rect{Max: gtx.Constraints.Max}.Op())
	return layout.Center.Layout(gtx, func(gtx C) D {
		gtx.Constraints.Max.X = min(gtx.Constraints.Max.X, gtx.Dp(480))
		gtx.Constraints.Min = image.Point{}
		return layout.Background{}.Layout(gtx,
			func(gtx C) D {
				paint.FillShape(gtx.Ops, ui.th.Bg, clip.UniformRRect(image.Rectangle{Max: gtx.Constraints.Min}, gtx.Dp(4)).Op(gtx.Ops))
				return D{Size: gtx.Constraints.Min}
			},
			func(gtx C) D {
				return layout.UniformInset(16).Layout(gtx, func(gtx C) D {
					return layout.Flex{Axis: layout.Vertical, Alignment: layout.End}.Layout(gtx,
						layout.Rigid(func(gtx C) D {
							l := material.Body1(ui.th, ui.loadErr)
							l.Color = color.NRGBA{R: 150, A: 255}
							return l.Layout(gtx)
						}),
						layout.Rigid(layout.Spacer{Height: 12}.Layout),
						layout.Rigid(material.Button(ui.th, &ui.dismissBtn, "OK").Layout),
					)
				})
			},
		)
	})
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	paint.Fill(gtx.Ops, ui.th.Bg)
	return layout.Stack{}.Layout(gtx,
		layout.Stacked(func(gtx C) D {
			gtx.Constraints.Min = gtx.Constraints.Max
			if ui.loadErr != "" {
				gtx = gtx.Disabled()
			}
			if ui.engine.Loaded() {
				return ui.layoutMainArea(gtx)
			}
			return ui.layoutStartScreen(gtx)
		}),
		layout.Expanded(func(gtx C) D {
			if ui.loadErr == "" {
				return D{}
			}
			return ui.layoutBanner(gtx)
		}),
	)
}
