package main

import (
	"image"
	"image/color"
	"log"
	"math"
	"strconv"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"git.sr.ht/~whereswaldon/scope-view/scope"
	"git.sr.ht/~whereswaldon/scope-view/theme"
)

// cursorGrabDp is how close (in Dp) a press must land to a cursor line to
// pick it up.
const cursorGrabDp = 5

func rec(gtx C, w layout.Widget) (D, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}

// projector maps data coordinates onto a plot area of the given size. The y
// axis grows upward.
type projector struct {
	x, y scope.Range
	logX bool
	size image.Point
}

func (p projector) fx(x float64) float64 {
	if p.logX && p.x.Min > 0 && x > 0 {
		lo, hi := math.Log10(p.x.Min), math.Log10(p.x.Max)
		if hi == lo {
			return 0
		}
		return (math.Log10(x) - lo) / (hi - lo)
	}
	return p.x.Fraction(x)
}

func (p projector) px(x float64) float32 {
	return float32(p.fx(x) * float64(p.size.X))
}

func (p projector) py(y float64) float32 {
	return float32((1 - p.y.Fraction(y)) * float64(p.size.Y))
}

// unproject maps a pixel position back to data coordinates.
func (p projector) unproject(pos f32.Point) (x, y float64) {
	x = p.x.At(float64(pos.X) / float64(p.size.X))
	y = p.y.At(1 - float64(pos.Y)/float64(p.size.Y))
	return x, y
}

func (p projector) inside(pos f32.Point) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.X <= float32(p.size.X) && pos.Y <= float32(p.size.Y)
}

// layoutGrid draws faint minor lines, stronger major lines and a solid line
// through zero on either axis.
func layoutGrid(gtx C, pr projector, g scope.Grid, pal theme.Palette) {
	oneDp := max(gtx.Dp(1), 1)
	vertical := func(col color.NRGBA, width int, xs ...float64) {
		for _, x := range xs {
			xp := int(pr.px(x))
			paint.FillShape(gtx.Ops, col, clip.Rect{
				Min: image.Pt(xp-width/2, 0),
				Max: image.Pt(xp-width/2+width, pr.size.Y),
			}.Op())
		}
	}
	horizontal := func(col color.NRGBA, width int, ys ...float64) {
		for _, y := range ys {
			yp := int(pr.py(y))
			paint.FillShape(gtx.Ops, col, clip.Rect{
				Min: image.Pt(0, yp-width/2),
				Max: image.Pt(pr.size.X, yp-width/2+width),
			}.Op())
		}
	}
	vertical(withAlpha(pal.Grid, 50), oneDp, g.MinorX...)
	horizontal(withAlpha(pal.Grid, 50), oneDp, g.MinorY...)
	vertical(withAlpha(pal.Grid, 100), oneDp, g.MajorX...)
	horizontal(withAlpha(pal.Grid, 100), oneDp, g.MajorY...)
	if g.ZeroX {
		vertical(withAlpha(pal.Foreground, 160), 2*oneDp, 0)
	}
	if g.ZeroY {
		horizontal(withAlpha(pal.Foreground, 160), 2*oneDp, 0)
	}
}

// layoutTrace strokes one series as a polyline.
func layoutTrace(gtx C, pr projector, s scope.Series, col color.NRGBA, width unit.Dp) {
	n := min(len(s.X), len(s.Y))
	if n < 2 {
		return
	}
	var p clip.Path
	p.Begin(gtx.Ops)
	p.MoveTo(f32.Pt(pr.px(s.X[0]), pr.py(s.Y[0])))
	for i := 1; i < n; i++ {
		p.LineTo(f32.Pt(pr.px(s.X[i]), pr.py(s.Y[i])))
	}
	paint.FillShape(gtx.Ops, col, clip.Stroke{
		Path:  p.End(),
		Width: float32(gtx.Dp(width)),
	}.Op())
}

// layoutCursorLine draws one cursor. The cursor being dragged is solid,
// the others are dashed.
func layoutCursorLine(gtx C, pr projector, vertical bool, at float64, col color.NRGBA, solid bool) {
	width := max(gtx.Dp(1), 1)
	dash, gap := gtx.Dp(6), gtx.Dp(4)
	if solid {
		width = max(gtx.Dp(2), 1)
		gap = 0
	}
	if vertical {
		x := int(pr.px(at))
		if x < 0 || x > pr.size.X {
			return
		}
		for y := 0; y < pr.size.Y; y += dash + gap {
			paint.FillShape(gtx.Ops, col, clip.Rect{
				Min: image.Pt(x-width/2, y),
				Max: image.Pt(x-width/2+width, min(y+dash, pr.size.Y)),
			}.Op())
		}
		return
	}
	y := int(pr.py(at))
	if y < 0 || y > pr.size.Y {
		return
	}
	for x := 0; x < pr.size.X; x += dash + gap {
		paint.FillShape(gtx.Ops, col, clip.Rect{
			Min: image.Pt(x, y-width/2),
			Max: image.Pt(min(x+dash, pr.size.X), y-width/2+width),
		}.Op())
	}
}

// layoutTickLabels places one label per value along an axis of the given
// pixel length. Labels are kept inside the axis.
func layoutTickLabels(gtx C, th *material.Theme, axis layout.Axis, values []float64, pos func(float64) float32, length int) D {
	gtx.Constraints.Min = image.Point{}
	var thickness int
	for _, v := range values {
		l := material.Caption(th, strconv.FormatFloat(v, 'g', 4, 64))
		l.MaxLines = 1
		dims, call := rec(gtx, l.Layout)
		var off image.Point
		if axis == layout.Horizontal {
			x := int(pos(v)) - dims.Size.X/2
			off.X = max(0, min(x, length-dims.Size.X))
			thickness = max(thickness, dims.Size.Y)
		} else {
			y := int(pos(v)) - dims.Size.Y/2
			off.Y = max(0, min(y, length-dims.Size.Y))
			off.X = gtx.Constraints.Max.X - dims.Size.X
			thickness = max(thickness, dims.Size.X)
		}
		stack := op.Offset(off).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
	}
	if axis == layout.Horizontal {
		return D{Size: image.Pt(length, thickness)}
	}
	return D{Size: image.Pt(gtx.Constraints.Max.X, length)}
}

// layoutAxes lays out a plot body with y tick labels to its left and x tick
// labels plus a caption beneath it. pr.size is set to the body's size
// before body runs.
func layoutAxes(gtx C, th *material.Theme, pr *projector, xTicks, yTicks []float64, xCaption, yCaption string, body func(gtx C, pr projector) D) D {
	gutter := gtx.Dp(56)
	sampleDims, _ := rec(gtx, material.Caption(th, "0").Layout)
	bottom := 2 * sampleDims.Size.Y
	dims, bodyCall := rec(gtx, func(gtx C) D {
		gtx.Constraints.Min = image.Point{}
		gtx.Constraints.Max = gtx.Constraints.Max.Sub(image.Pt(gutter, bottom))
		gtx.Constraints.Max = image.Pt(max(gtx.Constraints.Max.X, 1), max(gtx.Constraints.Max.Y, 1))
		pr.size = gtx.Constraints.Max
		return body(gtx, *pr)
	})
	size := dims.Size
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return layout.Flex{}.Layout(gtx,
				layout.Rigid(func(gtx C) D {
					gtx.Constraints.Max.X = gutter
					return layoutTickLabels(gtx, th, layout.Vertical, yTicks, pr.py, size.Y)
				}),
				layout.Rigid(func(gtx C) D {
					bodyCall.Add(gtx.Ops)
					return dims
				}),
			)
		}),
		layout.Rigid(func(gtx C) D {
			return layout.Flex{}.Layout(gtx,
				layout.Rigid(func(gtx C) D {
					gtx.Constraints = layout.Exact(image.Pt(gutter, bottom))
					l := material.Caption(th, yCaption)
					l.MaxLines = 2
					return l.Layout(gtx)
				}),
				layout.Rigid(func(gtx C) D {
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
						layout.Rigid(func(gtx C) D {
							return layoutTickLabels(gtx, th, layout.Horizontal, xTicks, pr.px, size.X)
						}),
						layout.Rigid(func(gtx C) D {
							gtx.Constraints.Min.X = size.X
							gtx.Constraints.Max.X = size.X
							caption := material.Body2(th, xCaption)
							caption.Alignment = text.Middle
							caption.MaxLines = 1
							return caption.Layout(gtx)
						}),
					)
				}),
			)
		}),
	)
}

// ScopePlot draws the transient view and turns pointer gestures on the plot
// area into cursor commands.
type ScopePlot struct {
	engine *scope.Engine
	// last is the projection of the most recent layout, used to map pointer
	// positions back into the data it showed.
	last     projector
	unit     scope.Unit
	hasFrame bool
}

func NewScopePlot(e *scope.Engine) *ScopePlot {
	return &ScopePlot{engine: e}
}

// Update processes cursor gestures against the previous frame.
func (s *ScopePlot) Update(gtx C) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: s,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok || !s.hasFrame || s.last.size.X == 0 || s.last.size.Y == 0 {
			continue
		}
		x, y := s.last.unproject(e.Position)
		at := scope.Point{X: x * s.unit.Scale, Y: y}
		var cmd scope.Command
		switch e.Kind {
		case pointer.Press:
			grab := float64(gtx.Dp(cursorGrabDp))
			cmd = scope.PressCursor{At: at, Tolerance: scope.Point{
				X: grab / float64(s.last.size.X) * s.last.x.Span() * s.unit.Scale,
				Y: grab / float64(s.last.size.Y) * s.last.y.Span(),
			}}
		case pointer.Drag:
			cmd = scope.DragCursor{At: at, Inside: s.last.inside(e.Position)}
		case pointer.Release, pointer.Cancel:
			cmd = scope.ReleaseCursor{}
		}
		if err := s.engine.Apply(cmd); err != nil {
			log.Printf("cursor gesture: %v", err)
		}
	}
}

func (s *ScopePlot) Layout(gtx C, th *material.Theme, f scope.Frame, pal theme.Palette) D {
	pr := projector{x: f.XLimits, y: f.YLimits}
	return layoutAxes(gtx, th, &pr, f.Grid.MajorX, f.Grid.MajorY, f.XLabel, f.YLabel, func(gtx C, pr projector) D {
		s.last, s.unit, s.hasFrame = pr, f.TimeUnit, f.Placeholder == ""
		size := pr.size
		defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
		paint.Fill(gtx.Ops, pal.PlotBackground)
		layoutGrid(gtx, pr, f.Grid, pal)
		for _, series := range f.Series {
			layoutTrace(gtx, pr, series, pal.Line(series.Color), 1.5)
		}
		if c := f.Cursors; c != nil {
			layoutCursorLine(gtx, pr, true, c.X1, pal.CursorX, c.Active == scope.CursorX1)
			layoutCursorLine(gtx, pr, true, c.X2, pal.CursorX, c.Active == scope.CursorX2)
			layoutCursorLine(gtx, pr, false, c.Y1, pal.CursorY, c.Active == scope.CursorY1)
			layoutCursorLine(gtx, pr, false, c.Y2, pal.CursorY, c.Active == scope.CursorY2)
			s.layoutReadout(gtx, th, f, pal)
		}
		if f.Placeholder != "" {
			layout.Center.Layout(gtx, material.H6(th, f.Placeholder).Layout)
		}
		event.Op(gtx.Ops, s)
		return D{Size: size}
	})
}

// layoutReadout prints the cursor deltas in the top left corner of the plot.
func (s *ScopePlot) layoutReadout(gtx C, th *material.Theme, f scope.Frame, pal theme.Palette) D {
	c := f.Cursors
	measured := ""
	if ds := s.engine.Dataset(); ds != nil && c.MeasureChannel < ds.ChannelCount() {
		measured = " (" + ds.ChannelHeading(c.MeasureChannel) + ")"
	}
	return layout.UniformInset(4).Layout(gtx, func(gtx C) D {
		return layout.Background{}.Layout(gtx,
			func(gtx C) D {
				paint.FillShape(gtx.Ops, withAlpha(pal.Background, 200), clip.Rect{Max: gtx.Constraints.Min}.Op())
				return D{Size: gtx.Constraints.Min}
			},
			func(gtx C) D {
				return layout.UniformInset(4).Layout(gtx, func(gtx C) D {
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
						layout.Rigid(func(gtx C) D {
							l := material.Body2(th, c.DXLabel)
							l.Color = pal.CursorX
							return l.Layout(gtx)
						}),
						layout.Rigid(func(gtx C) D {
							l := material.Body2(th, c.DYLabel+measured)
							l.Color = pal.CursorY
							return l.Layout(gtx)
						}),
					)
				})
			},
		)
	})
}

// BodePlot draws the gain and phase panels of a frequency response, one
// above the other, sharing a logarithmic frequency axis.
type BodePlot struct{}

func (b *BodePlot) Layout(gtx C, th *material.Theme, f scope.Frame, pal theme.Palette) D {
	if f.Bode == nil {
		pr := projector{x: f.XLimits, y: f.YLimits}
		return layoutAxes(gtx, th, &pr, nil, nil, "", "", func(gtx C, pr projector) D {
			defer clip.Rect{Max: pr.size}.Push(gtx.Ops).Pop()
			paint.Fill(gtx.Ops, pal.PlotBackground)
			layout.Center.Layout(gtx, material.H6(th, f.Placeholder).Layout)
			return D{Size: pr.size}
		})
	}
	bf := f.Bode
	panel := func(s scope.Series, limits scope.Range, grid scope.Grid, label, xCaption string) layout.Widget {
		return func(gtx C) D {
			pr := projector{x: bf.Frequency, y: limits, logX: true}
			return layoutAxes(gtx, th, &pr, grid.MajorX, grid.MajorY, xCaption, label, func(gtx C, pr projector) D {
				defer clip.Rect{Max: pr.size}.Push(gtx.Ops).Pop()
				paint.Fill(gtx.Ops, pal.PlotBackground)
				layoutGrid(gtx, pr, grid, pal)
				layoutTrace(gtx, pr, s, pal.Line(s.Color), 2)
				r := gtx.Dp(2)
				for i := range s.X {
					x, y := int(pr.px(s.X[i])), int(pr.py(s.Y[i]))
					paint.FillShape(gtx.Ops, pal.Line(s.Color), clip.Ellipse(image.Rect(x-r, y-r, x+r, y+r)).Op(gtx.Ops))
				}
				return D{Size: pr.size}
			})
		}
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, panel(bf.Gain, bf.GainLimits, bf.GainGrid, bf.GainLabel, "")),
		layout.Flexed(1, panel(bf.Phase, bf.PhaseLimits, bf.PhaseGrid, bf.PhaseLabel, bf.FreqLabel)),
	)
}
