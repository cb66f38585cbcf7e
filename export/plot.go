package export

import (
	"fmt"
	"image/color"
	"io"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"git.sr.ht/~whereswaldon/scope-view/scope"
	"git.sr.ht/~whereswaldon/scope-view/theme"
)

func renderPlot(w io.Writer, f scope.Frame, format Format, opt Options) error {
	c, err := draw.NewFormattedCanvas(opt.Width, opt.Height, string(format))
	if err != nil {
		return fmt.Errorf("failed creating %s canvas: %w", format, err)
	}
	dc := draw.New(c)
	palette := theme.Lookup(f.Theme)
	dc.SetColor(palette.Background)
	dc.Fill(dc.Rectangle.Path())

	if f.Mode == scope.FrequencyResponse && f.Bode != nil {
		gain, phase, err := bodePlots(f.Bode, palette)
		if err != nil {
			return err
		}
		tiles := draw.Tiles{Rows: 2, Cols: 1, PadY: 4 * vg.Millimeter, PadTop: 2 * vg.Millimeter, PadBottom: 2 * vg.Millimeter}
		canvases := plot.Align([][]*plot.Plot{{gain}, {phase}}, tiles, dc)
		gain.Draw(canvases[0][0])
		phase.Draw(canvases[1][0])
	} else {
		p, err := transientPlot(f, palette)
		if err != nil {
			return err
		}
		p.Draw(dc)
	}

	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("failed writing %s: %w", format, err)
	}
	return nil
}

func newPlot(palette theme.Palette) *plot.Plot {
	p := plot.New()
	p.BackgroundColor = palette.PlotBackground
	p.Title.TextStyle.Color = palette.Foreground
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Color = palette.Foreground
		ax.Label.TextStyle.Color = palette.Foreground
		ax.Tick.Color = palette.Foreground
		ax.Tick.Label.Color = palette.Foreground
	}
	p.Legend.TextStyle.Color = palette.Foreground
	p.Legend.Top = true
	return p
}

func ticks(values []float64) plot.ConstantTicks {
	out := make(plot.ConstantTicks, len(values))
	for i, v := range values {
		out[i] = plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'g', 3, 64)}
	}
	return out
}

func xys(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, min(len(xs), len(ys)))
	for i := range pts {
		pts[i].X, pts[i].Y = xs[i], ys[i]
	}
	return pts
}

func transientPlot(f scope.Frame, palette theme.Palette) (*plot.Plot, error) {
	p := newPlot(palette)
	p.Title.Text = f.TimeScale
	if f.Placeholder != "" {
		p.Title.Text = f.Placeholder
	}
	p.X.Label.Text = f.XLabel
	p.Y.Label.Text = f.YLabel
	p.X.Min, p.X.Max = f.XLimits.Min, f.XLimits.Max
	p.Y.Min, p.Y.Max = f.YLimits.Min, f.YLimits.Max
	p.X.Tick.Marker = ticks(f.Grid.MajorX)
	p.Y.Tick.Marker = ticks(f.Grid.MajorY)
	p.Add(&gridPlotter{Grid: f.Grid, Color: palette.Grid, Zero: palette.Foreground})

	for _, s := range f.Series {
		line, err := plotter.NewLine(xys(s.X, s.Y))
		if err != nil {
			return nil, fmt.Errorf("failed building trace %q: %w", s.Label, err)
		}
		line.LineStyle.Color = palette.Line(s.Color)
		line.LineStyle.Width = vg.Points(1)
		p.Add(line)
		label := s.Label
		if s.Channel >= 0 && s.Channel < len(f.VoltScales) {
			label += " (" + f.VoltScales[s.Channel] + ")"
		}
		p.Legend.Add(label, line)
	}

	if f.Cursors != nil {
		p.Add(&cursorPlotter{Overlay: *f.Cursors, X: palette.CursorX, Y: palette.CursorY})
		p.Title.Text += "    " + f.Cursors.DXLabel + "    " + f.Cursors.DYLabel
	}
	return p, nil
}

func bodePlots(b *scope.BodeFrame, palette theme.Palette) (gain, phase *plot.Plot, err error) {
	build := func(s scope.Series, limits scope.Range, grid scope.Grid, label string) (*plot.Plot, error) {
		p := newPlot(palette)
		p.Y.Label.Text = label
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
		p.X.Min, p.X.Max = b.Frequency.Min, b.Frequency.Max
		p.Y.Min, p.Y.Max = limits.Min, limits.Max
		p.Add(&gridPlotter{Grid: grid, Color: palette.Grid, Zero: palette.Foreground})
		line, points, err := plotter.NewLinePoints(xys(s.X, s.Y))
		if err != nil {
			return nil, fmt.Errorf("failed building %q: %w", label, err)
		}
		c := palette.Line(s.Color)
		line.LineStyle.Color = c
		line.LineStyle.Width = vg.Points(1.5)
		points.Color = c
		points.Radius = vg.Points(2)
		p.Add(line, points)
		return p, nil
	}
	if gain, err = build(b.Gain, b.GainLimits, b.GainGrid, b.GainLabel); err != nil {
		return nil, nil, err
	}
	gain.Title.Text = "Bode"
	if phase, err = build(b.Phase, b.PhaseLimits, b.PhaseGrid, b.PhaseLabel); err != nil {
		return nil, nil, err
	}
	phase.X.Label.Text = b.FreqLabel
	return gain, phase, nil
}

// gridPlotter draws a precomputed scope.Grid: faint minors, stronger
// majors and a solid line through zero.
type gridPlotter struct {
	Grid  scope.Grid
	Color color.NRGBA
	Zero  color.NRGBA
}

func (g *gridPlotter) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	minor := g.Color
	minor.A = 50
	major := g.Color
	major.A = 100
	minorStyle := draw.LineStyle{Color: minor, Width: vg.Points(0.5)}
	majorStyle := draw.LineStyle{Color: major, Width: vg.Points(0.75)}
	zeroStyle := draw.LineStyle{Color: g.Zero, Width: vg.Points(1.25)}

	vertical := func(style draw.LineStyle, xs ...float64) {
		for _, x := range xs {
			c.StrokeLine2(style, trX(x), c.Min.Y, trX(x), c.Max.Y)
		}
	}
	horizontal := func(style draw.LineStyle, ys ...float64) {
		for _, y := range ys {
			c.StrokeLine2(style, c.Min.X, trY(y), c.Max.X, trY(y))
		}
	}
	vertical(minorStyle, g.Grid.MinorX...)
	horizontal(minorStyle, g.Grid.MinorY...)
	vertical(majorStyle, g.Grid.MajorX...)
	horizontal(majorStyle, g.Grid.MajorY...)
	if g.Grid.ZeroX {
		vertical(zeroStyle, 0)
	}
	if g.Grid.ZeroY {
		horizontal(zeroStyle, 0)
	}
}

// cursorPlotter draws the measurement cursors as dashed lines.
type cursorPlotter struct {
	Overlay scope.CursorOverlay
	X, Y    color.NRGBA
}

func (cp *cursorPlotter) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	dashes := []vg.Length{vg.Points(4), vg.Points(3)}
	xs := draw.LineStyle{Color: cp.X, Width: vg.Points(1), Dashes: dashes}
	ys := draw.LineStyle{Color: cp.Y, Width: vg.Points(1), Dashes: dashes}
	for _, x := range []float64{cp.Overlay.X1, cp.Overlay.X2} {
		c.StrokeLine2(xs, trX(x), c.Min.Y, trX(x), c.Max.Y)
	}
	for _, y := range []float64{cp.Overlay.Y1, cp.Overlay.Y2} {
		c.StrokeLine2(ys, c.Min.X, trY(y), c.Max.X, trY(y))
	}
}
