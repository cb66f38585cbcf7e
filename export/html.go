package export

import (
	"fmt"
	"image/color"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"git.sr.ht/~whereswaldon/scope-view/scope"
	"git.sr.ht/~whereswaldon/scope-view/theme"
)

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func lineData(xs, ys []float64) []opts.LineData {
	data := make([]opts.LineData, min(len(xs), len(ys)))
	for i := range data {
		data[i] = opts.LineData{Value: []interface{}{xs[i], ys[i]}}
	}
	return data
}

func newLine(f scope.Frame, palette theme.Palette, title, subtitle string) *charts.Line {
	echartsTheme := types.ThemeWesteros
	if f.Theme == theme.Dark {
		echartsTheme = types.ThemeChalk
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       "scope-view",
			Theme:           echartsTheme,
			BackgroundColor: hex(palette.PlotBackground),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			XAxisIndex: []int{0},
		}),
	)
	return line
}

func addTrace(line *charts.Line, name string, c color.NRGBA, data []opts.LineData, symbols bool, dashed bool) {
	style := opts.LineStyle{Color: hex(c), Width: 1}
	if dashed {
		style.Type = "dashed"
	}
	line.AddSeries(name, data,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(symbols)}),
		charts.WithLineStyleOpts(style),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: hex(c)}),
	)
}

func renderHTML(w io.Writer, f scope.Frame) error {
	palette := theme.Lookup(f.Theme)
	page := components.NewPage()
	if f.Mode == scope.FrequencyResponse && f.Bode != nil {
		page.AddCharts(
			bodeChart(f, palette, f.Bode.Gain, f.Bode.GainLimits, f.Bode.GainLabel),
			bodeChart(f, palette, f.Bode.Phase, f.Bode.PhaseLimits, f.Bode.PhaseLabel),
		)
	} else {
		page.AddCharts(transientChart(f, palette))
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed rendering HTML: %w", err)
	}
	return nil
}

func transientChart(f scope.Frame, palette theme.Palette) *charts.Line {
	subtitle := f.Placeholder
	if f.Cursors != nil {
		subtitle = f.Cursors.DXLabel + "   " + f.Cursors.DYLabel
	}
	line := newLine(f, palette, f.TimeScale, subtitle)
	line.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: f.XLabel,
			Min:  f.XLimits.Min,
			Max:  f.XLimits.Max,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: f.YLabel,
			Min:  f.YLimits.Min,
			Max:  f.YLimits.Max,
		}),
	)
	for _, s := range f.Series {
		name := s.Label
		if s.Channel >= 0 && s.Channel < len(f.VoltScales) {
			name += " (" + f.VoltScales[s.Channel] + ")"
		}
		addTrace(line, name, palette.Line(s.Color), lineData(s.X, s.Y), false, false)
	}
	if c := f.Cursors; c != nil {
		y := []float64{f.YLimits.Min, f.YLimits.Max}
		x := []float64{f.XLimits.Min, f.XLimits.Max}
		addTrace(line, "x1", palette.CursorX, lineData([]float64{c.X1, c.X1}, y), false, true)
		addTrace(line, "x2", palette.CursorX, lineData([]float64{c.X2, c.X2}, y), false, true)
		addTrace(line, "y1", palette.CursorY, lineData(x, []float64{c.Y1, c.Y1}), false, true)
		addTrace(line, "y2", palette.CursorY, lineData(x, []float64{c.Y2, c.Y2}), false, true)
	}
	return line
}

func bodeChart(f scope.Frame, palette theme.Palette, s scope.Series, limits scope.Range, label string) *charts.Line {
	line := newLine(f, palette, label, "")
	line.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{
			Type: "log",
			Name: f.Bode.FreqLabel,
			Min:  f.Bode.Frequency.Min,
			Max:  f.Bode.Frequency.Max,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: label,
			Min:  limits.Min,
			Max:  limits.Max,
		}),
	)
	addTrace(line, label, palette.Line(s.Color), lineData(s.X, s.Y), true, false)
	return line
}
