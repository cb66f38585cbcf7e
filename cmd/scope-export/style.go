package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"git.sr.ht/~whereswaldon/scope-view/scope"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	headerStyle = cellStyle.Bold(true).Underline(true)
	hiddenStyle = cellStyle.Foreground(lipgloss.Color("240"))
	summaryBox  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	warnMarker  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func row(key, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(key), value)
}

// column renders one table column, header first.
func column(header string, cells []string, hidden []bool) string {
	out := []string{headerStyle.Render(header)}
	for i, c := range cells {
		style := cellStyle
		if hidden[i] {
			style = hiddenStyle
		}
		out = append(out, style.Render(c))
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

// writeSummary prints what was exported.
func writeSummary(w io.Writer, in, out string, e *scope.Engine, f scope.Frame, frameErr error) {
	ds := e.Dataset()
	lines := []string{
		titleStyle.Render("scope-export"),
		row("input", in),
		row("output", out),
		row("mode", e.Mode().String()),
		row("rows", fmt.Sprint(ds.RowCount())),
		row("theme", f.Theme.String()),
	}
	if frameErr != nil {
		lines = append(lines, row("warning", warnMarker.Render(frameErr.Error())))
	}
	if e.Mode() == scope.Transient {
		lines = append(lines, row("time/div", f.TimeScale))
		if f.Placeholder == "" {
			lines = append(lines, row("window", fmt.Sprintf("%.4g … %.4g %s", f.XLimits.Min, f.XLimits.Max, f.TimeUnit.Symbol)))
		}
		if f.Cursors != nil {
			lines = append(lines, row("cursors", f.Cursors.DXLabel+"  "+f.Cursors.DYLabel))
		}
		st := e.State()
		n := ds.ChannelCount()
		names, scales, offsets, shown := make([]string, n), make([]string, n), make([]string, n), make([]string, n)
		hidden := make([]bool, n)
		for c := 0; c < n; c++ {
			names[c] = ds.ChannelHeading(c)
			scales[c] = scope.VoltDivisions[st.VoltDivision[c]].Label
			offsets[c] = scope.FormatVolts(st.VoltOffset[c])
			shown[c] = "yes"
			if !st.Visible[c] {
				shown[c] = "no"
				hidden[c] = true
			}
		}
		lines = append(lines, "", lipgloss.JoinHorizontal(lipgloss.Top,
			column("channel", names, hidden),
			column("scale", scales, hidden),
			column("offset", offsets, hidden),
			column("shown", shown, hidden),
		))
	} else if b := f.Bode; b != nil {
		lines = append(lines, row("frequency", fmt.Sprintf("%.4g … %.4g Hz", b.Frequency.Min, b.Frequency.Max)))
	}
	fmt.Fprintln(w, summaryBox.Render(strings.Join(lines, "\n")))
}
