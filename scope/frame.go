package scope

import "git.sr.ht/~whereswaldon/scope-view/theme"

// Series is one drawable trace. X and Y are in the frame's display units.
type Series struct {
	Label string
	// Channel is the dependent channel index, or -1 for Bode traces.
	Channel int
	// Color indexes the palette's line colors.
	Color int
	X, Y  []float64
}

// CursorOverlay positions the cursors in display units and carries the
// formatted measurement.
type CursorOverlay struct {
	X1, X2 float64
	Y1, Y2 float64
	Active CursorID
	Delta  CursorDelta
	// MeasureChannel is the channel whose volt/div scales Delta.DY.
	MeasureChannel int
	DXLabel        string
	DYLabel        string
}

// Frame is the complete layout of one redraw, computed without any graphics
// context. Drawing code only projects it.
type Frame struct {
	Mode  ViewMode
	Theme theme.Variant
	// Placeholder is set when there is nothing to plot; it is the message to
	// show instead.
	Placeholder string

	// Transient view. X is in TimeUnit, Y in divisions.
	TimeUnit   Unit
	XLimits    Range
	YLimits    Range
	Grid       Grid
	Series     []Series
	Cursors    *CursorOverlay
	XLabel     string
	YLabel     string
	TimeScale  string
	VoltScales []string

	Bode *BodeFrame
}

// BodeFrame is the layout of the two stacked frequency-response panels.
// Frequencies are in hertz on a logarithmic axis.
type BodeFrame struct {
	Frequency Range
	FreqLabel string

	Gain       Series
	GainLimits Range
	GainGrid   Grid
	GainLabel  string

	Phase       Series
	PhaseLimits Range
	PhaseGrid   Grid
	PhaseLabel  string
}

func placeholderFrame(mode ViewMode, variant theme.Variant, msg string) Frame {
	return Frame{
		Mode:        mode,
		Theme:       variant,
		Placeholder: msg,
		TimeUnit:    Seconds,
		XLimits:     Range{Min: 0, Max: ScreenDivisionsX},
		YLimits:     Range{Min: -ScreenDivisionsY / 2, Max: ScreenDivisionsY / 2},
		Grid: ComputeGrid(
			Range{Min: 0, Max: ScreenDivisionsX},
			Range{Min: -ScreenDivisionsY / 2, Max: ScreenDivisionsY / 2},
		),
	}
}
