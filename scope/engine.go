package scope

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"git.sr.ht/~whereswaldon/scope-view/theme"
)

// Engine owns the loaded dataset and every piece of view state derived from
// it. All mutation goes through Load and Apply, which must be called from a
// single goroutine (the UI loop).
type Engine struct {
	// MaxPoints bounds the points per trace in a Frame. Zero means
	// DefaultMaxPoints.
	MaxPoints int

	data    *Dataset
	binding Binding
	bode    *bodeTable
	state   ViewportState
	cursors Cursors
	theme   theme.Variant

	updating  bool
	observers []func(*Engine)
}

// bodeTable is the frequency response sorted by frequency with
// non-positive frequencies removed, ready for a logarithmic axis.
type bodeTable struct {
	freq, gain, phase []float64
	labels            [3]string
}

func NewEngine() *Engine {
	return &Engine{MaxPoints: DefaultMaxPoints}
}

// OnChange registers fn to run after every successful Load or Apply. fn
// runs while the engine is still marked as updating, so any Apply it makes
// fails with ErrReentrant.
func (e *Engine) OnChange(fn func(*Engine)) {
	e.observers = append(e.observers, fn)
}

func (e *Engine) notify() {
	for _, fn := range e.observers {
		fn(e)
	}
}

// Load replaces the dataset and resets all view state. The change is
// complete by the time Load returns; nothing of the previous dataset
// remains visible.
func (e *Engine) Load(ds *Dataset) error {
	if e.updating {
		return ErrReentrant
	}
	if ds == nil {
		return &DataError{Err: ErrEmptyData, Row: -1}
	}
	e.updating = true
	defer func() { e.updating = false }()

	e.data = ds
	e.binding = Classify(ds.Headings())
	e.bode = nil
	if e.binding.Mode == FrequencyResponse {
		e.bode = newBodeTable(ds, e.binding)
	}
	e.state = DefaultViewportState(ds.ChannelCount())
	e.state.TimeDivision = AutoSelectTimeDivision(ds.Duration())
	e.cursors.Reset()
	e.notify()
	return nil
}

func newBodeTable(ds *Dataset, b Binding) *bodeTable {
	freq, gain, phase := ds.Column(b.Axis), ds.Column(b.Gain), ds.Column(b.Phase)
	order := make([]int, 0, len(freq))
	for i, f := range freq {
		if f > 0 {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool { return freq[order[a]] < freq[order[b]] })
	t := &bodeTable{
		freq:  make([]float64, len(order)),
		gain:  make([]float64, len(order)),
		phase: make([]float64, len(order)),
	}
	for i, src := range order {
		t.freq[i], t.gain[i], t.phase[i] = freq[src], gain[src], phase[src]
	}
	headings := ds.Headings()
	t.labels = [3]string{headings[b.Axis], headings[b.Gain], headings[b.Phase]}
	return t
}

// Loaded reports whether a dataset is installed.
func (e *Engine) Loaded() bool { return e.data != nil }

func (e *Engine) Dataset() *Dataset { return e.data }

func (e *Engine) Binding() Binding { return e.binding }

func (e *Engine) Mode() ViewMode { return e.binding.Mode }

func (e *Engine) Theme() theme.Variant { return e.theme }

// State returns a copy of the current view state.
func (e *Engine) State() ViewportState { return e.state.Clone() }

// Cursors returns a copy of the cursor state.
func (e *Engine) Cursors() Cursors { return e.cursors }

// Viewport returns a viewport over a snapshot of the current state.
func (e *Engine) Viewport() Viewport {
	s := e.state.Clone()
	return Viewport{Data: e.data, State: &s}
}

func (e *Engine) viewport() Viewport {
	return Viewport{Data: e.data, State: &e.state}
}

func (e *Engine) maxPoints() int {
	if e.MaxPoints <= 0 {
		return DefaultMaxPoints
	}
	return e.MaxPoints
}

func (e *Engine) checkChannel(c int) error {
	if e.data == nil {
		return ErrNoData
	}
	if c < 0 || c >= e.data.ChannelCount() {
		return fmt.Errorf("%w: %d", ErrNoSuchChannel, c)
	}
	return nil
}

// cursorRanges is the current plot area in cursor coordinates: seconds
// horizontally, divisions vertically.
func (e *Engine) cursorRanges() (x, y Range) {
	v := e.viewport()
	x = v.VisibleTimeWindow()
	lo, hi, err := v.SamplesInWindow(x)
	if err != nil {
		return x, Range{Min: -ScreenDivisionsY / 2, Max: ScreenDivisionsY / 2}
	}
	return x, v.VerticalLimits(lo, hi)
}

// Frame computes the layout for the current state. When there is nothing to
// draw it returns a placeholder frame together with ErrNoData or
// ErrInsufficientVisibleData; the state is never modified.
func (e *Engine) Frame() (Frame, error) {
	if e.data == nil {
		return placeholderFrame(Transient, e.theme, "Load a CSV file"), ErrNoData
	}
	if e.binding.Mode == FrequencyResponse {
		return e.bodeFrame()
	}
	return e.transientFrame()
}

func (e *Engine) transientFrame() (Frame, error) {
	v := e.viewport()
	w := v.VisibleTimeWindow()
	lo, hi, err := v.SamplesInWindow(w)
	if err != nil {
		f := placeholderFrame(Transient, e.theme, "Not enough data in the visible range")
		f.TimeScale = TimeDivisions[clampIndex(TimeDivisions, e.state.TimeDivision)].Label
		return f, err
	}
	unit := TimeUnitFor(max(math.Abs(w.Min), math.Abs(w.Max)))
	f := Frame{
		Mode:      Transient,
		Theme:     e.theme,
		TimeUnit:  unit,
		XLimits:   w.Scale(unit.Scale),
		YLimits:   v.VerticalLimits(lo, hi),
		XLabel:    fmt.Sprintf("Time (%s)", unit.Symbol),
		YLabel:    "Divisions",
		TimeScale: TimeDivisions[clampIndex(TimeDivisions, e.state.TimeDivision)].Label,
	}
	f.Grid = ComputeGrid(f.XLimits, f.YLimits)

	axis := e.data.IndependentAxis()[lo:hi]
	xs := make([]float64, len(axis))
	for i, t := range axis {
		xs[i] = unit.In(t)
	}
	ys := make([]float64, len(axis))
	for c := 0; c < e.data.ChannelCount(); c++ {
		f.VoltScales = append(f.VoltScales, VoltDivisions[clampIndex(VoltDivisions, e.state.VoltDivision[c])].Label)
		if !v.Visible(c) {
			continue
		}
		for i, raw := range e.data.Channel(c)[lo:hi] {
			ys[i] = v.DisplayValue(c, raw)
		}
		s := Series{Label: e.data.ChannelHeading(c), Channel: c, Color: c}
		s.X, s.Y = Decimate(nil, nil, xs, ys, e.maxPoints())
		f.Series = append(f.Series, s)
	}

	if e.cursors.Enabled() {
		mc := e.cursors.MeasureChannel
		d := e.cursors.Delta(v.VoltDivision(mc))
		f.Cursors = &CursorOverlay{
			X1:             unit.In(e.cursors.Position(CursorX1)),
			X2:             unit.In(e.cursors.Position(CursorX2)),
			Y1:             e.cursors.Position(CursorY1),
			Y2:             e.cursors.Position(CursorY2),
			Active:         e.cursors.Active(),
			Delta:          d,
			MeasureChannel: mc,
			DXLabel:        "Δt = " + unit.Format(d.DX),
			DYLabel:        "ΔV = " + FormatVolts(d.DY),
		}
	}
	return f, nil
}

func (e *Engine) bodeFrame() (Frame, error) {
	t := e.bode
	if t == nil || len(t.freq) < 2 {
		f := placeholderFrame(FrequencyResponse, e.theme, "Not enough positive frequencies to plot")
		return f, ErrInsufficientVisibleData
	}
	freq := Range{Min: t.freq[0], Max: t.freq[len(t.freq)-1]}
	b := &BodeFrame{
		Frequency:   freq,
		FreqLabel:   t.labels[0],
		GainLimits:  padded(floats.Min(t.gain), floats.Max(t.gain)),
		GainLabel:   t.labels[1],
		PhaseLimits: padded(floats.Min(t.phase), floats.Max(t.phase)),
		PhaseLabel:  t.labels[2],
	}
	b.Gain = Series{Label: t.labels[1], Channel: -1, Color: 0}
	b.Gain.X, b.Gain.Y = Decimate(nil, nil, t.freq, t.gain, e.maxPoints())
	b.Phase = Series{Label: t.labels[2], Channel: -1, Color: 1}
	b.Phase.X, b.Phase.Y = Decimate(nil, nil, t.freq, t.phase, e.maxPoints())
	b.GainGrid = ComputeLogGrid(freq, b.GainLimits)
	b.PhaseGrid = ComputeLogGrid(freq, b.PhaseLimits)
	return Frame{
		Mode:    FrequencyResponse,
		Theme:   e.theme,
		XLimits: freq,
		Bode:    b,
	}, nil
}

// padded widens [lo, hi] by 5% on each side, or by one unit when flat.
func padded(lo, hi float64) Range {
	if hi <= lo {
		return Range{Min: lo - 1, Max: hi + 1}
	}
	pad := (hi - lo) * 0.05
	return Range{Min: lo - pad, Max: hi + pad}
}
