package scope

import (
	"math"
	"sort"
)

// ViewportState is the user-adjustable view configuration. Offsets are kept
// in physical units (divisions for time, volts per channel) so that they
// survive changes of scale.
type ViewportState struct {
	TimeDivision int
	VoltDivision []int
	// TimeOffset shifts the window centre, in time divisions.
	TimeOffset float64
	// VoltOffset is the vertical offset of each channel, in volts.
	VoltOffset []float64
	Visible    []bool
	// OffsetChannel is the channel currently driven by the offset slider.
	OffsetChannel int
}

// DefaultViewportState returns the settings used by "default setup" for a
// dataset with the given number of channels.
func DefaultViewportState(channels int) ViewportState {
	s := ViewportState{
		TimeDivision: DefaultTimeDivision,
		VoltDivision: make([]int, channels),
		VoltOffset:   make([]float64, channels),
		Visible:      make([]bool, channels),
	}
	for i := 0; i < channels; i++ {
		s.VoltDivision[i] = DefaultVoltDivision
		s.Visible[i] = true
	}
	return s
}

// Clone returns a deep copy.
func (s ViewportState) Clone() ViewportState {
	s.VoltDivision = append([]int(nil), s.VoltDivision...)
	s.VoltOffset = append([]float64(nil), s.VoltOffset...)
	s.Visible = append([]bool(nil), s.Visible...)
	return s
}

// Viewport maps a dataset and a ViewportState to concrete windows and
// display transforms. It holds no state of its own beyond the pair.
type Viewport struct {
	Data  *Dataset
	State *ViewportState
}

func (v Viewport) channelOK(c int) bool {
	return c >= 0 && c < len(v.State.VoltDivision)
}

// TimeDivision is the active time scale in seconds per division.
func (v Viewport) TimeDivision() float64 {
	return TimeDivisions[clampIndex(TimeDivisions, v.State.TimeDivision)].Value
}

// VoltDivision is channel c's scale in volts per division. Unknown channels
// report the default scale.
func (v Viewport) VoltDivision(c int) float64 {
	if !v.channelOK(c) {
		return VoltDivisions[DefaultVoltDivision].Value
	}
	return VoltDivisions[clampIndex(VoltDivisions, v.State.VoltDivision[c])].Value
}

func (v Viewport) voltOffset(c int) float64 {
	if c < 0 || c >= len(v.State.VoltOffset) {
		return 0
	}
	return v.State.VoltOffset[c]
}

// VisibleTimeWindow is ten time divisions wide, centred on the middle of the
// capture shifted by the time offset.
func (v Viewport) VisibleTimeWindow() Range {
	tdiv := v.TimeDivision()
	axis := v.Data.AxisRange()
	center := axis.Min + axis.Span()/2 + v.State.TimeOffset*tdiv
	width := ScreenDivisionsX * tdiv
	lo := center - width/2
	return Range{Min: lo, Max: lo + width}
}

// SamplesInWindow returns the half-open index range [lo, hi) of samples
// whose time lies inside w. Fewer than two samples is reported as
// ErrInsufficientVisibleData.
func (v Viewport) SamplesInWindow(w Range) (lo, hi int, err error) {
	axis := v.Data.IndependentAxis()
	lo = sort.SearchFloat64s(axis, w.Min)
	hi = sort.Search(len(axis), func(i int) bool { return axis[i] > w.Max })
	if hi-lo < 2 {
		return lo, hi, ErrInsufficientVisibleData
	}
	return lo, hi, nil
}

// DisplayValue normalizes a raw channel value into divisions of that
// channel's own volt/div, then adds the channel offset in the same units.
func (v Viewport) DisplayValue(c int, raw float64) float64 {
	vdiv := v.VoltDivision(c)
	return raw/vdiv + v.voltOffset(c)/vdiv
}

// ClampTimeOffset limits a time offset to half a screen either way, which
// keeps the capture's midpoint on screen.
func ClampTimeOffset(divs float64) float64 {
	if math.IsNaN(divs) {
		return 0
	}
	return clamp(divs, -ScreenDivisionsX/2, ScreenDivisionsX/2)
}

// voltOffsetLimit is the largest offset magnitude, in volts, allowed for
// channel c: half the channel's own data range, or half a screen for a flat
// channel.
func (v Viewport) voltOffsetLimit(c int) float64 {
	span := v.Data.ChannelRange(c).Span()
	if span <= 0 {
		return ScreenDivisionsY / 2 * v.VoltDivision(c)
	}
	return span / 2
}

// ClampVoltOffset limits an offset for channel c. Each channel is clamped
// against its own range only.
func (v Viewport) ClampVoltOffset(c int, volts float64) float64 {
	if math.IsNaN(volts) {
		return 0
	}
	limit := v.voltOffsetLimit(c)
	return clamp(volts, -limit, limit)
}

// OffsetSliderRange is the offset slider's extent for channel c, in
// divisions of the channel's current volt/div. It follows the volt/div
// setting; the stored offset in volts does not.
func (v Viewport) OffsetSliderRange(c int) Range {
	half := v.voltOffsetLimit(c) / v.VoltDivision(c)
	return Range{Min: -half, Max: half}
}

// OffsetSliderValue is channel c's stored offset expressed in divisions.
func (v Viewport) OffsetSliderValue(c int) float64 {
	return v.voltOffset(c) / v.VoltDivision(c)
}

// VerticalLimits returns the y-axis limits in divisions for the samples in
// [lo, hi): eight divisions centred on the midpoint of the visible channels'
// scaled data. Offsets are left out of the centring so they move traces
// against the grid.
func (v Viewport) VerticalLimits(lo, hi int) Range {
	center := 0.0
	found := false
	var low, high float64
	for c := 0; c < v.Data.ChannelCount(); c++ {
		if !v.Visible(c) {
			continue
		}
		vdiv := v.VoltDivision(c)
		for _, raw := range v.Data.Channel(c)[lo:hi] {
			d := raw / vdiv
			if !found {
				low, high, found = d, d, true
				continue
			}
			low = min(low, d)
			high = max(high, d)
		}
	}
	if found {
		center = low + (high-low)/2
	}
	return Range{Min: center - ScreenDivisionsY/2, Max: center + ScreenDivisionsY/2}
}

// Visible reports whether channel c is drawn.
func (v Viewport) Visible(c int) bool {
	return c >= 0 && c < len(v.State.Visible) && v.State.Visible[c]
}
