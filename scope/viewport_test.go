package scope

import (
	"errors"
	"math"
	"testing"
)

func TestVisibleTimeWindowWidth(t *testing.T) {
	ds := rampDataset(t)
	for tdiv := range TimeDivisions {
		for _, offset := range []float64{-5, -2.5, 0, 1, 5} {
			state := DefaultViewportState(ds.ChannelCount())
			state.TimeDivision = tdiv
			state.TimeOffset = offset
			v := Viewport{Data: ds, State: &state}
			want := ScreenDivisionsX * TimeDivisions[tdiv].Value
			got := v.VisibleTimeWindow().Span()
			// The window sits on an absolute time axis, so at ns/div the
			// span carries a rounding error of a few ulps of the capture time.
			if math.Abs(got-want) > want*1e-9 {
				t.Errorf("expected width %v at %s offset %v, got %v", want, TimeDivisions[tdiv].Label, offset, got)
			}
		}
	}
}

func TestVisibleTimeWindowCenter(t *testing.T) {
	ds := rampDataset(t)
	state := DefaultViewportState(ds.ChannelCount())
	state.TimeOffset = 2
	v := Viewport{Data: ds, State: &state}
	w := v.VisibleTimeWindow()
	// Capture centre 5 ms, shifted by two 1 ms divisions.
	if math.Abs(w.Mid()-0.007) > 1e-12 {
		t.Errorf("expected window centre 7 ms, got %v", w.Mid())
	}
	lo, hi, err := v.SamplesInWindow(w)
	if err != nil {
		t.Fatalf("expected samples in window, got: %v", err)
	}
	axis := ds.IndependentAxis()
	if axis[lo] < w.Min || axis[hi-1] > w.Max {
		t.Errorf("expected samples within %v, got [%v, %v]", w, axis[lo], axis[hi-1])
	}
	if lo > 0 && axis[lo-1] >= w.Min {
		t.Errorf("expected sample %d to be the first in the window", lo)
	}
}

func TestSamplesInWindowInsufficient(t *testing.T) {
	ds := rampDataset(t)
	state := DefaultViewportState(ds.ChannelCount())
	v := Viewport{Data: ds, State: &state}
	_, _, err := v.SamplesInWindow(Range{Min: 1, Max: 2})
	if !errors.Is(err, ErrInsufficientVisibleData) {
		t.Errorf("expected ErrInsufficientVisibleData, got %v", err)
	}
	if ClassOf(err) != ViewStateErrorClass {
		t.Errorf("expected view state class, got %v", ClassOf(err))
	}
}

func TestDisplayValue(t *testing.T) {
	ds := rampDataset(t)
	state := DefaultViewportState(ds.ChannelCount())
	state.VoltDivision[0] = 6 // 2 V/div
	state.VoltOffset[0] = 1
	v := Viewport{Data: ds, State: &state}
	if got := v.DisplayValue(0, 2); got != 1.5 {
		t.Errorf("expected 1.5 divisions, got %v", got)
	}
	if got := v.DisplayValue(1, 2); got != 2 {
		t.Errorf("expected 2 divisions on the untouched channel, got %v", got)
	}
}

func TestClampIdempotent(t *testing.T) {
	ds := rampDataset(t)
	state := DefaultViewportState(ds.ChannelCount())
	v := Viewport{Data: ds, State: &state}
	for _, in := range []float64{-100, -5, -1.25, 0, 3, 5, 7.5, math.Inf(1), math.NaN()} {
		once := ClampTimeOffset(in)
		if twice := ClampTimeOffset(once); twice != once {
			t.Errorf("expected time clamp of %v to be idempotent, got %v then %v", in, once, twice)
		}
		if once < -5 || once > 5 {
			t.Errorf("expected time offset within ±5 divisions, got %v", once)
		}
		for c := 0; c < ds.ChannelCount(); c++ {
			once := v.ClampVoltOffset(c, in)
			if twice := v.ClampVoltOffset(c, once); twice != once {
				t.Errorf("expected volt clamp of %v on channel %d to be idempotent, got %v then %v", in, c, once, twice)
			}
		}
	}
}

func TestClampVoltOffsetPerChannel(t *testing.T) {
	ds := rampDataset(t)
	state := DefaultViewportState(ds.ChannelCount())
	v := Viewport{Data: ds, State: &state}
	// Channel 0 spans 4 V, channel 1 spans 20 V.
	if got := v.ClampVoltOffset(0, 8); got != 2 {
		t.Errorf("expected channel 0 offset clamped to 2 V, got %v", got)
	}
	if got := v.ClampVoltOffset(1, 8); got != 8 {
		t.Errorf("expected channel 1 offset of 8 V to be kept, got %v", got)
	}
	if got := v.ClampVoltOffset(1, -30); got != -10 {
		t.Errorf("expected channel 1 offset clamped to -10 V, got %v", got)
	}
}

func TestClampVoltOffsetFlatChannel(t *testing.T) {
	ds, err := Load([]string{"t", "dc"}, [][]float64{{0, 3}, {1, 3}, {2, 3}})
	if err != nil {
		t.Fatalf("expected load to succeed, got: %v", err)
	}
	state := DefaultViewportState(ds.ChannelCount())
	state.VoltDivision[0] = 6 // 2 V/div
	v := Viewport{Data: ds, State: &state}
	if got := v.ClampVoltOffset(0, 100); got != 8 {
		t.Errorf("expected a flat channel to allow four divisions (8 V), got %v", got)
	}
}

func TestOffsetSliderRange(t *testing.T) {
	ds := rampDataset(t)
	state := DefaultViewportState(ds.ChannelCount())
	state.VoltOffset[0] = 1
	v := Viewport{Data: ds, State: &state}
	if r := v.OffsetSliderRange(0); r.Min != -2 || r.Max != 2 {
		t.Errorf("expected ±2 divisions at 1 V/div, got %v", r)
	}
	state.VoltDivision[0] = 6 // 2 V/div
	if r := v.OffsetSliderRange(0); r.Min != -1 || r.Max != 1 {
		t.Errorf("expected ±1 division at 2 V/div, got %v", r)
	}
	if got := v.OffsetSliderValue(0); got != 0.5 {
		t.Errorf("expected slider at 0.5 divisions, got %v", got)
	}
}

func TestVerticalLimits(t *testing.T) {
	ds := rampDataset(t)
	state := DefaultViewportState(ds.ChannelCount())
	v := Viewport{Data: ds, State: &state}
	n := ds.RowCount()
	if r := v.VerticalLimits(0, n); r.Min != -4 || r.Max != 4 {
		t.Errorf("expected [-4, 4] with both channels, got %v", r)
	}
	state.Visible[1] = false
	if r := v.VerticalLimits(0, n); r.Min != -2 || r.Max != 6 {
		t.Errorf("expected [-2, 6] centred on channel 0, got %v", r)
	}
	state.VoltOffset[0] = 1
	if r := v.VerticalLimits(0, n); r.Min != -2 || r.Max != 6 {
		t.Errorf("expected offsets to leave the limits alone, got %v", r)
	}
	state.Visible[0] = false
	if r := v.VerticalLimits(0, n); r.Min != -4 || r.Max != 4 {
		t.Errorf("expected [-4, 4] with nothing visible, got %v", r)
	}
}
