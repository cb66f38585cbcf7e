package scope

import "git.sr.ht/~whereswaldon/scope-view/theme"

// Command is a single user action against the engine.
type Command interface {
	apply(e *Engine) error
}

// Apply runs cmd and then the change observers. It is the only way view
// state changes after a load. Calling Apply while a previous command (or
// its observers) is still running returns ErrReentrant and changes nothing.
func (e *Engine) Apply(cmd Command) error {
	if e.updating {
		return ErrReentrant
	}
	e.updating = true
	defer func() { e.updating = false }()
	if err := cmd.apply(e); err != nil {
		return err
	}
	e.notify()
	return nil
}

// SetTimeDivision selects a TimeDivisions entry. Out-of-range indexes are
// clamped to the catalog.
type SetTimeDivision struct{ Index int }

func (c SetTimeDivision) apply(e *Engine) error {
	if e.data == nil {
		return ErrNoData
	}
	e.state.TimeDivision = clampIndex(TimeDivisions, c.Index)
	return nil
}

// StepTimeDivision moves the time division by Steps catalog entries.
type StepTimeDivision struct{ Steps int }

func (c StepTimeDivision) apply(e *Engine) error {
	return SetTimeDivision{Index: e.state.TimeDivision + c.Steps}.apply(e)
}

// SetVoltDivision selects a VoltDivisions entry for one channel. The stored
// offset in volts is left as it is.
type SetVoltDivision struct {
	Channel int
	Index   int
}

func (c SetVoltDivision) apply(e *Engine) error {
	if err := e.checkChannel(c.Channel); err != nil {
		return err
	}
	e.state.VoltDivision[c.Channel] = clampIndex(VoltDivisions, c.Index)
	return nil
}

// StepVoltDivision moves one channel's volt division by Steps entries.
type StepVoltDivision struct {
	Channel int
	Steps   int
}

func (c StepVoltDivision) apply(e *Engine) error {
	if err := e.checkChannel(c.Channel); err != nil {
		return err
	}
	return SetVoltDivision{Channel: c.Channel, Index: e.state.VoltDivision[c.Channel] + c.Steps}.apply(e)
}

// SetTimeOffset pans the window, in time divisions.
type SetTimeOffset struct{ Divisions float64 }

func (c SetTimeOffset) apply(e *Engine) error {
	if e.data == nil {
		return ErrNoData
	}
	e.state.TimeOffset = ClampTimeOffset(c.Divisions)
	return nil
}

// SetVoltOffset sets a channel's vertical offset in volts. Hidden channels
// ignore it.
type SetVoltOffset struct {
	Channel int
	Volts   float64
}

func (c SetVoltOffset) apply(e *Engine) error {
	if err := e.checkChannel(c.Channel); err != nil {
		return err
	}
	if !e.state.Visible[c.Channel] {
		return nil
	}
	e.state.VoltOffset[c.Channel] = e.viewport().ClampVoltOffset(c.Channel, c.Volts)
	return nil
}

// ResetTimeOffset centres the window on the capture again.
type ResetTimeOffset struct{}

func (ResetTimeOffset) apply(e *Engine) error {
	return SetTimeOffset{}.apply(e)
}

// ResetVoltOffsets clears the vertical offset of every channel, hidden ones
// included. Divisions are kept.
type ResetVoltOffsets struct{}

func (ResetVoltOffsets) apply(e *Engine) error {
	if e.data == nil {
		return ErrNoData
	}
	clear(e.state.VoltOffset)
	return nil
}

// SetVoltOffsetDivisions sets a channel's offset from a slider position in
// divisions of the channel's current volt/div.
type SetVoltOffsetDivisions struct {
	Channel   int
	Divisions float64
}

func (c SetVoltOffsetDivisions) apply(e *Engine) error {
	if err := e.checkChannel(c.Channel); err != nil {
		return err
	}
	volts := c.Divisions * e.viewport().VoltDivision(c.Channel)
	return SetVoltOffset{Channel: c.Channel, Volts: volts}.apply(e)
}

// SetOffsetChannel chooses the channel driven by the offset slider.
type SetOffsetChannel struct{ Channel int }

func (c SetOffsetChannel) apply(e *Engine) error {
	if err := e.checkChannel(c.Channel); err != nil {
		return err
	}
	e.state.OffsetChannel = c.Channel
	return nil
}

// SetChannelVisible shows or hides a channel. Its data and settings are
// untouched.
type SetChannelVisible struct {
	Channel int
	Visible bool
}

func (c SetChannelVisible) apply(e *Engine) error {
	if err := e.checkChannel(c.Channel); err != nil {
		return err
	}
	e.state.Visible[c.Channel] = c.Visible
	return nil
}

// SetCursorsEnabled shows or hides the measurement cursors.
type SetCursorsEnabled struct{ Enabled bool }

func (c SetCursorsEnabled) apply(e *Engine) error {
	if e.data == nil {
		return ErrNoData
	}
	if !c.Enabled {
		e.cursors.Disable()
		return nil
	}
	x, y := e.cursorRanges()
	e.cursors.Enable(x, y)
	return nil
}

// SetMeasureChannel chooses whose volt/div converts the cursor y delta.
type SetMeasureChannel struct{ Channel int }

func (c SetMeasureChannel) apply(e *Engine) error {
	if err := e.checkChannel(c.Channel); err != nil {
		return err
	}
	e.cursors.MeasureChannel = c.Channel
	return nil
}

type SetTheme struct{ Variant theme.Variant }

func (c SetTheme) apply(e *Engine) error {
	e.theme = c.Variant
	return nil
}

// DefaultSetup restores default divisions, clears every offset and removes
// the cursors. Channel visibility and the dataset are kept.
type DefaultSetup struct{}

func (DefaultSetup) apply(e *Engine) error {
	if e.data == nil {
		return ErrNoData
	}
	visible := e.state.Visible
	e.state = DefaultViewportState(e.data.ChannelCount())
	e.state.Visible = visible
	e.cursors.Reset()
	return nil
}

// PressCursor starts dragging the cursor nearest At. At and Tolerance are in
// cursor coordinates: seconds horizontally, divisions vertically.
type PressCursor struct {
	At        Point
	Tolerance Point
}

func (c PressCursor) apply(e *Engine) error {
	e.cursors.Press(c.At, c.Tolerance)
	return nil
}

// DragCursor moves the cursor being dragged. Inside reports whether At lies
// within the plot area; outside positions are ignored.
type DragCursor struct {
	At     Point
	Inside bool
}

func (c DragCursor) apply(e *Engine) error {
	e.cursors.Drag(c.At, c.Inside)
	return nil
}

type ReleaseCursor struct{}

func (ReleaseCursor) apply(e *Engine) error {
	e.cursors.Release()
	return nil
}
