package main

import (
	"errors"
	"image"
	"log"
	"strconv"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"

	"git.sr.ht/~whereswaldon/scope-view/scope"
	"git.sr.ht/~whereswaldon/scope-view/theme"
)

// timeOffsetSpan is the width of the time offset slider in divisions.
const timeOffsetSpan = 10

type channelControls struct {
	visible          widget.Bool
	voltDown, voltUp widget.Clickable
}

// Controls is the panel of scale, offset, visibility and cursor settings.
// Its widgets mirror the engine state and are resynchronised after every
// engine change.
type Controls struct {
	engine *scope.Engine
	stale  bool

	timeDown, timeUp widget.Clickable
	timeOffset       widget.Float
	voltOffset       widget.Float
	timeReset        widget.Clickable
	voltReset        widget.Clickable
	offsetChannel    widget.Enum
	measureChannel   widget.Enum
	cursors          widget.Bool
	channels         []channelControls
	table            component.GridState
}

func NewControls(e *scope.Engine) *Controls {
	c := &Controls{engine: e, stale: true}
	e.OnChange(func(*scope.Engine) {
		c.stale = true
	})
	return c
}

func (c *Controls) apply(cmd scope.Command) {
	if err := c.engine.Apply(cmd); err != nil && !errors.Is(err, scope.ErrNoData) {
		log.Printf("failed applying %T: %v", cmd, err)
	}
}

// Update turns widget events into engine commands and then refreshes the
// widgets from the engine.
func (c *Controls) Update(gtx C) {
	ds := c.engine.Dataset()
	if ds == nil {
		return
	}
	for len(c.channels) < ds.ChannelCount() {
		c.channels = append(c.channels, channelControls{})
	}
	c.channels = c.channels[:ds.ChannelCount()]
	if c.stale {
		c.sync()
	}

	if c.timeDown.Clicked(gtx) {
		c.apply(scope.StepTimeDivision{Steps: -1})
	}
	if c.timeUp.Clicked(gtx) {
		c.apply(scope.StepTimeDivision{Steps: 1})
	}
	if c.timeOffset.Update(gtx) {
		c.apply(scope.SetTimeOffset{Divisions: float64(c.timeOffset.Value)*timeOffsetSpan - timeOffsetSpan/2})
	}
	if c.timeReset.Clicked(gtx) {
		c.apply(scope.ResetTimeOffset{})
	}
	if c.voltReset.Clicked(gtx) {
		c.apply(scope.ResetVoltOffsets{})
	}
	if c.offsetChannel.Update(gtx) {
		if ch, err := strconv.Atoi(c.offsetChannel.Value); err == nil {
			c.apply(scope.SetOffsetChannel{Channel: ch})
		}
	}
	if c.voltOffset.Update(gtx) {
		ch := c.engine.State().OffsetChannel
		r := c.engine.Viewport().OffsetSliderRange(ch)
		c.apply(scope.SetVoltOffsetDivisions{Channel: ch, Divisions: r.At(float64(c.voltOffset.Value))})
	}
	if c.cursors.Update(gtx) {
		c.apply(scope.SetCursorsEnabled{Enabled: c.cursors.Value})
	}
	if c.measureChannel.Update(gtx) {
		if ch, err := strconv.Atoi(c.measureChannel.Value); err == nil {
			c.apply(scope.SetMeasureChannel{Channel: ch})
		}
	}
	for i := range c.channels {
		ch := &c.channels[i]
		if ch.visible.Update(gtx) {
			c.apply(scope.SetChannelVisible{Channel: i, Visible: ch.visible.Value})
		}
		if ch.voltDown.Clicked(gtx) {
			c.apply(scope.StepVoltDivision{Channel: i, Steps: -1})
		}
		if ch.voltUp.Clicked(gtx) {
			c.apply(scope.StepVoltDivision{Channel: i, Steps: 1})
		}
	}
	if c.stale {
		c.sync()
	}
}

// sync copies the engine state into the widgets.
func (c *Controls) sync() {
	c.stale = false
	st := c.engine.State()
	vp := c.engine.Viewport()
	cur := c.engine.Cursors()
	c.timeOffset.Value = float32(scope.Range{Min: -timeOffsetSpan / 2, Max: timeOffsetSpan / 2}.Fraction(st.TimeOffset))
	c.offsetChannel.Value = strconv.Itoa(st.OffsetChannel)
	c.voltOffset.Value = float32(vp.OffsetSliderRange(st.OffsetChannel).Fraction(vp.OffsetSliderValue(st.OffsetChannel)))
	c.cursors.Value = cur.Enabled()
	c.measureChannel.Value = strconv.Itoa(cur.MeasureChannel)
	for i := range c.channels {
		c.channels[i].visible.Value = vp.Visible(i)
	}
}

func (c *Controls) Layout(gtx C, th *material.Theme, pal theme.Palette) D {
	ds := c.engine.Dataset()
	if ds == nil || c.engine.Mode() != scope.Transient {
		return D{}
	}
	st := c.engine.State()
	vp := c.engine.Viewport()
	cur := c.engine.Cursors()
	inset := layout.UniformInset(4)
	label := func(s string) layout.FlexChild {
		return layout.Rigid(func(gtx C) D {
			return inset.Layout(gtx, material.Body2(th, s).Layout)
		})
	}
	button := func(clk *widget.Clickable, s string) layout.FlexChild {
		return layout.Rigid(func(gtx C) D {
			return inset.Layout(gtx, material.Button(th, clk, s).Layout)
		})
	}
	radios := func(enum *widget.Enum) layout.FlexChild {
		return layout.Rigid(func(gtx C) D {
			children := make([]layout.FlexChild, 0, ds.ChannelCount())
			for i := 0; i < ds.ChannelCount(); i++ {
				i := i
				children = append(children, layout.Rigid(func(gtx C) D {
					gtx = disabledUnless(gtx, enum == &c.measureChannel || vp.Visible(i))
					return material.RadioButton(th, enum, strconv.Itoa(i), ds.ChannelHeading(i)).Layout(gtx)
				}))
			}
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx, children...)
		})
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				label("Time"),
				button(&c.timeDown, "−"),
				label(scope.TimeDivisions[st.TimeDivision].Label),
				button(&c.timeUp, "+"),
				label("Offset"),
				layout.Flexed(1, func(gtx C) D {
					return inset.Layout(gtx, material.Slider(th, &c.timeOffset).Layout)
				}),
				label(strconv.FormatFloat(st.TimeOffset, 'f', 2, 64)+" div"),
				button(&c.timeReset, "Reset"),
			)
		}),
		layout.Rigid(func(gtx C) D {
			off := st.VoltOffset[st.OffsetChannel]
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				label("Volt offset"),
				radios(&c.offsetChannel),
				layout.Flexed(1, func(gtx C) D {
					gtx = disabledUnless(gtx, vp.Visible(st.OffsetChannel))
					return inset.Layout(gtx, material.Slider(th, &c.voltOffset).Layout)
				}),
				label(scope.FormatVolts(off)),
				button(&c.voltReset, "Reset"),
			)
		}),
		layout.Rigid(func(gtx C) D {
			children := []layout.FlexChild{
				layout.Rigid(func(gtx C) D {
					return inset.Layout(gtx, material.CheckBox(th, &c.cursors, "Cursors").Layout)
				}),
			}
			if cur.Enabled() {
				children = append(children, label("Measure"), radios(&c.measureChannel))
			}
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx, children...)
		}),
		layout.Rigid(func(gtx C) D {
			return c.layoutChannels(gtx, th, pal, ds, st)
		}),
	)
}

func disabledUnless(gtx C, enabled bool) C {
	if !enabled {
		return gtx.Disabled()
	}
	return gtx
}

// layoutChannels draws the per-channel table: visibility swatch, name,
// volt/div stepper and offset.
func (c *Controls) layoutChannels(gtx C, th *material.Theme, pal theme.Palette, ds *scope.Dataset, st scope.ViewportState) D {
	table := component.Table(th, &c.table)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	table.VScrollbarStyle.Indicator.MinorWidth = 0
	table.VScrollbarStyle.Track.MinorPadding = 0
	colorColWidth := gtx.Dp(50)
	scaleColWidth := gtx.Dp(180)
	offsetColWidth := gtx.Dp(100)
	nameColWidth := max(gtx.Constraints.Max.X-colorColWidth-scaleColWidth-offsetColWidth-gtx.Dp(table.VScrollbarStyle.Width()), 0)
	rowHeight := gtx.Dp(36)
	const (
		colorCol = iota
		nameCol
		scaleCol
		offsetCol
		numCols
	)
	rows := ds.ChannelCount()
	gtx.Constraints.Max.Y = min(gtx.Constraints.Max.Y, (rows+1)*rowHeight)
	return table.Layout(gtx, rows, numCols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			var size int
			switch index {
			case colorCol:
				size = colorColWidth
			case nameCol:
				size = nameColWidth
			case scaleCol:
				size = scaleColWidth
			case offsetCol:
				size = offsetColWidth
			}
			return min(size, constraint)
		},
		func(gtx C, index int) D {
			var l material.LabelStyle
			switch index {
			case colorCol:
				l = material.Body1(th, "Show")
			case nameCol:
				l = material.Body1(th, "Channel")
				l.Alignment = text.Middle
			case scaleCol:
				l = material.Body1(th, "Scale")
				l.Alignment = text.Middle
			case offsetCol:
				l = material.Body1(th, "Offset")
				l.Alignment = text.End
			}
			l.Color = th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				}, l.Layout,
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			ch := &c.channels[row]
			enabled := st.Visible[row]
			disabledAlpha := uint8(100)
			dims = layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				switch col {
				case colorCol:
					return ch.visible.Layout(gtx, func(gtx C) D {
						return layout.Center.Layout(gtx, func(gtx C) D {
							sideLen := gtx.Dp(12)
							sz := image.Pt(sideLen, sideLen)
							fill := pal.Line(row)
							if !enabled {
								fill.A = disabledAlpha
							}
							paint.FillShape(gtx.Ops, fill, clip.Rect{Max: sz}.Op())
							return D{Size: sz}
						})
					})
				case nameCol:
					l := material.Body2(th, ds.ChannelHeading(row))
					if !enabled {
						l.Color.A = disabledAlpha
					}
					return layout.W.Layout(gtx, l.Layout)
				case scaleCol:
					return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
						layout.Rigid(func(gtx C) D {
							return stepButton(gtx, th, &ch.voltDown, "−")
						}),
						layout.Flexed(1, func(gtx C) D {
							l := material.Body2(th, scope.VoltDivisions[st.VoltDivision[row]].Label)
							l.Alignment = text.Middle
							return l.Layout(gtx)
						}),
						layout.Rigid(func(gtx C) D {
							return stepButton(gtx, th, &ch.voltUp, "+")
						}),
					)
				case offsetCol:
					l := material.Body2(th, scope.FormatVolts(st.VoltOffset[row]))
					l.Alignment = text.End
					if !enabled {
						l.Color.A = disabledAlpha
					}
					return layout.E.Layout(gtx, l.Layout)
				default:
					return D{Size: gtx.Constraints.Max}
				}
			})
			if row&1 != 0 {
				paint.FillShape(gtx.Ops, withAlpha(pal.Line(row), 50), clip.Rect{Max: gtx.Constraints.Max}.Op())
			}
			return dims
		})
}

func stepButton(gtx C, th *material.Theme, clk *widget.Clickable, s string) D {
	b := material.Button(th, clk, s)
	b.Inset = layout.Inset{Top: 2, Bottom: 2, Left: 8, Right: 8}
	b.TextSize = unit.Sp(14)
	return b.Layout(gtx)
}
