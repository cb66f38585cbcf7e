package scope

import "math"

// CursorID names one of the four measurement cursors.
type CursorID uint8

const (
	NoCursor CursorID = iota
	// CursorX1 and CursorX2 are vertical lines positioned in time.
	CursorX1
	CursorX2
	// CursorY1 and CursorY2 are horizontal lines positioned in divisions.
	CursorY1
	CursorY2
)

func (id CursorID) String() string {
	switch id {
	case CursorX1:
		return "x1"
	case CursorX2:
		return "x2"
	case CursorY1:
		return "y1"
	case CursorY2:
		return "y2"
	default:
		return "none"
	}
}

// Vertical reports whether the cursor is drawn as a vertical line.
func (id CursorID) Vertical() bool { return id == CursorX1 || id == CursorX2 }

// CursorState is the interaction state of the cursor set.
type CursorState uint8

const (
	CursorsHidden CursorState = iota
	CursorsIdle
	CursorsDragging
)

func (s CursorState) String() string {
	switch s {
	case CursorsHidden:
		return "hidden"
	case CursorsIdle:
		return "idle"
	case CursorsDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Point is a position in data coordinates: X in seconds, Y in divisions.
type Point struct {
	X, Y float64
}

// Cursors holds two vertical and two horizontal cursors. Positions are in
// data coordinates so they survive changes to the time or volt scale.
type Cursors struct {
	state  CursorState
	placed bool
	active CursorID

	x1, x2 float64
	y1, y2 float64

	// MeasureChannel selects whose volt/div converts the y delta to volts.
	MeasureChannel int
}

func (c Cursors) State() CursorState { return c.state }

// Active is the cursor being dragged, or NoCursor.
func (c Cursors) Active() CursorID { return c.active }

func (c Cursors) Enabled() bool { return c.state != CursorsHidden }

// Enable shows the cursors. The first time, they are placed at 25% and 75%
// of the given horizontal and vertical ranges; afterwards the last positions
// are kept.
func (c *Cursors) Enable(x, y Range) {
	if c.state != CursorsHidden {
		return
	}
	if !c.placed {
		c.x1, c.x2 = x.At(0.25), x.At(0.75)
		c.y1, c.y2 = y.At(0.25), y.At(0.75)
		c.placed = true
	}
	c.state = CursorsIdle
}

// Disable hides the cursors, remembering their positions.
func (c *Cursors) Disable() {
	c.state = CursorsHidden
	c.active = NoCursor
}

// Place sets all four positions directly.
func (c *Cursors) Place(x1, x2, y1, y2 float64) {
	c.x1, c.x2, c.y1, c.y2 = x1, x2, y1, y2
	c.placed = true
}

// Position returns the coordinate of a cursor along its own axis.
func (c Cursors) Position(id CursorID) float64 {
	switch id {
	case CursorX1:
		return c.x1
	case CursorX2:
		return c.x2
	case CursorY1:
		return c.y1
	case CursorY2:
		return c.y2
	}
	return 0
}

func (c *Cursors) set(id CursorID, v float64) {
	switch id {
	case CursorX1:
		c.x1 = v
	case CursorX2:
		c.x2 = v
	case CursorY1:
		c.y1 = v
	case CursorY2:
		c.y2 = v
	}
}

// Press starts a drag on the cursor nearest p, provided it lies within tol
// along the cursor's own axis. tol is expressed in data units per axis.
func (c *Cursors) Press(p, tol Point) CursorID {
	if c.state != CursorsIdle {
		return NoCursor
	}
	best, bestDist := NoCursor, math.Inf(1)
	for _, id := range []CursorID{CursorX1, CursorX2, CursorY1, CursorY2} {
		var d float64
		if id.Vertical() {
			if tol.X <= 0 {
				continue
			}
			d = math.Abs(p.X-c.Position(id)) / tol.X
		} else {
			if tol.Y <= 0 {
				continue
			}
			d = math.Abs(p.Y-c.Position(id)) / tol.Y
		}
		if d <= 1 && d < bestDist {
			best, bestDist = id, d
		}
	}
	if best != NoCursor {
		c.state = CursorsDragging
		c.active = best
	}
	return best
}

// Drag moves the active cursor along its axis. Motion outside the plot area
// is ignored. It reports whether a position changed.
func (c *Cursors) Drag(p Point, inside bool) bool {
	if c.state != CursorsDragging || !inside {
		return false
	}
	v := p.Y
	if c.active.Vertical() {
		v = p.X
	}
	if c.Position(c.active) == v {
		return false
	}
	c.set(c.active, v)
	return true
}

// Release ends a drag. The cursor stays where it last was inside the plot.
func (c *Cursors) Release() {
	if c.state != CursorsDragging {
		return
	}
	c.state = CursorsIdle
	c.active = NoCursor
}

// Reset hides the cursors and forgets their positions.
func (c *Cursors) Reset() {
	*c = Cursors{}
}

// CursorDelta is the cursor measurement in physical units.
type CursorDelta struct {
	// DX is the time between the vertical cursors, in seconds.
	DX float64
	// DY is the voltage between the horizontal cursors, in volts.
	DY float64
}

// Delta measures the cursors. vdiv is the volt/div of the measurement
// channel.
func (c Cursors) Delta(vdiv float64) CursorDelta {
	return CursorDelta{
		DX: math.Abs(c.x2 - c.x1),
		DY: math.Abs(c.y2-c.y1) * vdiv,
	}
}
