package scope

import "testing"

func TestCursorDelta(t *testing.T) {
	var c Cursors
	c.Place(0, 0.005, 0, 2)
	d := c.Delta(1)
	if d.DX != 0.005 {
		t.Errorf("expected dx of 5 ms, got %v", d.DX)
	}
	if d.DY != 2 {
		t.Errorf("expected dy of 2 V, got %v", d.DY)
	}
	if got := FormatTime(d.DX); got != "5 ms" {
		t.Errorf("expected \"5 ms\", got %q", got)
	}
	if got := c.Delta(2).DY; got != 4 {
		t.Errorf("expected dy of 4 V at 2 V/div, got %v", got)
	}
}

func TestCursorLifecycle(t *testing.T) {
	var c Cursors
	x := Range{Min: 0, Max: 10}
	y := Range{Min: -4, Max: 4}

	if c.Press(Point{X: 2.5}, Point{X: 1, Y: 1}) != NoCursor {
		t.Errorf("expected hidden cursors to ignore presses")
	}
	c.Enable(x, y)
	if c.State() != CursorsIdle {
		t.Fatalf("expected idle, got %v", c.State())
	}
	for id, want := range map[CursorID]float64{CursorX1: 2.5, CursorX2: 7.5, CursorY1: -2, CursorY2: 2} {
		if got := c.Position(id); got != want {
			t.Errorf("expected %v at %v, got %v", id, want, got)
		}
	}

	if id := c.Press(Point{X: 2.6, Y: 100}, Point{X: 0.5, Y: 0.5}); id != CursorX1 {
		t.Fatalf("expected to grab x1, got %v", id)
	}
	if c.State() != CursorsDragging {
		t.Errorf("expected dragging, got %v", c.State())
	}
	if !c.Drag(Point{X: 3, Y: 1}, true) {
		t.Errorf("expected drag inside the plot to move the cursor")
	}
	if c.Drag(Point{X: 100, Y: 1}, false) {
		t.Errorf("expected drag outside the plot to be ignored")
	}
	c.Release()
	if c.State() != CursorsIdle || c.Active() != NoCursor {
		t.Errorf("expected idle after release, got %v with %v", c.State(), c.Active())
	}
	if c.Position(CursorX1) != 3 {
		t.Errorf("expected x1 at the last in-area position 3, got %v", c.Position(CursorX1))
	}
	if c.Position(CursorY1) != -2 || c.Position(CursorY2) != 2 {
		t.Errorf("expected dragging x1 to leave y cursors alone")
	}

	if id := c.Press(Point{X: 5, Y: 1.9}, Point{X: 0.5, Y: 0.5}); id != CursorY2 {
		t.Errorf("expected to grab y2, got %v", id)
	}
	c.Drag(Point{X: 9, Y: 3}, true)
	c.Release()
	if c.Position(CursorY2) != 3 || c.Position(CursorX2) != 7.5 {
		t.Errorf("expected only y2 to move, got y2=%v x2=%v", c.Position(CursorY2), c.Position(CursorX2))
	}

	c.Disable()
	c.Enable(Range{Min: 100, Max: 200}, y)
	if c.Position(CursorX1) != 3 {
		t.Errorf("expected re-enabling to restore positions, got x1=%v", c.Position(CursorX1))
	}

	c.Reset()
	if c.Enabled() {
		t.Errorf("expected reset to hide cursors")
	}
	c.Enable(Range{Min: 100, Max: 200}, y)
	if c.Position(CursorX1) != 125 {
		t.Errorf("expected fresh placement after reset, got x1=%v", c.Position(CursorX1))
	}
}

func TestCursorPressMiss(t *testing.T) {
	var c Cursors
	c.Enable(Range{Min: 0, Max: 10}, Range{Min: -4, Max: 4})
	if id := c.Press(Point{X: 5, Y: 0}, Point{X: 0.1, Y: 0.1}); id != NoCursor {
		t.Errorf("expected no cursor near the centre, got %v", id)
	}
	if c.State() != CursorsIdle {
		t.Errorf("expected to stay idle, got %v", c.State())
	}
}
