package main

import (
	"bytes"
	"strings"
	"testing"

	"git.sr.ht/~whereswaldon/scope-view/scope"
	"git.sr.ht/~whereswaldon/scope-view/theme"
)

func testEngine(t *testing.T) *scope.Engine {
	t.Helper()
	rows := make([][]float64, 0, 100)
	for i := 0; i < 100; i++ {
		rows = append(rows, []float64{float64(i) / 1000, float64(i) / 10, -float64(i) / 10})
	}
	ds, err := scope.Load([]string{"Time (s)", "In (V)", "Out (V)"}, rows)
	if err != nil {
		t.Fatalf("expected dataset, got: %v", err)
	}
	e := scope.NewEngine()
	if err := e.Load(ds); err != nil {
		t.Fatalf("expected load, got: %v", err)
	}
	return e
}

func TestSplitList(t *testing.T) {
	type testcase struct {
		in   string
		want []string
	}
	for _, tc := range []testcase{
		{in: "", want: nil},
		{in: "1 V/div", want: []string{"1 V/div"}},
		{in: " a, ,b ,", want: []string{"a", "b"}},
	} {
		got := splitList(tc.in)
		if strings.Join(got, "|") != strings.Join(tc.want, "|") {
			t.Errorf("expected %q for %q, got %q", tc.want, tc.in, got)
		}
	}
}

func TestCommands(t *testing.T) {
	e := testEngine(t)
	opts := viewOptions{
		timeDiv:     "1 ms/div",
		voltDivs:    []string{"2 V/div", "bogus", "5 V/div"},
		voltOffsets: []string{"1.5", "x"},
		hide:        []string{"out (v)"},
		cursors:     true,
		variant:     theme.Dark,
	}
	for _, cmd := range opts.commands(e.Dataset()) {
		if err := e.Apply(cmd); err != nil {
			t.Fatalf("expected %T to apply, got: %v", cmd, err)
		}
	}
	st := e.State()
	if got := scope.TimeDivisions[st.TimeDivision].Label; got != "1 ms/div" {
		t.Errorf("expected 1 ms/div, got %s", got)
	}
	if got := scope.VoltDivisions[st.VoltDivision[0]].Label; got != "2 V/div" {
		t.Errorf("expected 2 V/div on channel 0, got %s", got)
	}
	if st.VoltDivision[1] != scope.DefaultVoltDivision {
		t.Errorf("expected the default volt/div for a bad label, got index %d", st.VoltDivision[1])
	}
	if st.VoltOffset[0] != 1.5 {
		t.Errorf("expected offset 1.5 V, got %v", st.VoltOffset[0])
	}
	if st.Visible[1] {
		t.Errorf("expected channel 1 to be hidden")
	}
	if !e.Cursors().Enabled() {
		t.Errorf("expected cursors to be enabled")
	}
	if e.Theme() != theme.Dark {
		t.Errorf("expected dark theme, got %s", e.Theme())
	}
}

func TestChannelIndex(t *testing.T) {
	e := testEngine(t)
	type testcase struct {
		ref  string
		want int
		ok   bool
	}
	for _, tc := range []testcase{
		{ref: "In (V)", want: 0, ok: true},
		{ref: "1", want: 1, ok: true},
		{ref: "2", ok: false},
		{ref: "missing", ok: false},
	} {
		got, ok := channelIndex(e.Dataset(), tc.ref)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("expected %d (%v) for %q, got %d (%v)", tc.want, tc.ok, tc.ref, got, ok)
		}
	}
}

func TestWriteSummary(t *testing.T) {
	e := testEngine(t)
	if err := e.Apply(scope.SetChannelVisible{Channel: 1, Visible: false}); err != nil {
		t.Fatalf("expected hide to apply, got: %v", err)
	}
	f, err := e.Frame()
	if err != nil {
		t.Fatalf("expected frame, got: %v", err)
	}
	var buf bytes.Buffer
	writeSummary(&buf, "in.csv", "out.png", e, f, nil)
	for _, want := range []string{"in.csv", "out.png", "transient", "In (V)", "Out (V)", "no"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected summary to mention %q, got:\n%s", want, buf.String())
		}
	}
}
