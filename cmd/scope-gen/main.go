package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: emit a synthetic capture as CSV on stdout
Usage:

 %[1]s -kind rc-charge > capture.csv

OR

 %[1]s -kind lowpass-bode | scope-export -in /dev/stdin -out bode.svg

`, os.Args[0])
	flag.PrintDefaults()
}

// circuit is a series RC network driven by a step or a sine sweep.
type circuit struct {
	R, C, Vin float64
}

func (c circuit) tau() float64 { return c.R * c.C }

func (c circuit) cutoff() float64 { return 1 / (2 * math.Pi * c.tau()) }

// stepResponse samples the capacitor voltage around a step at t=0. A tenth
// of the capture precedes the step.
func stepResponse(c circuit, charge bool, duration float64, points int) (headings []string, rows [][]float64) {
	headings = []string{"Time (s)", "Vin (V)", "Vc (V)"}
	ts := floats.Span(make([]float64, points), -duration/10, duration)
	rows = make([][]float64, len(ts))
	for i, t := range ts {
		var in, out float64
		switch {
		case charge && t < 0:
		case charge:
			in = c.Vin
			out = c.Vin * (1 - math.Exp(-t/c.tau()))
		case t < 0:
			in, out = c.Vin, c.Vin
		default:
			out = c.Vin * math.Exp(-t/c.tau())
		}
		rows[i] = []float64{t, in, out}
	}
	return headings, rows
}

// lowpassResponse samples a first-order low-pass filter on a logarithmic
// frequency grid.
func lowpassResponse(c circuit, fmin, fmax float64, points int) (headings []string, rows [][]float64) {
	headings = []string{"Frequency (Hz)", "Gain (dB)", "Phase (deg)"}
	fs := floats.LogSpan(make([]float64, points), fmin, fmax)
	fc := c.cutoff()
	rows = make([][]float64, len(fs))
	for i, f := range fs {
		ratio := f / fc
		gain := -10 * math.Log10(1+ratio*ratio)
		phase := -math.Atan(ratio) * 180 / math.Pi
		rows[i] = []float64{f, gain, phase}
	}
	return headings, rows
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

func writeCSV(w *csv.Writer, headings []string, rows [][]float64) error {
	if err := w.Write(headings); err != nil {
		return err
	}
	record := make([]string, len(headings))
	for _, row := range rows {
		for i, v := range row {
			record[i] = format(v)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func main() {
	flag.Usage = usage
	kind := flag.String("kind", "rc-charge", "rc-charge, rc-discharge or lowpass-bode")
	r := flag.Float64("r", 1e3, "resistance in ohms")
	c := flag.Float64("c", 1e-6, "capacitance in farads")
	vin := flag.Float64("vin", 5, "step amplitude in volts")
	duration := flag.Float64("duration", 0, "capture length in seconds after the step (default: five time constants)")
	points := flag.Int("points", 1000, "number of rows")
	fmin := flag.Float64("fmin", 10, "lowest frequency in hertz")
	fmax := flag.Float64("fmax", 1e6, "highest frequency in hertz")
	flag.Parse()

	circ := circuit{R: *r, C: *c, Vin: *vin}
	if circ.R <= 0 || circ.C <= 0 {
		log.Fatalf("-r and -c must be positive")
	}
	if *points < 2 {
		log.Printf("invalid -points %d, using 2", *points)
		*points = 2
	}
	if *duration <= 0 {
		*duration = 5 * circ.tau()
	}

	var headings []string
	var rows [][]float64
	switch *kind {
	case "rc-charge":
		headings, rows = stepResponse(circ, true, *duration, *points)
	case "rc-discharge":
		headings, rows = stepResponse(circ, false, *duration, *points)
	case "lowpass-bode":
		if *fmin <= 0 || *fmax <= *fmin {
			log.Fatalf("need 0 < -fmin < -fmax, got %g and %g", *fmin, *fmax)
		}
		headings, rows = lowpassResponse(circ, *fmin, *fmax, *points)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err := writeCSV(csv.NewWriter(os.Stdout), headings, rows); err != nil {
		log.Fatalf("failed writing csv: %v", err)
	}
}
