package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"

	"git.sr.ht/~whereswaldon/scope-view/backend"
	"git.sr.ht/~whereswaldon/scope-view/export"
	"git.sr.ht/~whereswaldon/scope-view/logging"
	"git.sr.ht/~whereswaldon/scope-view/scope"
	"git.sr.ht/~whereswaldon/scope-view/theme"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: render a CSV capture to an image or HTML page
Usage:

 %[1]s -in capture.csv -out capture.png [options]

`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	in := flag.String("in", "", "input CSV file")
	out := flag.String("out", "", "output file (default: input name with the format's extension)")
	formatName := flag.String("format", "", "png, svg, pdf or html (default: from -out, else png)")
	timeDiv := flag.String("time-div", "", "time per division, e.g. \"10 ms/div\" (default: fit the capture)")
	voltDiv := flag.String("volt-div", "", "comma separated volts per division, one per channel")
	timeOffset := flag.Float64("time-offset", 0, "horizontal offset in divisions")
	voltOffset := flag.String("volt-offset", "", "comma separated vertical offsets in volts, one per channel")
	hide := flag.String("hide", "", "comma separated channel names or indexes to hide")
	cursors := flag.Bool("cursors", false, "draw the measurement cursors")
	themeName := flag.String("theme", "light", "light or dark")
	width := flag.Float64("width", 20, "image width in centimeters")
	height := flag.Float64("height", 12, "image height in centimeters")
	logPath := flag.String("log", "", "append log output to this file instead of stderr")
	flag.Parse()

	cleanup, err := logging.Setup(*logPath)
	if err != nil {
		log.Fatalf("failed setting up logging: %v", err)
	}
	defer cleanup()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	format := export.PNG
	switch {
	case *formatName != "":
		if format, err = export.ParseFormat(*formatName); err != nil {
			log.Printf("%v, using %s", err, export.PNG)
			format = export.PNG
		}
	case *out != "":
		if f, err := export.FormatFromPath(*out); err == nil {
			format = f
		}
	}
	if *out == "" {
		*out = strings.TrimSuffix(*in, filepath.Ext(*in)) + "." + string(format)
	}

	variant, err := theme.ParseVariant(*themeName)
	if err != nil {
		log.Printf("%v, using %s", err, variant)
	}
	opts := viewOptions{
		timeDiv:     *timeDiv,
		voltDivs:    splitList(*voltDiv),
		timeOffset:  *timeOffset,
		voltOffsets: splitList(*voltOffset),
		hide:        splitList(*hide),
		cursors:     *cursors,
		variant:     variant,
	}

	f, err := os.Open(*in)
	if err != nil {
		log.Fatalf("failed opening input: %v", err)
	}
	res := backend.Load(*in, f)
	f.Close()
	if res.Err != nil {
		log.Fatal(res.Err)
	}

	engine := scope.NewEngine()
	if err := engine.Load(res.Dataset); err != nil {
		log.Fatal(err)
	}
	for _, cmd := range opts.commands(res.Dataset) {
		if err := engine.Apply(cmd); err != nil {
			log.Printf("failed applying %T: %v", cmd, err)
		}
	}
	frame, frameErr := engine.Frame()

	size := export.Options{
		Width:  vg.Length(*width) * vg.Centimeter,
		Height: vg.Length(*height) * vg.Centimeter,
	}
	if *width <= 0 || *height <= 0 {
		log.Printf("invalid size %gx%g cm, using the default", *width, *height)
		size = export.DefaultOptions()
	}
	dst, err := os.Create(*out)
	if err != nil {
		log.Fatalf("failed creating output: %v", err)
	}
	if err := export.Render(dst, frame, format, size); err != nil {
		dst.Close()
		log.Fatal(err)
	}
	if err := dst.Close(); err != nil {
		log.Fatalf("failed writing output: %v", err)
	}
	writeSummary(os.Stdout, *in, *out, engine, frame, frameErr)
}
