package main

import (
	"context"
	"flag"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/x/explorer"

	"git.sr.ht/~whereswaldon/scope-view/backend"
	"git.sr.ht/~whereswaldon/scope-view/logging"
	"git.sr.ht/~whereswaldon/scope-view/scope"
	"git.sr.ht/~whereswaldon/scope-view/theme"
)

type config struct {
	file      string
	watch     bool
	variant   theme.Variant
	maxPoints int
}

func main() {
	file := flag.String("file", "", "CSV file to open at startup")
	watch := flag.Bool("watch", false, "reload the open file whenever it changes on disk")
	themeName := flag.String("theme", "light", "color theme: light or dark")
	maxPoints := flag.Int("max-points", scope.DefaultMaxPoints, "maximum points drawn per trace")
	logPath := flag.String("log", "", "append log output to this file instead of stderr")
	flag.Parse()

	cleanup, err := logging.Setup(*logPath)
	if err != nil {
		log.Fatalf("failed setting up logging: %v", err)
	}
	cfg := config{
		file:      *file,
		watch:     *watch,
		maxPoints: *maxPoints,
	}
	cfg.variant, err = theme.ParseVariant(*themeName)
	if err != nil {
		log.Printf("%v, using %s", err, cfg.variant)
	}
	if cfg.maxPoints < 2 {
		log.Printf("invalid -max-points %d, using %d", cfg.maxPoints, scope.DefaultMaxPoints)
		cfg.maxPoints = scope.DefaultMaxPoints
	}

	go func() {
		w := app.NewWindow(app.Title("scope-view"), app.Size(unit.Dp(1200), unit.Dp(800)))
		if err := loop(w, cfg); err != nil {
			log.Fatal(err)
		}
		cleanup()
		os.Exit(0)
	}()
	app.Main()
}

func loop(w *app.Window, cfg config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bundle, err := backend.NewBundle(ctx, cfg.watch)
	if err != nil {
		return err
	}
	ws := backend.NewWindowState(ctx, bundle, w)
	expl := explorer.NewExplorer(w)

	engine := scope.NewEngine()
	engine.MaxPoints = cfg.maxPoints
	if err := engine.Apply(scope.SetTheme{Variant: cfg.variant}); err != nil {
		log.Printf("failed applying theme: %v", err)
	}
	ui := NewUI(ws, expl, engine)
	if cfg.file != "" {
		bundle.Loader.LoadFile(cfg.file)
	}

	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
