package backend

import (
	"context"

	"gioui.org/app"
	"git.sr.ht/~gioverse/skel/stream"
)

// WindowState pairs the application services with the stream controller
// of one window.
type WindowState struct {
	Bundle
	Controller *stream.Controller
}

func NewWindowState(ctx context.Context, bundle Bundle, win *app.Window) WindowState {
	return WindowState{
		Bundle:     bundle,
		Controller: stream.NewController(ctx, win.Invalidate),
	}
}

// Bundle holds the long-lived services shared by windows.
type Bundle struct {
	Loader *Loader
}

func NewBundle(appCtx context.Context, watch bool) (Bundle, error) {
	loader, err := NewLoader(appCtx, watch)
	if err != nil {
		return Bundle{}, err
	}
	return Bundle{Loader: loader}, nil
}
