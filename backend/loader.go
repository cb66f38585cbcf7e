package backend

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"gioui.org/x/explorer"
	"github.com/fsnotify/fsnotify"

	"git.sr.ht/~whereswaldon/scope-view/scope"
)

type RWBox[T any] struct {
	t    T
	lock sync.RWMutex
}

func (r *RWBox[T]) Read(f func(*T)) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	f(&r.t)
}

func (r *RWBox[T]) Write(f func(*T)) {
	r.lock.Lock()
	defer r.lock.Unlock()
	f(&r.t)
}

// LoadResult is the outcome of one load. Exactly one of Dataset and Err is
// set. Seq increases with every load started, so a consumer can discard
// results older than the one it already shows.
type LoadResult struct {
	Seq     uint64
	Source  string
	Dataset *scope.Dataset
	Table   Table
	Err     error
}

type loaderState struct {
	latest LoadResult
	subs   map[int]chan LoadResult
	nextID int
	// watched is the file reloaded on change, if any.
	watched string
}

// Loader reads CSV files off the UI goroutine and publishes the results.
type Loader struct {
	appCtx  context.Context
	seq     atomic.Uint64
	state   RWBox[loaderState]
	watcher *fsnotify.Watcher
}

// NewLoader creates a loader. With watch set, the most recently loaded file
// is reloaded whenever it is written to. Background work stops when appCtx
// is cancelled.
func NewLoader(appCtx context.Context, watch bool) (*Loader, error) {
	l := &Loader{appCtx: appCtx}
	l.state.Write(func(s *loaderState) {
		s.subs = map[int]chan LoadResult{}
	})
	if watch {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, fmt.Errorf("failed creating file watcher: %w", err)
		}
		l.watcher = watcher
		go l.watch()
	}
	return l, nil
}

// Results streams load results until ctx is done. The latest result, if
// any, is delivered first. Slow readers only ever see the newest result.
func (l *Loader) Results(ctx context.Context) <-chan LoadResult {
	out := make(chan LoadResult, 1)
	var id int
	l.state.Write(func(s *loaderState) {
		id = s.nextID
		s.nextID++
		s.subs[id] = out
		if s.latest.Seq > 0 {
			out <- s.latest
		}
	})
	go func() {
		<-ctx.Done()
		l.state.Write(func(s *loaderState) {
			delete(s.subs, id)
			close(out)
		})
	}()
	return out
}

// publish delivers res unless a newer result is already out, and reports
// whether it did. A non-empty path becomes the watched file only together
// with an accepted result.
func (l *Loader) publish(res LoadResult, path string) bool {
	path = l.watchPath(path)
	var accepted bool
	var previous string
	l.state.Write(func(s *loaderState) {
		if res.Seq < s.latest.Seq {
			return
		}
		accepted = true
		s.latest = res
		for _, ch := range s.subs {
			select {
			case <-ch:
			default:
			}
			ch <- res
		}
		if path != "" {
			previous, s.watched = s.watched, path
		}
	})
	if accepted && path != "" {
		l.watchDir(previous, path)
	}
	return accepted
}

// Latest returns the newest published result.
func (l *Loader) Latest() LoadResult {
	var res LoadResult
	l.state.Read(func(s *loaderState) {
		res = s.latest
	})
	return res
}

// Load reads and validates a complete CSV stream synchronously.
func Load(source string, r io.Reader) LoadResult {
	res := LoadResult{Source: source}
	t, err := ReadTable(r)
	if err != nil {
		res.Err = fmt.Errorf("loading %s: %w", source, err)
		return res
	}
	ds, err := t.Dataset()
	if err != nil {
		res.Err = fmt.Errorf("loading %s: %w", source, err)
		return res
	}
	res.Table = t
	res.Dataset = ds
	return res
}

// LoadFile starts loading path in the background and returns the sequence
// number its result will carry.
func (l *Loader) LoadFile(path string) uint64 {
	seq := l.seq.Add(1)
	go func() {
		f, err := os.Open(path)
		if err != nil {
			l.publish(LoadResult{Seq: seq, Source: path, Err: fmt.Errorf("failed opening %s: %w", path, err)}, "")
			return
		}
		defer f.Close()
		res := Load(path, f)
		res.Seq = seq
		l.publish(res, path)
	}()
	return seq
}

// LoadReader loads an already open stream in the background. rc is closed
// when done. Streams that expose a Name method (such as *os.File) are
// watched like LoadFile paths.
func (l *Loader) LoadReader(name string, rc io.ReadCloser) uint64 {
	seq := l.seq.Add(1)
	go func() {
		defer rc.Close()
		res := Load(name, rc)
		res.Seq = seq
		var path string
		if f, ok := rc.(interface{ Name() string }); ok {
			path = f.Name()
		}
		l.publish(res, path)
	}()
	return seq
}

// LoadFromExplorer asks the user for a CSV file and loads it. It blocks
// until the dialog closes, so call it from its own goroutine.
func (l *Loader) LoadFromExplorer(expl *explorer.Explorer) error {
	file, err := expl.ChooseFile(".csv", ".tsv", ".txt")
	if err != nil {
		return err
	}
	name := "selected file"
	if f, ok := file.(interface{ Name() string }); ok {
		name = f.Name()
	}
	l.LoadReader(name, file)
	return nil
}

// watchPath returns the absolute form of path, or "" when nothing is
// watched.
func (l *Loader) watchPath(path string) string {
	if l.watcher == nil || path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		log.Printf("not watching %s: %v", path, err)
		return ""
	}
	return abs
}

func (l *Loader) watchDir(previous, abs string) {
	if previous == abs {
		return
	}
	if previous != "" && filepath.Dir(previous) != filepath.Dir(abs) {
		_ = l.watcher.Remove(filepath.Dir(previous))
	}
	// Watch the directory so editors that replace the file are noticed too.
	if err := l.watcher.Add(filepath.Dir(abs)); err != nil {
		log.Printf("failed watching %s: %v", abs, err)
	}
}

func (l *Loader) watch() {
	defer l.watcher.Close()
	for {
		select {
		case <-l.appCtx.Done():
			return
		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("file watcher: %v", err)
		case ev, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			var watched string
			l.state.Read(func(s *loaderState) {
				watched = s.watched
			})
			if filepath.Clean(ev.Name) != watched {
				continue
			}
			l.reload(watched)
		}
	}
}

// reload reads a file that may still be growing, so only complete lines
// are parsed.
func (l *Loader) reload(path string) {
	seq := l.seq.Add(1)
	f, err := os.Open(path)
	if err != nil {
		l.publish(LoadResult{Seq: seq, Source: path, Err: fmt.Errorf("failed reopening %s: %w", path, err)}, "")
		return
	}
	defer f.Close()
	res := Load(path, NewLineReader(f))
	res.Seq = seq
	if l.publish(res, "") {
		log.Printf("reloaded %s", path)
	}
}
