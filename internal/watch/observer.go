// Package watch republishes cache mutations made by another process on the
// same device into the coordinator's in-memory state. The other context is
// trusted as same-device, same-user, so no merge policy applies.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Sink receives the raw value of a collection that changed externally.
type Sink interface {
	ApplyExternal(name string, raw []byte)
}

type Observer struct {
	dir   string
	names map[string]struct{}
	sink  Sink
	log   *slog.Logger
	w     *fsnotify.Watcher
}

func New(dir string, names []string, sink Sink, log *slog.Logger) (*Observer, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return &Observer{dir: dir, names: set, sink: sink, log: log, w: w}, nil
}

// Run delivers change notifications until ctx is cancelled.
func (o *Observer) Run(ctx context.Context) {
	defer o.w.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-o.w.Events:
			if !ok {
				return
			}
			o.handle(ev)
		case err, ok := <-o.w.Errors:
			if !ok {
				return
			}
			o.log.Warn("watcher error", slog.Any("err", err))
		}
	}
}

func (o *Observer) handle(ev fsnotify.Event) {
	if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	base := filepath.Base(ev.Name)
	name, isJSON := strings.CutSuffix(base, ".json")
	if !isJSON {
		// in-flight temp files and unrelated writes
		return
	}
	if _, known := o.names[name]; !known {
		return
	}
	raw, err := os.ReadFile(ev.Name)
	if err != nil {
		return
	}
	o.sink.ApplyExternal(name, raw)
}
