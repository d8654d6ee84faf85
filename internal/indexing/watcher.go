package indexing

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watcher regenerates the tag file whenever a watched source file changes.
// Events are debounced so an editor's save burst triggers one regeneration,
// and output identical to the previous run is not rewritten.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	rebuild  func() ([]byte, error)
	output   string

	mu       sync.Mutex
	timer    *time.Timer
	pending  chan struct{}
	lastHash uint64
}

// NewWatcher watches the directories containing paths. rebuild must return
// the complete tag file contents for the current state of the sources.
func NewWatcher(paths []string, output string, debounce time.Duration, rebuild func() ([]byte, error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		dirs[filepath.Dir(p)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("failed to watch directory")
		}
	}

	return &Watcher{
		watcher:  fsw,
		debounce: debounce,
		rebuild:  rebuild,
		output:   output,
		pending:  make(chan struct{}, 1),
	}, nil
}

// Run regenerates once up front and then blocks servicing events until ctx
// is cancelled. Rebuild failures are logged and watching continues; only a
// failure to write the output file aborts.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.regenerate(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-w.pending:
			if err := w.regenerate(); err != nil {
				return err
			}

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("change detected")
			w.schedule()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watch error")
		}
	}
}

// schedule arms (or re-arms) the debounce timer; when it fires, one token
// lands in pending for the Run loop to pick up.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.pending <- struct{}{}:
		default:
		}
	})
}

// regenerate rebuilds the tag file and writes it only when the content hash
// changed since the previous write.
func (w *Watcher) regenerate() error {
	content, err := w.rebuild()
	if err != nil {
		log.Warn().Err(err).Msg("regeneration failed, keeping previous tag file")
		return nil
	}

	sum := xxhash.Sum64(content)
	w.mu.Lock()
	unchanged := sum == w.lastHash && w.lastHash != 0
	w.lastHash = sum
	w.mu.Unlock()
	if unchanged {
		log.Debug().Msg("tag file unchanged, skipping write")
		return nil
	}

	if err := os.WriteFile(w.output, content, 0644); err != nil {
		return err
	}
	log.Info().Str("output", w.output).Int("bytes", len(content)).Msg("tag file updated")
	return nil
}

// Close stops the underlying fsnotify watcher and any armed timer.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
