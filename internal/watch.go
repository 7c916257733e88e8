package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	tt "github.com/gnolang/tpat/internal/types"
)

// Watcher re-checks query files as they change on disk.
type Watcher struct {
	engine     *Engine
	logger     *zap.Logger
	watcher    *fsnotify.Watcher
	report     func(filename string, issues []tt.Issue)
	isWatching bool
}

// NewWatcher wires an engine to a report callback invoked after every
// re-check.
func NewWatcher(engine *Engine, logger *zap.Logger, report func(string, []tt.Issue)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{engine: engine, logger: logger, watcher: fsw, report: report}, nil
}

// StartWatching registers the given files and directories and begins the
// watch loop in a goroutine.
func (w *Watcher) StartWatching(paths []string) error {
	if w.isWatching {
		return fmt.Errorf("already watching")
	}

	for _, path := range paths {
		err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return w.watcher.Add(p)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding path to watcher: %w", err)
		}
	}

	w.isWatching = true
	go w.watchLoop()
	return nil
}

func (w *Watcher) StopWatching() error {
	w.isWatching = false
	return w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for w.isWatching {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !strings.HasSuffix(event.Name, ".tq") {
		return
	}
	// editors often write in bursts; let the file settle first
	time.Sleep(100 * time.Millisecond)
	issues, err := w.engine.Run(event.Name)
	if err != nil {
		w.logger.Error("error re-checking file", zap.String("file", event.Name), zap.Error(err))
		return
	}
	w.logger.Info("re-checked", zap.String("file", event.Name), zap.Int("issues", len(issues)))
	w.report(event.Name, issues)
}
