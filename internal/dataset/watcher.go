package dataset

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher imports CSV files dropped into a directory. Each new or
// rewritten .csv file becomes the current dataset, same as an upload
// through the HTTP API.
type Watcher struct {
	dir     string
	service *Service
	// settle gives the writing process time to finish before the file
	// is read. Exports are written in one shot, so a short pause is
	// enough in practice.
	settle time.Duration
}

func NewWatcher(dir string, service *Service) *Watcher {
	return &Watcher{
		dir:     dir,
		service: service,
		settle:  500 * time.Millisecond,
	}
}

// Run watches the directory until the context is canceled. It returns
// an error only when the watch cannot be established.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}
	if err := watcher.Add(w.dir); err != nil {
		return err
	}
	slog.InfoContext(ctx, "watching directory for CSV files", "dir", w.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".csv") {
				continue
			}
			w.importFile(ctx, event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.WarnContext(ctx, "directory watch error", "error", err)
		}
	}
}

func (w *Watcher) importFile(ctx context.Context, path string) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(w.settle):
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.WarnContext(ctx, "failed to read watched file", "file", path, "error", err)
		return
	}
	result, err := w.service.Import(ctx, filepath.Base(path), data)
	if err != nil {
		slog.WarnContext(ctx, "failed to import watched file", "file", path, "error", err)
		return
	}
	slog.InfoContext(ctx, "imported watched file",
		"file", result.FileName,
		"schema", result.Schema,
		"imported", result.Imported,
		"errored", result.Errored)
}
