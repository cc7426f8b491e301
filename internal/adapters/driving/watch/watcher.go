// Package watch keeps the index in sync with a directory of markdown
// files: created and modified files are re-ingested, removed files are
// deleted from the index.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docvec-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docvec-cli/internal/logger"
)

// Watcher mirrors filesystem changes into the index.
type Watcher struct {
	ingest    driving.IngestService
	documents driving.DocumentService
}

// NewWatcher creates a watcher over the given services.
func NewWatcher(ingest driving.IngestService, documents driving.DocumentService) *Watcher {
	return &Watcher{
		ingest:    ingest,
		documents: documents,
	}
}

// Run watches dir until the context is cancelled. Events are handled
// sequentially in arrival order.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch directory: %s is not a directory", dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	logger.Info("Watching %s", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// handleEvent maps one filesystem event onto the index. Directories,
// hidden files and pure attribute changes are ignored.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if isHidden(name) {
		return
	}

	switch {
	case event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Write):
		info, err := os.Stat(event.Name)
		if err != nil || info.IsDir() {
			return
		}
		result := w.ingest.ProcessFiles(ctx, []string{event.Name})
		for _, failure := range result.Failures {
			logger.Warn("Watch: %s skipped: %s", failure.Filename, failure.Reason)
		}

	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		if err := w.documents.Delete(ctx, name); err != nil {
			logger.Warn("Watch: delete %s failed: %v", name, err)
		}
	}
}

// isHidden reports whether the filename starts with a dot.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
