package fixtures

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce coalesces the burst of events editors emit on save.
const debounce = 200 * time.Millisecond

// ReloadCallback is called after the snapshot changed on disk.
type ReloadCallback func(sum string)

// Watch follows the fixtures file until ctx is cancelled, reloading it
// after each change. The parent directory is watched so that editors which
// replace the file by rename are still observed. Pages already activated
// keep their records; only later activations see the new snapshot.
func (s *Source) Watch(ctx context.Context, logger *slog.Logger, cb ReloadCallback) error {
	if s.path == "" {
		<-ctx.Done()
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	target := filepath.Clean(s.path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return err
	}

	logger.Info("fixtures: watching", slog.String("path", target))

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("fixtures: watcher stopped")
			return nil

		case <-fire:
			changed, err := s.Reload()
			if err != nil {
				logger.Warn("fixtures: reload failed", slog.String("error", err.Error()))
				continue
			}
			if !changed {
				continue
			}
			logger.Info("fixtures: reloaded", slog.String("checksum", s.Checksum()))
			if cb != nil {
				cb(s.Checksum())
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			} else {
				timer.Reset(debounce)
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("fixtures: watcher error", slog.String("error", watchErr.Error()))
		}
	}
}
