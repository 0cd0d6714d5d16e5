package catalog

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 300 * time.Millisecond

// Watch reloads the catalog whenever its file is written or replaced, until
// ctx is cancelled. The containing directory is watched since build tools
// usually replace the file instead of writing it in place.
func (s *Store) Watch(ctx context.Context) error {
	name, _ := s.disk.GetFileName(s.fileName)
	name, err := filepath.Abs(name)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(name)); err != nil {
		watcher.Close()
		return err
	}
	s.logger.Info("watching catalog", zap.String("file", name))

	go func() {
		defer watcher.Close()
		var timer *time.Timer
		reload := make(chan struct{}, 1)
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != name || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDebounce, func() {
					select {
					case reload <- struct{}{}:
					default:
					}
				})
			case <-reload:
				if err := s.Load(); err != nil {
					s.logger.Error("catalog reload failed, keeping previous version", zap.Error(err))
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("catalog watcher", zap.Error(err))
			}
		}
	}()
	return nil
}
