package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WatchInvalidate watches the collections root for external changes and
// drops the recent-listing cache when anything under it is created, renamed,
// removed, or written. New directories are added to the watch as they
// appear. Returns after the watcher is installed; the watch loop runs until
// the context is cancelled.
func (s *Store) WatchInvalidate(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the root and every existing directory under it. fsnotify does
	// not recurse on its own.
	err = filepath.WalkDir(s.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".pictor" {
				return filepath.SkipDir
			}
			if addErr := watcher.Add(path); addErr != nil {
				s.logger.WithError(addErr).WithField("dir", path).Warn("Failed to watch directory")
			}
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				s.invalidateRecent()
				if event.Op.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if addErr := watcher.Add(event.Name); addErr != nil {
							s.logger.WithError(addErr).WithField("dir", event.Name).Warn("Failed to watch new directory")
						}
					}
				}
				s.logger.WithField("event", event.String()).Debug("Collections root changed")
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.WithError(err).Warn("Watcher error")
			}
		}
	}()

	return nil
}
