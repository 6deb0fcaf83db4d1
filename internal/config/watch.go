package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/regionpick/internal/schedule"
)

// reloadDebounce collapses the burst of events editors emit on save.
const reloadDebounce = 150 * time.Millisecond

// Watch reloads the file at path whenever it changes and passes each valid
// result to onChange. Invalid files are logged and skipped. Watch returns
// once the watcher is running; it stops when ctx is done.
func Watch(ctx context.Context, path string, onChange func(File)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the directory: editors often replace the file instead of writing it.
	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return err
	}

	debouncer := schedule.NewDebouncer(reloadDebounce, nil)
	reload := func() {
		f, err := Load(abs)
		if err != nil {
			logrus.WithError(err).Warn("config reload skipped")
			return
		}
		logrus.WithField("path", abs).Debug("config reloaded")
		onChange(f)
	}

	go func() {
		defer watcher.Close()
		defer debouncer.Cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				debouncer.Trigger(reload)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logrus.Debugf("config watcher error: %v", err)
			}
		}
	}()
	return nil
}
