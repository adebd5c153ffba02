package presets

import (
	"os"
	"time"

	"github.com/smazurov/filterbind/internal/config"
	"github.com/smazurov/filterbind/internal/logging"
)

// WatchOptions configures Watch.
type WatchOptions struct {
	// Debounce delays reloads after a burst of writes. Zero keeps the
	// watcher default.
	Debounce time.Duration
	// OnError is called when the changed file cannot be parsed.
	OnError func(error)
}

// Watch reloads the store whenever its file changes and calls onChange with
// the services whose presets differ. onChange runs on the watcher goroutine.
// The file is created empty when missing so it can be watched. The returned
// function stops watching.
func (s *TOMLStore) Watch(onChange func(services []string), opts WatchOptions) (func() error, error) {
	logger := logging.GetLogger("presets")

	if _, statErr := os.Stat(s.path); os.IsNotExist(statErr) {
		if err := s.Save(); err != nil {
			return nil, err
		}
	}

	watcherOpts := []config.WatcherOption[*file]{}
	if opts.Debounce > 0 {
		watcherOpts = append(watcherOpts, config.WithDebounce[*file](opts.Debounce))
	}
	if opts.OnError != nil {
		watcherOpts = append(watcherOpts, config.WithErrorHandler[*file](opts.OnError))
	}

	w := config.NewConfigWatcher(s.path, readFile, logger, watcherOpts...)
	w.OnReload(func(data *file) {
		changed := s.replace(data)
		if len(changed) == 0 {
			return
		}
		logger.Info("Presets reloaded", "path", s.path, "services", changed)
		if onChange != nil {
			onChange(changed)
		}
	})
	if err := w.Start(); err != nil {
		return nil, err
	}
	return w.Stop, nil
}
