package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/smazurov/filterbind/internal/config"
	"github.com/smazurov/filterbind/internal/events"
	"github.com/smazurov/filterbind/internal/filter"
	"github.com/smazurov/filterbind/internal/metrics/exporters"
	"github.com/smazurov/filterbind/internal/presets"
	"github.com/smazurov/filterbind/internal/project"
	"github.com/smazurov/filterbind/internal/props"
	"github.com/spf13/cobra"
)

func newWatchCmd(opts *Options) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the project, preset and config files and print filter events",
		Long: `Keeps the project open and applies external edits of the project file as undoable ` +
			`changes. Preset and engine config changes are picked up live. Every filter event is ` +
			`printed as one JSON line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, opts, debounce, cmd.OutOrStdout())
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 300*time.Millisecond, "Delay before reacting to file changes")
	return cmd
}

func runWatch(ctx context.Context, opts *Options, debounce time.Duration, out io.Writer) error {
	bus := events.New()
	defer bus.Close()

	s, err := openSession(opts, filter.WithNotifier(bus))
	if err != nil {
		return err
	}
	defer s.close()
	logger := s.logger

	eventCh := make(chan any, 256)
	for _, unsub := range []func(){
		events.SubscribeToChannel[events.PropertyChangedEvent](bus, eventCh),
		events.SubscribeToChannel[events.ChangedEvent](bus, eventCh),
		events.SubscribeToChannel[events.InChangedEvent](bus, eventCh),
		events.SubscribeToChannel[events.OutChangedEvent](bus, eventCh),
		events.SubscribeToChannel[events.AnimateInChangedEvent](bus, eventCh),
		events.SubscribeToChannel[events.AnimateOutChangedEvent](bus, eventCh),
		events.SubscribeToChannel[events.AnimateInOutChangedEvent](bus, eventCh),
		events.SubscribeToChannel[events.DurationChangedEvent](bus, eventCh),
		events.SubscribeToChannel[events.PresetsChangedEvent](bus, eventCh),
		events.SubscribeToChannel[events.AnalyzeFinishedEvent](bus, eventCh),
		events.SubscribeToChannel[events.UndoCommandEvent](bus, eventCh),
	} {
		defer unsub()
	}

	// Watcher callbacks run on their own goroutines; the filter is only
	// touched from the loop below.
	presetsCh := make(chan struct{}, 1)
	stopPresets, err := s.presets.Watch(func(services []string) {
		if slices.Contains(services, s.filter.Service()) {
			select {
			case presetsCh <- struct{}{}:
			default:
			}
		}
	}, presets.WatchOptions{
		Debounce: debounce,
		OnError: func(err error) {
			logger.Warn("Ignoring invalid preset file", "error", err)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to watch presets: %w", err)
	}
	defer stopPresets()

	projectCh := make(chan *project.Project, 1)
	projectWatcher := config.NewConfigWatcher(opts.Project, project.Load, logger,
		config.WithDebounce[*project.Project](debounce),
		config.WithErrorHandler[*project.Project](func(err error) {
			logger.Warn("Ignoring invalid project file", "error", err)
		}))
	projectWatcher.OnReload(func(p *project.Project) { replaceLatest(projectCh, p) })
	if err := projectWatcher.Start(); err != nil {
		return fmt.Errorf("failed to watch project: %w", err)
	}
	defer projectWatcher.Stop()

	engineCh := make(chan config.Engine, 1)
	if _, statErr := os.Stat(opts.Config); statErr == nil {
		engineWatcher := config.NewConfigWatcher(opts.Config, config.LoadEngine, logger,
			config.WithDebounce[config.Engine](debounce))
		engineWatcher.OnReload(func(e config.Engine) { replaceLatest(engineCh, e) })
		if err := engineWatcher.Start(); err != nil {
			logger.Warn("Failed to watch config", "path", opts.Config, "error", err)
		} else {
			defer engineWatcher.Stop()
		}
	}

	if opts.MetricsAddr != "" {
		srv := exporters.NewServer(opts.MetricsAddr)
		go func() {
			logger.Info("Serving metrics", "addr", opts.MetricsAddr)
			if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
				logger.Error("Metrics server failed", "error", serveErr)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
				logger.Warn("Error stopping metrics server", "error", shutdownErr)
			}
		}()
	}

	logger.Info("Watching", "project", opts.Project, "presets", s.presets.Path(), "filter_id", s.filter.ID())

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watch")
			return nil
		case ev := <-eventCh:
			if err := writeEvent(out, ev); err != nil {
				return err
			}
		case <-presetsCh:
			s.filter.LoadPresets()
		case p := <-projectCh:
			changed := s.applyProject(p)
			logger.Info("Project reloaded", "changed", changed, "history", s.history.Len())
		case e := <-engineCh:
			s.applyEngine(e)
		}
	}
}

// replaceLatest leaves only v in the single-slot channel ch.
func replaceLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// applyProject writes the parameters of p that differ from the open
// filter as one undoable step and moves the bounds. It returns the names
// written.
func (s *session) applyProject(p *project.Project) []string {
	var names []string
	for _, name := range s.store.Names() {
		if _, ok := p.Properties[name]; !ok && props.IsTracked(name) {
			names = append(names, name)
		}
	}
	for name, value := range p.Properties {
		if !s.store.Exists(name) || s.store.Get(name) != value {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	names = slices.Compact(names)

	if len(names) > 0 {
		s.filter.StartUndoParameterCommand("Reload project")
		for _, name := range names {
			if value, ok := p.Properties[name]; ok {
				s.filter.Set(name, value)
			} else {
				s.filter.ResetProperty(name)
			}
		}
		s.filter.EndUndoCommand()
	}
	s.filter.SetInOut(p.In, p.Out)
	s.project = p
	return names
}

// applyEngine updates history tunables. The keyframe default type only
// applies to filters opened later.
func (s *session) applyEngine(e config.Engine) {
	s.history.SetCoalesceWindow(e.CoalesceWindow())
	s.history.SetLimit(e.Undo.Limit)
	if e.Keyframes.DefaultType != s.opts.KeyframesDefaultType {
		s.logger.Info("Keyframe default type changed, reopen to apply",
			"current", s.opts.KeyframesDefaultType, "configured", e.Keyframes.DefaultType)
	}
	s.logger.Info("Engine config reloaded",
		"coalesce_window", e.CoalesceWindow(), "limit", e.Undo.Limit, "record_analysis", e.Undo.RecordAnalysis)
}

func writeEvent(out io.Writer, ev any) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s %s\n", eventName(ev), data)
	return err
}

func eventName(ev any) string {
	switch ev.(type) {
	case events.PropertyChangedEvent:
		return "property_changed"
	case events.ChangedEvent:
		return "changed"
	case events.InChangedEvent:
		return "in_changed"
	case events.OutChangedEvent:
		return "out_changed"
	case events.AnimateInChangedEvent:
		return "animate_in_changed"
	case events.AnimateOutChangedEvent:
		return "animate_out_changed"
	case events.AnimateInOutChangedEvent:
		return "animate_in_out_changed"
	case events.DurationChangedEvent:
		return "duration_changed"
	case events.PresetsChangedEvent:
		return "presets_changed"
	case events.AnalyzeFinishedEvent:
		return "analyze_finished"
	case events.UndoCommandEvent:
		return "undo_command"
	}
	return fmt.Sprintf("%T", ev)
}
