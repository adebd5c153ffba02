package cmd

import (
	"fmt"
	"log/slog"

	"github.com/smazurov/filterbind/internal/animation"
	"github.com/smazurov/filterbind/internal/filter"
	"github.com/smazurov/filterbind/internal/logging"
	"github.com/smazurov/filterbind/internal/presets"
	"github.com/smazurov/filterbind/internal/project"
	"github.com/smazurov/filterbind/internal/props"
	"github.com/smazurov/filterbind/internal/undo"
)

// session is one opened project: the filter, its backing properties and
// the collaborators the commands share.
type session struct {
	opts    *Options
	project *project.Project
	store   *props.Properties
	filter  *filter.Filter
	history *undo.Stack
	presets *presets.TOMLStore
	logger  *slog.Logger
}

func openSession(opts *Options, extra ...filter.Option) (*session, error) {
	logger := logging.GetLogger("cli")

	p, err := project.Load(opts.Project)
	if err != nil {
		return nil, err
	}

	typ, err := animation.ParseKeyframeType(opts.KeyframesDefaultType)
	if err != nil {
		return nil, fmt.Errorf("invalid keyframes default type: %w", err)
	}

	presetStore := presets.NewTOML(opts.PresetsFile)
	if loadErr := presetStore.Load(); loadErr != nil {
		logger.Warn("Failed to load presets", "path", opts.PresetsFile, "error", loadErr)
	}

	history := undo.NewStack(
		undo.WithCoalesceWindow(opts.UndoCoalesceWindow),
		undo.WithLimit(opts.UndoLimit),
	)

	filterOpts := []filter.Option{
		filter.WithUndoPusher(history),
		filter.WithPresetStore(presetStore),
		filter.WithRecordAnalysisUndo(opts.UndoRecordAnalysis),
	}
	if typ.Valid() {
		filterOpts = append(filterOpts, filter.WithDefaultKeyframeType(typ))
	}
	f, store := p.Open(append(filterOpts, extra...)...)
	f.LoadPresets()
	f.ApplyDefaults()

	logger.Debug("Opened project", "path", opts.Project, "service", p.Service, "filter_id", f.ID())

	return &session{
		opts:    opts,
		project: p,
		store:   store,
		filter:  f,
		history: history,
		presets: presetStore,
		logger:  logger,
	}, nil
}

// save writes the filter state back to the project file.
func (s *session) save() error {
	s.project.Update(s.filter, s.store)
	if err := s.project.Save(s.opts.Project); err != nil {
		return err
	}
	s.logger.Info("Project saved", "path", s.opts.Project, "hash", s.filter.GetHash())
	return nil
}

func (s *session) close() {
	s.filter.Close()
}
