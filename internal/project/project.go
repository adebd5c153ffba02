// Package project loads and saves a TOML description of one filter
// instance: its service, clip bounds, declared parameters and current
// property values.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/smazurov/filterbind/internal/filter"
	"github.com/smazurov/filterbind/internal/props"
)

// ErrNoService is returned for a project without a service.
var ErrNoService = errors.New("project has no service")

// Project is the on-disk layout:
//
//	service = "brightness"
//	in = 0
//	out = 99
//	fps = 25.0
//	width = 1920
//	height = 1080
//
//	[metadata]
//	name = "Brightness"
//	params = [{ name = "level", kind = "number", default = "1", keyframes = true }]
//
//	[properties]
//	level = "0=0.5;50=1"
type Project struct {
	Service    string            `toml:"service"`
	ID         string            `toml:"id,omitempty"`
	In         int               `toml:"in"`
	Out        int               `toml:"out"`
	FPS        float64           `toml:"fps"`
	Width      int               `toml:"width"`
	Height     int               `toml:"height"`
	Playhead   int               `toml:"playhead"`
	IsNew      bool              `toml:"is_new"`
	Metadata   filter.Metadata   `toml:"metadata"`
	Properties map[string]string `toml:"properties"`
}

// Load reads and validates a project file.
func Load(path string) (*Project, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project: %w", err)
	}
	p := &Project{}
	if err := toml.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("failed to parse project %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project %s: %w", path, err)
	}
	return p, nil
}

// Validate checks the bounds and identity fields.
func (p *Project) Validate() error {
	if p.Service == "" {
		return ErrNoService
	}
	if p.In < 0 || p.Out < p.In {
		return fmt.Errorf("invalid bounds in=%d out=%d", p.In, p.Out)
	}
	if p.ID != "" {
		if _, err := uuid.Parse(p.ID); err != nil {
			return fmt.Errorf("invalid id %q: %w", p.ID, err)
		}
	}
	return nil
}

// Producer returns the clip the filter is attached to.
func (p *Project) Producer() *props.StaticProducer {
	return &props.StaticProducer{
		InPoint:  p.In,
		OutPoint: p.Out,
		Size:     props.FrameSize{Width: p.Width, Height: p.Height},
		FPS:      p.FPS,
	}
}

// Open builds a filter over a fresh copy of the project's properties.
// opts are applied after the project's own identity, metadata and
// playhead, so callers may override them.
func (p *Project) Open(opts ...filter.Option) (*filter.Filter, *props.Properties) {
	store := props.FromMap(p.Properties)
	playhead := p.Playhead
	base := []filter.Option{
		filter.WithMetadata(p.Metadata),
		filter.WithNew(p.IsNew),
		filter.WithPlayhead(filter.PlayheadFunc(func() int { return playhead })),
	}
	if id, err := uuid.Parse(p.ID); err == nil {
		base = append(base, filter.WithID(id))
	}
	f := filter.New(p.Service, store, p.Producer(), append(base, opts...)...)
	return f, store
}

// Update copies the filter's current state back into the project.
func (p *Project) Update(f *filter.Filter, store props.Store) {
	p.ID = f.ID().String()
	p.In, p.Out = f.In(), f.Out()
	p.IsNew = f.IsNew()
	values := make(map[string]string, len(store.Names()))
	for _, name := range store.Names() {
		if props.IsTracked(name) {
			values[name] = store.Get(name)
		}
	}
	p.Properties = values
}

// Save writes the project to path, replacing the file atomically.
func (p *Project) Save(path string) error {
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".project-*.toml")
	if err != nil {
		return fmt.Errorf("failed to write project: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write project: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write project: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write project: %w", err)
	}
	return nil
}
