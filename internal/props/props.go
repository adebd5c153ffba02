// Package props abstracts the media engine's property bag behind a small
// capability interface so the filter model can run against real services or
// the in-memory Properties implementation.
package props

import (
	"slices"
	"strings"
)

// Store is the string-encoded key/value bag a filter service exposes.
// Get returns "" for absent names; use Exists to distinguish.
type Store interface {
	Get(name string) string
	Set(name, value string)
	Exists(name string) bool
	Clear(name string)
	// Names returns every property name in insertion order.
	Names() []string
}

// FrameSize is the producer's output resolution in pixels.
type FrameSize struct {
	Width  int
	Height int
}

// Producer reports the bounds of the clip a filter is attached to.
type Producer interface {
	In() int
	Out() int
	FrameSize() FrameSize
	FrameRate() float64
}

// InternalPrefix marks application bookkeeping properties (animation
// lengths, hashes). They are tracked for undo but are not user parameters.
const InternalPrefix = "shotcut:"

// IsTracked reports whether changes to name belong in undo history.
// Underscore-prefixed properties are engine scratch space.
func IsTracked(name string) bool {
	return name != "" && !strings.HasPrefix(name, "_")
}

// IsParameter reports whether name is a user-facing parameter, the set that
// presets, clipboard copies and content hashes operate on.
func IsParameter(name string) bool {
	return IsTracked(name) &&
		!strings.HasPrefix(name, InternalPrefix) &&
		!strings.HasPrefix(name, "mlt_")
}

// Properties is an ordered in-memory Store.
type Properties struct {
	values map[string]string
	order  []string
}

// New creates an empty property bag.
func New() *Properties {
	return &Properties{values: make(map[string]string)}
}

// FromMap creates a property bag seeded with values in sorted key order.
func FromMap(values map[string]string) *Properties {
	p := New()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		p.Set(k, values[k])
	}
	return p
}

// Get implements Store.
func (p *Properties) Get(name string) string {
	return p.values[name]
}

// Set implements Store.
func (p *Properties) Set(name, value string) {
	if _, ok := p.values[name]; !ok {
		p.order = append(p.order, name)
	}
	p.values[name] = value
}

// Exists implements Store.
func (p *Properties) Exists(name string) bool {
	_, ok := p.values[name]
	return ok
}

// Clear implements Store.
func (p *Properties) Clear(name string) {
	if _, ok := p.values[name]; !ok {
		return
	}
	delete(p.values, name)
	p.order = slices.DeleteFunc(p.order, func(n string) bool { return n == name })
}

// Names implements Store.
func (p *Properties) Names() []string {
	return slices.Clone(p.order)
}

// StaticProducer is a fixed-bounds Producer.
type StaticProducer struct {
	InPoint  int
	OutPoint int
	Size     FrameSize
	FPS      float64
}

// In implements Producer.
func (s *StaticProducer) In() int { return s.InPoint }

// Out implements Producer.
func (s *StaticProducer) Out() int { return s.OutPoint }

// FrameSize implements Producer.
func (s *StaticProducer) FrameSize() FrameSize { return s.Size }

// FrameRate implements Producer.
func (s *StaticProducer) FrameRate() float64 {
	if s.FPS <= 0 {
		return 25
	}
	return s.FPS
}
