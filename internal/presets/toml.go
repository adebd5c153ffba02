package presets

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// file is the on-disk layout:
//
//	version = 1
//
//	[[presets]]
//	service = "frei0r.brightness"
//	name = "Bright"
//	params = [{ name = "level", value = "0.8" }]
type file struct {
	Version int      `toml:"version"`
	Presets []record `toml:"presets"`
}

type record struct {
	Service string  `toml:"service"`
	Name    string  `toml:"name"`
	Params  []Param `toml:"params"`
}

// TOMLStore keeps presets for every filter service in one TOML file.
// It is safe for concurrent use; the file watcher replaces its contents
// from another goroutine.
type TOMLStore struct {
	path string
	mu   sync.RWMutex
	data *file
}

// NewTOML creates a store backed by path. Nothing is read until Load.
func NewTOML(path string) *TOMLStore {
	if path == "" {
		path = "presets.toml"
	}
	return &TOMLStore{
		path: path,
		data: &file{Version: 1},
	}
}

// Path returns the backing file path.
func (s *TOMLStore) Path() string {
	return s.path
}

// Load reads the preset file. A missing file leaves the store empty.
func (s *TOMLStore) Load() error {
	data, err := readFile(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

func readFile(path string) (*file, error) {
	data := &file{Version: 1}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read presets: %w", err)
	}
	if unmarshalErr := toml.Unmarshal(raw, data); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", unmarshalErr)
	}
	if data.Version == 0 {
		data.Version = 1
	}
	return data, nil
}

// Save writes the preset file, creating its directory.
func (s *TOMLStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked()
}

func (s *TOMLStore) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create presets directory: %w", err)
	}
	raw, err := toml.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("failed to marshal presets: %w", err)
	}
	if writeErr := os.WriteFile(s.path, raw, 0o644); writeErr != nil {
		return fmt.Errorf("failed to write presets: %w", writeErr)
	}
	return nil
}

// List returns the sorted preset names for service, the defaults preset
// excluded.
func (s *TOMLStore) List(service string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var names []string
	for _, r := range s.data.Presets {
		if r.Service == service && r.Name != DefaultsName {
			names = append(names, r.Name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Services returns the sorted services that have at least one preset.
func (s *TOMLStore) Services() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var services []string
	for _, r := range s.data.Presets {
		if !slices.Contains(services, r.Service) {
			services = append(services, r.Service)
		}
	}
	slices.Sort(services)
	return services
}

// Get returns the named preset of service.
func (s *TOMLStore) Get(service, name string) (Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(service, name); i >= 0 {
		r := s.data.Presets[i]
		return Preset{Name: r.Name, Params: slices.Clone(r.Params)}, nil
	}
	return Preset{}, NewPresetError(ErrCodeNotFound, service, name, nil)
}

// Put adds or replaces a preset of service and saves the file.
func (s *TOMLStore) Put(service string, p Preset) error {
	if service == "" {
		return NewPresetError(ErrCodeInvalidName, service, p.Name, nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r := record{Service: service, Name: p.Name, Params: slices.Clone(p.Params)}
	if i := s.indexLocked(service, p.Name); i >= 0 {
		s.data.Presets[i] = r
	} else {
		s.data.Presets = append(s.data.Presets, r)
	}
	if err := s.saveLocked(); err != nil {
		return NewPresetError(ErrCodeStorage, service, p.Name, err)
	}
	return nil
}

// Delete removes a preset of service and saves the file.
func (s *TOMLStore) Delete(service, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(service, name)
	if i < 0 {
		return NewPresetError(ErrCodeNotFound, service, name, nil)
	}
	s.data.Presets = slices.Delete(s.data.Presets, i, i+1)
	if err := s.saveLocked(); err != nil {
		return NewPresetError(ErrCodeStorage, service, name, err)
	}
	return nil
}

func (s *TOMLStore) indexLocked(service, name string) int {
	return slices.IndexFunc(s.data.Presets, func(r record) bool {
		return r.Service == service && r.Name == name
	})
}

// replace swaps in freshly loaded contents and returns the services whose
// presets differ.
func (s *TOMLStore) replace(data *file) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := changedServices(s.data.Presets, data.Presets)
	s.data = data
	return changed
}

func changedServices(before, after []record) []string {
	index := func(records []record) map[string][]record {
		m := make(map[string][]record)
		for _, r := range records {
			m[r.Service] = append(m[r.Service], r)
		}
		return m
	}
	b, a := index(before), index(after)
	var changed []string
	for service, rs := range a {
		if !slices.EqualFunc(rs, b[service], recordEqual) {
			changed = append(changed, service)
		}
	}
	for service := range b {
		if _, ok := a[service]; !ok {
			changed = append(changed, service)
		}
	}
	slices.Sort(changed)
	return changed
}

func recordEqual(x, y record) bool {
	return x.Service == y.Service && x.Name == y.Name && slices.Equal(x.Params, y.Params)
}
