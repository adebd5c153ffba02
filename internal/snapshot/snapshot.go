// Package snapshot captures point-in-time copies of a service's properties
// and diffs them to find which parameters an edit touched.
package snapshot

import (
	"maps"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/smazurov/filterbind/internal/props"
)

// Snapshot is an immutable name → raw value copy. The zero value is an
// empty snapshot.
type Snapshot struct {
	values map[string]string
}

// Capture copies every tracked property of store.
func Capture(store props.Store) Snapshot {
	values := make(map[string]string)
	for _, name := range store.Names() {
		if props.IsTracked(name) {
			values[name] = store.Get(name)
		}
	}
	return Snapshot{values: values}
}

// Of builds a snapshot from a map; the map is copied.
func Of(values map[string]string) Snapshot {
	return Snapshot{values: maps.Clone(values)}
}

// Get returns the value for name and whether it was present.
func (s Snapshot) Get(name string) (string, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Has reports whether name was present.
func (s Snapshot) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Len returns the number of captured properties.
func (s Snapshot) Len() int {
	return len(s.values)
}

// Names returns the captured names, sorted.
func (s Snapshot) Names() []string {
	return slices.Sorted(maps.Keys(s.values))
}

// Map returns a copy of the captured values.
func (s Snapshot) Map() map[string]string {
	return maps.Clone(s.values)
}

// Restrict returns a snapshot holding only names; absent names stay absent.
func (s Snapshot) Restrict(names []string) Snapshot {
	out := make(map[string]string, len(names))
	for _, n := range names {
		if v, ok := s.values[n]; ok {
			out[n] = v
		}
	}
	return Snapshot{values: out}
}

// Merge returns s overlaid with other's values for names, including
// other's absences: a name missing from other is removed.
func (s Snapshot) Merge(other Snapshot, names []string) Snapshot {
	out := maps.Clone(s.values)
	if out == nil {
		out = make(map[string]string)
	}
	for _, n := range names {
		if v, ok := other.values[n]; ok {
			out[n] = v
		} else {
			delete(out, n)
		}
	}
	return Snapshot{values: out}
}

// Equal reports whether both snapshots hold the same names and values.
func (s Snapshot) Equal(other Snapshot) bool {
	return maps.Equal(s.values, other.values)
}

// Diff returns the sorted names whose values differ between before and
// after. A name present in only one snapshot counts as changed.
func Diff(before, after Snapshot) []string {
	var changed []string
	for name, v := range before.values {
		if w, ok := after.values[name]; !ok || w != v {
			changed = append(changed, name)
		}
	}
	for name := range after.values {
		if _, ok := before.values[name]; !ok {
			changed = append(changed, name)
		}
	}
	slices.Sort(changed)
	return changed
}

// Hash returns an xxhash64 digest of the user parameters in s, stable across
// capture order.
func (s Snapshot) Hash() string {
	d := xxhash.New()
	for _, name := range s.Names() {
		if !props.IsParameter(name) {
			continue
		}
		_, _ = d.WriteString(name)
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(s.values[name])
		_, _ = d.Write([]byte{0})
	}
	return strconv.FormatUint(d.Sum64(), 16)
}
