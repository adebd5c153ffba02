package snapshot

import (
	"testing"

	"github.com/smazurov/filterbind/internal/props"
	"github.com/stretchr/testify/assert"
)

func TestCaptureSkipsScratchProperties(t *testing.T) {
	p := props.FromMap(map[string]string{"level": "1", "_hidden": "x", "shotcut:animIn": "5"})
	s := Capture(p)

	assert.Equal(t, []string{"level", "shotcut:animIn"}, s.Names())
	assert.False(t, s.Has("_hidden"))

	p.Set("level", "2")
	v, _ := s.Get("level")
	assert.Equal(t, "1", v, "snapshot must not alias the store")
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name   string
		before map[string]string
		after  map[string]string
		want   []string
	}{
		{"identical", map[string]string{"a": "1"}, map[string]string{"a": "1"}, nil},
		{"value change", map[string]string{"a": "1", "b": "2"}, map[string]string{"a": "1", "b": "3"}, []string{"b"}},
		{"added", map[string]string{"a": "1"}, map[string]string{"a": "1", "c": ""}, []string{"c"}},
		{"removed", map[string]string{"a": "1", "z": "9"}, map[string]string{"a": "1"}, []string{"z"}},
		{"sorted", map[string]string{"b": "1", "a": "1"}, map[string]string{"b": "2", "a": "2"}, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Diff(Of(tt.before), Of(tt.after)))
		})
	}
}

func TestRestrictAndMerge(t *testing.T) {
	s := Of(map[string]string{"a": "1", "b": "2", "c": "3"})

	r := s.Restrict([]string{"a", "missing"})
	assert.Equal(t, map[string]string{"a": "1"}, r.Map())

	merged := r.Merge(Of(map[string]string{"b": "20"}), []string{"b", "a"})
	assert.Equal(t, map[string]string{"b": "20"}, merged.Map())

	var empty Snapshot
	assert.Equal(t, 0, empty.Len())
	assert.True(t, empty.Equal(Of(nil)))
}

func TestHashCoversParametersOnly(t *testing.T) {
	base := Of(map[string]string{"a": "1", "b": "2"})
	withInternal := Of(map[string]string{"a": "1", "b": "2", "shotcut:animIn": "4", "mlt_service": "x"})
	changed := Of(map[string]string{"a": "1", "b": "3"})
	// name/value boundaries are part of the hash
	shifted := Of(map[string]string{"a1": "", "b": "2"})

	assert.Equal(t, base.Hash(), withInternal.Hash())
	assert.NotEqual(t, base.Hash(), changed.Hash())
	assert.NotEqual(t, base.Hash(), shifted.Hash())
}
