package undo

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/smazurov/filterbind/internal/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memTarget is a Target over a plain map.
type memTarget struct {
	id     uuid.UUID
	values map[string]string
}

func newMemTarget(values map[string]string) *memTarget {
	return &memTarget{id: uuid.New(), values: values}
}

func (m *memTarget) ID() uuid.UUID { return m.id }

func (m *memTarget) Restore(s snapshot.Snapshot, names []string) {
	for _, n := range names {
		if v, ok := s.Get(n); ok {
			m.values[n] = v
		} else {
			delete(m.values, n)
		}
	}
}

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func change(target Target, desc string, at time.Duration, name, before, after string) *Command {
	return &Command{
		ID:          uuid.New(),
		Kind:        ParameterChanged,
		Description: desc,
		Target:      target,
		Names:       []string{name},
		Before:      snapshot.Of(map[string]string{name: before}),
		After:       snapshot.Of(map[string]string{name: after}),
		Created:     t0.Add(at),
		Interactive: true,
	}
}

func TestUndoRedo(t *testing.T) {
	target := newMemTarget(map[string]string{"a": "2"})
	s := NewStack(WithCoalesceWindow(0))
	s.Push(change(target, "Change a", 0, "a", "1", "2"))

	require.True(t, s.CanUndo())
	require.True(t, s.Undo())
	assert.Equal(t, "1", target.values["a"])
	assert.False(t, s.Undo())

	require.True(t, s.Redo())
	assert.Equal(t, "2", target.values["a"])
	assert.False(t, s.Redo())
}

func TestPushDropsRedoTail(t *testing.T) {
	target := newMemTarget(map[string]string{})
	s := NewStack(WithCoalesceWindow(0))
	s.Push(change(target, "x", 0, "a", "1", "2"))
	s.Push(change(target, "y", 0, "b", "1", "2"))
	s.Undo()
	s.Push(change(target, "z", 0, "c", "1", "2"))

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "z", s.Top().Description)
	assert.False(t, s.CanRedo())
}

func TestMergeWithinWindow(t *testing.T) {
	target := newMemTarget(map[string]string{})
	s := NewStack()
	s.Push(change(target, "Drag", 0, "a", "1", "2"))
	s.Push(change(target, "Drag", 500*time.Millisecond, "a", "2", "3"))
	s.Push(change(target, "Drag", 900*time.Millisecond, "b", "x", "y"))

	require.Equal(t, 1, s.Len())
	top := s.Top()
	assert.Equal(t, []string{"a", "b"}, top.Names)
	assert.Equal(t, map[string]string{"a": "1", "b": "x"}, top.Before.Map())
	assert.Equal(t, map[string]string{"a": "3", "b": "y"}, top.After.Map())

	s.Undo()
	assert.Equal(t, map[string]string{"a": "1", "b": "x"}, target.values)
}

func TestNoMerge(t *testing.T) {
	a := newMemTarget(map[string]string{})
	b := newMemTarget(map[string]string{})

	tests := []struct {
		name   string
		second *Command
	}{
		{"outside window", change(a, "Drag", 2*time.Second, "a", "2", "3")},
		{"other description", change(a, "Other", 0, "a", "2", "3")},
		{"other target", change(b, "Drag", 0, "a", "2", "3")},
		{"keyframe kind", &Command{Kind: KeyframeAdded, Description: "Drag", Target: a, Created: t0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStack()
			s.Push(change(a, "Drag", 0, "a", "1", "2"))
			s.Push(tt.second)
			assert.Equal(t, 2, s.Len())
		})
	}

	s := NewStack()
	s.Push(change(a, "", 0, "a", "1", "2"))
	s.Push(change(a, "", 0, "a", "2", "3"))
	assert.Equal(t, 2, s.Len(), "empty descriptions never merge")
}

func TestMergedObsoleteCommandIsDropped(t *testing.T) {
	target := newMemTarget(map[string]string{})
	s := NewStack()
	s.Push(change(target, "Drag", 0, "a", "1", "2"))
	s.Push(change(target, "Drag", 0, "a", "2", "1"))

	assert.Equal(t, 0, s.Len())
	assert.False(t, s.CanUndo())
}

func TestLimit(t *testing.T) {
	target := newMemTarget(map[string]string{})
	s := NewStack(WithLimit(2), WithCoalesceWindow(0))
	for i, name := range []string{"a", "b", "c"} {
		s.Push(change(target, name, time.Duration(i)*time.Hour, name, "0", "1"))
	}
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2, s.Index())
	assert.Equal(t, "b", s.Command(0).Description)
	assert.Nil(t, s.Command(5))

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Top())
}

func TestCommandText(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{Command{Kind: ParameterChanged}, "Change parameters"},
		{Command{Kind: ParameterChanged, Description: "Fade"}, "Fade"},
		{Command{Kind: KeyframeAdded}, "Add keyframe"},
		{Command{Kind: KeyframeRemoved}, "Remove keyframe"},
		{Command{Kind: KeyframeModified}, "Modify keyframe"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.cmd.Text())
	}
	assert.Equal(t, "keyframe_modified", KeyframeModified.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestSetLimitTrims(t *testing.T) {
	target := newMemTarget(map[string]string{"a": "4"})
	s := NewStack(WithCoalesceWindow(0))
	for i, v := range []string{"1", "2", "3", "4"} {
		s.Push(change(target, "", time.Duration(i)*time.Minute, "a", "0", v))
	}
	s.SetLimit(2)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2, s.Index())
	assert.Equal(t, "3", mustGet(t, s.Command(0).After, "a"))
}

func TestSetCoalesceWindow(t *testing.T) {
	target := newMemTarget(map[string]string{"a": "3"})
	s := NewStack(WithCoalesceWindow(0))
	s.Push(change(target, "Change a", 0, "a", "1", "2"))
	s.Push(change(target, "Change a", 100*time.Millisecond, "a", "2", "3"))
	require.Equal(t, 2, s.Len())

	s.SetCoalesceWindow(time.Second)
	s.Push(change(target, "Change a", 200*time.Millisecond, "a", "3", "4"))
	assert.Equal(t, 2, s.Len())
}

func mustGet(t *testing.T, s snapshot.Snapshot, name string) string {
	t.Helper()
	v, ok := s.Get(name)
	require.True(t, ok, "missing %s", name)
	return v
}
