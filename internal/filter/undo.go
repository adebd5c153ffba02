package filter

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/smazurov/filterbind/internal/animation"
	"github.com/smazurov/filterbind/internal/events"
	"github.com/smazurov/filterbind/internal/metrics"
	"github.com/smazurov/filterbind/internal/snapshot"
	"github.com/smazurov/filterbind/internal/undo"
)

// bracket is the state of an open undo command.
type bracket struct {
	kind          undo.Kind
	description   string
	before        snapshot.Snapshot
	names         []string // set by UpdateUndoCommand; empty tracks every name
	paramIndex    int
	keyframeIndex int
	interactive   bool
	record        bool
}

// now is replaced in tests.
var now = time.Now

// Recording reports whether an undo bracket is open.
func (f *Filter) Recording() bool { return f.depth > 0 }

// StartUndoParameterCommand opens a "parameters changed" bracket.
func (f *Filter) StartUndoParameterCommand(description string) {
	f.start(&bracket{kind: undo.ParameterChanged, description: description, interactive: true, record: true})
}

// StartUndoAddKeyframeCommand opens a bracket recording one added keyframe.
func (f *Filter) StartUndoAddKeyframeCommand() {
	f.start(&bracket{kind: undo.KeyframeAdded, interactive: true, record: true})
}

// StartUndoRemoveKeyframeCommand opens a bracket recording one removed
// keyframe.
func (f *Filter) StartUndoRemoveKeyframeCommand() {
	f.start(&bracket{kind: undo.KeyframeRemoved, interactive: true, record: true})
}

// StartUndoModifyKeyframeCommand opens a bracket recording a change to the
// keyframe at keyframeIndex of the parameter declared at paramIndex.
func (f *Filter) StartUndoModifyKeyframeCommand(paramIndex, keyframeIndex int) {
	f.start(&bracket{
		kind:          undo.KeyframeModified,
		paramIndex:    paramIndex,
		keyframeIndex: keyframeIndex,
		interactive:   true,
		record:        true,
	})
}

func (f *Filter) start(b *bracket) {
	if f.depth > 0 {
		f.depth++
		outer := f.pending
		if b.kind == undo.ParameterChanged && outer.kind == undo.ParameterChanged &&
			b.description == outer.description {
			f.logger.Debug("Coalescing nested undo command", "description", b.description, "depth", f.depth)
		} else {
			f.logger.Debug("Nested undo command absorbed",
				"outer", outer.kind.String(), "outer_description", outer.description,
				"inner", b.kind.String(), "inner_description", b.description, "depth", f.depth)
		}
		return
	}
	b.before = snapshot.Capture(f.props)
	f.pending = b
	f.depth = 1
}

// UpdateUndoCommand limits the open command to names passed here. With no
// calls every tracked property is diffed.
func (f *Filter) UpdateUndoCommand(name string) {
	if f.depth == 0 || name == "" {
		return
	}
	if !slices.Contains(f.pending.names, name) {
		f.pending.names = append(f.pending.names, name)
	}
}

// EndUndoCommand closes the innermost bracket. Closing the outermost one
// diffs the captured state against the current one and pushes a command
// unless nothing changed.
func (f *Filter) EndUndoCommand() {
	if f.depth == 0 {
		f.logger.Debug("EndUndoCommand without an open command")
		return
	}
	f.depth--
	if f.depth > 0 {
		return
	}
	b := f.pending
	f.pending = nil

	after := snapshot.Capture(f.props)
	changed := snapshot.Diff(b.before, after)
	if len(b.names) > 0 {
		changed = slices.DeleteFunc(changed, func(n string) bool { return !slices.Contains(b.names, n) })
	}
	if len(changed) == 0 {
		metrics.RecordUndoDiscarded(b.kind.String())
		f.logger.Debug("Discarding empty undo command", "kind", b.kind.String(), "description", b.description)
		return
	}

	cmd := &undo.Command{
		ID:            uuid.New(),
		Kind:          b.kind,
		Description:   b.description,
		Target:        f,
		Names:         changed,
		Before:        b.before.Restrict(changed),
		After:         after.Restrict(changed),
		Created:       now(),
		Interactive:   b.interactive,
		Position:      -1,
		ParamIndex:    b.paramIndex,
		KeyframeIndex: b.keyframeIndex,
	}
	switch b.kind {
	case undo.KeyframeAdded:
		cmd.Position = keyframeDelta(cmd.Before, cmd.After, changed, f.frameRate())
	case undo.KeyframeRemoved:
		cmd.Position = keyframeDelta(cmd.After, cmd.Before, changed, f.frameRate())
	}

	if !b.record {
		f.logger.Debug("Not recording non-interactive change", "description", b.description, "names", changed)
		return
	}
	if f.pusher != nil {
		f.pusher.Push(cmd)
	}
	metrics.RecordUndoCommand(cmd.Kind.String())
	f.logger.Debug("Undo command pushed", "kind", cmd.Kind.String(), "text", cmd.Text(), "names", changed)
	f.publish(events.UndoCommandEvent{
		FilterID:    f.id.String(),
		Kind:        cmd.Kind.String(),
		Description: cmd.Text(),
		Names:       changed,
	})
}

// AbandonUndoCommand drops every open bracket without pushing anything.
// Changes already made stay in place.
func (f *Filter) AbandonUndoCommand() {
	if f.depth == 0 {
		return
	}
	f.logger.Debug("Abandoning undo command", "description", f.pending.description, "depth", f.depth)
	f.depth = 0
	f.pending = nil
}

// Restore implements undo.Target. It writes values straight to the store
// without recording a command.
func (f *Filter) Restore(s snapshot.Snapshot, names []string) {
	for _, name := range names {
		if v, ok := s.Get(name); ok {
			f.props.Set(name, v)
		} else {
			f.props.Clear(name)
		}
		f.anims.Forget(name)
	}
	metrics.RecordPropertyChange(f.service, len(names))
	f.notifyChanged(names)
}

// keyframeDelta returns the first keyframe position present in to but not
// in from across names, or -1.
func keyframeDelta(from, to snapshot.Snapshot, names []string, fps float64) int {
	for _, name := range names {
		have := positions(from, name, fps)
		for _, p := range positions(to, name, fps) {
			if !slices.Contains(have, p) {
				return p
			}
		}
	}
	return -1
}

func positions(s snapshot.Snapshot, name string, fps float64) []int {
	raw, ok := s.Get(name)
	if !ok {
		return nil
	}
	if a, err := animation.Decode(raw, fps); err == nil {
		return a.Positions()
	}
	return nil
}
