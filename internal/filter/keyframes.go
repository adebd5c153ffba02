package filter

import (
	"github.com/smazurov/filterbind/internal/animation"
	"github.com/smazurov/filterbind/internal/metrics"
)

// IsAnimated reports whether name holds keyframes.
func (f *Filter) IsAnimated(name string) bool {
	return f.anims.IsAnimated(name)
}

// KeyframeCount returns the number of keyframes of name, 0 for scalars.
func (f *Filter) KeyframeCount(name string) int {
	return f.anims.KeyframeCount(name)
}

// Keyframes returns the keyframes of name in position order.
func (f *Filter) Keyframes(name string) []animation.Keyframe {
	if a := f.anims.Animation(name); a != nil {
		return a.Keyframes()
	}
	return nil
}

// NextKeyframePosition returns the first keyframe strictly after position,
// or -1.
func (f *Filter) NextKeyframePosition(name string, position int) int {
	return f.anims.NextKeyframePosition(name, position)
}

// PrevKeyframePosition returns the last keyframe strictly before position,
// or -1.
func (f *Filter) PrevKeyframePosition(name string, position int) int {
	return f.anims.PrevKeyframePosition(name, position)
}

// KeyframeType returns the interpolation of the keyframe at ordinal index,
// or Unspecified when there is none.
func (f *Filter) KeyframeType(name string, index int) animation.KeyframeType {
	t, _ := f.anims.KeyframeType(name, index)
	return t
}

// SetKeyframeType changes the interpolation of the keyframe at ordinal
// index. It reports false, changing nothing, for a missing keyframe or an
// invalid type.
func (f *Filter) SetKeyframeType(name string, index int, typ animation.KeyframeType) bool {
	current, ok := f.anims.KeyframeType(name, index)
	if !ok || !typ.Valid() {
		return false
	}
	if current == typ {
		return true
	}
	open := func() { f.StartUndoModifyKeyframeCommand(f.meta.Index(name), index) }
	return f.mutate(name, open, func() bool {
		changed := f.anims.SetKeyframeType(name, index, typ)
		if changed {
			metrics.RecordKeyframeEdit("type")
		}
		return changed
	})
}

// AddKeyframe inserts a keyframe at position holding the value currently
// evaluated there. An unspecified type is inherited from the preceding
// keyframe or the default.
func (f *Filter) AddKeyframe(name string, position int, typ animation.KeyframeType) bool {
	if position < 0 {
		return false
	}
	if a := f.anims.Animation(name); a != nil && a.IsKey(position) {
		return false
	}
	typ = f.anims.EffectiveType(name, position, typ)
	value := f.Get(name, position)
	implicit := f.depth == 0
	if implicit {
		f.StartUndoAddKeyframeCommand()
	}
	f.setKeyframe(name, value, position, typ)
	if implicit {
		f.EndUndoCommand()
	}
	return true
}

// RemoveKeyframe deletes the keyframe at position. Removing the last one
// leaves its value as a scalar.
func (f *Filter) RemoveKeyframe(name string, position int) bool {
	a := f.anims.Animation(name)
	if a == nil || !a.IsKey(position) {
		return false
	}
	return f.mutate(name, f.StartUndoRemoveKeyframeCommand, func() bool {
		removed := f.anims.Remove(name, position)
		if removed {
			metrics.RecordKeyframeEdit("remove")
		}
		return removed
	})
}

// ClearSimpleAnimation drops the keyframes of name, keeping the value at the
// playhead as the scalar.
func (f *Filter) ClearSimpleAnimation(name string) {
	if !f.anims.IsAnimated(name) {
		return
	}
	position := f.position(NoPosition)
	f.mutate(name, f.implicitBracket(name), func() bool {
		return f.anims.Collapse(name, position)
	})
}
