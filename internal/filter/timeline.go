package filter

import "github.com/smazurov/filterbind/internal/codec"

// AnimateIn returns the fade-in length in frames.
func (f *Filter) AnimateIn() int {
	return codec.Int(f.props.Get(PropAnimateIn))
}

// AnimateOut returns the fade-out length in frames.
func (f *Filter) AnimateOut() int {
	return codec.Int(f.props.Get(PropAnimateOut))
}

// SetAnimateIn sets the fade-in length, clamped to the duration.
func (f *Filter) SetAnimateIn(frames int) {
	f.writeRaw(PropAnimateIn, codec.FormatInt(f.clampFrames(frames)))
}

// SetAnimateOut sets the fade-out length, clamped to the duration.
func (f *Filter) SetAnimateOut(frames int) {
	f.writeRaw(PropAnimateOut, codec.FormatInt(f.clampFrames(frames)))
}

// ClearAnimateInOut zeroes both lengths as one undo step.
func (f *Filter) ClearAnimateInOut() {
	f.StartUndoParameterCommand("Clear animation")
	if f.props.Exists(PropAnimateIn) {
		f.writeRaw(PropAnimateIn, "0")
	}
	if f.props.Exists(PropAnimateOut) {
		f.writeRaw(PropAnimateOut, "0")
	}
	f.EndUndoCommand()
}

// AllowTrim reports whether the UI may trim the filter independently.
func (f *Filter) AllowTrim() bool { return f.meta.AllowTrim }

// AllowAnimateIn reports whether the filter supports a fade-in.
func (f *Filter) AllowAnimateIn() bool { return f.meta.AllowAnimateIn }

// AllowAnimateOut reports whether the filter supports a fade-out.
func (f *Filter) AllowAnimateOut() bool { return f.meta.AllowAnimateOut }

func (f *Filter) clampFrames(frames int) int {
	return max(0, min(frames, f.Duration()))
}
