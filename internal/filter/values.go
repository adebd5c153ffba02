package filter

import (
	"strconv"

	"github.com/smazurov/filterbind/internal/animation"
	"github.com/smazurov/filterbind/internal/codec"
	"github.com/smazurov/filterbind/internal/metrics"
	"github.com/smazurov/filterbind/internal/props"
)

// MaxGradientColors is the number of gradient stop properties.
const MaxGradientColors = 10

type setOptions struct {
	position int
	typ      animation.KeyframeType
}

// SetOption qualifies a write.
type SetOption func(*setOptions)

// At writes a keyframe at position, relative to the filter's in point. The
// parameter is keyframed when it already is or when WithType is given;
// otherwise the scalar is overwritten.
func At(position int) SetOption {
	return func(o *setOptions) { o.position = position }
}

// WithType sets the interpolation of the written keyframe.
func WithType(t animation.KeyframeType) SetOption {
	return func(o *setOptions) { o.typ = t }
}

// Get returns the value of name. Keyframed parameters are evaluated at
// position, or at the playhead for NoPosition.
func (f *Filter) Get(name string, position int) string {
	if f.anims.IsAnimated(name) {
		return f.anims.Value(name, f.position(position))
	}
	return f.props.Get(name)
}

// GetDouble returns 0 for absent or malformed values.
func (f *Filter) GetDouble(name string, position int) float64 {
	return codec.Double(f.Get(name, position))
}

// GetInt returns 0 for absent or malformed values.
func (f *Filter) GetInt(name string, position int) int {
	return codec.Int(f.Get(name, position))
}

// GetBool returns false for absent or malformed values.
func (f *Filter) GetBool(name string, position int) bool {
	return codec.Bool(f.Get(name, position))
}

// GetColor returns the zero Color for absent or malformed values.
func (f *Filter) GetColor(name string, position int) codec.Color {
	c, _ := codec.ParseColor(f.Get(name, position))
	return c
}

// GetRect returns the rectangle in pixels, resolving percent components
// against the producer frame size. Malformed values return the zero Rect.
func (f *Filter) GetRect(name string, position int) codec.Rect {
	r, units, ok := codec.ParseRect(f.Get(name, position))
	if !ok {
		return codec.Rect{}
	}
	size := f.frameSize()
	return codec.Absolute(r, units, size.Width, size.Height)
}

// GetGradient returns the gradient stops stored in name.1 … name.10.
func (f *Filter) GetGradient(name string) []string {
	var colors []string
	for i := 1; i <= MaxGradientColors; i++ {
		key := gradientKey(name, i)
		if !f.props.Exists(key) {
			break
		}
		colors = append(colors, f.props.Get(key))
	}
	return colors
}

// Value returns name decoded as its declared kind: string, float64, int,
// bool, codec.Color, codec.Rect or []string.
func (f *Filter) Value(name string, position int) any {
	switch f.meta.Kind(name) {
	case KindNumber:
		return f.GetDouble(name, position)
	case KindInt:
		return f.GetInt(name, position)
	case KindBool:
		return f.GetBool(name, position)
	case KindColor:
		return f.GetColor(name, position)
	case KindRect:
		return f.GetRect(name, position)
	case KindGradient:
		return f.GetGradient(name)
	}
	return f.Get(name, position)
}

// Set writes a raw value. Writing the current value does nothing.
func (f *Filter) Set(name, value string, opts ...SetOption) {
	o := setOptions{position: NoPosition, typ: animation.Unspecified}
	for _, opt := range opts {
		opt(&o)
	}
	if o.position >= 0 && (o.typ.Valid() || f.anims.IsAnimated(name)) {
		f.setKeyframe(name, value, o.position, o.typ)
		return
	}
	f.writeRaw(name, value)
}

// SetDouble writes a number.
func (f *Filter) SetDouble(name string, v float64, opts ...SetOption) {
	f.Set(name, codec.FormatNumber(v), opts...)
}

// SetInt writes an integer.
func (f *Filter) SetInt(name string, v int, opts ...SetOption) {
	f.Set(name, codec.FormatInt(v), opts...)
}

// SetBool writes "1" or "0".
func (f *Filter) SetBool(name string, v bool, opts ...SetOption) {
	f.Set(name, codec.FormatBool(v), opts...)
}

// SetColor writes a color as #aarrggbb.
func (f *Filter) SetColor(name string, c codec.Color, opts ...SetOption) {
	f.Set(name, c.String(), opts...)
}

// SetRect writes a rectangle in pixels.
func (f *Filter) SetRect(name string, r codec.Rect, opts ...SetOption) {
	f.Set(name, codec.FormatRect(r, codec.Units{}), opts...)
}

// SetRectValues writes a rectangle from its components.
func (f *Filter) SetRectValues(name string, x, y, w, h, opacity float64, opts ...SetOption) {
	f.SetRect(name, codec.Rect{X: x, Y: y, W: w, H: h, Opacity: opacity}, opts...)
}

// SetGradient writes up to MaxGradientColors stops and clears the rest, as
// one undo step.
func (f *Filter) SetGradient(name string, colors []string) {
	f.StartUndoParameterCommand("Change " + name)
	for i := 1; i <= MaxGradientColors; i++ {
		key := gradientKey(name, i)
		if i <= len(colors) {
			f.writeRaw(key, colors[i-1])
		} else {
			f.clearRaw(key)
		}
	}
	f.EndUndoCommand()
}

// RemoveRectPercents rewrites percent components of a rectangle parameter,
// scalar or every keyframe, to pixels as one undo step.
func (f *Filter) RemoveRectPercents(name string) {
	size := f.frameSize()
	absolute := func(v string) (string, bool) {
		r, units, ok := codec.ParseRect(v)
		if !ok || !units.Any() {
			return v, false
		}
		return codec.FormatRect(codec.Absolute(r, units, size.Width, size.Height), codec.Units{}), true
	}

	f.StartUndoParameterCommand("Change " + name)
	defer f.EndUndoCommand()

	a := f.anims.Animation(name)
	if a == nil {
		if v, ok := absolute(f.props.Get(name)); ok {
			f.writeRaw(name, v)
		}
		return
	}
	out := &animation.Animation{}
	rewritten := false
	for _, k := range a.Keyframes() {
		v, ok := absolute(k.Value)
		rewritten = rewritten || ok
		out.Insert(k.Position, v, k.Type, k.Type)
	}
	if rewritten {
		f.writeRaw(name, out.String())
	}
}

// ResetProperty restores name to its declared default, or removes it when
// there is none.
func (f *Filter) ResetProperty(name string) {
	f.StartUndoParameterCommand("Reset " + name)
	if p, ok := f.meta.Param(name); ok && p.Default != "" {
		f.writeRaw(name, p.Default)
	} else {
		f.clearRaw(name)
	}
	if f.meta.Kind(name) == KindGradient {
		for i := 1; i <= MaxGradientColors; i++ {
			f.clearRaw(gradientKey(name, i))
		}
	}
	f.EndUndoCommand()
}

// Crop writes the left/top/right/bottom margins that keep rect, in pixels,
// of the producer frame.
func (f *Filter) Crop(rect codec.Rect) {
	size := f.frameSize()
	margin := func(v float64) string { return codec.FormatNumber(max(v, 0)) }
	f.StartUndoParameterCommand("Crop")
	f.writeRaw("left", margin(rect.X))
	f.writeRaw("top", margin(rect.Y))
	f.writeRaw("right", margin(float64(size.Width)-rect.X-rect.W))
	f.writeRaw("bottom", margin(float64(size.Height)-rect.Y-rect.H))
	f.EndUndoCommand()
}

func gradientKey(name string, i int) string {
	return name + "." + strconv.Itoa(i)
}

func (f *Filter) frameSize() props.FrameSize {
	if f.producer == nil {
		return props.FrameSize{}
	}
	return f.producer.FrameSize()
}

func (f *Filter) setKeyframe(name, value string, position int, typ animation.KeyframeType) {
	current := f.anims.Animation(name)
	if current != nil {
		next := current.Clone()
		next.Insert(position, value, typ, f.anims.DefaultType())
		if next.Equal(current) {
			return
		}
	}
	f.mutate(name, f.implicitBracket(name), func() bool {
		f.anims.Insert(name, position, value, typ)
		metrics.RecordKeyframeEdit("insert")
		return true
	})
}

// writeRaw stores value and reports whether it differed from the current
// one. Outside a bracket the write is its own undo step.
func (f *Filter) writeRaw(name, value string) bool {
	if f.props.Exists(name) && f.props.Get(name) == value {
		return false
	}
	return f.mutate(name, f.implicitBracket(name), func() bool {
		f.props.Set(name, value)
		return true
	})
}

func (f *Filter) clearRaw(name string) bool {
	if !f.props.Exists(name) {
		return false
	}
	return f.mutate(name, f.implicitBracket(name), func() bool {
		f.props.Clear(name)
		return true
	})
}

// mutate runs edit, opening a bracket with open when none is active, and
// publishes a change for name when its stored value differs afterwards.
func (f *Filter) mutate(name string, open func(), edit func() bool) bool {
	implicit := f.depth == 0
	if implicit {
		open()
	}
	before, existed := f.props.Get(name), f.props.Exists(name)
	ok := edit()
	if ok && (f.props.Get(name) != before || f.props.Exists(name) != existed) {
		metrics.RecordPropertyChange(f.service, 1)
		f.notifyChanged([]string{name})
	}
	if implicit {
		f.EndUndoCommand()
	}
	return ok
}

func (f *Filter) implicitBracket(name string) func() {
	return func() { f.StartUndoParameterCommand("Change " + name) }
}
