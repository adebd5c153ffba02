// Package animation models keyframed parameter values: an ordered keyframe
// sequence per parameter, its engine string encoding, navigation and
// evaluation with discrete, linear and smooth interpolation.
package animation

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/smazurov/filterbind/internal/codec"
)

// ErrNotAnimation is returned by Decode for values that hold no keyframes,
// such as plain scalars.
var ErrNotAnimation = errors.New("not a keyframe string")

// Animation is an ordered keyframe sequence. Positions are strictly
// increasing. The zero value is an empty animation.
type Animation struct {
	keys []Keyframe
	// raw is the decoded text, kept until the first edit.
	raw string
}

// Parse decodes a keyframe string whose positions are frame numbers, for
// example "0|=100;25=50;50~=0". It returns ok=false when raw is not a
// keyframe string.
func Parse(raw string) (*Animation, bool) {
	a, err := Decode(raw, 0)
	return a, err == nil
}

// Decode decodes the engine's keyframe string. Positions may be frame
// numbers, clock time ("00:00:02.000") or SMPTE with ':' before the frame
// field; the time forms are resolved at fps and rejected when fps <= 0.
// Duplicate positions keep the last occurrence. Values without keyframes
// return ErrNotAnimation; malformed items return a descriptive error.
func Decode(raw string, fps float64) (*Animation, error) {
	if !strings.Contains(raw, "=") {
		return nil, ErrNotAnimation
	}
	a := &Animation{raw: raw}
	for _, item := range strings.Split(raw, ";") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		k, err := parseItem(item, fps)
		if err != nil {
			return nil, err
		}
		a.put(k)
	}
	if len(a.keys) == 0 {
		return nil, ErrNotAnimation
	}
	return a, nil
}

func parseItem(item string, fps float64) (Keyframe, error) {
	eq := strings.IndexByte(item, '=')
	if eq < 0 {
		return Keyframe{}, fmt.Errorf("keyframe %q has no '='", item)
	}
	head := strings.TrimSpace(item[:eq])
	typ := Linear
	if last, size := utf8.DecodeLastRuneInString(head); size > 0 && !unicode.IsDigit(last) {
		switch last {
		case '|':
			typ = Discrete
		case '~':
			typ = Smooth
		default:
			return Keyframe{}, fmt.Errorf("unknown keyframe type marker %q in %q", last, item)
		}
		head = strings.TrimSpace(head[:len(head)-size])
	}
	pos, ok := codec.ParseFrames(head, fps)
	if !ok || pos < 0 {
		return Keyframe{}, fmt.Errorf("bad keyframe position %q", head)
	}
	return Keyframe{Position: pos, Value: item[eq+1:], Type: typ}, nil
}

// IsAnimated reports whether raw is a keyframe string with frame positions.
func IsAnimated(raw string) bool {
	_, ok := Parse(raw)
	return ok
}

// String returns the decoded text while the animation is unedited and the
// canonical encoding afterwards.
func (a *Animation) String() string {
	if a.raw != "" {
		return a.raw
	}
	return a.Format()
}

// Format encodes the animation in the engine's keyframe syntax with frame
// positions.
func (a *Animation) Format() string {
	parts := make([]string, len(a.keys))
	for i, k := range a.keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, ";")
}

// Equal reports whether both animations hold the same keyframes, ignoring
// how they were written.
func (a *Animation) Equal(other *Animation) bool {
	if a == nil || other == nil {
		return a == other
	}
	return slices.Equal(a.keys, other.keys)
}

// Len returns the number of keyframes.
func (a *Animation) Len() int {
	return len(a.keys)
}

// Keyframes returns a copy of the keyframes in position order.
func (a *Animation) Keyframes() []Keyframe {
	return slices.Clone(a.keys)
}

// Clone returns an independent copy.
func (a *Animation) Clone() *Animation {
	return &Animation{keys: slices.Clone(a.keys), raw: a.raw}
}

// At returns the keyframe at ordinal index.
func (a *Animation) At(index int) (Keyframe, bool) {
	if index < 0 || index >= len(a.keys) {
		return Keyframe{}, false
	}
	return a.keys[index], true
}

// Index returns the ordinal index of the keyframe at position, or -1.
func (a *Animation) Index(position int) int {
	i, found := a.search(position)
	if !found {
		return -1
	}
	return i
}

// IsKey reports whether a keyframe sits exactly at position.
func (a *Animation) IsKey(position int) bool {
	return a.Index(position) >= 0
}

// Positions returns the keyframe positions in order.
func (a *Animation) Positions() []int {
	out := make([]int, len(a.keys))
	for i, k := range a.keys {
		out[i] = k.Position
	}
	return out
}

// Next returns the first keyframe position strictly after position, or -1.
func (a *Animation) Next(position int) int {
	i, found := a.search(position)
	if found {
		i++
	}
	if i >= len(a.keys) {
		return -1
	}
	return a.keys[i].Position
}

// Prev returns the last keyframe position strictly before position, or -1.
func (a *Animation) Prev(position int) int {
	i, _ := a.search(position)
	if i == 0 {
		return -1
	}
	return a.keys[i-1].Position
}

// Insert sets the value at position. An existing keyframe there keeps its
// type unless typ is valid. A new keyframe takes typ when valid, otherwise
// the type of the preceding keyframe, otherwise fallback.
func (a *Animation) Insert(position int, value string, typ, fallback KeyframeType) {
	if position < 0 {
		return
	}
	i, found := a.search(position)
	if found {
		k := &a.keys[i]
		if k.Value == value && (!typ.Valid() || k.Type == typ) {
			return
		}
		k.Value = value
		if typ.Valid() {
			k.Type = typ
		}
		a.raw = ""
		return
	}
	if !typ.Valid() {
		switch {
		case i > 0:
			typ = a.keys[i-1].Type
		case fallback.Valid():
			typ = fallback
		default:
			typ = Discrete
		}
	}
	a.keys = slices.Insert(a.keys, i, Keyframe{Position: position, Value: value, Type: typ})
	a.raw = ""
}

// Remove deletes the keyframe at position and reports whether one existed.
func (a *Animation) Remove(position int) bool {
	i, found := a.search(position)
	if !found {
		return false
	}
	a.keys = slices.Delete(a.keys, i, i+1)
	a.raw = ""
	return true
}

// Type returns the type of the keyframe at ordinal index.
func (a *Animation) Type(index int) (KeyframeType, bool) {
	k, ok := a.At(index)
	if !ok {
		return Unspecified, false
	}
	return k.Type, true
}

// SetType changes the type of the keyframe at ordinal index. Out-of-range
// indices and invalid types leave the animation untouched.
func (a *Animation) SetType(index int, typ KeyframeType) bool {
	if index < 0 || index >= len(a.keys) || !typ.Valid() {
		return false
	}
	if a.keys[index].Type != typ {
		a.keys[index].Type = typ
		a.raw = ""
	}
	return true
}

// put inserts or replaces k, type included.
func (a *Animation) put(k Keyframe) {
	i, found := a.search(k.Position)
	if found {
		a.keys[i] = k
		return
	}
	a.keys = slices.Insert(a.keys, i, k)
}

func (a *Animation) search(position int) (int, bool) {
	return slices.BinarySearchFunc(a.keys, position, func(k Keyframe, p int) int {
		return k.Position - p
	})
}
