package animation

import (
	"fmt"
	"strings"
)

// KeyframeType selects how values are interpolated from a keyframe to the
// next one. The numeric values match the engine's keyframe type enum.
type KeyframeType int

// Keyframe types. Unspecified is a request sentinel ("inherit"), never stored.
const (
	Unspecified KeyframeType = -1
	Discrete    KeyframeType = 0
	Linear      KeyframeType = 1
	Smooth      KeyframeType = 2
)

// Valid reports whether t is a storable type.
func (t KeyframeType) Valid() bool {
	switch t {
	case Discrete, Linear, Smooth:
		return true
	}
	return false
}

func (t KeyframeType) String() string {
	switch t {
	case Discrete:
		return "discrete"
	case Linear:
		return "linear"
	case Smooth:
		return "smooth"
	case Unspecified:
		return "unspecified"
	}
	return fmt.Sprintf("KeyframeType(%d)", int(t))
}

// marker is the character written between position and '=' in the engine's
// keyframe string.
func (t KeyframeType) marker() string {
	switch t {
	case Discrete:
		return "|"
	case Smooth:
		return "~"
	}
	return ""
}

// ParseKeyframeType accepts the names returned by String, case-insensitive.
func ParseKeyframeType(s string) (KeyframeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "discrete", "hold":
		return Discrete, nil
	case "linear":
		return Linear, nil
	case "smooth":
		return Smooth, nil
	case "", "unspecified":
		return Unspecified, nil
	}
	return Unspecified, fmt.Errorf("unknown keyframe type %q", s)
}

// Keyframe is one (position, value, type) point on a parameter timeline.
// Position is in frames relative to the filter's in point.
type Keyframe struct {
	Position int
	Value    string
	Type     KeyframeType
}

func (k Keyframe) String() string {
	return fmt.Sprintf("%d%s=%s", k.Position, k.Type.marker(), k.Value)
}
