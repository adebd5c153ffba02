package filter

import (
	"fmt"
	"slices"
	"strings"
)

// ParamKind is the UI-facing type of a parameter.
type ParamKind int

// Parameter kinds.
const (
	KindString ParamKind = iota
	KindNumber
	KindInt
	KindBool
	KindColor
	KindRect
	KindGradient
)

var kindNames = [...]string{"string", "number", "int", "bool", "color", "rect", "gradient"}

func (k ParamKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ParamKind(%d)", int(k))
}

// ParseParamKind parses a kind name. "double" is accepted for number and
// "geometry" for rect.
func ParseParamKind(s string) (ParamKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "string":
		return KindString, nil
	case "number", "double":
		return KindNumber, nil
	case "int", "integer":
		return KindInt, nil
	case "bool", "boolean":
		return KindBool, nil
	case "color":
		return KindColor, nil
	case "rect", "geometry":
		return KindRect, nil
	case "gradient":
		return KindGradient, nil
	}
	return KindString, fmt.Errorf("unknown parameter kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k ParamKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ParamKind) UnmarshalText(b []byte) error {
	v, err := ParseParamKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ParamSpec declares one parameter.
type ParamSpec struct {
	Name     string    `toml:"name" json:"name"`
	Kind     ParamKind `toml:"kind" json:"kind"`
	Default  string    `toml:"default,omitempty" json:"default,omitempty"`
	Keyframe bool      `toml:"keyframes,omitempty" json:"keyframes,omitempty"`
}

// Metadata describes a filter service: its parameters and which timeline
// features the UI may offer.
type Metadata struct {
	Name            string      `toml:"name" json:"name"`
	Params          []ParamSpec `toml:"params" json:"params"`
	AllowTrim       bool        `toml:"allow_trim" json:"allow_trim"`
	AllowAnimateIn  bool        `toml:"allow_animate_in" json:"allow_animate_in"`
	AllowAnimateOut bool        `toml:"allow_animate_out" json:"allow_animate_out"`
}

// Param returns the declaration for name.
func (m Metadata) Param(name string) (ParamSpec, bool) {
	if i := m.Index(name); i >= 0 {
		return m.Params[i], true
	}
	return ParamSpec{}, false
}

// Kind returns the declared kind of name, KindString when undeclared.
func (m Metadata) Kind(name string) ParamKind {
	p, _ := m.Param(name)
	return p.Kind
}

// Index returns the declaration order of name, or -1.
func (m Metadata) Index(name string) int {
	return slices.IndexFunc(m.Params, func(p ParamSpec) bool { return p.Name == name })
}
