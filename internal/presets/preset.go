// Package presets stores named parameter presets per filter service in a
// TOML file and reloads them when the file changes on disk.
package presets

import "slices"

// DefaultsName is the reserved preset name holding a service's defaults.
// It is applied to newly created filters and hidden from preset lists.
const DefaultsName = ""

// Param is one parameter value in a preset. Order is preserved.
type Param struct {
	Name  string `toml:"name" json:"name"`
	Value string `toml:"value" json:"value"`
}

// Preset is a named, ordered list of parameter values.
type Preset struct {
	Name   string  `toml:"name" json:"name"`
	Params []Param `toml:"params" json:"params"`
}

// Value returns the value of the named parameter.
func (p Preset) Value(name string) (string, bool) {
	for _, param := range p.Params {
		if param.Name == name {
			return param.Value, true
		}
	}
	return "", false
}

// Names returns the parameter names in preset order.
func (p Preset) Names() []string {
	names := make([]string, len(p.Params))
	for i, param := range p.Params {
		names[i] = param.Name
	}
	return names
}

// Equal reports whether both presets hold the same parameters in the same order.
func (p Preset) Equal(other Preset) bool {
	return p.Name == other.Name && slices.Equal(p.Params, other.Params)
}
