package filter

import (
	"errors"
	"slices"

	"github.com/smazurov/filterbind/internal/events"
	"github.com/smazurov/filterbind/internal/presets"
	"github.com/smazurov/filterbind/internal/props"
	"github.com/smazurov/filterbind/internal/undo"
)

// LoadPresets refreshes the preset list from the store.
func (f *Filter) LoadPresets() {
	if f.store == nil {
		return
	}
	names, err := f.store.List(f.service)
	if err != nil {
		f.logger.Warn("Failed to list presets", "error", err)
		return
	}
	if slices.Equal(names, f.presets) {
		return
	}
	f.presets = names
	f.publish(events.PresetsChangedEvent{FilterID: f.id.String(), Presets: slices.Clone(names)})
}

// Presets returns the preset names for this filter's service.
func (f *Filter) Presets() []string {
	return slices.Clone(f.presets)
}

// SavePreset stores the current values of names, or of every parameter
// when names is empty, as preset name. It returns the preset's index in the
// refreshed list, or -1. An empty name saves the service defaults.
func (f *Filter) SavePreset(names []string, name string) int {
	if f.store == nil {
		return -1
	}
	p := presets.Preset{Name: name, Params: f.parameters(names)}
	if err := f.store.Put(f.service, p); err != nil {
		f.logger.Warn("Failed to save preset", "preset", name, "error", err)
		return -1
	}
	f.LoadPresets()
	return slices.Index(f.presets, name)
}

// DeletePreset removes a preset from the store.
func (f *Filter) DeletePreset(name string) {
	if f.store == nil {
		return
	}
	if err := f.store.Delete(f.service, name); err != nil {
		f.logger.Warn("Failed to delete preset", "preset", name, "error", err)
		return
	}
	f.LoadPresets()
}

// ApplyPreset writes a preset's values as one undo step.
func (f *Filter) ApplyPreset(name string) bool {
	p, ok := f.preset(name)
	if !ok {
		return false
	}
	f.StartUndoParameterCommand("Apply preset " + name)
	f.applyParams(p.Params)
	f.EndUndoCommand()
	return true
}

// ApplyDefaults applies declared parameter defaults and then the service's
// defaults preset to a newly created filter. It is not undoable.
func (f *Filter) ApplyDefaults() {
	if !f.isNew {
		return
	}
	f.isNew = false
	f.start(&bracket{kind: undo.ParameterChanged, description: "Apply defaults"})
	for _, spec := range f.meta.Params {
		if spec.Default != "" && !f.props.Exists(spec.Name) {
			f.writeRaw(spec.Name, spec.Default)
		}
	}
	if p, ok := f.preset(presets.DefaultsName); ok {
		f.applyParams(p.Params)
	}
	f.EndUndoCommand()
}

func (f *Filter) preset(name string) (presets.Preset, bool) {
	if f.store == nil {
		return presets.Preset{}, false
	}
	p, err := f.store.Get(f.service, name)
	if errors.Is(err, presets.ErrNotFound) {
		f.logger.Debug("Preset not found", "preset", name)
		return presets.Preset{}, false
	}
	if err != nil {
		f.logger.Warn("Failed to load preset", "preset", name, "error", err)
		return presets.Preset{}, false
	}
	return p, true
}

func (f *Filter) applyParams(params []presets.Param) {
	for _, p := range params {
		f.writeRaw(p.Name, p.Value)
	}
}

// parameters returns name/value pairs for names, or for every user
// parameter in store order when names is empty.
func (f *Filter) parameters(names []string) []presets.Param {
	if len(names) == 0 {
		names = slices.DeleteFunc(f.props.Names(), func(n string) bool { return !props.IsParameter(n) })
	}
	params := make([]presets.Param, 0, len(names))
	for _, n := range names {
		if f.props.Exists(n) {
			params = append(params, presets.Param{Name: n, Value: f.props.Get(n)})
		}
	}
	return params
}

// CopyParameters puts every parameter on the clipboard.
func (f *Filter) CopyParameters() {
	if f.clipboard == nil {
		return
	}
	f.clipboard.Copy(f.service, f.parameters(nil))
}

// PasteParameters applies clipboard values copied from a filter of the same
// service, limited to names when given, as one undo step.
func (f *Filter) PasteParameters(names []string) bool {
	if f.clipboard == nil {
		return false
	}
	service, params, ok := f.clipboard.Paste()
	if !ok {
		return false
	}
	if service != f.service {
		f.logger.Debug("Clipboard holds another service", "clipboard", service)
		return false
	}
	if len(names) > 0 {
		params = slices.DeleteFunc(params, func(p presets.Param) bool { return !slices.Contains(names, p.Name) })
	}
	f.StartUndoParameterCommand("Paste parameters")
	f.applyParams(params)
	f.EndUndoCommand()
	return true
}
