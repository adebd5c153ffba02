package events

// Event type constants for kelindar/event.
const (
	TypePropertyChanged uint32 = iota + 1
	TypeChanged
	TypeInChanged
	TypeOutChanged
	TypeAnimateInChanged
	TypeAnimateOutChanged
	TypeDurationChanged
	TypePresetsChanged
	TypeAnalyzeFinished
	TypeUndoCommand
	TypeAnimateInOutChanged
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// PropertyChangedEvent is published once per parameter whose value actually
// changed. No-op writes never publish it.
type PropertyChangedEvent struct {
	FilterID string `json:"filter_id"`
	Name     string `json:"name"`
}

// Type returns the event type identifier for PropertyChangedEvent.
func (e PropertyChangedEvent) Type() uint32 { return TypePropertyChanged }

// ChangedEvent is the coarse "something about this filter changed" signal.
// Name is empty when more than one parameter changed.
type ChangedEvent struct {
	FilterID string `json:"filter_id"`
	Name     string `json:"name,omitempty"`
}

// Type returns the event type identifier for ChangedEvent.
func (e ChangedEvent) Type() uint32 { return TypeChanged }

// InChangedEvent reports a move of the filter's in point.
type InChangedEvent struct {
	FilterID string `json:"filter_id"`
	Delta    int    `json:"delta"`
}

// Type returns the event type identifier for InChangedEvent.
func (e InChangedEvent) Type() uint32 { return TypeInChanged }

// OutChangedEvent reports a move of the filter's out point.
type OutChangedEvent struct {
	FilterID string `json:"filter_id"`
	Delta    int    `json:"delta"`
}

// Type returns the event type identifier for OutChangedEvent.
func (e OutChangedEvent) Type() uint32 { return TypeOutChanged }

// AnimateInChangedEvent reports a new animate-in length.
type AnimateInChangedEvent struct {
	FilterID string `json:"filter_id"`
	Frames   int    `json:"frames"`
}

// Type returns the event type identifier for AnimateInChangedEvent.
func (e AnimateInChangedEvent) Type() uint32 { return TypeAnimateInChanged }

// AnimateOutChangedEvent reports a new animate-out length.
type AnimateOutChangedEvent struct {
	FilterID string `json:"filter_id"`
	Frames   int    `json:"frames"`
}

// Type returns the event type identifier for AnimateOutChangedEvent.
func (e AnimateOutChangedEvent) Type() uint32 { return TypeAnimateOutChanged }

// AnimateInOutChangedEvent follows any change to the animate-in or
// animate-out length.
type AnimateInOutChangedEvent struct {
	FilterID string `json:"filter_id"`
	In       int    `json:"in"`
	Out      int    `json:"out"`
}

// Type returns the event type identifier for AnimateInOutChangedEvent.
func (e AnimateInOutChangedEvent) Type() uint32 { return TypeAnimateInOutChanged }

// DurationChangedEvent reports a new out-in+1 length.
type DurationChangedEvent struct {
	FilterID string `json:"filter_id"`
	Duration int    `json:"duration"`
}

// Type returns the event type identifier for DurationChangedEvent.
func (e DurationChangedEvent) Type() uint32 { return TypeDurationChanged }

// PresetsChangedEvent reports that the preset list was reloaded or edited.
type PresetsChangedEvent struct {
	FilterID string   `json:"filter_id"`
	Presets  []string `json:"presets"`
}

// Type returns the event type identifier for PresetsChangedEvent.
func (e PresetsChangedEvent) Type() uint32 { return TypePresetsChanged }

// AnalyzeFinishedEvent reports that analysis results were applied.
type AnalyzeFinishedEvent struct {
	FilterID string `json:"filter_id"`
	Success  bool   `json:"success"`
}

// Type returns the event type identifier for AnalyzeFinishedEvent.
func (e AnalyzeFinishedEvent) Type() uint32 { return TypeAnalyzeFinished }

// UndoCommandEvent reports a command pushed to the undo stack.
type UndoCommandEvent struct {
	FilterID    string   `json:"filter_id"`
	Kind        string   `json:"kind"`
	Description string   `json:"description"`
	Names       []string `json:"names"`
}

// Type returns the event type identifier for UndoCommandEvent.
func (e UndoCommandEvent) Type() uint32 { return TypeUndoCommand }
