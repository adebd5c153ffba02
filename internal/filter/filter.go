// Package filter binds one filter instance's parameters to a UI: typed
// get/set over scalar or keyframed values, keyframe navigation, undo
// bracketing and change notifications.
//
// A Filter is single-threaded. All calls, including event handlers that
// call back into it, must happen on the owner's control goroutine.
package filter

import (
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/smazurov/filterbind/internal/animation"
	"github.com/smazurov/filterbind/internal/codec"
	"github.com/smazurov/filterbind/internal/events"
	"github.com/smazurov/filterbind/internal/logging"
	"github.com/smazurov/filterbind/internal/presets"
	"github.com/smazurov/filterbind/internal/props"
	"github.com/smazurov/filterbind/internal/snapshot"
	"github.com/smazurov/filterbind/internal/undo"
)

// NoPosition asks Get to use the playhead (for keyframed parameters) or the
// scalar value.
const NoPosition = -1

// Property names used for transition lengths.
const (
	PropAnimateIn  = props.InternalPrefix + "animIn"
	PropAnimateOut = props.InternalPrefix + "animOut"
)

// Notifier receives change notifications. *events.Bus satisfies it.
type Notifier interface {
	Publish(ev events.Event)
}

// Playhead reports the current position relative to the filter's in point.
type Playhead interface {
	Position() int
}

// PresetStore is the named-preset storage keyed by filter service.
// *presets.TOMLStore satisfies it.
type PresetStore interface {
	List(service string) ([]string, error)
	Get(service, name string) (presets.Preset, error)
	Put(service string, p presets.Preset) error
	Delete(service, name string) error
}

// Clipboard holds copied filter parameters between filters of the same
// service.
type Clipboard interface {
	Copy(service string, params []presets.Param)
	Paste() (service string, params []presets.Param, ok bool)
}

// Filter is the parameter model of one filter instance.
type Filter struct {
	id       uuid.UUID
	service  string
	meta     Metadata
	props    props.Store
	producer props.Producer
	anims    *animation.Store

	in, out int
	isNew   bool
	presets []string
	blocked bool

	notifier  Notifier
	pusher    undo.Pusher
	playhead  Playhead
	store     PresetStore
	clipboard Clipboard

	recordAnalysis bool

	// depth counts open undo brackets; only the outermost one records.
	depth   int
	pending *bracket

	logger *slog.Logger
}

// Option configures a Filter.
type Option func(*Filter)

// WithID sets the filter identity. A random ID is used otherwise.
func WithID(id uuid.UUID) Option {
	return func(f *Filter) { f.id = id }
}

// WithMetadata sets the declared parameter kinds and capabilities.
func WithMetadata(m Metadata) Option {
	return func(f *Filter) { f.meta = m }
}

// WithNotifier sets the change notification sink.
func WithNotifier(n Notifier) Option {
	return func(f *Filter) { f.notifier = n }
}

// WithUndoPusher sets where finished undo commands go.
func WithUndoPusher(p undo.Pusher) Option {
	return func(f *Filter) { f.pusher = p }
}

// WithPlayhead sets the playhead used for NoPosition reads.
func WithPlayhead(p Playhead) Option {
	return func(f *Filter) { f.playhead = p }
}

// WithPresetStore sets the preset storage.
func WithPresetStore(s PresetStore) Option {
	return func(f *Filter) { f.store = s }
}

// WithClipboard sets the parameter clipboard.
func WithClipboard(c Clipboard) Option {
	return func(f *Filter) { f.clipboard = c }
}

// WithDefaultKeyframeType sets the type of a first keyframe inserted
// without an explicit type. The default is Discrete.
func WithDefaultKeyframeType(t animation.KeyframeType) Option {
	return func(f *Filter) { f.anims = animation.NewStore(f.props, t) }
}

// WithRecordAnalysisUndo makes analysis results undoable.
func WithRecordAnalysisUndo(record bool) Option {
	return func(f *Filter) { f.recordAnalysis = record }
}

// WithNew marks the filter as newly created so ApplyDefaults applies.
func WithNew(isNew bool) Option {
	return func(f *Filter) { f.isNew = isNew }
}

// New binds a filter of service to its property store and producer.
func New(service string, store props.Store, producer props.Producer, opts ...Option) *Filter {
	f := &Filter{
		id:       uuid.New(),
		service:  service,
		props:    store,
		producer: producer,
	}
	f.anims = animation.NewStore(store, animation.Discrete)
	if producer != nil {
		f.in = producer.In()
		f.out = producer.Out()
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = logging.ForFilter(service, f.id.String())
	f.anims.SetFrameRate(f.frameRate())
	f.anims.SetLogger(f.logger)
	return f
}

// ID implements undo.Target.
func (f *Filter) ID() uuid.UUID { return f.id }

// Service returns the filter type, such as "frei0r.brightness".
func (f *Filter) Service() string { return f.service }

// Metadata returns the declared parameter metadata.
func (f *Filter) Metadata() Metadata { return f.meta }

// IsNew reports whether the filter was just created.
func (f *Filter) IsNew() bool { return f.isNew }

// SetNew updates the newly-created flag.
func (f *Filter) SetNew(isNew bool) { f.isNew = isNew }

// In returns the first frame of the filter.
func (f *Filter) In() int { return f.in }

// Out returns the last frame of the filter.
func (f *Filter) Out() int { return f.out }

// Duration returns the filter length in frames.
func (f *Filter) Duration() int { return f.out - f.in + 1 }

// SetInOut moves the filter bounds, publishing the deltas.
func (f *Filter) SetInOut(in, out int) {
	if in < 0 || out < in {
		f.logger.Debug("Ignoring invalid in/out", "in", in, "out", out)
		return
	}
	duration := f.Duration()
	inDelta, outDelta := in-f.in, out-f.out
	f.in, f.out = in, out
	id := f.id.String()
	if inDelta != 0 {
		f.publish(events.InChangedEvent{FilterID: id, Delta: inDelta})
	}
	if outDelta != 0 {
		f.publish(events.OutChangedEvent{FilterID: id, Delta: outDelta})
	}
	if f.Duration() != duration {
		f.publish(events.DurationChangedEvent{FilterID: id, Duration: f.Duration()})
	}
}

// SetNotificationsBlocked suppresses all events while blocked.
func (f *Filter) SetNotificationsBlocked(blocked bool) { f.blocked = blocked }

// NotificationsBlocked reports whether events are suppressed.
func (f *Filter) NotificationsBlocked() bool { return f.blocked }

// GetHash returns a content hash of the filter's parameters.
func (f *Filter) GetHash() string {
	return snapshot.Capture(f.props).Hash()
}

// FramesFromTime converts a time string to frames at the producer rate.
func (f *Filter) FramesFromTime(s string) int {
	return codec.FramesFromTime(s, f.frameRate())
}

// frameRate is the producer rate, 25 without a producer.
func (f *Filter) frameRate() float64 {
	if f.producer != nil {
		if fps := f.producer.FrameRate(); fps > 0 {
			return fps
		}
	}
	return 25
}

// Close abandons any open undo bracket.
func (f *Filter) Close() {
	f.AbandonUndoCommand()
}

func (f *Filter) publish(ev events.Event) {
	if f.blocked || f.notifier == nil {
		return
	}
	f.notifier.Publish(ev)
}

// notifyChanged publishes per-name and aggregate change events for names.
func (f *Filter) notifyChanged(names []string) {
	if len(names) == 0 {
		return
	}
	id := f.id.String()
	for _, name := range names {
		f.publish(events.PropertyChangedEvent{FilterID: id, Name: name})
	}
	if slices.Contains(names, PropAnimateIn) {
		f.publish(events.AnimateInChangedEvent{FilterID: id, Frames: f.AnimateIn()})
	}
	if slices.Contains(names, PropAnimateOut) {
		f.publish(events.AnimateOutChangedEvent{FilterID: id, Frames: f.AnimateOut()})
	}
	if slices.Contains(names, PropAnimateIn) || slices.Contains(names, PropAnimateOut) {
		f.publish(events.AnimateInOutChangedEvent{FilterID: id, In: f.AnimateIn(), Out: f.AnimateOut()})
	}
	changed := events.ChangedEvent{FilterID: id}
	if len(names) == 1 {
		changed.Name = names[0]
	}
	f.publish(changed)
}

// position resolves NoPosition to the playhead.
func (f *Filter) position(position int) int {
	if position >= 0 {
		return position
	}
	if f.playhead != nil {
		if p := f.playhead.Position(); p >= 0 {
			return p
		}
	}
	return 0
}
