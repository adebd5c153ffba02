package filter

import (
	"testing"
	"time"

	"github.com/smazurov/filterbind/internal/animation"
	"github.com/smazurov/filterbind/internal/events"
	"github.com/smazurov/filterbind/internal/props"
	"github.com/smazurov/filterbind/internal/undo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects published events synchronously.
type recorder struct {
	events []events.Event
}

func (r *recorder) Publish(ev events.Event) {
	r.events = append(r.events, ev)
}

func (r *recorder) propertyChanges() []string {
	var names []string
	for _, ev := range r.events {
		if e, ok := ev.(events.PropertyChangedEvent); ok {
			names = append(names, e.Name)
		}
	}
	return names
}

func (r *recorder) count(typ uint32) int {
	n := 0
	for _, ev := range r.events {
		if ev.Type() == typ {
			n++
		}
	}
	return n
}

func (r *recorder) reset() {
	r.events = nil
}

type fixture struct {
	filter *Filter
	props  *props.Properties
	stack  *undo.Stack
	events *recorder
}

func newFixture(t *testing.T, values map[string]string, opts ...Option) *fixture {
	t.Helper()
	fx := &fixture{
		props:  props.FromMap(values),
		stack:  undo.NewStack(),
		events: &recorder{},
	}
	producer := &props.StaticProducer{
		InPoint:  0,
		OutPoint: 99,
		Size:     props.FrameSize{Width: 1920, Height: 1080},
		FPS:      25,
	}
	base := []Option{WithUndoPusher(fx.stack), WithNotifier(fx.events)}
	fx.filter = New("frei0r.test", fx.props, producer, append(base, opts...)...)
	return fx
}

// fixedClock pins command timestamps and returns a function advancing them.
func fixedClock(t *testing.T) func(time.Duration) {
	t.Helper()
	current := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now = func() time.Time { return current }
	t.Cleanup(func() { now = time.Now })
	return func(d time.Duration) { current = current.Add(d) }
}

func TestOpacityFadeUndo(t *testing.T) {
	fx := newFixture(t, map[string]string{"opacity": "100"})
	f := fx.filter

	f.StartUndoParameterCommand("opacity fade")
	f.Set("opacity", "50", At(10))
	f.EndUndoCommand()

	require.Equal(t, 1, fx.stack.Len())
	cmd := fx.stack.Top()
	assert.Equal(t, undo.ParameterChanged, cmd.Kind)
	assert.Equal(t, []string{"opacity"}, cmd.Names)
	before, _ := cmd.Before.Get("opacity")
	after, _ := cmd.After.Get("opacity")
	assert.Equal(t, "100", before)
	assert.Equal(t, "50", after)

	require.True(t, fx.stack.Undo())
	assert.Equal(t, "100", f.Get("opacity", NoPosition))
	assert.Equal(t, 0, f.KeyframeCount("opacity"))

	require.True(t, fx.stack.Redo())
	assert.Equal(t, "50", f.Get("opacity", NoPosition))
}

func TestAddKeyframeUndo(t *testing.T) {
	original := "0|=100;50|=0"
	fx := newFixture(t, map[string]string{"opacity": original})
	f := fx.filter
	require.Equal(t, 2, f.KeyframeCount("opacity"))

	f.StartUndoAddKeyframeCommand()
	f.Set("opacity", "75", At(25), WithType(animation.Linear))
	f.EndUndoCommand()

	require.Equal(t, 3, f.KeyframeCount("opacity"))
	require.Equal(t, 1, fx.stack.Len())
	cmd := fx.stack.Top()
	assert.Equal(t, undo.KeyframeAdded, cmd.Kind)
	assert.Equal(t, 25, cmd.Position)
	assert.Equal(t, "Add keyframe", cmd.Text())

	require.True(t, fx.stack.Undo())
	assert.Equal(t, 2, f.KeyframeCount("opacity"))
	assert.Equal(t, original, fx.props.Get("opacity"))
	assert.Equal(t, 50, f.NextKeyframePosition("opacity", 0))
}

func TestRemoveKeyframeRecordsPosition(t *testing.T) {
	fx := newFixture(t, map[string]string{"level": "0=0;10=1;20=0"})
	f := fx.filter

	require.True(t, f.RemoveKeyframe("level", 10))
	assert.False(t, f.RemoveKeyframe("level", 15))

	require.Equal(t, 1, fx.stack.Len())
	cmd := fx.stack.Top()
	assert.Equal(t, undo.KeyframeRemoved, cmd.Kind)
	assert.Equal(t, 10, cmd.Position)
	assert.Equal(t, 2, f.KeyframeCount("level"))

	fx.stack.Undo()
	assert.Equal(t, "0=0;10=1;20=0", fx.props.Get("level"))
}

func TestRemoveLastKeyframeCollapses(t *testing.T) {
	fx := newFixture(t, map[string]string{"level": "5|=0.3"})
	require.True(t, fx.filter.RemoveKeyframe("level", 5))
	assert.False(t, fx.filter.IsAnimated("level"))
	assert.Equal(t, "0.3", fx.props.Get("level"))
}

func TestIdempotentSet(t *testing.T) {
	fx := newFixture(t, map[string]string{
		"opacity": "100",
		"level":   "0|=1;10=2",
	})
	f := fx.filter

	f.Set("opacity", f.Get("opacity", NoPosition))
	f.Set("level", f.Get("level", 10), At(10))
	f.SetDouble("opacity", 100)

	assert.Equal(t, 0, fx.stack.Len())
	assert.Empty(t, fx.events.events)
	assert.False(t, f.Recording())
}

func TestSetInsideBracketIsAbsorbed(t *testing.T) {
	fx := newFixture(t, map[string]string{"a": "1", "b": "1"})
	f := fx.filter

	f.StartUndoParameterCommand("Edit")
	f.Set("a", "2")
	f.Set("b", "2")
	f.StartUndoParameterCommand("Edit")
	f.Set("a", "3")
	f.EndUndoCommand()
	assert.True(t, f.Recording())
	f.EndUndoCommand()

	require.Equal(t, 1, fx.stack.Len())
	assert.Equal(t, []string{"a", "b"}, fx.stack.Top().Names)
	assert.Equal(t, []string{"a", "b", "a"}, fx.events.propertyChanges())
}

func TestEmptyBracketIsDiscarded(t *testing.T) {
	fx := newFixture(t, map[string]string{"a": "1"})
	f := fx.filter

	f.StartUndoParameterCommand("Nothing")
	f.Set("a", "2")
	f.Set("a", "1")
	f.EndUndoCommand()

	assert.Equal(t, 0, fx.stack.Len())
	assert.Equal(t, 0, fx.events.count(events.TypeUndoCommand))
}

func TestEndWithoutStartIsNoop(t *testing.T) {
	fx := newFixture(t, nil)
	fx.filter.EndUndoCommand()
	assert.False(t, fx.filter.Recording())
	assert.Equal(t, 0, fx.stack.Len())
}

func TestUpdateUndoCommandRestrictsNames(t *testing.T) {
	fx := newFixture(t, map[string]string{"a": "1", "b": "1"})
	f := fx.filter

	f.StartUndoParameterCommand("Edit a")
	f.UpdateUndoCommand("a")
	f.Set("a", "2")
	f.Set("b", "2")
	f.EndUndoCommand()

	require.Equal(t, 1, fx.stack.Len())
	assert.Equal(t, []string{"a"}, fx.stack.Top().Names)
}

func TestAbandonUndoCommand(t *testing.T) {
	fx := newFixture(t, map[string]string{"a": "1"})
	f := fx.filter

	f.StartUndoParameterCommand("Edit")
	f.StartUndoParameterCommand("Edit")
	f.Set("a", "2")
	f.Close()

	assert.False(t, f.Recording())
	assert.Equal(t, 0, fx.stack.Len())
	assert.Equal(t, "2", fx.props.Get("a"))

	f.Set("a", "3")
	assert.Equal(t, 1, fx.stack.Len())
}

func TestRapidEditsCoalesce(t *testing.T) {
	advance := fixedClock(t)
	fx := newFixture(t, map[string]string{"level": "0"})
	f := fx.filter

	f.SetDouble("level", 0.1)
	advance(200 * time.Millisecond)
	f.SetDouble("level", 0.2)
	advance(200 * time.Millisecond)
	f.SetDouble("level", 0.3)

	require.Equal(t, 1, fx.stack.Len())
	before, _ := fx.stack.Top().Before.Get("level")
	assert.Equal(t, "0", before)

	advance(2 * time.Second)
	f.SetDouble("level", 0.4)
	assert.Equal(t, 2, fx.stack.Len())

	fx.stack.Undo()
	fx.stack.Undo()
	assert.Equal(t, "0", f.Get("level", NoPosition))
}

func TestCoalescedEditsCancelOut(t *testing.T) {
	fixedClock(t)
	fx := newFixture(t, map[string]string{"level": "0"})

	fx.filter.SetDouble("level", 1)
	fx.filter.SetDouble("level", 0)

	assert.Equal(t, 0, fx.stack.Len())
}

func TestUndoPublishesRestoredNames(t *testing.T) {
	fx := newFixture(t, map[string]string{"a": "1"})
	fx.filter.Set("a", "2")
	fx.events.reset()

	fx.stack.Undo()

	assert.Equal(t, []string{"a"}, fx.events.propertyChanges())
	assert.Equal(t, 1, fx.events.count(events.TypeChanged))
	assert.Equal(t, 1, fx.stack.Len())
}

func TestUndoCommandEvent(t *testing.T) {
	fx := newFixture(t, map[string]string{"a": "1"})
	fx.filter.Set("a", "2")

	var got []events.UndoCommandEvent
	for _, ev := range fx.events.events {
		if e, ok := ev.(events.UndoCommandEvent); ok {
			got = append(got, e)
		}
	}
	require.Len(t, got, 1)
	assert.Equal(t, "parameter_changed", got[0].Kind)
	assert.Equal(t, "Change a", got[0].Description)
	assert.Equal(t, fx.filter.ID().String(), got[0].FilterID)
}

func TestNotificationsBlocked(t *testing.T) {
	fx := newFixture(t, map[string]string{"a": "1"})
	fx.filter.SetNotificationsBlocked(true)
	fx.filter.Set("a", "2")
	assert.Empty(t, fx.events.events)
	assert.Equal(t, 1, fx.stack.Len())
}

func TestSetInOut(t *testing.T) {
	fx := newFixture(t, nil)
	f := fx.filter
	require.Equal(t, 100, f.Duration())

	f.SetInOut(10, 99)
	assert.Equal(t, 90, f.Duration())
	require.Len(t, fx.events.events, 2)
	assert.Equal(t, events.InChangedEvent{FilterID: f.ID().String(), Delta: 10}, fx.events.events[0])
	assert.Equal(t, events.DurationChangedEvent{FilterID: f.ID().String(), Duration: 90}, fx.events.events[1])

	fx.events.reset()
	f.SetInOut(0, 89)
	assert.Equal(t, 2, len(fx.events.events))
	assert.Equal(t, 0, fx.events.count(events.TypeDurationChanged))

	f.SetInOut(50, 10)
	assert.Equal(t, 0, f.In())
}

func TestAnimateInOut(t *testing.T) {
	fx := newFixture(t, nil, WithMetadata(Metadata{AllowAnimateIn: true}))
	f := fx.filter

	assert.True(t, f.AllowAnimateIn())
	assert.False(t, f.AllowAnimateOut())

	f.SetAnimateIn(25)
	f.SetAnimateOut(500)
	assert.Equal(t, 25, f.AnimateIn())
	assert.Equal(t, 100, f.AnimateOut())
	assert.Equal(t, 1, fx.events.count(events.TypeAnimateInChanged))
	assert.Equal(t, 1, fx.events.count(events.TypeAnimateOutChanged))
	assert.Equal(t, 2, fx.events.count(events.TypeAnimateInOutChanged))
	var last events.Event
	for _, ev := range fx.events.events {
		if ev.Type() == events.TypeAnimateInOutChanged {
			last = ev
		}
	}
	assert.Equal(t, events.AnimateInOutChangedEvent{FilterID: f.ID().String(), In: 25, Out: 100}, last)

	f.ClearAnimateInOut()
	assert.Equal(t, 0, f.AnimateIn())
	assert.Equal(t, 0, f.AnimateOut())
	assert.Equal(t, 3, fx.stack.Len())

	fx.stack.Undo()
	assert.Equal(t, 25, f.AnimateIn())
	assert.Equal(t, 100, f.AnimateOut())
}

func TestGetHashIgnoresInternalProperties(t *testing.T) {
	fx := newFixture(t, map[string]string{"a": "1"})
	f := fx.filter
	h := f.GetHash()

	f.SetAnimateIn(5)
	assert.Equal(t, h, f.GetHash())

	f.Set("a", "2")
	assert.NotEqual(t, h, f.GetHash())
}

func TestFramesFromTime(t *testing.T) {
	fx := newFixture(t, nil)
	assert.Equal(t, 50, fx.filter.FramesFromTime("00:00:02.000"))
	assert.Equal(t, 12, fx.filter.FramesFromTime("12"))
}

func TestMissingParametersFailSoft(t *testing.T) {
	fx := newFixture(t, nil)
	f := fx.filter
	assert.NotPanics(t, func() {
		f.UpdateUndoCommand("x")
		f.AbandonUndoCommand()
		f.SetKeyframeType("missing", 3, animation.Linear)
		f.RemoveKeyframe("missing", 0)
		f.ClearSimpleAnimation("missing")
		_ = f.GetRect("missing", NoPosition)
		_ = f.GetColor("missing", 10)
	})
	assert.Equal(t, 0, fx.stack.Len())
}

func TestPublishesThroughEventBus(t *testing.T) {
	bus := events.New()
	defer bus.Close()

	got := make(chan events.PropertyChangedEvent, 4)
	unsub := bus.Subscribe(func(e events.PropertyChangedEvent) { got <- e })
	defer unsub()

	f := New("frei0r.test", props.New(), nil, WithNotifier(bus))
	f.Set("level", "1")

	select {
	case e := <-got:
		assert.Equal(t, "level", e.Name)
		assert.Equal(t, f.ID().String(), e.FilterID)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for PropertyChangedEvent")
	}
}
