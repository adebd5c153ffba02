package animation

import (
	"errors"
	"log/slog"

	"github.com/smazurov/filterbind/internal/logging"
	"github.com/smazurov/filterbind/internal/props"
)

// Store materializes animations for the properties of one service on
// demand. Parsed animations are cached per name and re-parsed whenever the
// underlying raw string changes, so writes that bypass the Store (undo
// restores, presets) are picked up on the next access.
type Store struct {
	props       props.Store
	defaultType KeyframeType
	fps         float64
	cache       map[string]*entry
	logger      *slog.Logger
}

type entry struct {
	raw  string
	anim *Animation // nil when raw is a plain scalar
}

// NewStore creates an animation store over p. defaultType is the type given
// to a first keyframe inserted without an explicit type.
func NewStore(p props.Store, defaultType KeyframeType) *Store {
	if !defaultType.Valid() {
		defaultType = Discrete
	}
	return &Store{
		props:       p,
		defaultType: defaultType,
		cache:       make(map[string]*entry),
		logger:      logging.GetLogger("filter"),
	}
}

// SetFrameRate sets the rate used to resolve clock and SMPTE keyframe
// positions. Cached animations are re-read.
func (s *Store) SetFrameRate(fps float64) {
	if fps == s.fps {
		return
	}
	s.fps = fps
	clear(s.cache)
}

// SetLogger replaces the logger that reports unreadable keyframe strings.
func (s *Store) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

// DefaultType returns the type used for first keyframes.
func (s *Store) DefaultType() KeyframeType {
	return s.defaultType
}

func (s *Store) lookup(name string) *Animation {
	raw := s.props.Get(name)
	if e, ok := s.cache[name]; ok && e.raw == raw {
		return e.anim
	}
	anim, err := Decode(raw, s.fps)
	if err != nil {
		if !errors.Is(err, ErrNotAnimation) {
			s.logger.Debug("Reading keyframe string as a scalar", "name", name, "error", err)
		}
		anim = nil
	}
	s.cache[name] = &entry{raw: raw, anim: anim}
	return anim
}

func (s *Store) write(name string, anim *Animation) {
	raw := anim.String()
	s.props.Set(name, raw)
	s.cache[name] = &entry{raw: raw, anim: anim}
}

// IsAnimated reports whether the property currently holds keyframes.
func (s *Store) IsAnimated(name string) bool {
	return s.lookup(name) != nil
}

// Animation returns a copy of the property's animation, or nil for a
// scalar.
func (s *Store) Animation(name string) *Animation {
	if a := s.lookup(name); a != nil {
		return a.Clone()
	}
	return nil
}

// KeyframeCount returns 0 for scalars.
func (s *Store) KeyframeCount(name string) int {
	if a := s.lookup(name); a != nil {
		return a.Len()
	}
	return 0
}

// Value evaluates the property at position; scalars return their raw value.
func (s *Store) Value(name string, position int) string {
	if a := s.lookup(name); a != nil {
		return a.Value(position)
	}
	return s.props.Get(name)
}

// NextKeyframePosition returns the first keyframe strictly after position,
// or -1.
func (s *Store) NextKeyframePosition(name string, position int) int {
	if a := s.lookup(name); a != nil {
		return a.Next(position)
	}
	return -1
}

// PrevKeyframePosition returns the last keyframe strictly before position,
// or -1.
func (s *Store) PrevKeyframePosition(name string, position int) int {
	if a := s.lookup(name); a != nil {
		return a.Prev(position)
	}
	return -1
}

// KeyframeType returns the type of the keyframe at ordinal index.
func (s *Store) KeyframeType(name string, index int) (KeyframeType, bool) {
	if a := s.lookup(name); a != nil {
		return a.Type(index)
	}
	return Unspecified, false
}

// EffectiveType resolves the type a write at position would use: the type
// of a keyframe already there, else requested when valid, else the
// preceding keyframe's type, else the default.
func (s *Store) EffectiveType(name string, position int, requested KeyframeType) KeyframeType {
	a := s.lookup(name)
	if a != nil {
		if i := a.Index(position); i >= 0 && !requested.Valid() {
			return a.keys[i].Type
		}
	}
	if requested.Valid() {
		return requested
	}
	if a != nil {
		if p := a.Prev(position); p >= 0 {
			return a.keys[a.Index(p)].Type
		}
	}
	return s.defaultType
}

// SetKeyframeType changes the type of the keyframe at ordinal index and
// reports whether anything changed.
func (s *Store) SetKeyframeType(name string, index int, typ KeyframeType) bool {
	a := s.lookup(name)
	if a == nil {
		return false
	}
	current, ok := a.Type(index)
	if !ok || !typ.Valid() || current == typ {
		return false
	}
	next := a.Clone()
	next.SetType(index, typ)
	s.write(name, next)
	return true
}

// Insert writes a keyframe, turning a scalar property into an animation
// holding only the new keyframe.
func (s *Store) Insert(name string, position int, value string, typ KeyframeType) {
	if position < 0 {
		return
	}
	next := &Animation{}
	if a := s.lookup(name); a != nil {
		next = a.Clone()
	}
	next.Insert(position, value, typ, s.defaultType)
	s.write(name, next)
}

// Remove deletes the keyframe at position. Removing the last keyframe
// collapses the property to a scalar holding that keyframe's value.
func (s *Store) Remove(name string, position int) bool {
	a := s.lookup(name)
	if a == nil {
		return false
	}
	i := a.Index(position)
	if i < 0 {
		return false
	}
	if a.Len() == 1 {
		s.props.Set(name, a.keys[i].Value)
		delete(s.cache, name)
		return true
	}
	next := a.Clone()
	next.Remove(position)
	s.write(name, next)
	return true
}

// Collapse replaces an animation with its value at position and reports
// whether the property was animated.
func (s *Store) Collapse(name string, position int) bool {
	a := s.lookup(name)
	if a == nil {
		return false
	}
	s.props.Set(name, a.Value(position))
	delete(s.cache, name)
	return true
}

// Forget drops the cached animation for name.
func (s *Store) Forget(name string) {
	delete(s.cache, name)
}
