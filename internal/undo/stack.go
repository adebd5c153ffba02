package undo

import "time"

// DefaultCoalesceWindow is how close two same-description parameter edits
// must be to merge into one history entry.
const DefaultCoalesceWindow = time.Second

// Stack is a linear undo history. It is not safe for concurrent use.
type Stack struct {
	commands []*Command
	index    int // number of applied commands
	window   time.Duration
	limit    int
}

// StackOption configures a Stack.
type StackOption func(*Stack)

// WithCoalesceWindow sets the merge window. Zero disables merging.
func WithCoalesceWindow(d time.Duration) StackOption {
	return func(s *Stack) {
		s.window = d
	}
}

// WithLimit caps the history length; the oldest entries are dropped.
func WithLimit(n int) StackOption {
	return func(s *Stack) {
		s.limit = n
	}
}

// NewStack creates an empty history.
func NewStack(opts ...StackOption) *Stack {
	s := &Stack{window: DefaultCoalesceWindow}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetCoalesceWindow changes the merge window for later pushes.
func (s *Stack) SetCoalesceWindow(d time.Duration) {
	s.window = d
}

// SetLimit changes the history cap, trimming the oldest entries at once.
func (s *Stack) SetLimit(n int) {
	s.limit = n
	s.trim()
}

// Push records an already-applied command, discarding any redo tail.
func (s *Stack) Push(cmd *Command) {
	if cmd == nil {
		return
	}
	s.commands = s.commands[:s.index]
	if s.index > 0 {
		top := s.commands[s.index-1]
		if top.MergeWith(cmd, s.window) {
			if top.Obsolete() {
				s.commands = s.commands[:s.index-1]
				s.index--
			}
			return
		}
	}
	s.commands = append(s.commands, cmd)
	s.index++
	s.trim()
}

func (s *Stack) trim() {
	if s.limit <= 0 || len(s.commands) <= s.limit {
		return
	}
	drop := len(s.commands) - s.limit
	s.commands = append([]*Command(nil), s.commands[drop:]...)
	s.index = max(s.index-drop, 0)
}

// Undo reverts the most recent applied command.
func (s *Stack) Undo() bool {
	if s.index == 0 {
		return false
	}
	s.index--
	s.commands[s.index].Undo()
	return true
}

// Redo reapplies the next undone command.
func (s *Stack) Redo() bool {
	if s.index >= len(s.commands) {
		return false
	}
	s.commands[s.index].Redo()
	s.index++
	return true
}

// CanUndo reports whether Undo would do anything.
func (s *Stack) CanUndo() bool { return s.index > 0 }

// CanRedo reports whether Redo would do anything.
func (s *Stack) CanRedo() bool { return s.index < len(s.commands) }

// Len returns the number of recorded commands, undone ones included.
func (s *Stack) Len() int { return len(s.commands) }

// Index returns how many commands are currently applied.
func (s *Stack) Index() int { return s.index }

// Command returns the command at position i, or nil.
func (s *Stack) Command(i int) *Command {
	if i < 0 || i >= len(s.commands) {
		return nil
	}
	return s.commands[i]
}

// Top returns the most recent applied command, or nil.
func (s *Stack) Top() *Command {
	return s.Command(s.index - 1)
}

// Clear drops all history.
func (s *Stack) Clear() {
	s.commands = nil
	s.index = 0
}
