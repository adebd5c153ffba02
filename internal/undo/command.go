// Package undo holds reversible edit records and a linear history stack.
// Commands are built by filter.Filter; the stack stands in for the host
// application's undo stack.
package undo

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/smazurov/filterbind/internal/snapshot"
)

// Kind tags the command variant.
type Kind int

// Command kinds.
const (
	ParameterChanged Kind = iota
	KeyframeAdded
	KeyframeRemoved
	KeyframeModified
)

func (k Kind) String() string {
	switch k {
	case ParameterChanged:
		return "parameter_changed"
	case KeyframeAdded:
		return "keyframe_added"
	case KeyframeRemoved:
		return "keyframe_removed"
	case KeyframeModified:
		return "keyframe_modified"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Target is the object a command restores values into.
type Target interface {
	ID() uuid.UUID
	// Restore writes the values of names from s, clearing names s lacks.
	// It must not record new commands.
	Restore(s snapshot.Snapshot, names []string)
}

// Pusher receives finished commands.
type Pusher interface {
	Push(cmd *Command)
}

// Command is one logical, reversible edit. Which payload fields are
// meaningful depends on Kind:
//
//	ParameterChanged  Description
//	KeyframeAdded     Position
//	KeyframeRemoved   Position
//	KeyframeModified  ParamIndex, KeyframeIndex
//
// Before and After are restricted to Names.
type Command struct {
	ID          uuid.UUID
	Kind        Kind
	Description string
	Target      Target
	Names       []string
	Before      snapshot.Snapshot
	After       snapshot.Snapshot
	Created     time.Time
	Interactive bool

	Position      int
	ParamIndex    int
	KeyframeIndex int
}

// Text is the label shown in undo history.
func (c *Command) Text() string {
	if c.Description != "" {
		return c.Description
	}
	switch c.Kind {
	case KeyframeAdded:
		return "Add keyframe"
	case KeyframeRemoved:
		return "Remove keyframe"
	case KeyframeModified:
		return "Modify keyframe"
	}
	return "Change parameters"
}

// Undo restores the before state.
func (c *Command) Undo() {
	c.Target.Restore(c.Before, c.Names)
}

// Redo reapplies the after state.
func (c *Command) Redo() {
	c.Target.Restore(c.After, c.Names)
}

// Obsolete reports whether the command no longer changes anything, which
// happens when merged edits cancel out.
func (c *Command) Obsolete() bool {
	return c.Before.Equal(c.After)
}

// MergeWith folds next into c when both are parameter changes with the same
// non-empty description on the same target, created no more than window
// apart. The merged command keeps c's before state for names c already
// tracked.
func (c *Command) MergeWith(next *Command, window time.Duration) bool {
	if window <= 0 ||
		c.Kind != ParameterChanged || next.Kind != ParameterChanged ||
		c.Description == "" || c.Description != next.Description ||
		c.Target == nil || next.Target == nil || c.Target.ID() != next.Target.ID() ||
		next.Created.Sub(c.Created) > window {
		return false
	}

	var added []string
	for _, n := range next.Names {
		if !slices.Contains(c.Names, n) {
			added = append(added, n)
		}
	}
	c.Before = c.Before.Merge(next.Before, added)
	c.After = c.After.Merge(next.After, next.Names)
	c.Names = append(c.Names, added...)
	slices.Sort(c.Names)
	c.Created = next.Created
	return true
}
