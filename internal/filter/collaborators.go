package filter

import (
	"slices"

	"github.com/smazurov/filterbind/internal/presets"
)

// PlayheadFunc adapts a function to Playhead.
type PlayheadFunc func() int

// Position implements Playhead.
func (p PlayheadFunc) Position() int { return p() }

// MemoryClipboard is a process-local Clipboard.
type MemoryClipboard struct {
	service string
	params  []presets.Param
	full    bool
}

// Copy implements Clipboard.
func (c *MemoryClipboard) Copy(service string, params []presets.Param) {
	c.service = service
	c.params = slices.Clone(params)
	c.full = true
}

// Paste implements Clipboard.
func (c *MemoryClipboard) Paste() (string, []presets.Param, bool) {
	return c.service, slices.Clone(c.params), c.full
}
