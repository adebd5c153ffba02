package codec

import (
	"strconv"
	"strings"
)

// Rect is a geometry value: position, size and opacity (0..1).
type Rect struct {
	X, Y, W, H float64
	Opacity    float64
}

// Units records which of the x, y, w, h components were written as
// percentages of the frame size.
type Units [4]bool

// Any reports whether any component is percent-relative.
func (u Units) Any() bool {
	return u[0] || u[1] || u[2] || u[3]
}

// AllPercent marks every spatial component as percent-relative.
var AllPercent = Units{true, true, true, true}

// ParseRect parses "x y w h [opacity]". Components may be separated by
// spaces, commas, colons or slashes, and the older "x/y:wxh:opacity" form
// is accepted too. Components may carry a '%' suffix; percent
// components are returned as fractions with the matching Units flag set.
// Opacity defaults to 1 when omitted.
func ParseRect(s string) (Rect, Units, bool) {
	var units Units
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ',' || r == ':' || r == '/' || r == 'x'
	})
	if len(fields) < 4 || len(fields) > 5 {
		return Rect{}, units, false
	}
	vals := [5]float64{4: 1}
	for i, f := range fields {
		v, ok := ParseNumber(f)
		if !ok {
			return Rect{}, Units{}, false
		}
		if i < 4 && strings.HasSuffix(f, "%") {
			units[i] = true
		}
		vals[i] = v
	}
	return Rect{X: vals[0], Y: vals[1], W: vals[2], H: vals[3], Opacity: vals[4]}, units, true
}

// Absolute converts percent components of r to pixels of size.
func Absolute(r Rect, units Units, width, height int) Rect {
	if units[0] {
		r.X *= float64(width)
	}
	if units[1] {
		r.Y *= float64(height)
	}
	if units[2] {
		r.W *= float64(width)
	}
	if units[3] {
		r.H *= float64(height)
	}
	return r
}

// FormatRect renders r as "x y w h opacity". Components flagged in units are
// written as percentages, so r must hold fractions for those.
func FormatRect(r Rect, units Units) string {
	parts := []float64{r.X, r.Y, r.W, r.H}
	var b strings.Builder
	for i, v := range parts {
		if units[i] {
			// 12 significant digits hides float noise from the *100
			b.WriteString(strconv.FormatFloat(v*100, 'g', 12, 64))
			b.WriteByte('%')
		} else {
			b.WriteString(FormatNumber(v))
		}
		b.WriteByte(' ')
	}
	b.WriteString(FormatNumber(r.Opacity))
	return b.String()
}

// Floats returns {x, y, w, h, opacity}.
func (r Rect) Floats() []float64 {
	return []float64{r.X, r.Y, r.W, r.H, r.Opacity}
}

// RectFromFloats is the inverse of Rect.Floats.
func RectFromFloats(v []float64) Rect {
	var c [5]float64
	copy(c[:], v)
	return Rect{X: c[0], Y: c[1], W: c[2], H: c[3], Opacity: c[4]}
}
