package codec

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// String encodes the color as "#aarrggbb", the form color parameters are
// saved with.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.A, c.R, c.G, c.B)
}

// ParseColor accepts "#rrggbb", "#aarrggbb", "0xrrggbbaa" and a decimal
// integer holding 0xrrggbbaa.
func ParseColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, false
		}
		switch len(hex) {
		case 6:
			return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
		case 8:
			return Color{A: uint8(v >> 24), R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
		}
		return Color{}, false
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		v, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return Color{}, false
		}
		return rgbaWord(uint32(v)), true
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return Color{}, false
	}
	return rgbaWord(uint32(v)), true
}

func rgbaWord(v uint32) Color {
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}

// Floats returns the channels as {r, g, b, a}.
func (c Color) Floats() []float64 {
	return []float64{float64(c.R), float64(c.G), float64(c.B), float64(c.A)}
}

// ColorFromFloats is the inverse of Color.Floats, rounding and clamping each
// channel into 0..255. Missing channels are zero.
func ColorFromFloats(v []float64) Color {
	var ch [4]uint8
	for i := 0; i < len(ch) && i < len(v); i++ {
		ch[i] = clampChannel(v[i])
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}
}

func clampChannel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}
