package animation

import (
	"strings"

	"github.com/smazurov/filterbind/internal/codec"
)

// valueKind is the shape a keyframe value is interpolated as.
type valueKind int

const (
	kindOpaque valueKind = iota
	kindNumber
	kindColor
	kindRect
)

// Value evaluates the animation at position. Before the first keyframe the
// first value holds, after the last keyframe the last value holds. Between
// keyframes the left keyframe's type decides the interpolation.
func (a *Animation) Value(position int) string {
	n := len(a.keys)
	switch {
	case n == 0:
		return ""
	case position <= a.keys[0].Position:
		return a.keys[0].Value
	case position >= a.keys[n-1].Position:
		return a.keys[n-1].Value
	}
	i, found := a.search(position)
	if found {
		return a.keys[i].Value
	}
	left, right := a.keys[i-1], a.keys[i]
	if left.Type == Discrete {
		return left.Value
	}
	t := float64(position-left.Position) / float64(right.Position-left.Position)

	if left.Type == Smooth {
		p0 := left.Value
		if i-2 >= 0 {
			p0 = a.keys[i-2].Value
		}
		p3 := right.Value
		if i+1 < n {
			p3 = a.keys[i+1].Value
		}
		if v, ok := blend(p0, left.Value, right.Value, p3, t, catmullRom); ok {
			return v
		}
		return left.Value
	}
	if v, ok := blend(left.Value, left.Value, right.Value, right.Value, t, lerp); ok {
		return v
	}
	return left.Value
}

type curve func(p0, p1, p2, p3, t float64) float64

func lerp(_, p1, p2, _, t float64) float64 {
	return p1 + (p2-p1)*t
}

// catmullRom is the uniform Catmull-Rom spline through p1..p2.
func catmullRom(p0, p1, p2, p3, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return 0.5 * ((2 * p1) +
		(-p0+p2)*t +
		(2*p0-5*p1+4*p2-p3)*t2 +
		(-p0+3*p1-3*p2+p3)*t3)
}

// blend interpolates between b and c using neighbours a and d. It fails
// when b and c do not share an interpolatable kind; neighbours that cannot
// be parsed fall back to b and c.
func blend(a, b, c, d string, t float64, f curve) (string, bool) {
	kind := kindOf(b)
	if kind == kindOpaque || kindOf(c) != kind {
		return "", false
	}
	vb, ub, ok1 := vector(b, kind)
	vc, uc, ok2 := vector(c, kind)
	if !ok1 || !ok2 || len(vb) != len(vc) || ub != uc {
		return "", false
	}
	va, ua, ok := vector(a, kind)
	if !ok || len(va) != len(vb) || ua != ub {
		va = vb
	}
	vd, ud, ok := vector(d, kind)
	if !ok || len(vd) != len(vc) || ud != uc {
		vd = vc
	}
	out := make([]float64, len(vb))
	for i := range out {
		out[i] = f(va[i], vb[i], vc[i], vd[i], t)
	}
	switch kind {
	case kindNumber:
		return codec.FormatNumber(out[0]), true
	case kindColor:
		return codec.ColorFromFloats(out).String(), true
	case kindRect:
		return codec.FormatRect(codec.RectFromFloats(out), ub), true
	}
	return "", false
}

func kindOf(s string) valueKind {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") || strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		if _, ok := codec.ParseColor(s); ok {
			return kindColor
		}
		return kindOpaque
	}
	if !strings.HasSuffix(s, "%") {
		if _, ok := codec.ParseNumber(s); ok {
			return kindNumber
		}
	}
	if _, _, ok := codec.ParseRect(s); ok {
		return kindRect
	}
	return kindOpaque
}

func vector(s string, kind valueKind) ([]float64, codec.Units, bool) {
	switch kind {
	case kindNumber:
		if strings.HasSuffix(strings.TrimSpace(s), "%") {
			return nil, codec.Units{}, false
		}
		v, ok := codec.ParseNumber(s)
		return []float64{v}, codec.Units{}, ok
	case kindColor:
		c, ok := codec.ParseColor(s)
		return c.Floats(), codec.Units{}, ok
	case kindRect:
		r, units, ok := codec.ParseRect(s)
		return r.Floats(), units, ok
	}
	return nil, codec.Units{}, false
}
