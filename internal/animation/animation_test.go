package animation

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/smazurov/filterbind/internal/props"
)

func TestParseAndString(t *testing.T) {
	tests := []struct {
		raw  string
		ok   bool
		want string
	}{
		{"0|=100;25=50;50~=0", true, "0|=100;25=50;50~=0"},
		{"50=1;0=0", true, "0=0;50=1"},
		{"0=1;0|=2", true, "0|=2"},
		{"0=50% 50% 10% 10% 1", true, "0=50% 50% 10% 10% 1"},
		{"0=a;", true, "0=a"},
		{"100", false, ""},
		{"", false, ""},
		{"x=1", false, ""},
		{"-5=1", false, ""},
		{"0=1;junk", false, ""},
	}

	for _, tt := range tests {
		a, ok := Parse(tt.raw)
		if ok != tt.ok {
			t.Errorf("Parse(%q) ok = %v, expected %v", tt.raw, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if a.Format() != tt.want {
			t.Errorf("Parse(%q).Format() = %q, expected %q", tt.raw, a.Format(), tt.want)
		}
		if a.String() != tt.raw {
			t.Errorf("Parse(%q).String() = %q, expected the source text", tt.raw, a.String())
		}
	}
}

func TestParseClockPositions(t *testing.T) {
	raw := "00:00:00.000=100;00:00:02.000|=50;00:00:03:05~=0"
	if _, ok := Parse(raw); ok {
		t.Error("Clock positions need a frame rate")
	}

	a, err := Decode(raw, 25)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := []Keyframe{
		{Position: 0, Value: "100", Type: Linear},
		{Position: 50, Value: "50", Type: Discrete},
		{Position: 80, Value: "0", Type: Smooth},
	}
	if got := a.Keyframes(); !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if a.String() != raw {
		t.Errorf("Expected unedited animation to keep its text, got %q", a.String())
	}
	if v := a.Value(25); v != "75" {
		t.Errorf("Expected 75 halfway through the linear segment, got %q", v)
	}

	a.Insert(50, "50", Unspecified, Discrete)
	if a.String() != raw {
		t.Errorf("Rewriting an identical keyframe must keep the text, got %q", a.String())
	}
	a.Insert(10, "90", Unspecified, Discrete)
	if got := a.String(); got != "0=100;10=90;50|=50;80~=0" {
		t.Errorf("Expected frame positions after an edit, got %q", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		raw      string
		notAnim  bool
		contains string
	}{
		{"100", true, ""},
		{";", true, ""},
		{"0=1;10^=2", false, "marker"},
		{"0=1;abc=2", false, "marker"},
		{"0=1;00:00:01.000=2", false, "position"},
	}
	for _, tt := range tests {
		_, err := Decode(tt.raw, 0)
		if err == nil {
			t.Errorf("Decode(%q) expected an error", tt.raw)
			continue
		}
		if errors.Is(err, ErrNotAnimation) != tt.notAnim {
			t.Errorf("Decode(%q) = %v, ErrNotAnimation expected %v", tt.raw, err, tt.notAnim)
		}
		if tt.contains != "" && !strings.Contains(err.Error(), tt.contains) {
			t.Errorf("Decode(%q) error %q should mention %q", tt.raw, err, tt.contains)
		}
	}
}

func TestEqualIgnoresSpelling(t *testing.T) {
	a, _ := Parse("0=100;50=0;")
	b, _ := Parse("50=0;0=100")
	if !a.Equal(b) {
		t.Error("Expected equal keyframes to compare equal")
	}
	b.SetType(0, Smooth)
	if a.Equal(b) {
		t.Error("Expected a type change to break equality")
	}
	if a.Equal(nil) {
		t.Error("Animation must not equal nil")
	}
}

func TestNavigation(t *testing.T) {
	a, _ := Parse("10=a;20=b;30=c")

	tests := []struct {
		position   int
		next, prev int
	}{
		{0, 10, -1},
		{10, 20, -1},
		{15, 20, 10},
		{20, 30, 10},
		{30, -1, 20},
		{99, -1, 30},
	}
	for _, tt := range tests {
		if got := a.Next(tt.position); got != tt.next {
			t.Errorf("Next(%d) = %d, expected %d", tt.position, got, tt.next)
		}
		if got := a.Prev(tt.position); got != tt.prev {
			t.Errorf("Prev(%d) = %d, expected %d", tt.position, got, tt.prev)
		}
	}
}

func TestInsertTypeInheritance(t *testing.T) {
	a := &Animation{}
	a.Insert(10, "1", Unspecified, Discrete)
	a.Insert(20, "2", Smooth, Discrete)
	a.Insert(30, "3", Unspecified, Discrete)
	a.Insert(5, "0", Unspecified, Linear)
	a.Insert(20, "9", Unspecified, Discrete)

	if got := a.String(); got != "5=0;10|=1;20~=9;30~=3" {
		t.Errorf("Unexpected animation %q", got)
	}
	if a.Len() != 4 {
		t.Errorf("Expected 4 keyframes, got %d", a.Len())
	}

	a.Insert(-1, "x", Linear, Linear)
	if a.Len() != 4 {
		t.Error("Negative position must be ignored")
	}
}

func TestTypeByIndex(t *testing.T) {
	a, _ := Parse("0|=0;10=1")
	if typ, ok := a.Type(1); !ok || typ != Linear {
		t.Errorf("Expected linear, got %v %v", typ, ok)
	}
	if _, ok := a.Type(2); ok {
		t.Error("Expected out-of-range index to fail")
	}
	if a.SetType(5, Smooth) || a.SetType(0, Unspecified) {
		t.Error("SetType must reject bad index or type")
	}
	if a.String() != "0|=0;10=1" {
		t.Errorf("Rejected SetType mutated animation: %q", a.String())
	}
}

func TestValueInterpolation(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		position int
		want     string
	}{
		{"discrete", "0|=0;10|=100", 5, "0"},
		{"linear number", "0=0;10=100", 5, "50"},
		{"exact key", "0=0;10=100", 10, "100"},
		{"clamp before", "10=1;20=2", 0, "1"},
		{"clamp after", "10=1;20=2", 50, "2"},
		{"linear color", "0=#ff000000;10=#ff0000ff", 5, "#ff000080"},
		{"linear rect", "0=0 0 100 100 1;10=100 100 200 200 0", 5, "50 50 150 150 0.5"},
		{"linear percent rect", "0=0% 0% 100% 100% 1;10=50% 50% 50% 50% 1", 5, "25% 25% 75% 75% 1"},
		{"mixed rect units are discrete", "0=0 0 100 100;10=50% 0 100 100", 5, "0 0 100 100"},
		{"opaque string", "0=hello;10=world", 5, "hello"},
		{"smooth with neighbours", "0~=0;10~=0;20~=100;30~=100", 15, "50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ok := Parse(tt.raw)
			if !ok {
				t.Fatalf("Parse(%q) failed", tt.raw)
			}
			if got := a.Value(tt.position); got != tt.want {
				t.Errorf("Value(%d) = %q, expected %q", tt.position, got, tt.want)
			}
		})
	}
}

func TestSmoothOvershootsLinearNearNeighbours(t *testing.T) {
	a, _ := Parse("0~=0;10~=100;20~=100")
	smooth := a.Value(15)
	if smooth == "100" {
		t.Errorf("Expected Catmull-Rom to differ from hold, got %s", smooth)
	}
}

func TestParseKeyframeType(t *testing.T) {
	for _, name := range []string{"discrete", "Linear", "SMOOTH", "hold", ""} {
		if _, err := ParseKeyframeType(name); err != nil {
			t.Errorf("ParseKeyframeType(%q) failed: %v", name, err)
		}
	}
	if _, err := ParseKeyframeType("bezier"); err == nil {
		t.Error("Expected error for unknown type")
	}
}

func TestStoreInvalidatesOnRawChange(t *testing.T) {
	p := props.FromMap(map[string]string{"level": "0=0;10=1"})
	s := NewStore(p, Unspecified)

	if s.DefaultType() != Discrete {
		t.Errorf("Expected invalid default to fall back to discrete, got %v", s.DefaultType())
	}
	if s.KeyframeCount("level") != 2 {
		t.Fatalf("Expected 2 keyframes, got %d", s.KeyframeCount("level"))
	}

	p.Set("level", "0=0;5=1;10=2")
	if s.KeyframeCount("level") != 3 {
		t.Errorf("Expected cache refresh to see 3 keyframes, got %d", s.KeyframeCount("level"))
	}

	p.Set("level", "7")
	if s.IsAnimated("level") {
		t.Error("Scalar must not be animated")
	}
	if s.Value("level", 100) != "7" {
		t.Errorf("Expected scalar value, got %q", s.Value("level", 100))
	}
}

func TestStoreEditing(t *testing.T) {
	p := props.FromMap(map[string]string{"level": "3"})
	s := NewStore(p, Linear)

	s.Insert("level", 10, "1", Unspecified)
	if p.Get("level") != "10=1" {
		t.Errorf("Expected scalar to become '10=1', got %q", p.Get("level"))
	}
	s.Insert("level", 20, "2", Unspecified)
	if typ := s.EffectiveType("level", 30, Unspecified); typ != Linear {
		t.Errorf("Expected inherited linear, got %v", typ)
	}
	if !s.SetKeyframeType("level", 0, Smooth) {
		t.Error("Expected type change")
	}
	if s.SetKeyframeType("level", 0, Smooth) {
		t.Error("Unchanged type must report false")
	}
	if !s.Remove("level", 10) || s.Remove("level", 10) {
		t.Error("Remove should succeed once")
	}
	if !s.Remove("level", 20) {
		t.Error("Remove of last keyframe failed")
	}
	if p.Get("level") != "2" {
		t.Errorf("Expected collapse to '2', got %q", p.Get("level"))
	}

	p.Set("level", "0=0;10=10")
	if !s.Collapse("level", 5) || p.Get("level") != "5" {
		t.Errorf("Expected collapse at 5 to '5', got %q", p.Get("level"))
	}
	if s.Collapse("level", 5) {
		t.Error("Collapse of scalar must report false")
	}
}

func TestStoreLogsUnreadableKeyframes(t *testing.T) {
	var buf bytes.Buffer
	p := props.FromMap(map[string]string{"level": "0=1;10^=2", "plain": "7"})
	s := NewStore(p, Linear)
	s.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	if s.IsAnimated("plain") {
		t.Error("Scalar must not be animated")
	}
	if buf.Len() != 0 {
		t.Errorf("Plain scalars must not be logged, got %q", buf.String())
	}

	if s.IsAnimated("level") {
		t.Error("Unknown marker must fall back to a scalar")
	}
	if s.Value("level", 5) != "0=1;10^=2" {
		t.Errorf("Expected raw value, got %q", s.Value("level", 5))
	}
	if !strings.Contains(buf.String(), "unknown keyframe type marker") || !strings.Contains(buf.String(), "name=level") {
		t.Errorf("Expected debug log naming the parameter, got %q", buf.String())
	}
}

func TestStoreFrameRate(t *testing.T) {
	p := props.FromMap(map[string]string{"level": "00:00:00.000=0;00:00:01.000=10"})
	s := NewStore(p, Linear)
	if s.IsAnimated("level") {
		t.Error("Clock positions need a frame rate")
	}
	s.SetFrameRate(30)
	if s.NextKeyframePosition("level", 0) != 30 {
		t.Errorf("Expected keyframe at 30, got %d", s.NextKeyframePosition("level", 0))
	}
}
