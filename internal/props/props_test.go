package props

import (
	"slices"
	"testing"
)

func TestPropertiesOrderAndClear(t *testing.T) {
	p := New()
	p.Set("b", "1")
	p.Set("a", "2")
	p.Set("b", "3")

	if got := p.Names(); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("Expected insertion order [b a], got %v", got)
	}
	if p.Get("b") != "3" {
		t.Errorf("Expected b=3, got %q", p.Get("b"))
	}

	p.Clear("b")
	p.Clear("missing")
	if p.Exists("b") {
		t.Error("b should be cleared")
	}
	if got := p.Names(); !slices.Equal(got, []string{"a"}) {
		t.Errorf("Expected [a], got %v", got)
	}
	if p.Get("b") != "" {
		t.Error("Absent property should read empty")
	}
}

func TestParameterClassification(t *testing.T) {
	tests := []struct {
		name      string
		tracked   bool
		parameter bool
	}{
		{"level", true, true},
		{"shotcut:animIn", true, false},
		{"mlt_service", true, false},
		{"_hidden", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		if IsTracked(tt.name) != tt.tracked {
			t.Errorf("IsTracked(%q) = %v, expected %v", tt.name, !tt.tracked, tt.tracked)
		}
		if IsParameter(tt.name) != tt.parameter {
			t.Errorf("IsParameter(%q) = %v, expected %v", tt.name, !tt.parameter, tt.parameter)
		}
	}
}

func TestStaticProducerFrameRateDefault(t *testing.T) {
	p := &StaticProducer{InPoint: 5, OutPoint: 10}
	if p.FrameRate() != 25 {
		t.Errorf("Expected default 25 fps, got %v", p.FrameRate())
	}
	if p.In() != 5 || p.Out() != 10 {
		t.Errorf("Unexpected bounds %d-%d", p.In(), p.Out())
	}
}
