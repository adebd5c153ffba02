package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadEngineDefaults(t *testing.T) {
	e, err := LoadEngine(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadEngine should not fail for missing file: %v", err)
	}
	if e.Keyframes.DefaultType != "discrete" {
		t.Errorf("Expected default type 'discrete', got '%s'", e.Keyframes.DefaultType)
	}
	if e.CoalesceWindow() != time.Second {
		t.Errorf("Expected coalesce window 1s, got %v", e.CoalesceWindow())
	}
	if e.Undo.RecordAnalysis {
		t.Error("Expected analysis undo recording to be off by default")
	}
}

func TestLoadEngineFromTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")
	content := `
[keyframes]
default_type = "smooth"

[undo]
coalesce_window_ms = 250
record_analysis = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	e, err := LoadEngine(path)
	if err != nil {
		t.Fatalf("LoadEngine failed: %v", err)
	}
	if e.Keyframes.DefaultType != "smooth" {
		t.Errorf("Expected default type 'smooth', got '%s'", e.Keyframes.DefaultType)
	}
	if e.CoalesceWindow() != 250*time.Millisecond {
		t.Errorf("Expected coalesce window 250ms, got %v", e.CoalesceWindow())
	}
	if !e.Undo.RecordAnalysis {
		t.Error("Expected record_analysis to be true")
	}
}

func TestLoadEngineInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")
	if err := os.WriteFile(path, []byte("[undo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	e, err := LoadEngine(path)
	if err == nil {
		t.Fatal("Expected error for invalid TOML")
	}
	if e.Keyframes.DefaultType != "discrete" {
		t.Errorf("Expected defaults on error, got %+v", e)
	}
}

func TestLoadConfigDurationAndFloat(t *testing.T) {
	type options struct {
		Config  string
		Window  time.Duration `toml:"undo.window" env:"UNDO_WINDOW"`
		FPS     float64       `toml:"project.fps" env:"PROJECT_FPS"`
		Timeout time.Duration `toml:"undo.timeout"`
	}

	path := filepath.Join(t.TempDir(), "opts.toml")
	content := `
[undo]
window = "750ms"
timeout = 200

[project]
fps = 29.97
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := &options{Config: path}
	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if opts.Window != 750*time.Millisecond {
		t.Errorf("Expected Window 750ms, got %v", opts.Window)
	}
	if opts.Timeout != 200*time.Millisecond {
		t.Errorf("Expected Timeout 200ms, got %v", opts.Timeout)
	}
	if opts.FPS != 29.97 {
		t.Errorf("Expected FPS 29.97, got %v", opts.FPS)
	}

	t.Setenv("FILTERBIND_UNDO_WINDOW", "2s")
	t.Setenv("FILTERBIND_PROJECT_FPS", "50")
	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if opts.Window != 2*time.Second {
		t.Errorf("Expected env Window 2s, got %v", opts.Window)
	}
	if opts.FPS != 50 {
		t.Errorf("Expected env FPS 50, got %v", opts.FPS)
	}
}

func TestFieldNameToFlag(t *testing.T) {
	tests := map[string]string{
		"Port":               "port",
		"LoggingLevel":       "logging-level",
		"LoggingCLI":         "logging-cli",
		"MetricsHTTPAddr":    "metrics-http-addr",
		"UndoCoalesceWindow": "undo-coalesce-window",
	}
	for in, want := range tests {
		if got := fieldNameToFlag(in); got != want {
			t.Errorf("fieldNameToFlag(%q) = %q, want %q", in, got, want)
		}
	}
}
