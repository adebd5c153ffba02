package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Engine holds the tunables of the parameter engine, read from the
// [keyframes] and [undo] tables of the config file.
type Engine struct {
	Keyframes struct {
		// DefaultType is the interpolation of a first keyframe inserted
		// without an explicit type: "discrete", "linear" or "smooth".
		DefaultType string `toml:"default_type"`
	} `toml:"keyframes"`
	Undo struct {
		CoalesceWindowMs int  `toml:"coalesce_window_ms"`
		RecordAnalysis   bool `toml:"record_analysis"`
		Limit            int  `toml:"limit"`
	} `toml:"undo"`
}

// DefaultEngine returns the built-in engine settings.
func DefaultEngine() Engine {
	var e Engine
	e.Keyframes.DefaultType = "discrete"
	e.Undo.CoalesceWindowMs = 1000
	return e
}

// CoalesceWindow returns the undo merge window.
func (e Engine) CoalesceWindow() time.Duration {
	if e.Undo.CoalesceWindowMs < 0 {
		return 0
	}
	return time.Duration(e.Undo.CoalesceWindowMs) * time.Millisecond
}

// LoadEngine reads engine settings from path over DefaultEngine. It has the
// loader signature expected by NewConfigWatcher.
func LoadEngine(path string) (Engine, error) {
	e := DefaultEngine()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return e, nil
	}
	if err != nil {
		return e, fmt.Errorf("failed to read engine config: %w", err)
	}
	if err := toml.Unmarshal(data, &e); err != nil {
		return DefaultEngine(), fmt.Errorf("failed to parse engine config: %w", err)
	}
	return e, nil
}
