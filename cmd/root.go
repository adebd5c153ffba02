// Package cmd holds the filterbind command line: one cobra command per
// engine operation, all working on a TOML project file.
package cmd

import (
	"time"

	"github.com/smazurov/filterbind/internal/config"
	"github.com/smazurov/filterbind/internal/logging"
	"github.com/spf13/cobra"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string

	Project     string `toml:"project.file" env:"PROJECT_FILE"`
	PresetsFile string `toml:"presets.file" env:"PRESETS_FILE"`

	// Engine settings
	KeyframesDefaultType string        `toml:"keyframes.default_type" env:"KEYFRAMES_DEFAULT_TYPE"`
	UndoCoalesceWindow   time.Duration `toml:"undo.coalesce_window_ms" env:"UNDO_COALESCE_WINDOW"`
	UndoRecordAnalysis   bool          `toml:"undo.record_analysis" env:"UNDO_RECORD_ANALYSIS"`
	UndoLimit            int           `toml:"undo.limit" env:"UNDO_LIMIT"`

	MetricsAddr string `toml:"metrics.addr" env:"METRICS_ADDR"`

	// Logging settings
	LoggingLevel   string `toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat  string `toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingFilter  string `toml:"logging.filter" env:"LOGGING_FILTER"`
	LoggingPresets string `toml:"logging.presets" env:"LOGGING_PRESETS"`
	LoggingCLI     string `toml:"logging.cli" env:"LOGGING_CLI"`
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &Options{}

	root := &cobra.Command{
		Use:   "filterbind",
		Short: "Inspect and edit animated filter parameters",
		Long: `filterbind loads a filter instance from a TOML project file and exposes its ` +
			`parameters, keyframes, presets and undo history on the command line.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadConfig(opts, cmd); err != nil {
				return err
			}
			logging.Initialize(logging.Config{
				Level:  opts.LoggingLevel,
				Format: opts.LoggingFormat,
				Stderr: true,
				Modules: map[string]string{
					"filter":  opts.LoggingFilter,
					"presets": opts.LoggingPresets,
					"cli":     opts.LoggingCLI,
				},
			})
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.Config, "config", "c", "filterbind.toml", "Path to configuration file")
	flags.StringVarP(&opts.Project, "project", "p", "project.toml", "Filter project file")
	flags.StringVar(&opts.PresetsFile, "presets-file", "presets.toml", "Preset storage file")
	flags.StringVar(&opts.KeyframesDefaultType, "keyframes-default-type", "discrete", "Type of a first keyframe (discrete, linear, smooth)")
	flags.DurationVar(&opts.UndoCoalesceWindow, "undo-coalesce-window", time.Second, "Merge window for repeated edits")
	flags.BoolVar(&opts.UndoRecordAnalysis, "undo-record-analysis", false, "Record analysis results in undo history")
	flags.IntVar(&opts.UndoLimit, "undo-limit", 0, "Maximum undo history length (0 = unlimited)")
	flags.StringVar(&opts.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while watching")
	flags.StringVar(&opts.LoggingLevel, "logging-level", "info", "Global logging level (debug, info, warn, error)")
	flags.StringVar(&opts.LoggingFormat, "logging-format", "text", "Logging format (text, json)")
	flags.StringVar(&opts.LoggingFilter, "logging-filter", "info", "Filter engine logging level")
	flags.StringVar(&opts.LoggingPresets, "logging-presets", "info", "Preset storage logging level")
	flags.StringVar(&opts.LoggingCLI, "logging-cli", "info", "Command logging level")

	root.AddCommand(
		newGetCmd(opts),
		newSetCmd(opts),
		newKeyframesCmd(opts),
		newPresetsCmd(opts),
		newHashCmd(opts),
		newFramesCmd(opts),
		newScriptCmd(opts),
		newWatchCmd(opts),
		newVersionCmd(),
	)
	return root
}
