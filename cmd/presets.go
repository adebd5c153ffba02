package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPresetsCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage named parameter presets for the project's filter service",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List presets",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				s, err := openSession(opts)
				if err != nil {
					return err
				}
				defer s.close()
				for _, name := range s.filter.Presets() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			},
		},
		newPresetsSaveCmd(opts),
		&cobra.Command{
			Use:   "apply name",
			Short: "Apply a preset and save the project",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := openSession(opts)
				if err != nil {
					return err
				}
				defer s.close()
				if !s.filter.ApplyPreset(args[0]) {
					return fmt.Errorf("preset %q not found for %s", args[0], s.filter.Service())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", args[0])
				return s.save()
			},
		},
		&cobra.Command{
			Use:   "delete name",
			Short: "Delete a preset",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := openSession(opts)
				if err != nil {
					return err
				}
				defer s.close()
				before := len(s.filter.Presets())
				s.filter.DeletePreset(args[0])
				if len(s.filter.Presets()) == before {
					return fmt.Errorf("preset %q not deleted", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			},
		},
	)
	return cmd
}

func newPresetsSaveCmd(opts *Options) *cobra.Command {
	var params []string

	cmd := &cobra.Command{
		Use:   "save name",
		Short: "Save the current parameter values as a preset",
		Long:  `Saves every user parameter, or only those named with --param. An empty name saves the service defaults.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()
			index := s.filter.SavePreset(params, args[0])
			if index < 0 && args[0] != "" {
				return fmt.Errorf("failed to save preset %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %q\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&params, "param", nil, "Parameter to include (repeatable)")
	return cmd
}
