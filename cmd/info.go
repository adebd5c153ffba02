package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHashCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "hash",
		Short: "Print the content hash of the filter parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()
			fmt.Fprintln(cmd.OutOrStdout(), s.filter.GetHash())
			return nil
		},
	}
}

func newFramesCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "frames time",
		Short: "Convert a clock time (HH:MM:SS.mmm) to frames at the project frame rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()
			fmt.Fprintln(cmd.OutOrStdout(), s.filter.FramesFromTime(args[0]))
			return nil
		},
	}
}
