package cmd

import (
	"fmt"

	"github.com/smazurov/filterbind/internal/animation"
	"github.com/smazurov/filterbind/internal/filter"
	"github.com/spf13/cobra"
)

func newSetCmd(opts *Options) *cobra.Command {
	var at int
	var typeName string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "set name value",
		Short: "Write a parameter value",
		Long: `Writes a parameter and saves the project. With --at the value becomes a keyframe ` +
			`when the parameter is already keyframed or --type is given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := animation.ParseKeyframeType(typeName)
			if err != nil {
				return err
			}

			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			name, value := args[0], args[1]
			before := s.store.Get(name)
			s.filter.Set(name, value, filter.At(at), filter.WithType(typ))
			after := s.store.Get(name)

			out := cmd.OutOrStdout()
			if before == after && s.store.Exists(name) {
				fmt.Fprintf(out, "%s unchanged\n", name)
				return nil
			}
			fmt.Fprintf(out, "%s = %s\n", name, after)
			if dryRun {
				return nil
			}
			return s.save()
		},
	}

	cmd.Flags().IntVar(&at, "at", filter.NoPosition, "Frame to write a keyframe at")
	cmd.Flags().StringVar(&typeName, "type", "", "Keyframe type (discrete, linear, smooth)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the result without saving the project")
	return cmd
}
