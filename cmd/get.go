package cmd

import (
	"fmt"
	"slices"

	"github.com/smazurov/filterbind/internal/filter"
	"github.com/smazurov/filterbind/internal/props"
	"github.com/spf13/cobra"
)

func newGetCmd(opts *Options) *cobra.Command {
	var at int
	var raw bool

	cmd := &cobra.Command{
		Use:   "get [name...]",
		Short: "Print parameter values",
		Long: `Prints parameters as name = value. Keyframed parameters are evaluated at ` +
			`--at, or at the project playhead when --at is omitted. Without names every parameter is printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			names := args
			if len(names) == 0 {
				names = s.parameterNames()
			}
			out := cmd.OutOrStdout()
			for _, name := range names {
				value := s.filter.Get(name, at)
				if raw {
					value = s.store.Get(name)
				}
				fmt.Fprintf(out, "%s = %s\n", name, value)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&at, "at", filter.NoPosition, "Frame to evaluate keyframed parameters at")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the stored string instead of the evaluated value")
	return cmd
}

// parameterNames returns declared parameters first, then any other user
// parameter present in the project.
func (s *session) parameterNames() []string {
	var names []string
	for _, p := range s.filter.Metadata().Params {
		names = append(names, p.Name)
	}
	var extra []string
	for _, name := range s.store.Names() {
		if props.IsParameter(name) && !slices.Contains(names, name) {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	return append(names, extra...)
}
