package cmd

import (
	"fmt"
	"strconv"

	"github.com/smazurov/filterbind/internal/animation"
	"github.com/spf13/cobra"
)

func newKeyframesCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keyframes",
		Short: "List and edit parameter keyframes",
	}
	cmd.AddCommand(
		newKeyframesListCmd(opts),
		newKeyframesAddCmd(opts),
		newKeyframesRemoveCmd(opts),
		newKeyframesTypeCmd(opts),
		newKeyframesClearCmd(opts),
	)
	return cmd
}

func newKeyframesListCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list name",
		Short: "Print the keyframes of a parameter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			out := cmd.OutOrStdout()
			name := args[0]
			if !s.filter.IsAnimated(name) {
				fmt.Fprintf(out, "%s is not keyframed\n", name)
				return nil
			}
			for i, k := range s.filter.Keyframes(name) {
				fmt.Fprintf(out, "%d\t%d\t%s\t%s\n", i, k.Position, k.Type, k.Value)
			}
			return nil
		},
	}
}

func newKeyframesAddCmd(opts *Options) *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "add name position",
		Short: "Add a keyframe holding the value currently evaluated there",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := animation.ParseKeyframeType(typeName)
			if err != nil {
				return err
			}
			position, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			return editKeyframes(cmd, opts, args[0], func(s *session) bool {
				return s.filter.AddKeyframe(args[0], position, typ)
			})
		},
	}
	cmd.Flags().StringVar(&typeName, "type", "", "Keyframe type (discrete, linear, smooth)")
	return cmd
}

func newKeyframesRemoveCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "remove name position",
		Short: "Remove the keyframe at a position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			return editKeyframes(cmd, opts, args[0], func(s *session) bool {
				return s.filter.RemoveKeyframe(args[0], position)
			})
		},
	}
}

func newKeyframesTypeCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "type name index type",
		Short: "Change the interpolation of the keyframe at an index",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid keyframe index %q", args[1])
			}
			typ, err := animation.ParseKeyframeType(args[2])
			if err != nil {
				return err
			}
			return editKeyframes(cmd, opts, args[0], func(s *session) bool {
				return s.filter.SetKeyframeType(args[0], index, typ)
			})
		},
	}
}

func newKeyframesClearCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear name",
		Short: "Replace the keyframes with the value at the playhead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editKeyframes(cmd, opts, args[0], func(s *session) bool {
				if !s.filter.IsAnimated(args[0]) {
					return false
				}
				s.filter.ClearSimpleAnimation(args[0])
				return true
			})
		},
	}
}

// editKeyframes runs edit on a fresh session and saves the project when
// it reports a change.
func editKeyframes(cmd *cobra.Command, opts *Options, name string, edit func(*session) bool) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	out := cmd.OutOrStdout()
	if !edit(s) {
		fmt.Fprintf(out, "%s unchanged\n", name)
		return nil
	}
	fmt.Fprintf(out, "%s = %s\n", name, s.store.Get(name))
	return s.save()
}

func parsePosition(s string) (int, error) {
	position, err := strconv.Atoi(s)
	if err != nil || position < 0 {
		return 0, fmt.Errorf("invalid position %q", s)
	}
	return position, nil
}
