package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/smazurov/filterbind/internal/animation"
	"github.com/smazurov/filterbind/internal/filter"
	"github.com/spf13/cobra"
)

func newScriptCmd(opts *Options) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "script [file]",
		Short: "Run a sequence of edits with undo history",
		Long: `Reads one edit per line from file, or stdin when file is "-" or omitted.

  set NAME VALUE [POSITION [TYPE]]   get NAME [POSITION]
  add NAME POSITION [TYPE]           remove NAME POSITION
  type NAME INDEX TYPE               reset NAME
  begin DESCRIPTION                  end | abandon
  undo | redo | history              preset NAME
  analysis NAME=VALUE...             animate-in N | animate-out N
  inout IN OUT                       hash

Values containing spaces are double-quoted. Lines starting with # are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer file.Close()
				in = file
			}

			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			r := &scriptRunner{s: s, out: cmd.OutOrStdout()}
			if err := r.run(in); err != nil {
				return err
			}
			if save {
				s.filter.AbandonUndoCommand()
				return s.save()
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Save the project after the script")
	return cmd
}

type scriptRunner struct {
	s   *session
	out io.Writer
}

func (r *scriptRunner) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		words, err := splitWords(text)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := r.exec(words); err != nil {
			return fmt.Errorf("line %d: %s: %w", line, words[0], err)
		}
	}
	return scanner.Err()
}

var errUsage = errors.New("wrong number of arguments")

func (r *scriptRunner) exec(w []string) error {
	f := r.s.filter
	args := w[1:]
	switch w[0] {
	case "set":
		if len(args) < 2 || len(args) > 4 {
			return errUsage
		}
		setOpts, err := positionOptions(args[2:])
		if err != nil {
			return err
		}
		f.Set(args[0], args[1], setOpts...)
	case "get":
		if len(args) < 1 || len(args) > 2 {
			return errUsage
		}
		position := filter.NoPosition
		if len(args) == 2 {
			p, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			position = p
		}
		fmt.Fprintf(r.out, "%s = %s\n", args[0], f.Get(args[0], position))
	case "add":
		if len(args) < 2 || len(args) > 3 {
			return errUsage
		}
		position, err := parsePosition(args[1])
		if err != nil {
			return err
		}
		typ := animation.Unspecified
		if len(args) == 3 {
			if typ, err = animation.ParseKeyframeType(args[2]); err != nil {
				return err
			}
		}
		f.AddKeyframe(args[0], position, typ)
	case "remove":
		if len(args) != 2 {
			return errUsage
		}
		position, err := parsePosition(args[1])
		if err != nil {
			return err
		}
		f.RemoveKeyframe(args[0], position)
	case "type":
		if len(args) != 3 {
			return errUsage
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid keyframe index %q", args[1])
		}
		typ, err := animation.ParseKeyframeType(args[2])
		if err != nil {
			return err
		}
		f.SetKeyframeType(args[0], index, typ)
	case "reset":
		if len(args) != 1 {
			return errUsage
		}
		f.ResetProperty(args[0])
	case "begin":
		f.StartUndoParameterCommand(strings.Join(args, " "))
	case "end":
		f.EndUndoCommand()
	case "abandon":
		f.AbandonUndoCommand()
	case "undo":
		if !r.s.history.Undo() {
			fmt.Fprintln(r.out, "nothing to undo")
		}
	case "redo":
		if !r.s.history.Redo() {
			fmt.Fprintln(r.out, "nothing to redo")
		}
	case "history":
		h := r.s.history
		for i := 0; i < h.Len(); i++ {
			mark := " "
			if i == h.Index()-1 {
				mark = "*"
			}
			c := h.Command(i)
			fmt.Fprintf(r.out, "%s %d %s %v\n", mark, i, c.Text(), c.Names)
		}
	case "preset":
		if len(args) != 1 {
			return errUsage
		}
		if !f.ApplyPreset(args[0]) {
			return fmt.Errorf("preset %q not found", args[0])
		}
	case "analysis":
		results := make(map[string]string, len(args))
		for _, a := range args {
			name, value, ok := strings.Cut(a, "=")
			if !ok {
				return fmt.Errorf("expected NAME=VALUE, got %q", a)
			}
			results[name] = value
		}
		f.ApplyAnalysisResults(results, true)
	case "animate-in", "animate-out":
		if len(args) != 1 {
			return errUsage
		}
		frames, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid frame count %q", args[0])
		}
		if w[0] == "animate-in" {
			f.SetAnimateIn(frames)
		} else {
			f.SetAnimateOut(frames)
		}
	case "inout":
		if len(args) != 2 {
			return errUsage
		}
		in, err := parsePosition(args[0])
		if err != nil {
			return err
		}
		out, err := parsePosition(args[1])
		if err != nil {
			return err
		}
		f.SetInOut(in, out)
	case "hash":
		fmt.Fprintln(r.out, f.GetHash())
	default:
		return errors.New("unknown command")
	}
	return nil
}

// positionOptions turns the optional "POSITION [TYPE]" tail of set into
// filter options.
func positionOptions(args []string) ([]filter.SetOption, error) {
	if len(args) == 0 {
		return nil, nil
	}
	position, err := parsePosition(args[0])
	if err != nil {
		return nil, err
	}
	opts := []filter.SetOption{filter.At(position)}
	if len(args) == 2 {
		typ, err := animation.ParseKeyframeType(args[1])
		if err != nil {
			return nil, err
		}
		opts = append(opts, filter.WithType(typ))
	}
	return opts, nil
}

// splitWords splits on whitespace, keeping double-quoted runs together.
func splitWords(line string) ([]string, error) {
	var words []string
	var b strings.Builder
	inQuote, inWord := false, false
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			inWord = true
		case !inQuote && (r == ' ' || r == '\t'):
			if inWord {
				words = append(words, b.String())
				b.Reset()
				inWord = false
			}
		default:
			b.WriteRune(r)
			inWord = true
		}
	}
	if inQuote {
		return nil, errors.New("unterminated quote")
	}
	if inWord {
		words = append(words, b.String())
	}
	return words, nil
}
