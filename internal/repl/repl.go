// Package repl implements an interactive calculator shell.
//
// Each input line is an expression to evaluate, unless it starts with ':' (a
// command such as ":functions") or '?' (help). Errors are printed and the
// shell continues with the next line.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/config"
)

// Shell evaluates lines of input against a frame of names.
type Shell struct {
	cfg   config.Config
	frame calc.Frame
	opts  []calc.ParseOption
	log   zerolog.Logger
}

type command struct {
	help string
	run  func(s *Shell, arg string, w io.Writer) (quit bool)
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"eval": {"Evaluate an expression.", func(s *Shell, arg string, w io.Writer) bool {
			s.eval(arg, w)
			return false
		}},
		"functions": {"Print the list of available functions and constants.", func(s *Shell, arg string, w io.Writer) bool {
			columnize(w, s.frame.Names(), 80)
			return false
		}},
		"help": {"List commands, or describe one with :help name.", (*Shell).help},
		"quit": {"Leave the shell.", func(*Shell, string, io.Writer) bool { return true }},
		"exit": {"Leave the shell.", func(*Shell, string, io.Writer) bool { return true }},
	}
}

// New creates a shell that evaluates against a copy of frame. Constants from
// cfg are not added; use cfg.Frame to build frame with them.
func New(cfg config.Config, frame calc.Frame, log zerolog.Logger) *Shell {
	frame = frame.Clone()
	opts := []calc.ParseOption{calc.WithEnv(frame), calc.Trace(log)}
	if cfg.Minimal {
		opts = append(opts, calc.Minimal())
	}
	return &Shell{
		cfg:   cfg,
		frame: frame,
		opts:  opts,
		log:   log,
	}
}

// Eval evaluates an expression with the shell's names and options.
func (s *Shell) Eval(expr string) (float64, error) {
	return calc.Parse(expr, s.opts...)
}

// Format formats a result according to the configured format.
func (s *Shell) Format(x float64) string {
	switch {
	case s.cfg.Format == "human" && !math.IsInf(x, 0) && !math.IsNaN(x):
		return humanize.Commaf(x)
	case s.cfg.Format == "human", s.cfg.Format == "":
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprintf(s.cfg.Format, x)
	}
}

// Run reads lines from in until EOF, a quit command, or cancellation of ctx.
// Results, errors, and prompts are written to out. Cancellation interrupts a
// pending read, but the read itself continues in the background until in
// returns.
func (s *Shell) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if s.cfg.Intro != "" {
		fmt.Fprintln(out, s.cfg.Intro)
	}
	stop := make(chan struct{})
	defer close(stop)
	lines, errc := scanLines(in, stop)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		io.WriteString(out, s.cfg.Prompt)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := <-errc; err != nil {
					return fmt.Errorf("reading input: %w", err)
				}
				// Finish the prompt line at EOF.
				fmt.Fprintln(out)
				return nil
			}
			if s.Exec(line, out) {
				return nil
			}
		}
	}
}

// scanLines sends each line of in on the returned channel until EOF, an error,
// or stop is closed. The read error, possibly nil, is sent on the error
// channel before the line channel is closed.
func scanLines(in io.Reader, stop <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-stop:
				errc <- nil
				return
			}
		}
		errc <- sc.Err()
	}()
	return lines, errc
}

// Exec handles a single line of input. The result is true if the line asked
// the shell to stop.
func (s *Shell) Exec(line string, w io.Writer) bool {
	line = strings.TrimSpace(line)
	var name, arg string
	switch {
	case line == "":
		return false
	case line[0] == '?':
		name, arg = "help", strings.TrimSpace(line[1:])
	case line[0] == ':':
		name, arg = split(line[1:])
	default:
		name, arg = "eval", line
	}
	cmd, ok := commands[name]
	if !ok {
		s.log.Info().Str("command", name).Msg("unknown command")
		fmt.Fprintf(w, "unknown command: %s\n", name)
		return false
	}
	s.log.Debug().Str("command", name).Str("arg", arg).Msg("exec")
	return cmd.run(s, arg, w)
}

func (s *Shell) eval(expr string, w io.Writer) {
	x, err := s.Eval(expr)
	if err != nil {
		s.log.Info().Err(err).Str("expr", expr).Msg("evaluation failed")
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	fmt.Fprintln(w, s.Format(x))
}

func (s *Shell) help(arg string, w io.Writer) bool {
	if arg != "" {
		cmd, ok := commands[arg]
		if !ok {
			fmt.Fprintf(w, "no help for %s\n", arg)
			return false
		}
		fmt.Fprintln(w, cmd.help)
		return false
	}
	names := make([]string, 0, len(commands))
	for k := range commands {
		names = append(names, ":"+k)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "Enter an expression to evaluate it, or one of these commands:")
	columnize(w, names, 80)
	return false
}

// split separates a command name from its argument.
func split(s string) (name, arg string) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, func(r rune) bool { return r == ' ' || r == '\t' })
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}

// columnize writes words in as many columns as fit in width, filling each
// column top to bottom.
func columnize(w io.Writer, words []string, width int) {
	if len(words) == 0 {
		fmt.Fprintln(w, "<empty>")
		return
	}
	longest := 0
	for _, s := range words {
		if len(s) > longest {
			longest = len(s)
		}
	}
	cols := (width + 2) / (longest + 2)
	if cols < 1 {
		cols = 1
	}
	rows := (len(words) + cols - 1) / cols
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for r := 0; r < rows; r++ {
		var line []string
		for c := 0; c < cols; c++ {
			if i := c*rows + r; i < len(words) {
				line = append(line, words[i])
			}
		}
		fmt.Fprintln(tw, strings.Join(line, "\t"))
	}
	tw.Flush()
}
