package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/config"
	"github.com/zephyrtronium/calc/internal/repl"
)

func main() {
	var (
		inname, cfgname, verb, level string
		with                         [][2]string
		minimal                      bool
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`definitions must be "name=expr", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file for the shell (default stdin)")
	flag.StringVar(&cfgname, "config", "", "TOML or YAML config file")
	flag.StringVar(&verb, "fmt", "", `result formatting verb, or "human" (default from config, else %g)`)
	flag.StringVar(&level, "log-level", "", "log level (debug, info, warn, error)")
	flag.Func("given", "name=expr constant definition (any number of times)", addwith)
	flag.BoolVar(&minimal, "minimal", false, "allow only numbers, parentheses, and + - * / ^")
	flag.Parse()

	cfg := config.Default()
	if cfgname != "" {
		c, err := config.Load(cfgname)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		cfg = c
	}
	if verb != "" {
		cfg.Format = verb
	}
	if level != "" {
		cfg.LogLevel = level
	}
	if minimal {
		cfg.Minimal = true
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(lvl)

	frame, err := buildFrame(cfg, with)
	if err != nil {
		logger.Fatal().Err(err).Msg("bad definition")
	}
	sh := repl.New(cfg, frame, logger)

	if flag.NArg() > 0 {
		os.Exit(evalArgs(sh, flag.Args(), os.Stdout, logger))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	in, err := infile(inname)
	if err != nil {
		logger.Fatal().Err(err).Msg("opening input")
	}
	if in != os.Stdin {
		defer in.Close()
	}
	if err := sh.Run(ctx, bufio.NewReader(in), os.Stdout); err != nil && ctx.Err() == nil {
		logger.Fatal().Err(err).Msg("shell")
	}
}

// buildFrame adds the configured constants to the default names, then
// evaluates each -given definition in order. Definitions may refer to
// constants and to earlier definitions, and they replace both.
func buildFrame(cfg config.Config, with [][2]string) (calc.Frame, error) {
	frame := cfg.Frame(calc.DefaultFrame())
	for _, d := range with {
		nm, src := d[0], d[1]
		x, err := calc.Parse(src, calc.WithEnv(frame))
		if err != nil {
			return nil, fmt.Errorf("defining %s: %w", nm, err)
		}
		frame[nm] = calc.Number(x)
	}
	return frame, nil
}

// evalArgs evaluates each argument as an expression and prints its result.
// The result is the process exit status.
func evalArgs(sh *repl.Shell, args []string, w io.Writer, logger zerolog.Logger) int {
	code := 0
	for _, arg := range args {
		x, err := sh.Eval(arg)
		if err != nil {
			logger.Error().Err(fmt.Errorf("%q: %w", arg, err)).Msg("evaluation failed")
			code = 1
			continue
		}
		fmt.Fprintln(w, sh.Format(x))
	}
	return code
}

func infile(inname string) (*os.File, error) {
	if inname == "" || inname == "-" {
		return os.Stdin, nil
	}
	return os.Open(inname)
}
