package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/shcv/kvline"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// listFlag collects every occurrence of a repeatable string flag.
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, " ")
}

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type options struct {
	cfg   kvline.Config
	lines []string
	log   *slog.Logger
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: kvline <parse|tokens|merge|format> [flags] [line...]\n")
		os.Exit(1)
	}

	cmd := os.Args[1]
	opts, err := parseFlags(cmd, os.Args[2:])
	if err != nil {
		os.Exit(2)
	}

	switch cmd {
	case "parse":
		err = cmdParse(opts)
	case "tokens":
		err = cmdTokens(opts)
	case "merge":
		err = cmdMerge(opts)
	case "format":
		err = cmdFormat(opts)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		os.Exit(1)
	}
	if err != nil {
		opts.log.Error("kvline failed", "command", cmd, "error", err)
		os.Exit(1)
	}
}

func parseFlags(cmd string, args []string) (*options, error) {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	var ops, seps listFlag
	fs.Var(&ops, "operator", "key/value operator (repeatable, default \"=\")")
	fs.Var(&seps, "separator", "field separator (repeatable, default \",\")")
	strict := fs.Bool("strict", false, "fail on malformed {...} and [...] values")
	level := fs.String("log-level", "warn", "log level: debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(*level)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q: %v\n", *level, err)
		return nil, err
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

	cfg := kvline.DefaultConfig()
	if len(ops) > 0 {
		cfg.Operators = ops
	}
	if len(seps) > 0 {
		cfg.Separators = seps
	}
	cfg.Strict = *strict
	cfg.Logger = log

	log.Debug("configuration loaded",
		"operators", cfg.Operators,
		"separators", cfg.Separators,
		"strict", cfg.Strict)

	return &options{cfg: cfg, lines: fs.Args(), log: log}, nil
}

// eachLine calls fn for every line argument, or for every stdin line when
// none were given.
func eachLine(opts *options, fn func(n int, line string) error) error {
	if len(opts.lines) > 0 {
		for i, line := range opts.lines {
			if err := fn(i+1, line); err != nil {
				return err
			}
		}
		return nil
	}
	return scanLines(os.Stdin, fn)
}

func scanLines(r io.Reader, fn func(n int, line string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		if err := fn(n, sc.Text()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("error reading stdin: %w", err)
	}
	return nil
}

func cmdParse(opts *options) error {
	failed := 0
	err := eachLine(opts, func(n int, line string) error {
		rec, err := kvline.ParseConfig(line, opts.cfg)
		if err != nil {
			opts.log.Error("error parsing line", "line", n, "error", err)
			failed++
			return nil
		}
		return printJSON(rec)
	})
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d line(s) failed to parse", failed)
	}
	return nil
}

func cmdTokens(opts *options) error {
	return eachLine(opts, func(n int, line string) error {
		tokens, err := kvline.Tokenize(line, opts.cfg)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		for _, tok := range tokens {
			fmt.Printf("%d\t%s\t%q\n", tok.Offset, tok.Kind, tok.Text)
		}
		return nil
	})
}

func cmdMerge(opts *options) error {
	merged := kvline.NewRecord()
	err := eachLine(opts, func(n int, line string) error {
		rec, err := kvline.ParseConfig(line, opts.cfg)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		merged = kvline.Merge(merged, rec)
		return nil
	})
	if err != nil {
		return err
	}
	return printJSON(merged)
}

func cmdFormat(opts *options) error {
	return scanLines(os.Stdin, func(n int, line string) error {
		if strings.TrimSpace(line) == "" {
			return nil
		}
		var input map[string]any
		if err := json.Unmarshal([]byte(line), &input); err != nil {
			return fmt.Errorf("line %d: error parsing JSON: %w", n, err)
		}
		fmt.Println(kvline.Format(kvline.FromMap(input), opts.cfg))
		return nil
	})
}

func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	fmt.Println(string(output))
	return nil
}
