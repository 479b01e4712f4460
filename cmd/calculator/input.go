package main

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strings"
)

// inputs collects the expressions to evaluate: those from the input file or
// stdin first, then the arguments.
func inputs(cfg *config, stdin io.Reader, args []string) ([]string, error) {
	var r io.Reader
	switch {
	case cfg.in != "" && cfg.in != "-":
		f, err := os.Open(cfg.in)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		slog.Debug("reading expressions", "file", cfg.in)
		r = f
	case cfg.in == "-", len(args) == 0:
		slog.Debug("reading expressions from stdin")
		r = stdin
	}
	var srcs []string
	if r != nil {
		s, err := split(r, cfg.lines)
		if err != nil {
			return nil, err
		}
		srcs = s
	}
	return append(srcs, args...), nil
}

// split reads the expressions in r. With lines, each non-blank line is an
// expression. Otherwise all of r is one expression.
func split(r io.Reader, lines bool) ([]string, error) {
	if !lines {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return []string{string(b)}, nil
	}
	var srcs []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		srcs = append(srcs, sc.Text())
	}
	return srcs, sc.Err()
}
