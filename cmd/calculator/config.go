package main

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/spf13/pflag"

	"github.com/zephyrtronium/calculator"
)

// envPrefix prefixes environment variables that configure the command, e.g.
// CALCULATOR_ECHO=true.
const envPrefix = "CALCULATOR_"

var defaults = map[string]interface{}{
	"in":    "",
	"lines": false,
	"echo":  false,
	"table": false,
	"debug": false,
}

// config is the merged configuration of one run.
type config struct {
	in    string
	lines bool
	echo  bool
	table bool
	debug bool
	// ctx holds the variables from the config file and --given.
	ctx *calculator.Context
}

// loadConfig merges defaults, the config file named by the config flag,
// the environment, and flags, in that order. given are name=value variable
// definitions evaluated after those from the config file.
func loadConfig(flags *pflag.FlagSet, given []string) (*config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, err
	}
	if name, _ := flags.GetString("config"); name != "" {
		if err := k.Load(file.Provider(name), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", name, err)
		}
		slog.Debug("loaded config file", "path", name)
	}
	envkey := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}
	if err := k.Load(env.Provider(envPrefix, ".", envkey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, fmt.Errorf("loading flags: %w", err)
	}

	cfg := config{
		in:    k.String("in"),
		lines: k.Bool("lines"),
		echo:  k.Bool("echo"),
		table: k.Bool("table"),
		debug: k.Bool("debug"),
		ctx:   calculator.NewContext(),
	}
	if err := configVars(cfg.ctx, k.Get("vars")); err != nil {
		return nil, err
	}
	if err := givenVars(cfg.ctx, given); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// configVars defines the variables in the vars section of the config file in
// order of name. Numbers are used as they are; anything else is evaluated as
// an expression.
func configVars(ctx *calculator.Context, vars interface{}) error {
	if vars == nil {
		return nil
	}
	m, ok := vars.(map[string]interface{})
	if !ok {
		return fmt.Errorf("config vars must be a map of names to values, not %T", vars)
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		var v calculator.Value
		switch x := m[name].(type) {
		case int:
			v = calculator.Int(int64(x))
		case int64:
			v = calculator.Int(x)
		case float64:
			v = calculator.Float(x)
		default:
			var err error
			v, err = ctx.EvalString(fmt.Sprint(x))
			if err != nil {
				return fmt.Errorf("config variable %s: %w", name, err)
			}
		}
		ctx.Set(name, v)
		slog.Debug("defined variable", "name", name, "value", v, "source", "config")
	}
	return nil
}

// givenVars defines variables from name=value definitions. Each value is an
// expression that may use the variables defined before it.
func givenVars(ctx *calculator.Context, given []string) error {
	for _, d := range given {
		name, src, ok := strings.Cut(d, "=")
		if !ok {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, d)
		}
		name = strings.TrimSpace(name)
		v, err := ctx.EvalString(src)
		if err != nil {
			return fmt.Errorf("setting %s: %w", name, err)
		}
		ctx.Set(name, v)
		slog.Debug("defined variable", "name", name, "value", v, "source", "given")
	}
	return nil
}
