// Released under an MIT license. See LICENSE.

// Package options parses the command line and the configuration file.
package options

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/docopt/docopt-go"
	"gopkg.in/yaml.v3"

	"github.com/michaelmacinnis/autofn/internal/engine/autoload"
)

// Version is reported by -v.
const Version = "autofn 0.1.0"

//nolint:gochecknoglobals
var usage = `autofn

Usage:
  autofn [-p DIR]... [-c FILE] list [-a] [PATTERN]
  autofn [-p DIR]... [-c FILE] show NAME
  autofn [-p DIR]... [-c FILE] call NAME [ARGUMENTS...]
  autofn [-p DIR]... [-c FILE] [-i]
  autofn -h
  autofn -v

Arguments:
  ARGUMENTS  Arguments passed to the function.
  NAME       Function name.
  PATTERN    Only list names matching this glob pattern.

Options:
  -a, --all             Include hidden functions.
  -c, --config=FILE     Read settings from FILE.
  -i, --interactive     Invert interactive mode.
  -p, --path=DIR        Prepend DIR to the function search path.
  -h, --help            Display this help.
  -v, --version         Print autofn version.

Without a command, autofn prompts for definitions and commands when its
stdin is a TTY and reads them from stdin otherwise.
`

// Log holds logging settings.
type Log struct {
	Development bool   `yaml:"development"`
	Level       string `yaml:"level"`
}

// Config holds the settings read from the configuration file.
type Config struct {
	FunctionPath []string `yaml:"function_path"`
	History      string   `yaml:"history"`
	Log          Log      `yaml:"log"`
	PathVariable string   `yaml:"path_variable"`
	Suffix       string   `yaml:"suffix"`
	Watch        bool     `yaml:"watch"`
}

// T (options) is the result of parsing the command line and configuration.
type T struct {
	Config

	All         bool
	Arguments   []string
	Command     string
	Interactive bool
	Name        string
	Pattern     string
}

type options = T

// Default returns the configuration used when no file is given.
func Default() Config {
	home, _ := os.UserHomeDir()

	return Config{
		FunctionPath: []string{filepath.Join(home, ".config", "autofn", "functions")},
		History:      filepath.Join(home, ".autofn_history"),
		Log:          Log{Level: "warn"},
		PathVariable: autoload.DefaultPathVariable,
		Suffix:       autoload.DefaultSuffix,
		Watch:        true,
	}
}

// Load reads the YAML configuration in path on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse parses argv, not including the program name. The terminal flag
// reports whether stdin is a terminal.
func Parse(argv []string, terminal bool) (*options, error) {
	parser := &docopt.Parser{HelpHandler: docopt.PrintHelpAndExit}

	// A nil argv makes docopt read os.Args.
	if argv == nil {
		argv = []string{}
	}

	opts, err := parser.ParseArgs(usage, argv, Version)
	if err != nil {
		return nil, err
	}

	return fromOpts(opts, terminal)
}

func fromOpts(opts docopt.Opts, terminal bool) (*options, error) {
	o := &options{Config: Default()}

	if path, _ := opts.String("--config"); path != "" {
		cfg, err := Load(path)
		if err != nil {
			return nil, err
		}

		o.Config = cfg
	}

	dirs, _ := opts["--path"].([]string)
	o.FunctionPath = append(append([]string{}, dirs...), o.FunctionPath...)

	for _, cmd := range []string{"call", "list", "show"} {
		if ok, _ := opts.Bool(cmd); ok {
			o.Command = cmd
		}
	}

	o.All, _ = opts.Bool("--all")
	o.Arguments, _ = opts["ARGUMENTS"].([]string)
	o.Name, _ = opts.String("NAME")
	o.Pattern, _ = opts.String("PATTERN")

	invert, _ := opts.Bool("--interactive")
	o.Interactive = o.Command == "" && terminal != invert

	if o.PathVariable == "" {
		o.PathVariable = autoload.DefaultPathVariable
	}

	if o.Suffix == "" {
		return nil, errors.New("suffix must not be empty")
	}

	return o, nil
}
