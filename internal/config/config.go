// Package config holds the settings of the rpn command.
package config

import (
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/rpn"
)

// Config is the command configuration. Fields are filled from defaults, then
// an optional YAML file, then command-line flags.
type Config struct {
	// Filename is the YAML file to load, if any.
	Filename string `yaml:"-"`

	MaxDepth     int    `yaml:"max_depth"`
	Prompt       string `yaml:"prompt"`
	ResultPrefix string `yaml:"result_prefix"`
	ErrorPrefix  string `yaml:"error_prefix"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxDepth:     rpn.DefaultMaxDepth,
		Prompt:       "RPN> ",
		ResultPrefix: "= ",
		ErrorPrefix:  "error: ",
	}
}

// AsCliFlags returns the flags which override the config file.
func (c *Config) AsCliFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Destination: &c.Filename,
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "YAML file of settings",
		},
		&cli.IntFlag{
			Name:  "max-depth",
			Value: c.MaxDepth,
			Usage: "maximum nesting depth of parenthesized groups",
		},
	}
}

// Load decodes the named file over c. Values absent from the file are left
// unchanged.
func (c *Config) Load(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "opening config")
	}
	defer f.Close()
	if err := c.Decode(f); err != nil {
		return errors.Wrapf(err, "loading %s", filename)
	}
	glog.V(1).Infof("loaded config %s: %+v", filename, *c)
	return nil
}

// Decode reads YAML settings from r over c. Unknown keys are an error. An
// empty document leaves c unchanged.
func (c *Config) Decode(r io.Reader) error {
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(c); err != nil && err != io.EOF {
		return errors.Wrap(err, "decoding config")
	}
	return c.Validate()
}

// Validate reports whether the settings are usable.
func (c *Config) Validate() error {
	if c.MaxDepth <= 0 {
		return errors.Errorf("max_depth must be positive, not %d", c.MaxDepth)
	}
	return nil
}

// Options returns the evaluator options for c.
func (c *Config) Options() []rpn.Option {
	return []rpn.Option{rpn.MaxDepth(c.MaxDepth)}
}
