// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/aclements/go-plotstat/channel"
)

// Config is the effective configuration of a plotstat run. It is read
// from an optional YAML file and overridden by flags.
type Config struct {
	// Inputs lists the table files to read. "-" is stdin.
	Inputs []string `mapstructure:"inputs" yaml:"inputs,omitempty"`

	// Channels maps channel names to specifications: a column
	// name, or "=value" for a constant.
	Channels map[string]string `mapstructure:"channels" yaml:"channels,omitempty"`

	// Steps is the transform pipeline, one step per entry (see
	// parseStep).
	Steps []string `mapstructure:"steps" yaml:"steps,omitempty"`

	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// LogLevel is a logrus level name.
	LogLevel string `mapstructure:"log-level" yaml:"log-level"`
}

// OutputConfig describes how to write the transformed data.
type OutputConfig struct {
	// Format is "svg", "table", "text" or "csv".
	Format string `mapstructure:"format" yaml:"format"`

	// File is the output path. Empty means stdout.
	File string `mapstructure:"file" yaml:"file,omitempty"`

	// Mark is the SVG mark: "auto", "points", "lines", "area" or
	// "band".
	Mark string `mapstructure:"mark" yaml:"mark"`

	// Width and Height are the size of each SVG facet in pixels.
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`

	Title string `mapstructure:"title" yaml:"title,omitempty"`
}

var (
	formats = []string{"svg", "table", "text", "csv"}
	marks   = []string{"auto", "points", "lines", "area", "band"}
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("output.format", "svg")
	v.SetDefault("output.mark", "auto")
	v.SetDefault("output.width", 500)
	v.SetDefault("output.height", 350)
	v.SetDefault("log-level", "warning")
}

// loadConfig reads the configuration from v, first loading path into
// v if it is not empty.
func loadConfig(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	for name, spec := range cfg.Channels {
		if spec == "" {
			delete(cfg.Channels, name)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (cfg *Config) validate() error {
	if !contains(formats, cfg.Output.Format) {
		return fmt.Errorf("unknown output format %q (want one of %s)", cfg.Output.Format, strings.Join(formats, ", "))
	}
	if !contains(marks, cfg.Output.Mark) {
		return fmt.Errorf("unknown mark %q (want one of %s)", cfg.Output.Mark, strings.Join(marks, ", "))
	}
	if cfg.Output.Width <= 0 || cfg.Output.Height <= 0 {
		return fmt.Errorf("bad output size %dx%d", cfg.Output.Width, cfg.Output.Height)
	}
	if _, err := parsePipeline(cfg.Steps); err != nil {
		return err
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// dump writes cfg to w as YAML.
func (cfg *Config) dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// channels returns the channel map described by cfg.
func (cfg *Config) channels() channel.Channels {
	names := make([]string, 0, len(cfg.Channels))
	for name := range cfg.Channels {
		names = append(names, name)
	}
	sort.Strings(names)

	ch := channel.Channels{}
	for _, name := range names {
		if a := parseChannel(cfg.Channels[name]); a != nil {
			ch[name] = a
		}
	}
	return ch
}

// parseChannel parses a channel specification. "=v" is a constant,
// which is a number if v parses as one. Anything else names a
// column.
func parseChannel(spec string) channel.Accessor {
	switch {
	case spec == "":
		return nil
	case strings.HasPrefix(spec, "="):
		return channel.Const{Value: parseScalar(spec[1:])}
	}
	return channel.Field(spec)
}

// parseScalar returns s as a float64 if it is a number, or else as a
// string.
func parseScalar(s string) interface{} {
	if x, err := strconv.ParseFloat(s, 64); err == nil {
		return x
	}
	return s
}
