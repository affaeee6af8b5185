// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command plotstat transforms tabular data and prints or plots the
// result.
//
// plotstat reads CSV or TSV tables, binds columns to channels, runs a
// pipeline of transform steps, and writes the result as an SVG plot, a
// text table, or CSV. For example,
//
//	plotstat -x date -y close -z symbol \
//	    --step 'normalize y first' \
//	    --step 'window y k=20 reduce=median' prices.csv > prices.svg
//
// Settings can also come from a YAML file given with --config; flags
// override the file. --dump-config prints the effective settings.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aclements/go-plotstat/channel"
	"github.com/aclements/go-plotstat/records"
	"github.com/aclements/go-plotstat/transform"
)

func init() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	transform.Warning = log.StandardLogger()
	gg.Warning.SetOutput(log.StandardLogger().WriterLevel(log.WarnLevel))
	gg.Warning.SetFlags(0)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

// flags holds the flags that are not bound into viper.
type flags struct {
	config     string
	dumpConfig bool
	verbose    bool
	channels   []string
	steps      []string
}

var channelFlags = []struct{ name, short, usage string }{
	{"x", "x", "column for the x channel"},
	{"y", "y", "column for the y channel"},
	{"z", "z", "column that separates series"},
	{"fx", "", "column for horizontal facets"},
	{"fy", "", "column for vertical facets"},
	{"fill", "", "column or =constant for the fill channel"},
	{"stroke", "", "column or =constant for the stroke channel"},
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var f flags

	cmd := &cobra.Command{
		Use:   "plotstat [flags] [inputs...]",
		Short: "Transform tabular data and print or plot the result",
		Long: `plotstat reads CSV or TSV tables, applies a pipeline of statistical
transforms (sorting, mapping, normalization, moving windows, interval
bucketing, shifts, jitter and regression), and writes the result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, f.config)
			if err != nil {
				return err
			}
			if err := f.apply(cfg, args); err != nil {
				return err
			}
			return run(cmd, cfg, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.config, "config", "", "read settings from YAML `file`")
	fl.BoolVar(&f.dumpConfig, "dump-config", false, "print the effective configuration as YAML and exit")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "log each pipeline step")
	fl.StringArrayVarP(&f.steps, "step", "s", nil, "append a transform `step` to the pipeline (repeatable)")
	fl.StringArrayVar(&f.channels, "channel", nil, "bind a channel as `name=spec` (repeatable)")
	for _, c := range channelFlags {
		fl.StringP(c.name, c.short, "", c.usage)
		v.BindPFlag("channels."+c.name, fl.Lookup(c.name))
	}
	fl.StringP("output", "o", "", "write output to `file` (default: stdout)")
	fl.String("format", "svg", "output format: svg, table, text or csv")
	fl.String("mark", "auto", "SVG mark: auto, points, lines, area or band")
	fl.Int("width", 500, "SVG facet width in pixels")
	fl.Int("height", 350, "SVG facet height in pixels")
	fl.String("title", "", "plot title")
	fl.String("log-level", "warning", "log `level`")
	for key, name := range map[string]string{
		"output.file":   "output",
		"output.format": "format",
		"output.mark":   "mark",
		"output.width":  "width",
		"output.height": "height",
		"output.title":  "title",
		"log-level":     "log-level",
	} {
		v.BindPFlag(key, fl.Lookup(name))
	}
	return cmd
}

// apply merges the unbound flags and arguments into cfg.
func (f flags) apply(cfg *Config, args []string) error {
	if len(args) > 0 {
		cfg.Inputs = args
	}
	if len(cfg.Inputs) == 0 {
		cfg.Inputs = []string{"-"}
	}
	if cfg.Channels == nil {
		cfg.Channels = map[string]string{}
	}
	for _, c := range f.channels {
		i := strings.Index(c, "=")
		if i <= 0 {
			return fmt.Errorf("bad channel %q: want name=spec", c)
		}
		cfg.Channels[c[:i]] = c[i+1:]
	}
	if f.verbose {
		cfg.LogLevel = "debug"
	}
	if len(f.steps) > 0 {
		if _, err := parsePipeline(f.steps); err != nil {
			return err
		}
		cfg.Steps = append(cfg.Steps, f.steps...)
	}
	return nil
}

func run(cmd *cobra.Command, cfg *Config, f flags) error {
	if f.dumpConfig {
		return cfg.dump(cmd.OutOrStdout())
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	tab, err := readInputs(cfg.Inputs, cmd.InOrStdin())
	if err != nil {
		return err
	}
	steps, err := parsePipeline(cfg.Steps)
	if err != nil {
		return err
	}
	ds := channel.New(tab.Rows(), cfg.channels())
	log.WithFields(log.Fields{
		"rows":     ds.Len(),
		"columns":  len(tab.Columns),
		"channels": strings.Join(ds.Channels.Names(), ","),
	}).Debug("read input")
	ds, err = runPipeline(ds, steps)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if cfg.Output.File != "" {
		file, err := os.Create(cfg.Output.File)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}
	if err := write(w, ds, cfg); err != nil {
		return err
	}
	if file, ok := w.(*os.File); ok && cfg.Output.File != "" {
		return file.Close()
	}
	return nil
}

func write(w io.Writer, ds *channel.Dataset, cfg *Config) error {
	switch cfg.Output.Format {
	case "table":
		table.Fprint(w, datasetTable(ds))
		return nil
	case "text":
		return records.Fprint(w, datasetRecords(ds))
	case "csv":
		return records.WriteCSV(w, datasetRecords(ds))
	}
	out := cfg.Output
	if out.Title == "" && !(len(cfg.Inputs) == 1 && cfg.Inputs[0] == "-") {
		out.Title = strings.Join(cfg.Inputs, " ")
	}
	return writeSVG(w, ds, out)
}

// readInputs parses each input table and concatenates them. If there
// is more than one input, each row records its file in an "input"
// column.
func readInputs(paths []string, stdin io.Reader) (*records.Table, error) {
	var tabs []*records.Table
	for _, path := range paths {
		t, err := readInput(path, stdin)
		if err != nil {
			return nil, err
		}
		if len(paths) > 1 {
			t.Columns = append(t.Columns, "input")
			for _, r := range t.Records {
				r.Cells["input"] = &records.Cell{RawValue: path}
			}
		}
		tabs = append(tabs, t)
	}
	tab := records.Concat(tabs...)
	records.ParseValues(tab, nil)
	return tab, nil
}

func readInput(path string, stdin io.Reader) (*records.Table, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	t, err := records.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
