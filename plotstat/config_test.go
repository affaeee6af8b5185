// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aclements/go-plotstat/channel"
)

func TestParseChannel(t *testing.T) {
	for _, test := range []struct {
		spec string
		want channel.Accessor
	}{
		{"", nil},
		{"price", channel.Field("price")},
		{"=3", channel.Const{Value: 3.0}},
		{"=steelblue", channel.Const{Value: "steelblue"}},
		{"=1 month", channel.Const{Value: "1 month"}},
	} {
		assert.Equal(t, test.want, parseChannel(test.spec), "%q", test.spec)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0666))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "plot.yaml", `
inputs: [a.csv, b.csv]
channels:
  x: date
  y: close
  fill: =red
steps:
  - normalize y first
  - window y k=5
output:
  format: text
  width: 800
`)
	cfg, err := loadConfig(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv", "b.csv"}, cfg.Inputs)
	assert.Equal(t, []string{"normalize y first", "window y k=5"}, cfg.Steps)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, 800, cfg.Output.Width)
	assert.Equal(t, 350, cfg.Output.Height)
	assert.Equal(t, "auto", cfg.Output.Mark)
	assert.Equal(t, "warning", cfg.LogLevel)

	ch := cfg.channels()
	assert.Equal(t, channel.Field("date"), ch["x"])
	assert.Equal(t, channel.Field("close"), ch["y"])
	assert.Equal(t, channel.Const{Value: "red"}, ch["fill"])

	var buf bytes.Buffer
	require.NoError(t, cfg.dump(&buf))
	var back Config
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, *cfg, back)
}

func TestLoadConfigErrors(t *testing.T) {
	for _, content := range []string{
		"output:\n  format: pdf\n",
		"output:\n  mark: bars\n",
		"output:\n  width: 0\n",
		"steps:\n  - frobnicate\n",
		"channels: [\n",
	} {
		path := writeFile(t, "bad.yaml", content)
		_, err := loadConfig(viper.New(), path)
		assert.Error(t, err, "%q", content)
	}

	_, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "svg", cfg.Output.Format)
	assert.Equal(t, 500, cfg.Output.Width)
	assert.Empty(t, cfg.Steps)
}
