// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package records

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	for _, test := range []struct {
		v    interface{}
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{1.5, "1.5"},
		{1e21, "1e+21"},
		{math.NaN(), "NaN"},
		{42, "42"},
		{time.Date(2021, 5, 19, 1, 2, 3, 0, time.UTC), "2021-05-19T01:02:03Z"},
	} {
		assert.Equal(t, test.want, Format(test.v))
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	at := time.Date(2021, 5, 19, 0, 0, 0, 0, time.UTC)
	tab := New("x", "y", "name")
	tab.Append(1.5, at, "a, b")
	tab.Append(nil, at.Add(time.Hour), "c")

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tab))
	assert.Equal(t, "x,y,name\n1.5,2021-05-19T00:00:00Z,\"a, b\"\n,2021-05-19T01:00:00Z,c\n", buf.String())

	back, err := Parse(&buf)
	require.NoError(t, err)
	ParseValues(back, nil)
	assert.Equal(t, tab.Columns, back.Columns)
	assert.Equal(t, raw(tab), raw(back))
	assert.Equal(t, 1.5, back.Records[0].Cells["x"].Value)
	assert.Nil(t, back.Records[1].Cells["x"].Value)
	assert.Equal(t, at, back.Records[0].Cells["y"].Value)
}

func TestFprint(t *testing.T) {
	tab := New("name", "value")
	tab.Append("alpha", 1.0)
	tab.Append("b", 22.5)

	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, tab))
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, strings.ToLower(lines[0]), "name")
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "22.5")

	// Numbers are right aligned.
	last := strings.TrimRight(lines[len(lines)-1], " ")
	prev := strings.TrimRight(lines[len(lines)-2], " ")
	assert.True(t, strings.HasSuffix(last, "22.5"), "%q", last)
	assert.True(t, strings.HasSuffix(prev, "   1"), "%q", prev)
}

func TestAppendPanics(t *testing.T) {
	defer func() {
		assert.NotNil(t, recover())
	}()
	New("a", "b").Append(1)
}
