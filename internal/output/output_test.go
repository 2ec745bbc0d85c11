// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/gamesq/gamesq/internal/attrs"
)

func testRows() []map[string]interface{} {
	return []map[string]interface{}{
		{"name": "Portal", "runner": "linux", "playtime": 12.5, "id": int64(3)},
		{"name": "celeste", "runner": "linux", "playtime": 40.0, "id": int64(1)},
		{"name": "Braid", "runner": "wine", "playtime": 2.0, "id": int64(2)},
	}
}

// spit runs SliceDiceSpit inside a command so flags are parsed the way the
// CLI parses them.
func spit(t *testing.T, rows []map[string]interface{}, attrSpec string, args ...string) string {
	t.Helper()

	var al attrs.AttrList
	for _, spec := range strings.Split(attrSpec, ",") {
		require.NoError(t, al.Set(spec))
	}
	al.SetGlobalTransformSpec()

	buf := new(bytes.Buffer)
	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: "text"},
			&cli.StringFlag{Name: "sort"},
			&cli.BoolFlag{Name: "color"},
			&cli.BoolFlag{Name: "titles"},
			&cli.IntFlag{Name: "padding", Value: 2},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return SliceDiceSpit(rows, al, cmd, buf)
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
	return buf.String()
}

func TestSortDataset(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{
			name:      "ascending by name",
			spec:      "name",
			wantOrder: []string{"Braid", "celeste", "Portal"},
		},
		{
			name:      "descending by name",
			spec:      "-name",
			wantOrder: []string{"Portal", "celeste", "Braid"},
		},
		{
			name:      "case sensitive",
			spec:      "!name",
			wantOrder: []string{"Braid", "Portal", "celeste"},
		},
		{
			name:      "numeric",
			spec:      "playtime",
			wantOrder: []string{"Braid", "Portal", "celeste"},
		},
		{
			name:      "int64",
			spec:      "-id",
			wantOrder: []string{"Portal", "Braid", "celeste"},
		},
		{
			name:      "multiple fields",
			spec:      "runner,-playtime",
			wantOrder: []string{"celeste", "Portal", "Braid"},
		},
		{
			name:      "empty spec",
			spec:      "",
			wantOrder: []string{"Portal", "celeste", "Braid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := testRows()
			SortDataset(data, tt.spec)
			for i, expectedName := range tt.wantOrder {
				assert.Equal(t, expectedName, data[i]["name"], "at index %d", i)
			}
		})
	}
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{name: "string", value: "hello", want: "hello"},
		{name: "int", value: 42, want: "42"},
		{name: "int64", value: int64(1700000000), want: "1700000000"},
		{name: "float64", value: 12.5, want: "12.5"},
		{name: "whole float64", value: 40.0, want: "40"},
		{name: "bool true", value: true, want: "true"},
		{name: "bool false is zero value", value: false, want: ""},
		{name: "nil default", value: nil, want: ""},
		{name: "nil custom", value: nil, emptyVal: "-", want: "-"},
		{name: "slice", value: []string{"a", "b"}, want: `["a","b"]`},
		{name: "map", value: map[string]int{"x": 1}, want: `{"x":1}`},
		{name: "zero value with custom empty", value: 0, emptyVal: "N/A", want: "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSliceDiceSpit_JSON(t *testing.T) {
	out := spit(t, testRows(), "name:title:u,!playtime", "--output", "json", "--sort", "-playtime")

	parsed := gjson.Parse(out)
	require.True(t, parsed.IsArray())
	require.Len(t, parsed.Array(), 3)

	assert.Equal(t, "CELESTE", parsed.Get("0.title").String())
	assert.False(t, parsed.Get("0.playtime").Exists(), "hidden attrs sort but are not emitted")
	assert.False(t, parsed.Get("0.runner").Exists())
	assert.Equal(t, "BRAID", parsed.Get("2.title").String())
}

func TestSliceDiceSpit_YAML(t *testing.T) {
	out := spit(t, testRows(), "name,runner", "--output", "yaml", "--sort", "name")

	var got []map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 3)
	assert.Equal(t, map[string]interface{}{"name": "Braid", "runner": "wine"}, got[0])
}

func TestSliceDiceSpit_Raw(t *testing.T) {
	out := spit(t, testRows(), "name", "--output", "raw")

	parsed := gjson.Parse(out)
	require.Len(t, parsed.Array(), 3)
	assert.Equal(t, "linux", parsed.Get("0.runner").String(), "raw keeps every field")
}

func TestSliceDiceSpit_Text(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "no titles",
			args:     []string{"--sort", "name"},
			contains: []string{"Braid", "celeste", "Portal", "wine"},
			excludes: []string{"runner"},
		},
		{
			name:     "titles",
			args:     []string{"--titles"},
			contains: []string{"name", "runner"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := spit(t, testRows(), "name,runner", tt.args...)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestSliceDiceSpit_TextOrder(t *testing.T) {
	out := spit(t, testRows(), "name", "--sort", "name")

	braid := strings.Index(out, "Braid")
	celeste := strings.Index(out, "celeste")
	portal := strings.Index(out, "Portal")
	assert.True(t, braid < celeste && celeste < portal, "unexpected order:\n%s", out)
}

func TestTableWriter_Empty(t *testing.T) {
	out := spit(t, nil, "name")
	assert.Empty(t, out)
}

func TestDumpSchema(t *testing.T) {
	type record struct {
		Title   string `attr:"title"`
		Count   int    `attr:"count"`
		private string
		Skipped string `json:"skipped"`
	}

	buf := new(bytes.Buffer)
	DumpSchema(reflect.TypeOf(&record{}), buf)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{"count", "title"}, lines[len(lines)-2:])
	assert.NotContains(t, buf.String(), "skipped")
}

func TestGetColors(t *testing.T) {
	header, even, odd := getColors("colors")

	assert.NotNil(t, header)
	assert.NotNil(t, even)
	assert.NotNil(t, odd)
}

func BenchmarkSortDataset(b *testing.B) {
	for i := 0; i < b.N; i++ {
		SortDataset(testRows(), "runner,-playtime")
	}
}
