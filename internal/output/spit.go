// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/gamesq/gamesq/internal/attrs"
	"github.com/gamesq/gamesq/internal/config"
	"github.com/gamesq/gamesq/internal/log"
)

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// SliceDiceSpit transforms, sorts and renders rows according to the command
// flags and attrs. Rows are already matched; nothing is filtered here.
func SliceDiceSpit(rows []map[string]interface{}, al attrs.AttrList, cmd *cli.Command, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	format := cmd.String("output")
	if format == "raw" {
		return json.NewEncoder(w).Encode(rows)
	}

	for _, row := range rows {
		applyAttrs(row, al)
	}
	SortDataset(rows, cmd.String("sort"))

	var (
		out []byte
		err error
	)
	switch format {
	case "json":
		out, err = json.Marshal(shape(rows, al))
		out = append(out, '\n')
	case "yaml":
		out, err = yaml.Marshal(shape(rows, al))
	default:
		TableWriter(rows, al, cmd, w)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s output: %w", format, err)
	}
	_, err = w.Write(out)
	return err
}

// applyAttrs stores each attr's value under its output key, transformed when
// the attr names a transform.
func applyAttrs(row map[string]interface{}, al attrs.AttrList) {
	for _, a := range al {
		switch {
		case a.TransformSpec != "":
			row[a.OutputKey] = a.Transform(row[a.Key])
		case a.OutputKey != a.Key:
			row[a.OutputKey] = row[a.Key]
		}
	}
}

// shape keeps only the included attrs of each row, keyed by output key.
func shape(rows []map[string]interface{}, al attrs.AttrList) []map[string]interface{} {
	shaped := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		out := make(map[string]interface{})
		for _, attr := range al {
			if attr.Include {
				out[attr.OutputKey] = row[attr.OutputKey]
			}
		}
		shaped = append(shaped, out)
	}
	return shaped
}

// headers lists the output keys of the included attrs.
func headers(al attrs.AttrList) []string {
	var out []string
	for _, a := range al {
		if a.Include {
			out = append(out, a.OutputKey)
		}
	}
	return out
}

// cells renders each row's included attrs as strings, "-" standing in for
// empty values.
func cells(resultSet []map[string]interface{}, al attrs.AttrList) [][]string {
	keys := headers(al)
	out := make([][]string, 0, len(resultSet))
	for _, result := range resultSet {
		row := make([]string, len(keys))
		for i, k := range keys {
			row[i] = InterfaceToString(result[k], "-")
		}
		out = append(out, row)
	}
	return out
}

// palette holds the title style and the alternating row styles.
type palette struct {
	title, even, odd lipgloss.Style
}

func newPalette(colored bool) palette {
	cell := lipgloss.NewStyle().Align(lipgloss.Left)
	p := palette{
		title: lipgloss.NewStyle().Align(lipgloss.Left).Bold(true),
		even:  cell,
		odd:   cell,
	}
	if colored {
		title, even, odd := getColors("colors")
		p.title = p.title.Foreground(title)
		p.even = p.even.Foreground(even)
		p.odd = p.odd.Foreground(odd)
	}
	return p
}

func (p palette) style(row int) lipgloss.Style {
	switch {
	case row == table.HeaderRow:
		return p.title
	case row%2 == 0:
		return p.even
	default:
		return p.odd
	}
}

// TableWriter prints the result set as borderless columns separated by
// --padding spaces. --titles adds a header row, --color colors it, and a
// "footer" string in the command metadata is printed underneath. Nothing is
// printed for an empty set.
func TableWriter(
	resultSet []map[string]interface{},
	al attrs.AttrList,
	cmd *cli.Command,
	w io.Writer) {

	if w == nil {
		w = os.Stdout
	}
	if len(resultSet) == 0 {
		return
	}

	p := newPalette(cmd.Bool("color"))
	pad := int(cmd.Int("padding"))

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := p.style(row)
			if col > 0 {
				s = s.PaddingLeft(pad)
			}
			return s
		}).
		Rows(cells(resultSet, al)...)

	if cmd.Bool("titles") {
		// Header separator stays off; lipgloss draws it even with hidden borders.
		t = t.Headers(headers(al)...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	if footer, ok := cmd.Metadata["footer"].(string); ok && footer != "" {
		fmt.Fprintln(w, p.title.Render(footer))
	}
}

// getColors resolves the title, even-row and odd-row colors under key. A
// configured value always wins; otherwise the default depends on whether the
// terminal background is dark.
func getColors(key string) (title, even, odd color.Color) {
	dark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	pick := func(name, light, darkDefault string) color.Color {
		if c, err := config.GetString(key + "." + name); err == nil {
			return lipgloss.Color(c)
		}
		log.Tracef("default color: key=%s.%s", key, name)
		if dark {
			return lipgloss.Color(darkDefault)
		}
		return lipgloss.Color(light)
	}

	return pick("title", "#a0522d", "#f4a460"),
		pick("even", "#333333", "#ffffff"),
		pick("odd", "#2e8b57", "#7fffd4")
}
