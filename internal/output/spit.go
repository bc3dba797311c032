// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"iter"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/textq/internal/attrs"
	"github.com/tfctl/textq/internal/config"
	"github.com/tfctl/textq/internal/log"
)

// Options controls how a result set is rendered.
type Options struct {
	// Format is one of text, json or yaml.
	Format  string
	Sort    string
	Titles  bool
	Color   bool
	Padding int
	Header  string
	Footer  string
}

// Formats lists the accepted values of Options.Format.
var Formats = []string{"text", "json", "yaml"}

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
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case time.Time:
		return value.Format(time.RFC3339)
	case fmt.Stringer:
		return value.String()
	default:
		if v := reflect.ValueOf(value); v.Kind() == reflect.String {
			return v.String()
		}
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// Rows materializes a filtered view into output rows keyed by each attr's
// OutputKey. Hidden attrs are still read so they can drive sorting. Keys that
// name no field of T are left nil.
func Rows[T any](seq iter.Seq[T], al attrs.AttrList) []map[string]interface{} {
	fields := make(map[string]attrs.Field)
	for _, f := range attrs.Fields(reflect.TypeFor[T]()) {
		fields[f.Name] = f
	}

	rows := []map[string]interface{}{}
	for record := range seq {
		v := reflect.ValueOf(&record).Elem()
		row := make(map[string]interface{}, len(al))
		for _, attr := range al {
			if attr.Key == "*" {
				continue
			}
			if f, ok := fields[attr.Key]; ok {
				row[attr.OutputKey] = f.Interface(v)
			} else {
				row[attr.OutputKey] = nil
			}
		}
		rows = append(rows, row)
	}

	log.Debugf("rows materialized: count=%d", len(rows))
	return rows
}

// Spit transforms, sorts and renders rows. If w is nil, os.Stdout is used.
func Spit(rows []map[string]interface{}, al attrs.AttrList, opts Options, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	// Transform each value in each row.
	for _, row := range rows {
		for _, attr := range al {
			if attr.TransformSpec != "" && attr.Key != "*" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	SortDataset(rows, opts.Sort)

	visible := al.Visible()

	switch opts.Format {
	case "json":
		out := make([]map[string]interface{}, 0, len(rows))
		for _, row := range rows {
			shown := make(map[string]interface{}, len(visible))
			for _, attr := range visible {
				shown[attr.OutputKey] = row[attr.OutputKey]
			}
			out = append(out, shown)
		}
		jsonOutput, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		_, err = fmt.Fprintln(w, string(jsonOutput))
		return err
	case "yaml":
		// MapSlice keeps the attr order that a plain map would lose.
		out := make([]yaml.MapSlice, 0, len(rows))
		for _, row := range rows {
			shown := make(yaml.MapSlice, 0, len(visible))
			for _, attr := range visible {
				shown = append(shown, yaml.MapItem{Key: attr.OutputKey, Value: row[attr.OutputKey]})
			}
			out = append(out, shown)
		}
		yamlOutput, err := yaml.Marshal(out)
		if err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		_, err = w.Write(yamlOutput)
		return err
	case "text", "":
		TableWriter(rows, visible, opts, w)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", opts.Format)
	}
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options.
func TableWriter(resultSet []map[string]interface{}, visible attrs.AttrList, opts Options, w io.Writer) {
	if opts.Header != "" {
		fmt.Fprintln(w, opts.Header)
	}

	if len(resultSet) > 0 {
		var (
			headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
			cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
			evenRowStyle = cellStyle
			oddRowStyle  = cellStyle
		)

		if opts.Color {
			headerColor, evenColor, oddColor := getColors("colors")

			headerStyle = headerStyle.Foreground(headerColor)
			evenRowStyle = evenRowStyle.Foreground(evenColor)
			oddRowStyle = oddRowStyle.Foreground(oddColor)
		}

		rows := make([][]string, 0, len(resultSet))
		for _, result := range resultSet {
			row := make([]string, 0, len(visible))
			for _, attr := range visible {
				row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
			}
			rows = append(rows, row)
		}

		pad := opts.Padding
		t := table.New().
			BorderBottom(false).
			BorderTop(false).
			BorderLeft(false).
			BorderRight(false).
			Border(lipgloss.HiddenBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				var style lipgloss.Style
				switch {
				case row == table.HeaderRow:
					style = headerStyle
				case row%2 == 0:
					style = evenRowStyle
				default:
					style = oddRowStyle
				}

				if col > 0 {
					style = style.PaddingLeft(pad)
				}

				return style
			}).
			Headers().
			Rows(rows...)

		if opts.Titles {
			headers := make([]string, 0, len(visible))
			for _, attr := range visible {
				headers = append(headers, attr.OutputKey)
			}

			// https://github.com/charmbracelet/lipgloss/issues/261
			t = t.Headers(headers...).BorderHeader(false)
		}
		fmt.Fprintln(w, t)
	}

	if opts.Footer != "" {
		fmt.Fprintln(w, opts.Footer)
	}
}

// getColors returns configured color values for table rendering. Each color is
// selected based on terminal background color so that output is reasonably
// visible for light and dark themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// Use the explicit color if found in the config and leave it up to the user
	// to choose appropriate colors for their theme.
	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
