// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"reflect"
	"slices"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tfctl/textq/internal/attrs"
	"github.com/tfctl/textq/internal/config"
	"github.com/tfctl/textq/internal/dataset"
	"github.com/tfctl/textq/internal/filterexpr"
	"github.com/tfctl/textq/internal/filters"
	"github.com/tfctl/textq/internal/log"
	"github.com/tfctl/textq/internal/meta"
	"github.com/tfctl/textq/internal/output"
)

// BuildAttrs constructs an AttrList from the fields of typ, applies the
// command defaults and then --attrs, and finally the global transform spec.
func BuildAttrs(cmd *cli.Command, typ reflect.Type, defaults ...string) (attrs.AttrList, error) {
	al := attrs.FromFields(attrs.Fields(typ))

	for _, d := range defaults {
		if err := al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err := al.Set(extras); err != nil {
			return nil, err
		}
	}
	al.SetGlobalTransformSpec()

	return al, nil
}

// DumpSchemaIfRequested writes the attributes of the provided type when
// --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(t, writer(cmd))
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// LoadRecords reads records from --file, relative to the starting directory,
// or returns samples when no file is given.
func LoadRecords[T any](cmd *cli.Command, samples func() []T) ([]T, error) {
	file := cmd.String("file")
	if file == "" {
		return samples(), nil
	}

	if !filepath.IsAbs(file) {
		if sd := GetMeta(cmd).StartingDir; sd != "" {
			file = filepath.Join(sd, file)
		}
	}

	records, err := dataset.Load[T](file, cmd.String("parent"))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", file, err)
	}
	return records, nil
}

// SearchNames returns the keys of the attrs shown in output. Only those are
// searched, so a column hidden with --attrs '!key' never drives a match.
func SearchNames(al attrs.AttrList) []string {
	visible := al.Visible()
	names := make([]string, 0, len(visible))
	for _, a := range visible {
		names = append(names, a.Key)
	}
	return names
}

// Search narrows records to those whose named text attributes contain
// --search, using the strategy named by --mode. An unset --search keeps
// everything. --expr templates name their own attributes.
func Search[T any](cmd *cli.Command, records []T, names []string) (iter.Seq[T], error) {
	var search *string
	if cmd.IsSet("search") {
		s := cmd.String("search")
		search = &s
	}

	mode := cmd.String("mode")
	template := cmd.String("expr")
	if template != "" {
		mode = "expr"
	}
	log.Debugf("search: mode=%s, term=%v, template=%s", mode, search != nil, template)

	switch mode {
	case "reflect":
		if search == nil {
			return slices.Values(records), nil
		}
		seq, err := filters.ByTextAny(records, *search, names...)
		if err != nil {
			return nil, err
		}
		return narrow[T](seq), nil
	case "expr":
		if template == "" {
			if search == nil {
				return slices.Values(records), nil
			}
			seq, err := filterexpr.ByText(records, *search, names...)
			if err != nil {
				return nil, err
			}
			return narrow[T](seq), nil
		}

		f, err := filterexpr.Compile(template, reflect.TypeFor[T]())
		if err != nil {
			return nil, err
		}
		params := []any{}
		if search != nil {
			params = append(params, *search)
		}
		q, err := filters.From(records)
		if err != nil {
			return nil, err
		}
		seq, err := f.Apply(q.Seq(), params...)
		if err != nil {
			return nil, err
		}
		return narrow[T](seq), nil
	default:
		if search == nil {
			return slices.Values(records), nil
		}
		al := attrs.Discover[T]().Select(names...)
		return filters.ByTextWith(slices.Values(records), *search, al), nil
	}
}

// narrow converts an untyped view back to T, dropping anything else.
func narrow[T any](seq iter.Seq[any]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for r := range seq {
			if t, ok := r.(T); ok && !yield(t) {
				return
			}
		}
	}
}

// Options builds the output options from the shared flags and config.
func Options(cmd *cli.Command) output.Options {
	pad, _ := config.GetInt("padding", 2)

	return output.Options{
		Format:  cmd.String("output"),
		Sort:    cmd.String("sort"),
		Titles:  cmd.Bool("titles"),
		Color:   colorEnabled(cmd),
		Padding: pad,
	}
}

// colorEnabled honors an explicit --color. Otherwise color follows the config
// file, but only when stdout is a terminal.
func colorEnabled(cmd *cli.Command) bool {
	if cmd.IsSet("color") {
		return cmd.Bool("color")
	}
	enabled, _ := config.GetBool("color", false)
	return enabled && term.IsTerminal(int(os.Stdout.Fd()))
}

// writer returns the root command's writer, falling back to stdout.
func writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}
