// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"

	"github.com/tfctl/textq/internal/attrs"
	"github.com/tfctl/textq/internal/log"
)

// schemaTag represents one discovered attribute when emitting schema
// information (--schema flag).
type schemaTag struct {
	Kind string
	Name string
	Type string
}

// print renders the tag into its display form.
func (t schemaTag) print() string {
	return fmt.Sprintf("%-6s %-16s %s", t.Kind, t.Name, t.Type)
}

// DumpSchema writes the attributes of typ to w, text attributes first. If w
// is nil, os.Stdout is used.
func DumpSchema(typ reflect.Type, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w,
		`Record attributes that are available to the --attrs, --filter and --expr
flags. The --search term is matched against the text attributes only.`)
	fmt.Fprintln(w, "")

	tags := schemaTags(typ)
	if len(tags) == 0 {
		log.Debugf("no attributes found: type=%v", typ)
		return
	}

	for _, tag := range tags {
		fmt.Fprintln(w, tag.print())
	}
}

// schemaTags collects and sorts the attributes of typ.
func schemaTags(typ reflect.Type) []schemaTag {
	fields := attrs.Fields(typ)
	tags := make([]schemaTag, 0, len(fields))

	for _, f := range fields {
		kind := "attr"
		if f.Text {
			kind = "text"
		}
		tags = append(tags, schemaTag{Kind: kind, Name: f.Name, Type: f.Type.String()})
	}

	sort.SliceStable(tags, func(i, j int) bool {
		if tags[i].Kind == tags[j].Kind {
			return tags[i].Name < tags[j].Name
		}
		return tags[i].Kind > tags[j].Kind
	})

	return tags
}
