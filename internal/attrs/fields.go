// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"reflect"
	"strings"

	"github.com/tfctl/textq/internal/log"
)

// TagKey is the struct tag consulted during discovery. `textq:"-"` hides a
// field, `textq:"Name"` renames it.
const TagKey = "textq"

// maxEmbedDepth limits how deep embedded structs are walked.
const maxEmbedDepth = 4

// Field describes one exported field discovered on a struct type. Index is
// the reflect index path from the outer struct, so promoted fields of
// embedded structs are reachable.
type Field struct {
	Name  string
	Index []int
	Type  reflect.Type
	// Text is true when the field's kind is string, including named string
	// types.
	Text bool
}

// Fields returns the exported fields of typ in declaration order, walking
// embedded structs in place. Pointers are dereferenced; any non-struct type
// has no fields.
func Fields(typ reflect.Type) []Field {
	typ = IndirectType(typ)
	if typ == nil || typ.Kind() != reflect.Struct {
		log.Tracef("no fields: type=%v", typ)
		return nil
	}

	return dedupe(fieldWalker(typ, nil, 0))
}

// TextFields returns the subset of Fields(typ) that are text-valued.
func TextFields(typ reflect.Type) []Field {
	var text []Field
	for _, f := range Fields(typ) {
		if f.Text {
			text = append(text, f)
		}
	}
	return text
}

// fieldWalker recursively walks a struct type collecting exported fields.
func fieldWalker(typ reflect.Type, index []int, depth int) []Field {
	var fields []Field

	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)

		name, hidden, renamed := tagName(sf)
		if hidden {
			continue
		}

		idx := make([]int, len(index)+1)
		copy(idx, index)
		idx[len(index)] = i

		if sf.Anonymous && !renamed && depth < maxEmbedDepth {
			if et := IndirectType(sf.Type); et.Kind() == reflect.Struct {
				fields = append(fields, fieldWalker(et, idx, depth+1)...)
				continue
			}
		}

		if !sf.IsExported() {
			continue
		}

		fields = append(fields, Field{
			Name:  name,
			Index: idx,
			Type:  sf.Type,
			Text:  sf.Type.Kind() == reflect.String,
		})
		log.Tracef("field discovered: name=%s, text=%v", name, sf.Type.Kind() == reflect.String)
	}

	return fields
}

// dedupe applies Go's promotion rule: a shallower field hides deeper fields
// of the same name, and two of the same name at the same depth hide each
// other. A surviving field keeps the position it was first seen at.
func dedupe(fields []Field) []Field {
	type best struct {
		field Field
		pos   int
		tied  bool
	}

	byName := make(map[string]*best, len(fields))
	for i, f := range fields {
		b, ok := byName[f.Name]
		switch {
		case !ok:
			byName[f.Name] = &best{field: f, pos: i}
		case len(f.Index) < len(b.field.Index):
			b.field, b.tied = f, false
		case len(f.Index) == len(b.field.Index):
			b.tied = true
		}
	}

	out := make([]Field, 0, len(fields))
	for i, f := range fields {
		b := byName[f.Name]
		if b.pos != i {
			continue
		}
		if b.tied {
			log.Tracef("ambiguous field dropped: name=%s", f.Name)
			continue
		}
		out = append(out, b.field)
	}
	return out
}

// tagName resolves the discovery name of a struct field.
func tagName(sf reflect.StructField) (name string, hidden bool, renamed bool) {
	tag, ok := sf.Tag.Lookup(TagKey)
	if !ok {
		return sf.Name, false, false
	}
	tag = strings.TrimSpace(strings.Split(tag, ",")[0])
	switch tag {
	case "-":
		return "", true, false
	case "":
		return sf.Name, false, false
	default:
		return tag, false, true
	}
}

// Value returns the field's value within v. The second result is false when
// v (or an embedded pointer along the path) is nil or v is not a struct of
// the expected shape.
func (f Field) Value(v reflect.Value) (reflect.Value, bool) {
	v = Indirect(v)
	for _, i := range f.Index {
		v = Indirect(v)
		if !v.IsValid() || v.Kind() != reflect.Struct || i >= v.NumField() {
			return reflect.Value{}, false
		}
		v = v.Field(i)
	}
	return v, v.IsValid()
}

// String returns the field's text value within v, or "" when it cannot be
// read as text.
func (f Field) String(v reflect.Value) string {
	fv, ok := f.Value(v)
	if !ok || fv.Kind() != reflect.String {
		return ""
	}
	return fv.String()
}

// Interface returns the field's value within v as an interface, or nil.
func (f Field) Interface(v reflect.Value) any {
	fv, ok := f.Value(v)
	if !ok || !fv.CanInterface() {
		return nil
	}
	return fv.Interface()
}

// Indirect follows pointers and interfaces until a concrete value is reached.
// A nil pointer or interface yields the zero Value.
func Indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// IndirectType strips pointer indirections from typ.
func IndirectType(typ reflect.Type) reflect.Type {
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ
}
