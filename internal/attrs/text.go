// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"reflect"

	"github.com/tfctl/textq/internal/log"
)

// TextAttr is a named accessor returning a record's text value for one
// attribute. Lists of TextAttr are what the text filter searches.
type TextAttr[T any] struct {
	Name string
	Get  func(T) string
}

// Text builds a TextAttr from an explicit accessor. It is the reflection-free
// way to describe a record type.
func Text[T any](name string, get func(T) string) TextAttr[T] {
	return TextAttr[T]{Name: name, Get: get}
}

// TextAttrList is an ordered set of text attributes.
type TextAttrList[T any] []TextAttr[T]

// Names returns the attribute names in order.
func (l TextAttrList[T]) Names() []string {
	names := make([]string, 0, len(l))
	for _, a := range l {
		names = append(names, a.Name)
	}
	return names
}

// Select returns the attributes whose names appear in names, keeping the
// list's own order. An empty names selects everything.
func (l TextAttrList[T]) Select(names ...string) TextAttrList[T] {
	if len(names) == 0 {
		return l
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var selected TextAttrList[T]
	for _, a := range l {
		if want[a.Name] {
			selected = append(selected, a)
		}
	}
	log.Debugf("text attrs selected: names=%v", selected.Names())
	return selected
}

// Discover returns the text attributes of T found by reflection. T may be a
// struct or a pointer to one; other types, including interfaces, have none.
func Discover[T any]() TextAttrList[T] {
	fields := TextFields(reflect.TypeFor[T]())

	list := make(TextAttrList[T], 0, len(fields))
	for _, f := range fields {
		list = append(list, TextAttr[T]{
			Name: f.Name,
			Get: func(r T) string {
				return f.String(reflect.ValueOf(&r).Elem())
			},
		})
	}

	log.Debugf("text attrs discovered: type=%v, names=%v", reflect.TypeFor[T](), list.Names())
	return list
}

// DiscoverType is the untyped form of Discover: the element type is only
// known at run time, and accessors take the record as an opaque value.
// Records whose dynamic type differs from typ read as "".
func DiscoverType(typ reflect.Type) TextAttrList[any] {
	fields := TextFields(typ)
	base := IndirectType(typ)

	list := make(TextAttrList[any], 0, len(fields))
	for _, f := range fields {
		list = append(list, TextAttr[any]{
			Name: f.Name,
			Get: func(r any) string {
				v := Indirect(reflect.ValueOf(r))
				if !v.IsValid() || v.Type() != base {
					return ""
				}
				return f.String(v)
			},
		})
	}

	log.Debugf("text attrs discovered: type=%v, names=%v", typ, list.Names())
	return list
}
