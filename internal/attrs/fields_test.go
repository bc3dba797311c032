// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package attrs

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type department string

type person struct {
	Firstname string
	Lastname  string
	Age       int
}

type staff struct {
	ID int
	person
	Department department
	Secret     string `textq:"-"`
	Nick       string `textq:"nickname"`
	notes      string
	Hired      time.Time
}

type shadow struct {
	person
	Lastname string
}

type badge struct {
	Lastname string
	Number   int
}

// Lastname is promoted by both person and badge at the same depth.
type ambiguous struct {
	person
	badge
}

type counters struct {
	Hits  int
	Ratio float64
}

type withPtr struct {
	*person
	Title string
}

func fieldNames(fields []Field) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names
}

func TestFields(t *testing.T) {
	tests := []struct {
		name     string
		typ      reflect.Type
		want     []string
		wantText []string
	}{
		{
			name:     "plain struct",
			typ:      reflect.TypeFor[person](),
			want:     []string{"Firstname", "Lastname", "Age"},
			wantText: []string{"Firstname", "Lastname"},
		},
		{
			name:     "pointer to struct",
			typ:      reflect.TypeFor[*person](),
			want:     []string{"Firstname", "Lastname", "Age"},
			wantText: []string{"Firstname", "Lastname"},
		},
		{
			name:     "embedded, tags, named string, unexported",
			typ:      reflect.TypeFor[staff](),
			want:     []string{"ID", "Firstname", "Lastname", "Age", "Department", "nickname", "Hired"},
			wantText: []string{"Firstname", "Lastname", "Department", "nickname"},
		},
		{
			name:     "shallow field shadows embedded",
			typ:      reflect.TypeFor[shadow](),
			want:     []string{"Firstname", "Lastname", "Age"},
			wantText: []string{"Firstname", "Lastname"},
		},
		{
			name:     "equal depth names hide each other",
			typ:      reflect.TypeFor[ambiguous](),
			want:     []string{"Firstname", "Age", "Number"},
			wantText: []string{"Firstname"},
		},
		{
			name: "no text fields",
			typ:  reflect.TypeFor[counters](),
			want: []string{"Hits", "Ratio"},
		},
		{
			name: "non-struct",
			typ:  reflect.TypeFor[string](),
		},
		{
			name: "interface",
			typ:  reflect.TypeFor[any](),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, len(tt.want), len(Fields(tt.typ)))
			if len(tt.want) > 0 {
				assert.Equal(t, tt.want, fieldNames(Fields(tt.typ)))
			}
			assert.Equal(t, len(tt.wantText), len(TextFields(tt.typ)))
			if len(tt.wantText) > 0 {
				assert.Equal(t, tt.wantText, fieldNames(TextFields(tt.typ)))
			}
		})
	}
}

func TestFields_ShadowKeepsShallowIndex(t *testing.T) {
	fields := Fields(reflect.TypeFor[shadow]())
	require.Len(t, fields, 3)
	assert.Equal(t, []int{1}, fields[1].Index)

	s := shadow{person: person{Lastname: "inner"}, Lastname: "outer"}
	assert.Equal(t, "outer", fields[1].String(reflect.ValueOf(s)))
}

func TestField_Value(t *testing.T) {
	s := &staff{
		ID:         7,
		person:     person{Firstname: "Alice", Lastname: "Williams"},
		Department: "IT",
		Nick:       "al",
	}
	fields := Fields(reflect.TypeOf(s))
	byName := map[string]Field{}
	for _, f := range fields {
		byName[f.Name] = f
	}

	v := reflect.ValueOf(s)
	assert.Equal(t, "Alice", byName["Firstname"].String(v))
	assert.Equal(t, "IT", byName["Department"].String(v))
	assert.Equal(t, "al", byName["nickname"].String(v))
	assert.Equal(t, "", byName["ID"].String(v))
	assert.Equal(t, 7, byName["ID"].Interface(v))

	// Promoted through an unexported embedded struct: readable as text but not
	// as an interface.
	assert.Nil(t, byName["Firstname"].Interface(v))

	var nilStaff *staff
	assert.Equal(t, "", byName["Firstname"].String(reflect.ValueOf(nilStaff)))
	assert.Nil(t, byName["ID"].Interface(reflect.ValueOf(nilStaff)))
}

func TestField_NilEmbeddedPointer(t *testing.T) {
	fields := TextFields(reflect.TypeFor[withPtr]())
	assert.Equal(t, []string{"Firstname", "Lastname", "Title"}, fieldNames(fields))

	w := withPtr{Title: "lead"}
	assert.Equal(t, "", fields[0].String(reflect.ValueOf(w)))
	assert.Equal(t, "lead", fields[2].String(reflect.ValueOf(w)))
}

func TestDiscover(t *testing.T) {
	list := Discover[staff]()
	assert.Equal(t, []string{"Firstname", "Lastname", "Department", "nickname"}, list.Names())

	s := staff{person: person{Firstname: "Bob", Lastname: "Brown"}, Department: "HR"}
	got := make([]string, 0, len(list))
	for _, a := range list {
		got = append(got, a.Get(s))
	}
	assert.Equal(t, []string{"Bob", "Brown", "HR", ""}, got)

	ptrs := Discover[*person]()
	assert.Equal(t, []string{"Firstname", "Lastname"}, ptrs.Names())
	assert.Equal(t, "", ptrs[0].Get(nil))
	assert.Equal(t, "Bob", ptrs[0].Get(&person{Firstname: "Bob"}))

	assert.Empty(t, Discover[counters]())
	assert.Empty(t, Discover[any]())
}

func TestDiscoverType(t *testing.T) {
	list := DiscoverType(reflect.TypeFor[person]())
	require.Equal(t, []string{"Firstname", "Lastname"}, list.Names())

	assert.Equal(t, "Charlie", list[0].Get(person{Firstname: "Charlie"}))
	assert.Equal(t, "Charlie", list[0].Get(&person{Firstname: "Charlie"}))
	assert.Equal(t, "", list[0].Get(counters{Hits: 1}))
	assert.Equal(t, "", list[0].Get(nil))
	assert.Equal(t, "", list[0].Get("Charlie"))
}

func TestTextAttrList_Select(t *testing.T) {
	list := TextAttrList[person]{
		Text("Firstname", func(p person) string { return p.Firstname }),
		Text("Lastname", func(p person) string { return p.Lastname }),
		Text("Upper", func(p person) string { return strings.ToUpper(p.Lastname) }),
	}

	assert.Equal(t, list.Names(), list.Select().Names())
	assert.Equal(t, []string{"Firstname", "Upper"}, list.Select("Upper", "Firstname").Names())
	assert.Empty(t, list.Select("Nope"))
}
