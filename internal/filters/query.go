// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"slices"

	"github.com/tfctl/textq/internal/attrs"
	"github.com/tfctl/textq/internal/log"
)

// ErrNotCollection is returned by From when its argument is not a slice or an
// array.
var ErrNotCollection = errors.New("not a collection")

// Query is an untyped, lazily evaluated pipeline over records whose element
// type is only known at run time. Each step returns a new Query; none
// evaluate anything until Seq is ranged over or Collect is called.
type Query struct {
	elem reflect.Type
	seq  iter.Seq[any]
}

// From starts a Query over a slice, an array, or a pointer to either. The
// element type is the collection's static element type or, when that is an
// interface, the dynamic type of the first non-nil element.
func From(collection any) (Query, error) {
	v := reflect.ValueOf(collection)
	for v.IsValid() && v.Kind() == reflect.Pointer && !v.IsNil() {
		v = v.Elem()
	}
	if !v.IsValid() || (v.Kind() != reflect.Slice && v.Kind() != reflect.Array) {
		return Query{}, fmt.Errorf("%w: %T", ErrNotCollection, collection)
	}

	elem := v.Type().Elem()
	if elem.Kind() == reflect.Interface {
		elem = nil
		for i := 0; i < v.Len(); i++ {
			if e := v.Index(i); !e.IsNil() {
				elem = e.Elem().Type()
				break
			}
		}
	}
	log.Debugf("query started: collection=%T, elem=%v, len=%d", collection, elem, v.Len())

	return Query{
		elem: elem,
		seq: func(yield func(any) bool) {
			for i := 0; i < v.Len(); i++ {
				if !yield(v.Index(i).Interface()) {
					return
				}
			}
		},
	}, nil
}

// FromSeq starts a Query over an existing sequence with a known element type.
func FromSeq(elem reflect.Type, seq iter.Seq[any]) Query {
	return Query{elem: elem, seq: seq}
}

// Elem returns the element type the Query discovered, or nil when it could
// not tell (an interface-typed collection with no non-nil elements).
func (q Query) Elem() reflect.Type { return q.elem }

// Seq returns the records of the Query.
func (q Query) Seq() iter.Seq[any] {
	if q.seq == nil {
		return func(func(any) bool) {}
	}
	return q.seq
}

// Collect evaluates the Query.
func (q Query) Collect() []any {
	return slices.Collect(q.Seq())
}

// Where appends a filter step with a plain function predicate.
func (q Query) Where(fn func(any) bool) Query {
	return q.Filter(Func[any]{Name: "Func", Fn: fn})
}

// Filter appends a filter step.
func (q Query) Filter(p Predicate[any]) Query {
	return Query{elem: q.elem, seq: Where(q.Seq(), p)}
}

// ByText appends a text filter step over the element type's text attributes,
// or only those named when names are given. An empty term, or no text
// attributes to search, leaves the Query as is.
func (q Query) ByText(term string, names ...string) Query {
	if term == "" {
		return q
	}
	al := attrs.DiscoverType(q.elem).Select(names...)
	if len(al) == 0 {
		log.Debugf("no text attributes, no filtering: elem=%v", q.elem)
		return q
	}
	return q.Filter(BuildTextPredicate(al, term))
}

// ByTextAny is the untyped form of ByText: it accepts any slice or array and
// returns the filtered records as opaque values.
func ByTextAny(collection any, term string, names ...string) (iter.Seq[any], error) {
	q, err := From(collection)
	if err != nil {
		return nil, err
	}
	return q.ByText(term, names...).Seq(), nil
}
