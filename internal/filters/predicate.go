// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"strings"

	"github.com/tfctl/textq/internal/attrs"
)

// Predicate decides whether a record belongs in a filtered view. String
// renders the predicate tree in a stable, inspectable form.
type Predicate[T any] interface {
	Matches(T) bool
	String() string
}

// AllPass matches everything and is the same as no filter. Where recognizes
// it and skips wrapping the source.
type AllPass[T any] struct{}

func (AllPass[T]) Matches(T) bool { return true }

func (AllPass[T]) String() string { return "(AllPass)" }

// Contains is a literal, case-sensitive substring test against one text
// attribute.
type Contains[T any] struct {
	Attr attrs.TextAttr[T]
	Term string
}

func (c Contains[T]) Matches(r T) bool {
	return strings.Contains(c.Attr.Get(r), c.Term)
}

func (c Contains[T]) String() string {
	return fmt.Sprintf("(Contains %s %q)", c.Attr.Name, c.Term)
}

// Or matches when any member matches, evaluated left to right. An empty Or
// matches nothing.
type Or[T any] []Predicate[T]

func (o Or[T]) Matches(r T) bool {
	for _, p := range o {
		if p.Matches(r) {
			return true
		}
	}
	return false
}

func (o Or[T]) String() string { return group("Or", o) }

// And matches when every member matches. An empty And matches everything.
type And[T any] []Predicate[T]

func (a And[T]) Matches(r T) bool {
	for _, p := range a {
		if !p.Matches(r) {
			return false
		}
	}
	return true
}

func (a And[T]) String() string { return group("And", a) }

// Not inverts its member.
type Not[T any] struct {
	P Predicate[T]
}

func (n Not[T]) Matches(r T) bool { return !n.P.Matches(r) }

func (n Not[T]) String() string { return "(Not " + n.P.String() + ")" }

// Func adapts a plain function. Name is what String reports.
type Func[T any] struct {
	Name string
	Fn   func(T) bool
}

func (f Func[T]) Matches(r T) bool { return f.Fn(r) }

func (f Func[T]) String() string { return "(" + f.Name + ")" }

// IsAllPass reports whether p is nil or an AllPass.
func IsAllPass[T any](p Predicate[T]) bool {
	if p == nil {
		return true
	}
	_, ok := p.(AllPass[T])
	return ok
}

func group[T any](op string, members []Predicate[T]) string {
	var sb strings.Builder
	sb.WriteString("(" + op)
	for _, p := range members {
		sb.WriteString(" " + p.String())
	}
	sb.WriteString(")")
	return sb.String()
}
