// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

// Criteria collects optional predicates and combines them with And. It
// replaces chains of "if the caller asked for X, narrow the query by X".
type Criteria[T any] struct {
	preds []Predicate[T]
}

// When adds p only if cond is true.
func (c *Criteria[T]) When(cond bool, p Predicate[T]) *Criteria[T] {
	if cond && !IsAllPass(p) {
		c.preds = append(c.preds, p)
	}
	return c
}

// Add adds p unconditionally.
func (c *Criteria[T]) Add(p Predicate[T]) *Criteria[T] {
	return c.When(true, p)
}

// Len returns the number of predicates collected.
func (c *Criteria[T]) Len() int { return len(c.preds) }

// Predicate returns the combined predicate: AllPass when empty, the lone
// member when there is one, an And otherwise.
func (c *Criteria[T]) Predicate() Predicate[T] {
	switch len(c.preds) {
	case 0:
		return AllPass[T]{}
	case 1:
		return c.preds[0]
	default:
		return And[T](append([]Predicate[T](nil), c.preds...))
	}
}
