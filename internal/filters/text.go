// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"iter"
	"slices"

	"github.com/tfctl/textq/internal/attrs"
	"github.com/tfctl/textq/internal/log"
)

// BuildTextPredicate returns a predicate that is true when any attribute in
// al contains term. The Or members follow the order of al. An empty term or
// an empty list yields AllPass.
func BuildTextPredicate[T any](al attrs.TextAttrList[T], term string) Predicate[T] {
	if term == "" || len(al) == 0 {
		return AllPass[T]{}
	}

	or := make(Or[T], 0, len(al))
	for _, a := range al {
		or = append(or, Contains[T]{Attr: a, Term: term})
	}

	log.Tracef("text predicate built: %s", or)
	return or
}

// Where returns a lazy view of seq holding the records p matches. Nothing is
// evaluated until the view is ranged over, and an AllPass predicate returns
// seq itself.
func Where[T any](seq iter.Seq[T], p Predicate[T]) iter.Seq[T] {
	if IsAllPass(p) {
		return seq
	}

	return func(yield func(T) bool) {
		for r := range seq {
			if p.Matches(r) && !yield(r) {
				return
			}
		}
	}
}

// ByText filters seq to the records where any text attribute of T contains
// term. T's text attributes are discovered by reflection. An empty term
// returns seq without inspecting T; so does a T with no text attributes.
func ByText[T any](seq iter.Seq[T], term string) iter.Seq[T] {
	if term == "" {
		log.Debugf("empty term, no filtering")
		return seq
	}
	return ByTextWith(seq, term, attrs.Discover[T]())
}

// ByTextPtr is ByText for an optional term. A nil term means no filtering.
func ByTextPtr[T any](seq iter.Seq[T], term *string) iter.Seq[T] {
	if term == nil {
		log.Debugf("absent term, no filtering")
		return seq
	}
	return ByText(seq, *term)
}

// ByTextWith filters seq using an explicit list of text attributes instead of
// reflection.
func ByTextWith[T any](seq iter.Seq[T], term string, al attrs.TextAttrList[T]) iter.Seq[T] {
	if term == "" {
		return seq
	}
	if len(al) == 0 {
		log.Debugf("no text attributes, no filtering")
		return seq
	}
	return Where(seq, BuildTextPredicate(al, term))
}

// SliceByText is ByText over a slice.
func SliceByText[T any](records []T, term string) iter.Seq[T] {
	return ByText(slices.Values(records), term)
}
