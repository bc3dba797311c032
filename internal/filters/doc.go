// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters builds predicates dynamically and applies them lazily to
// in-memory record collections.
//
// Text Filtering:
//
// The central operation keeps the records where any text attribute contains a
// search term. Matching is a literal, case-sensitive substring test. The
// per-attribute checks are ORed in attribute discovery order, so the
// predicate tree renders the same way on every run:
//
//	(Or (Contains Firstname "Alice") (Contains Lastname "Alice") (Contains Department "Alice"))
//
// An empty term, or a record type without text attributes, is a no-op that
// returns the source view untouched.
//
// Typed and Untyped Forms:
//
//   - ByText, ByTextPtr and SliceByText discover text attributes of a
//     compile-time type T by reflection.
//   - ByTextWith takes an explicit attrs.TextAttrList and needs no reflection.
//   - From and Query cover collections whose element type is only known at
//     run time; ByTextAny is the one-call form.
//
// All forms return lazy views (iter.Seq) that neither copy nor mutate the
// source and that compose with further Where steps.
//
// Field Filters:
//
// BuildFilters parses key/operator/value expressions joined by a delimiter
// (default ",", overridable with TEXTQ_FILTER_DELIM):
//
//   - = : exact match (supports negation with !=)
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < : less than (numeric or lexical)
//   - > : greater than (numeric or lexical)
//   - @ : contains substring, or membership for slices and maps
//   - / : regex match
//
// A bare key ("Done") matches records whose field is non-zero. SpecPredicate
// binds the parsed filters to the fields of a record type.
//
// Criteria:
//
// Criteria gathers optional predicates and ANDs them, for callers that
// narrow a query only when an option was supplied.
package filters
