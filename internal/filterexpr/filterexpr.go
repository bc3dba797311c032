// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filterexpr

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/tfctl/textq/internal/attrs"
	"github.com/tfctl/textq/internal/filters"
	"github.com/tfctl/textq/internal/log"
)

var (
	// ErrInvalidExpression is returned when a template does not compile.
	ErrInvalidExpression = errors.New("invalid filter expression")
	// ErrMissingParam is returned when fewer parameters are supplied than the
	// template references.
	ErrMissingParam = errors.New("missing expression parameter")
)

// paramPrefix names positional parameters in the compiled environment, so @0
// becomes param0.
const paramPrefix = "param"

// attrPrefix names fields by position in the compiled environment, so the
// third field is also _attr2. Tag renames need not be valid identifiers.
const attrPrefix = "_attr"

var (
	// methodRegex matches Attr.Contains(arg), Attr.StartsWith(arg) and
	// Attr.EndsWith(arg) with a parenthesis-free argument.
	methodRegex = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*)\.(Contains|StartsWith|EndsWith)\(\s*([^()]*?)\s*\)`)
	paramRegex  = regexp.MustCompile(`@(\d+)`)
	identRegex  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	// literalRegex matches quoted string literals, honoring backslash escapes.
	literalRegex     = regexp.MustCompile("\"(?:[^\"\\\\]|\\\\.)*\"|'(?:[^'\\\\]|\\\\.)*'|`[^`]*`")
	placeholderRegex = regexp.MustCompile(`\x00(\d+)\x00`)
)

var methodOperators = map[string]string{
	"Contains":   "contains",
	"StartsWith": "startsWith",
	"EndsWith":   "endsWith",
}

// Filter is a compiled text filter expression bound to a record type.
type Filter struct {
	// Template is the expression as written.
	Template string
	// Source is the expr-lang program Template translated to.
	Source string

	elem    reflect.Type
	fields  []attrs.Field
	params  int
	program *vm.Program
}

// Template builds the default text filter expression for the named
// attributes: "A.Contains(@0) || B.Contains(@0)".
func Template(names []string) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, n+".Contains(@0)")
	}
	return strings.Join(parts, " || ")
}

// Translate rewrites a template into expr-lang source. Method-style string
// tests become operators and @N parameters become param<N>. String literals
// are left untouched. The second result is the number of parameters the
// template needs (highest index plus one).
func Translate(template string) (string, int) {
	var literals []string
	src := literalRegex.ReplaceAllStringFunc(template, func(lit string) string {
		literals = append(literals, lit)
		return fmt.Sprintf("\x00%d\x00", len(literals)-1)
	})

	params := 0
	src = paramRegex.ReplaceAllStringFunc(src, func(m string) string {
		n, _ := strconv.Atoi(m[1:])
		if n+1 > params {
			params = n + 1
		}
		return paramPrefix + m[1:]
	})

	// Repeat so that nested calls in arguments are rewritten inside out.
	for {
		next := methodRegex.ReplaceAllStringFunc(src, func(m string) string {
			parts := methodRegex.FindStringSubmatch(m)
			return fmt.Sprintf("(%s %s %s)", parts[1], methodOperators[parts[2]], parts[3])
		})
		if next == src {
			break
		}
		src = next
	}

	src = placeholderRegex.ReplaceAllStringFunc(src, func(m string) string {
		n, _ := strconv.Atoi(strings.Trim(m, "\x00"))
		return literals[n]
	})

	return src, params
}

// Compile translates and compiles template against the exported fields of
// elem. Text fields are exposed as plain strings, other fields as their
// values, and each parameter as param<N>. Every field is bound under its
// positional name (_attr<N>) and, when that is a valid identifier, under its
// own name.
func Compile(template string, elem reflect.Type) (*Filter, error) {
	if strings.TrimSpace(template) == "" {
		return nil, fmt.Errorf("%w: empty template", ErrInvalidExpression)
	}

	source, params := Translate(template)
	f := &Filter{
		Template: template,
		Source:   source,
		elem:     attrs.IndirectType(elem),
		fields:   attrs.Fields(elem),
		params:   params,
	}

	env := make(map[string]any, 2*len(f.fields)+params)
	for i, field := range f.fields {
		if field.Text {
			bind(env, i, field, "")
		} else {
			bind(env, i, field, reflect.Zero(field.Type).Interface())
		}
	}
	for i := 0; i < params; i++ {
		env[paramPrefix+strconv.Itoa(i)] = ""
	}

	program, err := expr.Compile(source, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}
	f.program = program

	log.Debugf("expression compiled: template=%s, source=%s, params=%d", template, source, params)
	return f, nil
}

// Params returns the number of positional parameters the filter needs.
func (f *Filter) Params() int { return f.params }

// String returns the translated source.
func (f *Filter) String() string { return f.Source }

// Matches evaluates the filter against one record.
func (f *Filter) Matches(record any, params ...any) (bool, error) {
	if len(params) < f.params {
		return false, fmt.Errorf("%w: need %d, got %d", ErrMissingParam, f.params, len(params))
	}

	out, err := expr.Run(f.program, f.env(record, params))
	if err != nil {
		return false, err
	}
	matched, _ := out.(bool)
	return matched, nil
}

// Predicate binds params and returns the filter as a predicate. Records that
// fail to evaluate are logged and treated as non-matching.
func (f *Filter) Predicate(params ...any) (filters.Predicate[any], error) {
	if len(params) < f.params {
		return nil, fmt.Errorf("%w: need %d, got %d", ErrMissingParam, f.params, len(params))
	}

	return filters.Func[any]{
		Name: "Expr " + f.Source,
		Fn: func(record any) bool {
			matched, err := f.Matches(record, params...)
			if err != nil {
				log.Errorf("expression evaluation failed: source=%s, err=%v", f.Source, err)
				return false
			}
			return matched
		},
	}, nil
}

// Apply returns a lazy view of seq holding the records the filter matches.
func (f *Filter) Apply(seq iter.Seq[any], params ...any) (iter.Seq[any], error) {
	p, err := f.Predicate(params...)
	if err != nil {
		return nil, err
	}
	return filters.Where(seq, p), nil
}

// env builds the evaluation environment for one record. Records of another
// type, or nil records, see zero values.
func (f *Filter) env(record any, params []any) map[string]any {
	env := make(map[string]any, 2*len(f.fields)+len(params))

	v := attrs.Indirect(reflect.ValueOf(record))
	if v.IsValid() && v.Type() != f.elem {
		v = reflect.Value{}
	}

	for i, field := range f.fields {
		if field.Text {
			bind(env, i, field, field.String(v))
			continue
		}
		value := field.Interface(v)
		if value == nil {
			value = reflect.Zero(field.Type).Interface()
		}
		bind(env, i, field, value)
	}

	for i, p := range params {
		env[paramPrefix+strconv.Itoa(i)] = p
	}

	return env
}

// bind sets the i-th field's value under its name and its positional name.
// The positional name wins a collision.
func bind(env map[string]any, i int, field attrs.Field, value any) {
	if identRegex.MatchString(field.Name) {
		env[field.Name] = value
	}
	env[AttrIdent(i)] = value
}

// AttrIdent returns the positional name of the i-th field of a record type.
func AttrIdent(i int) string {
	return attrPrefix + strconv.Itoa(i)
}

// ByText is the expression-driven equivalent of filters.ByTextAny: it builds
// the default template over the element type's text attributes and applies it
// with term as @0. Names, when given, restrict the attributes searched. An
// empty term, or no text attributes to search, leaves the collection as is.
func ByText(collection any, term string, names ...string) (iter.Seq[any], error) {
	q, err := filters.From(collection)
	if err != nil {
		return nil, err
	}
	if term == "" {
		return q.Seq(), nil
	}

	selected := attrs.DiscoverType(q.Elem()).Select(names...)
	if len(selected) == 0 {
		log.Debugf("no text attributes, no filtering: elem=%v", q.Elem())
		return q.Seq(), nil
	}

	want := make(map[string]bool, len(selected))
	for _, n := range selected.Names() {
		want[n] = true
	}
	var idents []string
	for i, field := range attrs.Fields(q.Elem()) {
		if field.Text && want[field.Name] {
			idents = append(idents, AttrIdent(i))
		}
	}

	f, err := Compile(Template(idents), q.Elem())
	if err != nil {
		return nil, err
	}
	return f.Apply(q.Seq(), term)
}
