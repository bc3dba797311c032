// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tfctl/textq/internal/attrs"
	"github.com/tfctl/textq/internal/log"
)

// filterRegex is the pattern used to parse filter expressions into key,
// operator, and target components. It matches a key, and optionally an
// operator (with optional negation) and target. Operators are one of
// = ^ ~ < > @ or /, optionally prefixed with '!'. Examples:
// "Done" (key only), "Department=IT" (key + operator + target),
// "Title!@draft" (negated contains).
var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is a single parsed --filter expression including the key, operand,
// optional negation and value to match against.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Malformed entries are logged and skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override for situations where the value
	// contains commas.
	delim := ","
	if d, ok := os.LookupEnv("TEXTQ_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		// Regex should always match, so check for nil just in case.
		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Errorf("invalid filter: %s", filterSpec)
			continue
		}

		key := strings.TrimSpace(parts[1])
		operand := parts[2]
		target := parts[3]

		if key == "" {
			log.Errorf("invalid filter: empty key in %s", filterSpec)
			continue
		}

		negate := strings.HasPrefix(operand, "!")
		if negate {
			operand = strings.TrimPrefix(operand, "!")
		}

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: operand,
			Value:   target,
		})
	}

	return filters
}

// FieldFilter is a Filter bound to a record field.
type FieldFilter[T any] struct {
	Filter
	Field attrs.Field
}

// Matches reads the bound field from r and checks it against the filter. A
// missing value never matches.
func (f FieldFilter[T]) Matches(r T) bool {
	fv, ok := f.Field.Value(reflect.ValueOf(&r).Elem())
	if !ok {
		return false
	}
	return checkValue(fv, f.Filter)
}

func (f FieldFilter[T]) String() string {
	neg := ""
	if f.Negate {
		neg = "!"
	}
	return fmt.Sprintf("(Filter %s %s%s %q)", f.Key, neg, f.Operand, f.Value)
}

// SpecPredicate parses spec and binds each filter to a field of T, ANDing the
// results. Filter keys resolve first against the OutputKey of al and then
// against field names. Unknown keys are reported and skipped so that one
// typo does not reject every record.
func SpecPredicate[T any](al attrs.AttrList, spec string) Predicate[T] {
	filters := BuildFilters(spec)
	if len(filters) == 0 {
		return AllPass[T]{}
	}

	fields := attrs.Fields(reflect.TypeFor[T]())

	var c Criteria[T]
	for _, filter := range filters {
		key := filter.Key
		for _, attr := range al {
			if attr.OutputKey == filter.Key {
				key = attr.Key
				break
			}
		}

		var (
			field attrs.Field
			found bool
		)
		for _, f := range fields {
			if f.Name == key {
				field, found = f, true
				break
			}
		}

		if !found {
			msg := fmt.Sprintf("filter key not found: %s", filter.Key)
			log.Errorf("%s", msg)
			fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
			continue
		}

		c.Add(FieldFilter[T]{Filter: filter, Field: field})
	}

	return c.Predicate()
}

// checkValue dispatches on the kind of fv.
func checkValue(fv reflect.Value, filter Filter) bool {
	fv = attrs.Indirect(fv)
	if !fv.IsValid() {
		return false
	}

	// A bare key asks for a non-zero value.
	if filter.Operand == "" {
		return !fv.IsZero() != filter.Negate
	}

	switch fv.Kind() {
	case reflect.String:
		return checkStringOperand(fv.String(), filter)
	case reflect.Bool:
		return checkStringOperand(strconv.FormatBool(fv.Bool()), filter)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return checkNumericOperand(float64(fv.Int()), filter)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return checkNumericOperand(float64(fv.Uint()), filter)
	case reflect.Float32, reflect.Float64:
		return checkNumericOperand(fv.Float(), filter)
	case reflect.Slice, reflect.Array, reflect.Map:
		return checkContainsOperand(fv, filter)
	}

	if fv.CanInterface() {
		if ts, ok := fv.Interface().(time.Time); ok {
			return checkStringOperand(ts.Format(time.RFC3339), filter)
		}
	}

	log.Errorf("unsupported type for filtering: %s", fv.Type())
	return false
}

// checkContainsOperand evaluates a membership style filter (operand '@')
// against slice or map values. Elements and keys compare by their printed
// form.
func checkContainsOperand(value reflect.Value, filter Filter) bool {
	if filter.Operand != "@" {
		log.Errorf("unsupported collection operand: %s", filter.Operand)
		return false
	}

	found := false
	switch value.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < value.Len() && !found; i++ {
			found = fmt.Sprint(value.Index(i)) == filter.Value
		}
	case reflect.Map:
		for _, k := range value.MapKeys() {
			if fmt.Sprint(k) == filter.Value {
				found = true
				break
			}
		}
	}

	return found != filter.Negate
}

// checkNumericOperand compares a numeric value against the filter value using
// numeric semantics. Supported operands: =, >, < and the negated form via
// filter.Negate (e.g., != is represented as Negate + "=").
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		log.Errorf("invalid numeric value: %s", filter.Value)
		return false
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	case "<":
		return (value < tgt) == !filter.Negate
	default:
		log.Errorf("unsupported numeric operand: %s", filter.Operand)
		return false
	}
}

// checkStringOperand evaluates a string comparison style filter against the
// provided value using the operand semantics.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return value > filter.Value == !filter.Negate
	case "<":
		return value < filter.Value == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Errorf("invalid regex: %s", filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Errorf("unsupported filtering operand: %s", filter.Operand)
		return false
	}
}
