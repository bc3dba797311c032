// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/textq/internal/log"
)

// lengthRegex finds the length component(s) of a transform spec.
var lengthRegex = regexp.MustCompile(`-?\d+`)

// Attr represents each of the record fields to be included in the output.
type Attr struct {
	// The record field name to read.
	Key string `yaml:"key" json:"Key"`
	// Should this Attr be included in output or is it just
	// intended for filtering and sorting?
	Include bool `yaml:"include" json:"Include"`
	// The key to use in the output. This is also used as the column title when
	// output=text.
	OutputKey string `yaml:"outputKey" json:"OutputKey"`
	// Transformation spec to apply to the output value.
	TransformSpec string `yaml:"transformSpec" json:"TransformSpec"`
}

// Transform applies the attribute's transform spec to a value and returns the
// transformed result. Time values honor t (local time) and T (time ago);
// strings honor l/u (case) and a length, where a negative length elides the
// middle.
func (a *Attr) Transform(value interface{}) interface{} {
	if ts, ok := value.(time.Time); ok {
		return a.transformTime(ts)
	}

	result, ok := value.(string)
	if !ok {
		log.Tracef("non-string value: value=%v", value)
		return value
	}

	// The case transformation appearing last wins. This covers a global case
	// transformation prepended to the attr's own, so '*::U,Lastname::l' is
	// lower case.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")

	if lastL > lastU {
		result = strings.ToLower(result)
		log.Tracef("case lower: result=%s", result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
		log.Tracef("case upper: result=%s", result)
	}

	if a.TransformSpec == "" {
		return result
	}

	// Same rule as case: the last length overrides a global one.
	match := lengthRegex.FindAllString(a.TransformSpec, -1)
	if len(match) == 0 {
		return result
	}

	l, _ := strconv.Atoi(match[len(match)-1])
	abs := int(math.Abs(float64(l)))
	if l == 0 || len(result) <= abs {
		return result
	}

	if l < 0 {
		lr := abs/2 - 1
		if lr < 1 {
			lr = 1
		}
		result = result[:lr] + ".." + result[len(result)-lr:]
		log.Tracef("length middle: result=%s", result)
	} else {
		result = result[:l]
		log.Tracef("length trunc: result=%s", result)
	}

	return result
}

// transformTime renders a time per the t/T flags, leaving it untouched when
// neither is present.
func (a *Attr) transformTime(ts time.Time) interface{} {
	switch {
	case strings.Contains(a.TransformSpec, "T"):
		return humanize.Time(ts)
	case strings.Contains(a.TransformSpec, "t"):
		return ts.In(time.Local).Format("2006-01-02T15:04:05MST")
	default:
		return ts
	}
}

// AttrList is a collection of Attr used to shape output fields.
type AttrList []Attr

// FromFields builds the default AttrList for a record type: every exported
// field, included, keyed by its name.
func FromFields(fields []Field) AttrList {
	al := make(AttrList, 0, len(fields))
	for _, f := range fields {
		al = append(al, Attr{Key: f.Name, OutputKey: f.Name, Include: true})
	}
	return al
}

// Set parses each spec from --attrs and adds it to the AttrList.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		log.Debugf("early return: value=%s", value)
		return nil
	}

	const (
		keyIdx = iota
		outputIdx
		transformIdx
	)

	// There are three : delimited fields in each spec. The first is the record
	// field. The second is the key to use in the output. The third is the
	// transformation spec. The latter two are optional.
	specs := strings.Split(value, ",")
	log.Debugf("specs split: specs=%v", specs)
specloop:
	for _, spec := range specs {
		if strings.TrimSpace(spec) == "" {
			continue
		}

		attr := Attr{
			Include: true,
		}

		fields := strings.Split(spec, ":")
		if len(fields) > 3 {
			return fmt.Errorf("invalid attr spec: %s", spec)
		}

		// A leading ! keeps the attr for sorting and filtering but hides it.
		attr.Key = strings.TrimSpace(fields[keyIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		if attr.Key == "" {
			return fmt.Errorf("invalid attr spec: empty key in %q", spec)
		}

		if attr.Key == "*" {
			attr.Include = false
		}
		log.Tracef("key parsed: key=%s, include=%v", attr.Key, attr.Include)

		attr.OutputKey = attr.Key
		if len(fields) > outputIdx && strings.TrimSpace(fields[outputIdx]) != "" {
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		}

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}
		log.Tracef("attr parsed: outputKey=%s, spec=%s", attr.OutputKey, attr.TransformSpec)

		// If the attr already exists in the list (because it is a default for
		// the record type or the user double-entered it), update it in place.
		for i := range *a {
			if (*a)[i].Key == attr.Key || (*a)[i].OutputKey == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				log.Tracef("existing updated: i=%d", i)
				continue specloop
			}
		}

		*a = append(*a, attr)
		log.Tracef("attr appended: len=%d", len(*a))
	}

	return nil
}

// Only hides every attr not named in keys. It implements the --attrs form
// where listing fields means "just these".
func (a *AttrList) Only(keys ...string) {
	if len(keys) == 0 {
		return
	}
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	for i := range *a {
		if (*a)[i].Key == "*" {
			continue
		}
		(*a)[i].Include = want[(*a)[i].Key]
	}
}

// SetGlobalTransformSpec prepends the spec of the "*" attr, if any, to the
// spec of every attr in the list.
func (a *AttrList) SetGlobalTransformSpec() {
	spec := ""

	// If there is more than one global spec, take the first.
	for i := range *a {
		if (*a)[i].Key == "*" {
			spec = (*a)[i].TransformSpec
			break
		}
	}

	if spec == "" {
		log.Debugf("no global spec")
		return
	}

	for i := range *a {
		(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
	}
	log.Debugf("global spec prepended: spec=%s", spec)
}

// Visible returns the attrs that are included in output, skipping the "*"
// pseudo attr.
func (a AttrList) Visible() AttrList {
	var visible AttrList
	for _, attr := range a {
		if attr.Include && attr.Key != "*" {
			visible = append(visible, attr)
		}
	}
	return visible
}

// String returns a string representation of the AttrList. This matches the
// format of the --attrs flag.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}
