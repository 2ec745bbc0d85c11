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

	"github.com/gamesq/gamesq/internal/log"
)

var lengthRegex = regexp.MustCompile(`-?\d+`)

// Attr is one column of output. Key names a field of the result row.
type Attr struct {
	// The row key to read.
	Key string `yaml:"key" json:"Key"`
	// Should this Attr be included in output or is it just intended for
	// sorting?
	Include bool `yaml:"include" json:"Include"`
	// The key to use in the output. This is also the column title when
	// output=text.
	OutputKey string `yaml:"outputKey" json:"OutputKey"`
	// Transformation spec to apply to the output value.
	TransformSpec string `yaml:"transformSpec" json:"TransformSpec"`
}

// Transform applies the attribute's transform spec to a value and returns the
// transformed result.
//
//   - t: unix or RFC3339 timestamp as local time
//   - T: timestamp as time ago ("3 days ago")
//   - l/u: lower/upper case, the last one wins
//   - N: truncate to N characters, -N elides the middle
func (a *Attr) Transform(value interface{}) interface{} {
	if a.TransformSpec == "" {
		return value
	}

	if strings.ContainsAny(a.TransformSpec, "tT") {
		ts, ok := toTime(value)
		if !ok {
			log.Tracef("not a timestamp: key=%s value=%v", a.Key, value)
			return value
		}
		if strings.Contains(a.TransformSpec, "T") {
			value = humanize.Time(ts)
		} else {
			value = ts.Local().Format("2006-01-02T15:04:05MST")
		}
	}

	result, ok := value.(string)
	if !ok {
		log.Tracef("non-string value: key=%s value=%v", a.Key, value)
		return value
	}

	// We need to know which case transformation appears last. This covers the
	// case where a global transformation was prepended to the attr's own and
	// lets the attr's carry more weight.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")
	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	// Length transforms work the same way: the last number wins.
	match := lengthRegex.FindAllString(a.TransformSpec, -1)
	if len(match) != 0 {
		l, _ := strconv.Atoi(match[len(match)-1])
		abs := int(math.Abs(float64(l)))
		runes := []rune(result)
		if len(runes) > abs {
			if l < 0 {
				keep := abs/2 - 1
				if keep < 1 {
					keep = 1
				}
				result = string(runes[:keep]) + ".." + string(runes[len(runes)-keep:])
			} else {
				result = string(runes[:abs])
			}
			log.Tracef("length transform: result=%s", result)
		}
	}

	return result
}

// toTime interprets unix seconds or an RFC3339 string. Zero and empty values
// are not timestamps.
func toTime(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case int64:
		if v > 0 {
			return time.Unix(v, 0), true
		}
	case int:
		if v > 0 {
			return time.Unix(int64(v), 0), true
		}
	case float64:
		if v > 0 {
			return time.Unix(int64(v), 0), true
		}
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// AttrList is a collection of Attr used to shape output fields.
type AttrList []Attr

// Set parses a comma-separated --attrs value and merges it into the list. Each
// spec is key[:outputKey[:transform]]. A leading ! keeps the key for sorting
// but hides it. The key * carries a transform applied to every attr.
func (a *AttrList) Set(value string) error {
	if value == "" {
		return nil
	}

	const (
		keyIdx = iota
		outputIdx
		transformIdx
	)

specloop:
	for _, spec := range strings.Split(value, ",") {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}

		attr := Attr{Include: true}
		fields := strings.Split(spec, ":")

		attr.Key = strings.TrimSpace(fields[keyIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		if attr.Key == "" {
			return fmt.Errorf("invalid attr spec: %q", spec)
		}
		if attr.Key == "*" {
			attr.Include = false
		}

		attr.OutputKey = attr.Key
		if len(fields) > outputIdx && strings.TrimSpace(fields[outputIdx]) != "" {
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		}
		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}

		// Respecifying an attr (a command default or a double entry) updates
		// it in place so column order is kept.
		for i := range *a {
			if (*a)[i].Key == attr.Key {
				(*a)[i] = attr
				log.Tracef("attr updated: key=%s", attr.Key)
				continue specloop
			}
		}

		*a = append(*a, attr)
	}

	return nil
}

// SetGlobalTransformSpec prepends the transform of the * attr, if any, to
// every attr in the list.
func (a *AttrList) SetGlobalTransformSpec() {
	spec := ""
	for _, attr := range *a {
		if attr.Key == "*" {
			spec = attr.TransformSpec
			break
		}
	}
	if spec == "" {
		return
	}

	for i := range *a {
		(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
	}
}

// Keys returns the row keys of the included attrs.
func (a AttrList) Keys() []string {
	var keys []string
	for _, attr := range a {
		if attr.Include {
			keys = append(keys, attr.Key)
		}
	}
	return keys
}

// String renders the list in --attrs syntax.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		key := attr.Key
		if !attr.Include && attr.Key != "*" {
			key = "!" + key
		}
		result = append(result, fmt.Sprintf("%s:%s:%s", key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}
