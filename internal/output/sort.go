// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"cmp"
	"slices"
	"strings"
)

// sortKey is one field of a --sort spec.
type sortKey struct {
	field         string
	descending    bool
	caseSensitive bool
}

// parseSortSpec reads "a,-b,!c": - sorts descending and ! compares case
// sensitively. The prefixes may be combined as -!c.
func parseSortSpec(spec string) []sortKey {
	var keys []sortKey
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		key := sortKey{}
		if rest, ok := strings.CutPrefix(part, "-"); ok {
			key.descending = true
			part = rest
		}
		if rest, ok := strings.CutPrefix(part, "!"); ok {
			key.caseSensitive = true
			part = rest
		}
		if part == "" {
			continue
		}
		key.field = part
		keys = append(keys, key)
	}
	return keys
}

// compare orders two values of the key's field. Numbers compare numerically,
// anything else by its string form.
func (k sortKey) compare(a, b map[string]interface{}) int {
	var c int

	aNum, aOk := toFloat64(a[k.field])
	bNum, bOk := toFloat64(b[k.field])
	if aOk && bOk {
		c = cmp.Compare(aNum, bNum)
	} else {
		aStr := InterfaceToString(a[k.field])
		bStr := InterfaceToString(b[k.field])
		if !k.caseSensitive {
			aStr = strings.ToLower(aStr)
			bStr = strings.ToLower(bStr)
		}
		c = strings.Compare(aStr, bStr)
	}

	if k.descending {
		return -c
	}
	return c
}

// SortDataset sorts rows in place by a comma-separated --sort spec. Rows that
// compare equal on every key keep their order.
func SortDataset(resultSet []map[string]interface{}, spec string) {
	keys := parseSortSpec(spec)
	if len(keys) == 0 {
		return
	}

	slices.SortStableFunc(resultSet, func(a, b map[string]interface{}) int {
		for _, k := range keys {
			if c := k.compare(a, b); c != 0 {
				return c
			}
		}
		return 0
	})
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
