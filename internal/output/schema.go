// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"

	"github.com/gamesq/gamesq/internal/log"
)

// DumpSchema writes the sorted attribute names available to --attrs for typ,
// taken from its `attr` struct tags. If w is nil, os.Stdout is used.
func DumpSchema(typ reflect.Type, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w, "Attributes available to the --attrs and --sort flags.")
	fmt.Fprintln(w, "")

	names := schemaNames(typ)
	if len(names) == 0 {
		log.Debugf("no attr tags found for type: %s", typ.Name())
		return
	}

	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}

func schemaNames(typ reflect.Type) []string {
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	var names []string
	for i := 0; i < typ.NumField(); i++ {
		if name, ok := typ.Field(i).Tag.Lookup("attr"); ok && name != "" {
			names = append(names, name)
		}
	}
	return names
}
