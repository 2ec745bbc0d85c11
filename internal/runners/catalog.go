// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package runners

import (
	"fmt"
	"sort"

	"github.com/gamesq/gamesq/internal/config"
)

// Catalog returns the runners declared in the configuration, sorted by name.
// A configuration without a runners key yields an empty catalog.
func Catalog() ([]Runner, error) {
	var defs []Definition
	if err := config.Decode("runners", &defs); err != nil {
		if config.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read runner catalog: %w", err)
	}

	sort.SliceStable(defs, func(i, j int) bool {
		return defs[i].RunnerName < defs[j].RunnerName
	})

	catalog := make([]Runner, 0, len(defs))
	for _, d := range defs {
		if d.RunnerName == "" {
			continue
		}
		catalog = append(catalog, d)
	}
	return catalog, nil
}
