// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/gamesq/gamesq/internal/config"
)

// Meta contains runtime metadata shared by commands: the CLI arguments after
// main's rewriting, the configuration loaded for the command's namespace, the
// root context and the working directory at startup.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	StartingDir string
}
