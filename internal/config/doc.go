// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for gamesq's user
// configuration. The configuration is a YAML document located in the user's
// configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/gamesq.yaml or $HOME/.config/gamesq.yaml
//   - macOS: $HOME/Library/Application Support/gamesq.yaml
//
// GAMESQ_CFG_FILE overrides the location. Keys are addressed with dotted
// paths; when a Namespace (the subcommand) is set, "gq.db" is preferred over
// "db".
package config
