// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/gamesq/gamesq/internal/config"
	"github.com/gamesq/gamesq/internal/log"
	"github.com/gamesq/gamesq/internal/meta"
)

// namespace is the subcommand in args[1], which also prefixes its config keys.
// A leading flag such as --help means there is none.
func namespace(args []string) string {
	if len(args) < 2 || strings.HasPrefix(args[1], "-") {
		return ""
	}
	return args[1]
}

// loadConfig loads the config file under ns. A missing or broken file leaves
// an empty config; flags and env still work.
func loadConfig(ns string) config.Type {
	config.Config.Namespace = ns
	cfg, err := config.Load()
	if err != nil {
		log.Debugf("config not loaded: err=%v", err)
		return config.Type{Namespace: ns}
	}
	return cfg
}

// InitApp builds the gamesq command tree for args.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	wd, _ := os.Getwd()

	m := meta.Meta{
		Args:        args,
		Config:      loadConfig(namespace(args)),
		Context:     ctx,
		StartingDir: wd,
	}

	app := &cli.Command{
		Name:  "gamesq",
		Usage: "game library query",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "gamesq version info",
				HideDefault: true,
			},
		},
		Commands: []*cli.Command{
			gqCommandBuilder(m),
			rqCommandBuilder(m),
			siCommandBuilder(m),
			completionCommandBuilder(m),
		},
	}

	// --help lists flags alphabetically.
	for _, cmd := range app.Commands {
		slices.SortFunc(cmd.Flags, func(a, b cli.Flag) int {
			return strings.Compare(a.Names()[0], b.Names()[0])
		})
	}

	return app, nil
}
