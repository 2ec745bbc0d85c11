// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/gamesq/gamesq/internal/games"
	"github.com/gamesq/gamesq/internal/meta"
)

// gqDefaultAttrs specifies the default attributes displayed for games in the
// "gq" command output.
var gqDefaultAttrs = []string{"name", "runner", "platform"}

// gqCommandAction is the action handler for the "gq" subcommand. It searches
// the game library, or a service's catalog, and emits the matches.
func gqCommandAction(ctx context.Context, cmd *cli.Command) error {
	fetch := func(ctx context.Context, cmd *cli.Command) ([]games.Game, error) {
		lib, err := openGameLibrary(ctx, cmd)
		if err != nil {
			return nil, err
		}
		defer lib.Close()

		return lib.Search(ctx, QueryText(cmd), cmd.Bool("hidden"), cmd.Bool("installed"))
	}

	return NewQueryActionRunner(
		"gq",
		reflect.TypeOf(games.Game{}),
		gqDefaultAttrs,
		fetch,
		games.Game.Row,
	).Run(ctx, cmd)
}

// gqCommandBuilder constructs the cli.Command for "gq", wiring metadata,
// flags, and action handlers.
func gqCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "gq",
		Usage:     "game query",
		UsageText: "gamesq gq [options] [search terms]",
		Flags:     NewLibraryFlags("gq", meta.Config.Source),
		Action:    gqCommandAction,
		Meta:      meta,
	}).Build()
}
