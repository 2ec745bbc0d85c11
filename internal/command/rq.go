// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/gamesq/gamesq/internal/log"
	"github.com/gamesq/gamesq/internal/meta"
	"github.com/gamesq/gamesq/internal/runners"
)

// rqDefaultAttrs specifies the default attributes displayed for runners in
// the "rq" command output.
var rqDefaultAttrs = []string{"name", "installed", "description"}

// rqCommandAction is the action handler for the "rq" subcommand. It searches
// the runner catalog declared in the config file.
func rqCommandAction(ctx context.Context, cmd *cli.Command) error {
	fetch := func(ctx context.Context, cmd *cli.Command) ([]runners.Runner, error) {
		catalog, err := runners.Catalog()
		if err != nil {
			return nil, err
		}
		log.Debugf("runner catalog loaded: count=%d", len(catalog))

		q, err := runners.NewSearch(QueryText(cmd)).Compile(ctx)
		if err != nil {
			return nil, err
		}
		return q.Filter(catalog), nil
	}

	return NewQueryActionRunner(
		"rq",
		reflect.TypeOf(runners.Record{}),
		rqDefaultAttrs,
		fetch,
		runners.Row,
	).Run(ctx, cmd)
}

// rqCommandBuilder constructs the cli.Command for "rq", wiring metadata,
// flags, and action handlers.
func rqCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "rq",
		Usage:     "runner query",
		UsageText: "gamesq rq [options] [search terms]",
		Action:    rqCommandAction,
		Meta:      meta,
	}).Build()
}
