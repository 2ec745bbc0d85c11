// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/gamesq/gamesq/internal/meta"
)

// QueryCommandBuilder assembles gq and rq. Every built command takes a query,
// supports --schema and carries the global output flags.
type QueryCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

func (qcb *QueryCommandBuilder) flags() []cli.Flag {
	common := []cli.Flag{NewQueryFlag(), newSchemaFlag()}
	return slices.Concat(qcb.Flags, common, NewGlobalFlags())
}

// Build returns the cli.Command. Global flags are validated before Action
// runs and the meta rides along in Metadata["meta"].
func (qcb *QueryCommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      qcb.Name,
		Usage:     qcb.Usage,
		UsageText: qcb.UsageText,
		Metadata:  map[string]any{"meta": qcb.Meta},
		Flags:     qcb.flags(),
		Before:    validateGlobals,
		Action:    qcb.Action,
	}
}

func validateGlobals(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	return ctx, GlobalFlagsValidator(ctx, cmd)
}
