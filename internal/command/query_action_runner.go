// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/gamesq/gamesq/internal/log"
	"github.com/gamesq/gamesq/internal/output"
)

// QueryActionRunner[T] is the shared action behind gq and rq. FetchFn returns
// the matched items and RowFn flattens one into an output row.
type QueryActionRunner[T any] struct {
	CommandName  string
	SchemaType   reflect.Type
	DefaultAttrs []string
	FetchFn      func(context.Context, *cli.Command) ([]T, error)
	RowFn        func(T) map[string]interface{}
}

// Run answers --schema, or fetches, flattens and writes the matches.
func (qar *QueryActionRunner[T]) Run(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("%s: args=%v", qar.CommandName, cmd.Args().Slice())

	if DumpSchemaIfRequested(cmd, qar.SchemaType) {
		return nil
	}

	al, err := BuildAttrs(cmd, qar.DefaultAttrs...)
	if err != nil {
		return err
	}
	log.Debugf("%s: attrs=%s", qar.CommandName, al.String())

	items, err := qar.FetchFn(ctx, cmd)
	if err != nil {
		return err
	}
	log.Debugf("%s: %d matches", qar.CommandName, len(items))

	return output.SliceDiceSpit(qar.rows(items), al, cmd, writer(cmd))
}

func (qar *QueryActionRunner[T]) rows(items []T) []map[string]interface{} {
	rows := make([]map[string]interface{}, len(items))
	for i, item := range items {
		rows[i] = qar.RowFn(item)
	}
	return rows
}

// NewQueryActionRunner wires a runner for the named command.
func NewQueryActionRunner[T any](
	commandName string,
	schemaType reflect.Type,
	defaultAttrs []string,
	fetchFn func(context.Context, *cli.Command) ([]T, error),
	rowFn func(T) map[string]interface{},
) *QueryActionRunner[T] {
	return &QueryActionRunner[T]{
		CommandName:  commandName,
		SchemaType:   schemaType,
		DefaultAttrs: defaultAttrs,
		FetchFn:      fetchFn,
		RowFn:        rowFn,
	}
}
