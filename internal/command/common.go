// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/urfave/cli/v3"

	"github.com/gamesq/gamesq/internal/attrs"
	"github.com/gamesq/gamesq/internal/config"
	"github.com/gamesq/gamesq/internal/games"
	"github.com/gamesq/gamesq/internal/library"
	"github.com/gamesq/gamesq/internal/log"
	"github.com/gamesq/gamesq/internal/meta"
	"github.com/gamesq/gamesq/internal/output"
)

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList, err error) {
	for _, d := range defaults {
		if err = al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err = al.Set(extras); err != nil {
			return nil, fmt.Errorf("--attrs: %w", err)
		}
	}
	al.SetGlobalTransformSpec()
	return
}

// DumpSchemaIfRequested writes the attribute names of the provided type when
// --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(t, writer(cmd))
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// QueryText joins --query and the positional arguments into one search text.
func QueryText(cmd *cli.Command) string {
	parts := cmd.Args().Slice()
	if q := cmd.String("query"); q != "" {
		parts = append([]string{q}, parts...)
	}
	return strings.Join(parts, " ")
}

// writer is where command output goes. Tests swap the root writer.
func writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

// gameLibrary is an opened library plus the candidates and search kind the
// library commands share.
type gameLibrary struct {
	store      *library.Store
	kind       *games.Kind
	candidates []games.Game
}

// openGameLibrary opens the --db library read-only and loads the candidates,
// from the --service catalog when one is named.
func openGameLibrary(ctx context.Context, cmd *cli.Command) (*gameLibrary, error) {
	path := cmd.String("db")
	if path == "" {
		return nil, fmt.Errorf("no game library: set --db, GAMESQ_DB or db in the config file")
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand library path: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("game library not found: %w", err)
	}

	store, err := library.Open(ctx, path, true)
	if err != nil {
		return nil, err
	}

	lib := &gameLibrary{
		store: store,
		kind:  &games.Kind{Categories: store, Installed: store},
	}

	if id := cmd.String("service"); id != "" {
		platformPath, _ := config.GetString("services."+id+".platforms", library.DefaultPlatformPath)
		svc, err := store.Service(ctx, id, platformPath)
		if err != nil {
			store.Close()
			return nil, err
		}
		lib.kind.Service = svc
		lib.candidates, err = store.ServiceGames(ctx, id)
		if err != nil {
			store.Close()
			return nil, err
		}
	} else {
		lib.candidates, err = store.Games(ctx)
		if err != nil {
			store.Close()
			return nil, err
		}
	}
	log.Debugf("library candidates loaded: count=%d service=%s", len(lib.candidates), cmd.String("service"))

	return lib, nil
}

func (l *gameLibrary) Close() error {
	return l.store.Close()
}

// Search returns the candidates matching text. Hidden games are excluded
// unless includeHidden is set, and only installed games are kept when
// installedOnly is set, but only for searches that do not test those tags
// themselves.
func (l *gameLibrary) Search(ctx context.Context, text string, includeHidden, installedOnly bool) ([]games.Game, error) {
	s := games.NewSearch(text, l.kind)

	defaults := []struct {
		tag   string
		value string
		apply bool
	}{
		{tag: "hidden", value: "no", apply: !includeHidden},
		{tag: "installed", value: "yes", apply: installedOnly},
	}
	for _, d := range defaults {
		if !d.apply || s.HasComponent(d.tag) {
			continue
		}
		p, err := l.kind.PartPredicate(ctx, d.tag, d.value)
		if err != nil {
			return nil, err
		}
		if s, err = s.WithPredicate(ctx, p); err != nil {
			return nil, err
		}
		log.Tracef("default filter added: %s:%s", d.tag, d.value)
	}

	q, err := s.Compile(ctx)
	if err != nil {
		return nil, err
	}
	return q.Filter(l.candidates), nil
}
