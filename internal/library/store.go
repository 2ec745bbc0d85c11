// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package library

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/gamesq/gamesq/internal/games"
	"github.com/gamesq/gamesq/internal/log"
	"github.com/gamesq/gamesq/internal/search"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id          INTEGER PRIMARY KEY,
	name        TEXT,
	slug        TEXT,
	runner      TEXT,
	platform    TEXT,
	installed   INTEGER DEFAULT 0,
	service     TEXT,
	service_id  TEXT,
	lastplayed  INTEGER,
	playtime    REAL
);
CREATE TABLE IF NOT EXISTS categories (
	id    INTEGER PRIMARY KEY,
	name  TEXT UNIQUE
);
CREATE TABLE IF NOT EXISTS games_categories (
	game_id      INTEGER,
	category_id  INTEGER
);
CREATE TABLE IF NOT EXISTS service_games (
	id       INTEGER PRIMARY KEY,
	service  TEXT,
	appid    TEXT,
	name     TEXT,
	slug     TEXT,
	details  TEXT
);
`

// Store is a game library backed by SQLite. It implements
// games.CategoryStore and games.InstalledSource.
type Store struct {
	db *sql.DB
}

var (
	_ games.CategoryStore   = (*Store)(nil)
	_ games.InstalledSource = (*Store)(nil)
)

// Open opens the library at path. A read-only library is never written to,
// including by Migrate.
func Open(ctx context.Context, path string, readOnly bool) (*Store, error) {
	// modernc.org/sqlite uses _pragma=name(value) syntax
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	if readOnly {
		dsn += "&mode=ro"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open library %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open library %s: %w", path, err)
	}
	log.Debugf("library opened: path=%s readOnly=%v", path, readOnly)

	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates any missing tables.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create library schema: %w", err)
	}
	return nil
}

// Games returns every game in the library ordered by name.
func (s *Store) Games(ctx context.Context) ([]games.Game, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, COALESCE(name, ''), COALESCE(slug, ''), COALESCE(runner, ''),
		       COALESCE(platform, ''), COALESCE(installed, 0), COALESCE(service, ''),
		       COALESCE(service_id, ''), COALESCE(lastplayed, 0), COALESCE(playtime, 0)
		FROM games ORDER BY name COLLATE NOCASE, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var result []games.Game
	for rows.Next() {
		var g games.Game
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.Runner, &g.Platform, &g.Installed,
			&g.Service, &g.AppID, &g.LastPlayed, &g.Playtime); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		g.LibraryID = g.ID
		result = append(result, g)
	}
	return result, rows.Err()
}

// ServiceGames returns the catalog of a service ordered by name. Installed
// state is left unset; it comes from InstalledAppIDs. LibraryID is the library
// game with the same service and app id, or 0.
func (s *Store) ServiceGames(ctx context.Context, service string) ([]games.Game, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sg.id, COALESCE(sg.name, ''), COALESCE(sg.slug, ''), COALESCE(sg.appid, ''),
		       COALESCE((SELECT MIN(g.id) FROM games g
		                 WHERE g.service = sg.service AND g.service_id = sg.appid), 0)
		FROM service_games sg WHERE sg.service = ? ORDER BY sg.name COLLATE NOCASE, sg.id`, service)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s games: %w", service, err)
	}
	defer rows.Close()

	var result []games.Game
	for rows.Next() {
		g := games.Game{Service: service}
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.AppID, &g.LibraryID); err != nil {
			return nil, fmt.Errorf("failed to scan service game: %w", err)
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

// Categories returns every category name.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	return queryStrings(ctx, s.db, `SELECT name FROM categories WHERE name IS NOT NULL ORDER BY name`)
}

// NamesForCategory returns the stored names equal to name once case and
// diacritics are ignored.
func (s *Store) NamesForCategory(ctx context.Context, name string) ([]string, error) {
	all, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}

	want := search.Fold(name)
	var names []string
	for _, n := range all {
		if search.Fold(n) == want {
			names = append(names, n)
		}
	}
	return names, nil
}

// GameIDsForCategories returns the distinct ids of games in any of names.
func (s *Store) GameIDsForCategories(ctx context.Context, names []string) ([]int64, error) {
	if len(names) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(names)), ",")
	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}

	return queryIDs(ctx, s.db, `
		SELECT DISTINCT gc.game_id
		FROM games_categories gc JOIN categories c ON c.id = gc.category_id
		WHERE c.name IN (`+placeholders+`)`, args...)
}

// UncategorizedGameIDs returns the ids of games in no category other than the
// reserved favorite and hidden ones.
func (s *Store) UncategorizedGameIDs(ctx context.Context) ([]int64, error) {
	return queryIDs(ctx, s.db, `
		SELECT g.id FROM games g
		WHERE NOT EXISTS (
			SELECT 1 FROM games_categories gc JOIN categories c ON c.id = gc.category_id
			WHERE gc.game_id = g.id AND c.name NOT IN (?, ?)
		)`, games.FavoriteCategory, games.HiddenCategory)
}

// InstalledAppIDs returns the service ids of the installed library games that
// came from serviceID.
func (s *Store) InstalledAppIDs(ctx context.Context, serviceID string) ([]string, error) {
	return queryStrings(ctx, s.db, `
		SELECT service_id FROM games
		WHERE service = ? AND installed = 1 AND service_id IS NOT NULL AND service_id != ''`, serviceID)
}

func queryStrings(ctx context.Context, db *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("library query failed: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("library scan failed: %w", err)
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

func queryIDs(ctx context.Context, db *sql.DB, query string, args ...any) ([]int64, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("library query failed: %w", err)
	}
	defer rows.Close()

	var result []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("library scan failed: %w", err)
		}
		result = append(result, id)
	}
	return result, rows.Err()
}
