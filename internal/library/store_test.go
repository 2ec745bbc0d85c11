// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package library

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamesq/gamesq/internal/games"
)

// newTestStore creates a library file with a small fixture set.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	store, err := Open(ctx, filepath.Join(t.TempDir(), "pga.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate(ctx))

	_, err = store.db.ExecContext(ctx, `
		INSERT INTO games (id, name, slug, runner, platform, installed, service, service_id, lastplayed, playtime) VALUES
			(1, 'Portal', 'portal', 'steam', 'Linux', 1, 'steam', '400', 1700000000, 12.5),
			(2, 'Portal 2', 'portal-2', 'wine', 'Windows', 1, 'steam', '620', NULL, NULL),
			(3, 'Half-Life', 'half-life', 'wine', NULL, 0, 'steam', '70', NULL, NULL),
			(4, 'Pokémon Snap', 'pokemon-snap', 'mupen64plus', 'Nintendo 64', 0, NULL, NULL, NULL, NULL);
		INSERT INTO categories (id, name) VALUES
			(1, 'favorite'), (2, '.hidden'), (3, 'Arcade'), (4, 'Ärcade'), (5, 'Empty');
		INSERT INTO games_categories (game_id, category_id) VALUES
			(1, 1), (2, 2), (4, 3), (3, 4), (4, 4);
		INSERT INTO service_games (id, service, appid, name, slug, details) VALUES
			(10, 'steam', '400', 'Portal', 'portal', '{"platforms": ["Windows", "Linux"]}'),
			(11, 'steam', '620', 'Portal 2', 'portal-2', '{"platforms": [{"name": "Windows"}]}'),
			(12, 'steam', '70', 'Half-Life', 'half-life', 'not json'),
			(13, 'gog', '1207658924', 'Unreal', 'unreal', '{"platforms": {"windows": true, "mac": false}}');
	`)
	require.NoError(t, err)

	return store
}

func TestStore_Games(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Games(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, "Half-Life", got[0].Name)
	assert.Equal(t, "Pokémon Snap", got[1].Name)
	assert.Equal(t, games.Game{
		ID: 1, Name: "Portal", Slug: "portal", Runner: "steam", Platform: "Linux", Installed: true,
		Service: "steam", AppID: "400", LastPlayed: 1700000000, Playtime: 12.5, LibraryID: 1,
	}, got[2])
	assert.Empty(t, got[1].Service)
}

func TestStore_ServiceGames(t *testing.T) {
	store := newTestStore(t)

	got, err := store.ServiceGames(context.Background(), "steam")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Half-Life", got[0].Name)
	assert.Equal(t, "70", got[0].AppID)
	assert.Equal(t, "steam", got[0].Service)

	libraryIDs := map[string]int64{}
	for _, g := range got {
		libraryIDs[g.AppID] = g.LibraryID
	}
	assert.Equal(t, map[string]int64{"400": 1, "620": 2, "70": 3}, libraryIDs)

	gog, err := store.ServiceGames(context.Background(), "gog")
	require.NoError(t, err)
	require.Len(t, gog, 1)
	assert.Zero(t, gog[0].LibraryID, "not in the library")
}

func TestStore_NamesForCategory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	got, err := store.NamesForCategory(ctx, "ARCADE")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Arcade", "Ärcade"}, got)

	got, err = store.NamesForCategory(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_GameIDsForCategories(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	got, err := store.GameIDsForCategories(ctx, []string{"Arcade", "Ärcade"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{3, 4}, got)

	got, err = store.GameIDsForCategories(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = store.GameIDsForCategories(ctx, []string{"Empty"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_UncategorizedGameIDs(t *testing.T) {
	store := newTestStore(t)

	got, err := store.UncategorizedGameIDs(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2}, got)
}

func TestStore_InstalledAppIDs(t *testing.T) {
	store := newTestStore(t)

	got, err := store.InstalledAppIDs(context.Background(), "steam")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"400", "620"}, got)

	got, err = store.InstalledAppIDs(context.Background(), "gog")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_Service(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	steam, err := store.Service(ctx, "steam", "")
	require.NoError(t, err)
	assert.Equal(t, "steam", steam.ID())
	assert.Equal(t, []string{"Windows", "Linux"}, steam.PlatformsFor(games.Game{AppID: "400"}))
	assert.Equal(t, []string{"Windows"}, steam.PlatformsFor(games.Game{AppID: "620"}))
	assert.Empty(t, steam.PlatformsFor(games.Game{AppID: "70"}))
	assert.Empty(t, steam.PlatformsFor(games.Game{AppID: "unknown"}))

	gog, err := store.Service(ctx, "gog", "platforms")
	require.NoError(t, err)
	assert.Equal(t, []string{"windows"}, gog.PlatformsFor(games.Game{AppID: "1207658924"}))
}

func TestPlatforms(t *testing.T) {
	tests := []struct {
		name    string
		details string
		path    string
		want    []string
	}{
		{name: "string array", details: `{"platforms":["Linux","Windows"]}`, path: "platforms", want: []string{"Linux", "Windows"}},
		{name: "object array", details: `{"platforms":[{"name":"Linux"},{"id":2}]}`, path: "platforms", want: []string{"Linux"}},
		{name: "flag object", details: `{"worksOn":{"Windows":true,"Mac":false,"Linux":true}}`, path: "worksOn", want: []string{"Windows", "Linux"}},
		{name: "single string", details: `{"meta":{"platform":"DOS"}}`, path: "meta.platform", want: []string{"DOS"}},
		{name: "missing path", details: `{"platforms":["Linux"]}`, path: "other", want: nil},
		{name: "invalid json", details: `{`, path: "platforms", want: nil},
		{name: "empty", details: "", path: "platforms", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Platforms(tt.details, tt.path))
		})
	}
}

func TestStore_GameSearch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	all, err := store.Games(ctx)
	require.NoError(t, err)

	q, err := games.NewSearch(`-hidden:yes category:arcade`, &games.Kind{Categories: store}).Compile(ctx)
	require.NoError(t, err)

	var names []string
	for _, g := range q.Filter(all) {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"Half-Life", "Pokémon Snap"}, names)

	steam, err := store.Service(ctx, "steam", "")
	require.NoError(t, err)
	catalog, err := store.ServiceGames(ctx, "steam")
	require.NoError(t, err)

	kind := &games.Kind{Categories: store, Installed: store, Service: steam}
	q, err = games.NewSearch("installed:yes platform:linux", kind).Compile(ctx)
	require.NoError(t, err)
	matched := q.Filter(catalog)
	require.Len(t, matched, 1)
	assert.Equal(t, "400", matched[0].AppID)
}

func TestOpen_ReadOnlyMissing(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing.db"), true)
	assert.Error(t, err)
}
