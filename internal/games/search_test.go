// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package games

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamesq/gamesq/internal/search"
)

// fakeCategories is an in-memory CategoryStore keyed by category name.
type fakeCategories struct {
	members map[string][]int64
	all     []int64
	calls   int
	err     error
}

func (f *fakeCategories) NamesForCategory(_ context.Context, name string) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var names []string
	for category := range f.members {
		if search.Fold(category) == search.Fold(name) {
			names = append(names, category)
		}
	}
	return names, nil
}

func (f *fakeCategories) GameIDsForCategories(_ context.Context, names []string) ([]int64, error) {
	f.calls++
	var ids []int64
	for _, name := range names {
		ids = append(ids, f.members[name]...)
	}
	return ids, nil
}

func (f *fakeCategories) UncategorizedGameIDs(_ context.Context) ([]int64, error) {
	f.calls++
	var ids []int64
	for _, id := range f.all {
		categorized := false
		for name, members := range f.members {
			if name == HiddenCategory || name == FavoriteCategory {
				continue
			}
			for _, m := range members {
				categorized = categorized || m == id
			}
		}
		if !categorized {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fakeService struct {
	id        string
	installed []string
	platforms map[string][]string
}

func (f *fakeService) ID() string { return f.id }

func (f *fakeService) PlatformsFor(g Game) []string { return f.platforms[g.AppID] }

func (f *fakeService) InstalledAppIDs(_ context.Context, serviceID string) ([]string, error) {
	if serviceID != f.id {
		return nil, errors.New("unknown service")
	}
	return f.installed, nil
}

var library = []Game{
	{ID: 1, Name: "Portal", Runner: "linux", Platform: "Linux", Installed: true},
	{ID: 2, Name: "Portal 2", Runner: "wine", Platform: "Windows", Installed: true},
	{ID: 3, Name: "Portal Stories: Mel", Runner: "wine", Platform: "Windows", Installed: false},
	{ID: 4, Name: "Half-Life 2", Runner: "Wine", Platform: "Windows", Installed: true},
	{ID: 5, Name: "Half-Life 2: Episode One", Runner: "linux", Installed: true},
	{ID: 6, Name: "Pokémon Snap", Runner: "mupen64plus", Platform: "Nintendo 64", Installed: false},
	{ID: 7, Name: "Castle Crashers"},
}

func newCategories() *fakeCategories {
	return &fakeCategories{
		members: map[string][]int64{
			HiddenCategory:   {2},
			FavoriteCategory: {1, 6},
			"Arcade":         {6, 7},
			"My Games":       {1, 4},
		},
		all: []int64{1, 2, 3, 4, 5, 6, 7},
	}
}

func run(t *testing.T, text string, kind *Kind, candidates []Game) []string {
	t.Helper()
	q, err := NewSearch(text, kind).Compile(context.Background())
	require.NoError(t, err)

	var names []string
	for _, g := range q.Filter(candidates) {
		names = append(names, g.Name)
	}
	return names
}

func TestGameSearch(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "installed and not hidden portal",
			text: "installed:yes -hidden:yes portal",
			want: []string{"Portal"},
		},
		{
			name: "runner and quoted phrase",
			text: `runner:wine "Half-Life 2"`,
			want: []string{"Half-Life 2"},
		},
		{
			name: "runner is case-insensitive and exact",
			text: "runner:WINE",
			want: []string{"Portal 2", "Portal Stories: Mel", "Half-Life 2"},
		},
		{
			name: "not installed",
			text: "installed:no",
			want: []string{"Portal Stories: Mel", "Pokémon Snap", "Castle Crashers"},
		},
		{
			name: "installed maybe performs no test",
			text: "installed:maybe portal",
			want: []string{"Portal", "Portal 2", "Portal Stories: Mel"},
		},
		{
			name: "hidden",
			text: "hidden:true",
			want: []string{"Portal 2"},
		},
		{
			name: "favorite",
			text: "favorite:yes",
			want: []string{"Portal", "Pokémon Snap"},
		},
		{
			name: "not favorite",
			text: "favorite:no portal",
			want: []string{"Portal 2", "Portal Stories: Mel"},
		},
		{
			name: "categorized ignores reserved categories",
			text: "categorized:yes",
			want: []string{"Portal", "Half-Life 2", "Pokémon Snap", "Castle Crashers"},
		},
		{
			name: "uncategorized",
			text: "categorized:no",
			want: []string{"Portal 2", "Portal Stories: Mel", "Half-Life 2: Episode One"},
		},
		{
			name: "category is case-insensitive",
			text: `category:"arcade"`,
			want: []string{"Pokémon Snap", "Castle Crashers"},
		},
		{
			name: "category with spaces",
			text: `-category:"My Games" portal`,
			want: []string{"Portal 2", "Portal Stories: Mel"},
		},
		{
			name: "unknown category matches nothing",
			text: "category:Nope",
			want: nil,
		},
		{
			name: "platform uses the game field",
			text: "platform:windows",
			want: []string{"Portal 2", "Portal Stories: Mel", "Half-Life 2"},
		},
		{
			name: "platform without a field or service",
			text: "platform:linux",
			want: []string{"Portal"},
		},
		{
			name: "unrecognized flag value is raw text",
			text: "installed:banana",
			want: nil,
		},
		{
			name: "unknown tag is plain text",
			text: "Stories: mel",
			want: []string{"Portal Stories: Mel"},
		},
		{
			name: "accent-insensitive name",
			text: "POKEMON",
			want: []string{"Pokémon Snap"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind := &Kind{Categories: newCategories()}
			assert.Equal(t, tt.want, run(t, tt.text, kind, library))
		})
	}
}

func TestGameSearch_LiteralFallback(t *testing.T) {
	candidates := []Game{
		{ID: 1, Name: "installed:banana split"},
		{ID: 2, Name: "foo:bar"},
		{ID: 3, Name: "banana"},
	}
	kind := &Kind{Categories: newCategories()}

	assert.Equal(t, []string{"installed:banana split"}, run(t, "installed:banana", kind, candidates))
	assert.Equal(t, []string{"foo:bar"}, run(t, "foo:bar", kind, candidates))
}

func TestGameSearch_MaybeAlwaysMatches(t *testing.T) {
	kind := &Kind{Categories: newCategories()}
	for _, text := range []string{"installed:maybe", "hidden:maybe", "favorite:MAYBE", "categorized:maybe"} {
		assert.Len(t, run(t, text, kind, library), len(library), text)
	}
}

func TestGameSearch_NegationIsComplement(t *testing.T) {
	ctx := context.Background()
	texts := []string{
		"installed:yes", "hidden:yes", "favorite:no", "categorized:yes",
		"category:arcade", "runner:wine", "platform:windows", "portal",
	}

	for _, text := range texts {
		plain := NewSearch(text, &Kind{Categories: newCategories()})
		negated := NewSearch("-"+text, &Kind{Categories: newCategories()})
		for _, g := range library {
			a, err := plain.Matches(ctx, g)
			require.NoError(t, err)
			b, err := negated.Matches(ctx, g)
			require.NoError(t, err)
			assert.NotEqual(t, a, b, "%s against %s", text, g.Name)
		}
	}
}

func TestGameSearch_WhitespaceInvariant(t *testing.T) {
	kind := &Kind{Categories: newCategories()}
	for _, text := range []string{"installed:yes portal", "-hidden:yes", `"Half-Life 2"`} {
		want := run(t, text, kind, library)
		assert.Equal(t, want, run(t, "  "+text+"\t ", kind, library), text)
	}
}

func TestGameSearch_CollaboratorsResolvedOnce(t *testing.T) {
	categories := newCategories()
	s := NewSearch("categorized:yes category:arcade -hidden:yes", &Kind{Categories: categories})

	for _, g := range library {
		_, err := s.Matches(context.Background(), g)
		require.NoError(t, err)
	}
	// One lookup for categorized, two each for category and hidden.
	assert.Equal(t, 5, categories.calls)
}

func TestGameSearch_CollaboratorError(t *testing.T) {
	categories := newCategories()
	categories.err = errors.New("database is locked")

	_, err := NewSearch("portal hidden:yes", &Kind{Categories: categories}).Compile(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")

	// Searches that never touch categories still work.
	got := run(t, "portal runner:linux", &Kind{Categories: categories}, library)
	assert.Equal(t, []string{"Portal"}, got)
}

func TestGameSearch_Service(t *testing.T) {
	service := &fakeService{
		id:        "steam",
		installed: []string{"400", "620"},
		platforms: map[string][]string{
			"400": {"Windows", "Linux"},
			"620": {"Windows"},
			"70":  {"Windows", "MacOS"},
		},
	}
	catalog := []Game{
		{ID: 1, Name: "Portal", AppID: "400", LibraryID: 1},
		{ID: 2, Name: "Portal 2", AppID: "620", Installed: false, LibraryID: 6},
		{ID: 3, Name: "Half-Life", AppID: "70", Installed: true},
		{ID: 4, Name: "Local Only", Platform: "Linux", LibraryID: 4},
	}
	kind := &Kind{Categories: newCategories(), Installed: service, Service: service}

	assert.Equal(t, []string{"Portal", "Portal 2"}, run(t, "installed:yes", kind, catalog))
	assert.Equal(t, []string{"Half-Life", "Local Only"}, run(t, "installed:no", kind, catalog))
	assert.Equal(t, []string{"Portal", "Local Only"}, run(t, "platform:linux", kind, catalog))
	assert.Equal(t, []string{"Half-Life"}, run(t, "platform:macos", kind, catalog))

	// Categories follow LibraryID. Row 2 is not library game 2, which is hidden.
	assert.Empty(t, run(t, "hidden:yes", kind, catalog))
	assert.Equal(t, []string{"Portal", "Portal 2"}, run(t, "favorite:yes", kind, catalog))
	assert.Equal(t, []string{"Portal 2"}, run(t, "category:arcade", kind, catalog))
	assert.Equal(t, []string{"Half-Life"}, run(t, "categorized:no", kind, catalog))
}

func TestGameSearch_ServiceWithoutInstalledSource(t *testing.T) {
	service := &fakeService{id: "steam"}
	kind := &Kind{Categories: newCategories(), Service: service}

	_, err := NewSearch("installed:yes", kind).Compile(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steam")

	_, err = NewSearch("installed:maybe portal", kind).Compile(context.Background())
	assert.NoError(t, err)
}

func TestGameSearch_FieldTagsKeepDiacritics(t *testing.T) {
	kind := &Kind{Categories: newCategories()}

	assert.Empty(t, run(t, "runner:wïne", kind, library))
	assert.Empty(t, run(t, `platform:"nintendö 64"`, kind, library))
	assert.Equal(t, []string{"Pokémon Snap"}, run(t, "runner:MUPEN64PLUS", kind, library))
	assert.Equal(t, []string{"Pokémon Snap"}, run(t, `platform:"NINTENDO 64"`, kind, library))
}

func TestTags(t *testing.T) {
	assert.Equal(t,
		"installed,hidden,favorite,categorized,category,runner,platform",
		strings.Join(Tags(), ","))
}
