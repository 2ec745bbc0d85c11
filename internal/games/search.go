// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package games

import (
	"context"
	"fmt"
	"strings"

	"github.com/gamesq/gamesq/internal/log"
	"github.com/gamesq/gamesq/internal/search"
)

// tagClass describes how a tag's value is interpreted.
type tagClass int

const (
	// flagTag values are tri-state flag words.
	flagTag tagClass = iota
	// fieldTag values are compared with a field of the game.
	fieldTag
	// memberTag values name a set resolved through a collaborator.
	memberTag
)

type tagSpec struct {
	name  string
	class tagClass
}

// tags is the vocabulary of game searches, in declaration order.
var tags = []tagSpec{
	{name: "installed", class: flagTag},
	{name: "hidden", class: flagTag},
	{name: "favorite", class: flagTag},
	{name: "categorized", class: flagTag},
	{name: "category", class: memberTag},
	{name: "runner", class: fieldTag},
	{name: "platform", class: fieldTag},
}

// Tags returns the tag names recognized by game searches.
func Tags() []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.name)
	}
	return names
}

func lookupTag(name string) (tagSpec, bool) {
	for _, t := range tags {
		if t.name == name {
			return t, true
		}
	}
	return tagSpec{}, false
}

// Kind is the search.Kind for games. Categories is required for the category
// tags. Service and Installed are optional and bind the search to a service.
type Kind struct {
	Categories CategoryStore
	Installed  InstalledSource
	Service    Service
}

// NewSearch returns a game search over text.
func NewSearch(text string, kind *Kind) *search.Search[Game] {
	return search.New[Game](text, kind)
}

func (k *Kind) Tags() []string {
	return Tags()
}

// CandidateText is the game's name.
func (k *Kind) CandidateText(candidate Game) string {
	return candidate.Name
}

// PartPredicate compiles the predicate for a single tag.
func (k *Kind) PartPredicate(ctx context.Context, name, value string) (search.Predicate[Game], error) {
	spec, ok := lookupTag(name)
	if !ok {
		return nil, nil
	}

	switch spec.class {
	case flagTag:
		flag, ok := search.ParseFlag(value)
		if !ok {
			return nil, nil
		}
		if flag == search.FlagMaybe {
			return search.Always[Game](), nil
		}
		return k.flagPredicate(ctx, name, flag.Bool())
	case memberTag:
		return k.categoryPredicate(ctx, strings.TrimSpace(value), true)
	case fieldTag:
		value = strings.TrimSpace(value)
		if name == "runner" {
			return runnerPredicate(value), nil
		}
		return k.platformPredicate(value), nil
	}

	return nil, nil
}

func (k *Kind) flagPredicate(ctx context.Context, name string, flag bool) (search.Predicate[Game], error) {
	switch name {
	case "installed":
		return k.installedPredicate(ctx, flag)
	case "hidden":
		return k.categoryPredicate(ctx, HiddenCategory, flag)
	case "favorite":
		return k.categoryPredicate(ctx, FavoriteCategory, flag)
	case "categorized":
		return k.categorizedPredicate(ctx, flag)
	}
	return nil, nil
}

// installedPredicate compares the game's installed state with installed. When
// a service is bound, the state is membership in the service's installed
// app-id set, resolved once here.
func (k *Kind) installedPredicate(ctx context.Context, installed bool) (search.Predicate[Game], error) {
	if k.Service == nil {
		return func(g Game) bool {
			return g.Installed == installed
		}, nil
	}
	if k.Installed == nil {
		return nil, fmt.Errorf("no installed source for service %s", k.Service.ID())
	}

	appIDs, err := k.Installed.InstalledAppIDs(ctx, k.Service.ID())
	if err != nil {
		return nil, fmt.Errorf("installed games for service %s: %w", k.Service.ID(), err)
	}
	installedIDs := make(map[string]struct{}, len(appIDs))
	for _, id := range appIDs {
		installedIDs[id] = struct{}{}
	}
	log.Tracef("installed app ids resolved: service=%s count=%d", k.Service.ID(), len(installedIDs))

	return func(g Game) bool {
		_, found := installedIDs[g.AppID]
		return (g.AppID != "" && found) == installed
	}, nil
}

// categoryPredicate compares membership in category with inCategory.
func (k *Kind) categoryPredicate(ctx context.Context, category string, inCategory bool) (search.Predicate[Game], error) {
	if k.Categories == nil {
		return nil, fmt.Errorf("no category store for category %q", category)
	}

	names, err := k.Categories.NamesForCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	// Skip the lookup when nothing matched; an empty name list would select
	// no games anyway.
	var ids []int64
	if len(names) > 0 {
		ids, err = k.Categories.GameIDsForCategories(ctx, names)
		if err != nil {
			return nil, err
		}
	}
	members := idSet(ids)
	log.Tracef("category resolved: category=%s names=%v count=%d", category, names, len(members))

	return func(g Game) bool {
		_, found := members[k.libraryID(g)]
		return found == inCategory
	}, nil
}

func (k *Kind) categorizedPredicate(ctx context.Context, categorized bool) (search.Predicate[Game], error) {
	if k.Categories == nil {
		return nil, fmt.Errorf("no category store for categorized")
	}

	ids, err := k.Categories.UncategorizedGameIDs(ctx)
	if err != nil {
		return nil, err
	}
	uncategorized := idSet(ids)

	return func(g Game) bool {
		id := k.libraryID(g)
		if id == 0 {
			return !categorized
		}
		_, found := uncategorized[id]
		return !found == categorized
	}, nil
}

// libraryID is the id category membership is keyed by. Catalog rows of a bound
// service carry it in LibraryID.
func (k *Kind) libraryID(g Game) int64 {
	if k.Service != nil {
		return g.LibraryID
	}
	return g.ID
}

func runnerPredicate(runner string) search.Predicate[Game] {
	runner = search.FoldCase(runner)
	return func(g Game) bool {
		return g.Runner != "" && search.FoldCase(g.Runner) == runner
	}
}

// platformPredicate prefers the game's own platform and only asks the bound
// service when the game has none.
func (k *Kind) platformPredicate(platform string) search.Predicate[Game] {
	platform = search.FoldCase(platform)
	return func(g Game) bool {
		if g.Platform != "" {
			return search.FoldCase(g.Platform) == platform
		}
		if k.Service != nil {
			for _, p := range k.Service.PlatformsFor(g) {
				if search.FoldCase(p) == platform {
					return true
				}
			}
		}
		return false
	}
}

func idSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
