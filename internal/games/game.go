// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package games

import (
	"context"
)

// Game is a row of the game library. For service-bound searches it is a row of
// that service's catalog, in which case AppID identifies it to the service and
// LibraryID names the library game it is linked to, or 0 when there is none.
type Game struct {
	ID         int64   `json:"id" yaml:"id" attr:"id"`
	Name       string  `json:"name" yaml:"name" attr:"name"`
	Slug       string  `json:"slug" yaml:"slug" attr:"slug"`
	Runner     string  `json:"runner" yaml:"runner" attr:"runner"`
	Platform   string  `json:"platform" yaml:"platform" attr:"platform"`
	Installed  bool    `json:"installed" yaml:"installed" attr:"installed"`
	Service    string  `json:"service" yaml:"service" attr:"service"`
	AppID      string  `json:"appid" yaml:"appid" attr:"appid"`
	LastPlayed int64   `json:"lastplayed" yaml:"lastplayed" attr:"lastplayed"`
	Playtime   float64 `json:"playtime" yaml:"playtime" attr:"playtime"`
	LibraryID  int64   `json:"libraryid" yaml:"libraryid" attr:"libraryid"`
}

// Row flattens the game into the generic row shape used by output.
func (g Game) Row() map[string]interface{} {
	return map[string]interface{}{
		"id":         g.ID,
		"name":       g.Name,
		"slug":       g.Slug,
		"runner":     g.Runner,
		"platform":   g.Platform,
		"installed":  g.Installed,
		"service":    g.Service,
		"appid":      g.AppID,
		"lastplayed": g.LastPlayed,
		"playtime":   g.Playtime,
		"libraryid":  g.LibraryID,
	}
}

// Reserved category names.
const (
	HiddenCategory   = ".hidden"
	FavoriteCategory = "favorite"
)

// CategoryStore resolves category membership.
type CategoryStore interface {
	// NamesForCategory returns the stored category names that match name once
	// case and diacritics are ignored.
	NamesForCategory(ctx context.Context, name string) ([]string, error)
	// GameIDsForCategories returns the ids of games in any of the categories.
	GameIDsForCategories(ctx context.Context, names []string) ([]int64, error)
	// UncategorizedGameIDs returns the ids of games in no user category.
	UncategorizedGameIDs(ctx context.Context) ([]int64, error)
}

// InstalledSource reports which of a service's games are installed.
type InstalledSource interface {
	InstalledAppIDs(ctx context.Context, serviceID string) ([]string, error)
}

// Service is a storefront the library is bound to, such as steam or gog.
type Service interface {
	ID() string
	// PlatformsFor returns the platforms the service reports for game.
	PlatformsFor(game Game) []string
}
