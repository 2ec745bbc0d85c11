// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package library reads the game library database (a SQLite file in the
// layout of a Lutris pga.db) and provides the collaborators game searches
// need: category membership, installed service games and service platforms.
//
// Tables used:
//
//   - games(id, name, slug, runner, platform, installed, service, service_id, lastplayed, playtime)
//   - categories(id, name)
//   - games_categories(game_id, category_id)
//   - service_games(id, service, appid, name, slug, details)
package library
