// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package library

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/gamesq/gamesq/internal/games"
	"github.com/gamesq/gamesq/internal/log"
)

// DefaultPlatformPath is the gjson path of the platform list inside a service
// game's details document.
const DefaultPlatformPath = "platforms"

// Service is a storefront bound to the library. Platforms are read from the
// service_games details once, when the Service is created.
type Service struct {
	id        string
	platforms map[string][]string
}

var _ games.Service = (*Service)(nil)

// Service loads the service id. platformPath is a gjson path into each
// details document; DefaultPlatformPath is used when it is empty.
func (s *Store) Service(ctx context.Context, id string, platformPath string) (*Service, error) {
	if platformPath == "" {
		platformPath = DefaultPlatformPath
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(appid, ''), COALESCE(details, '')
		FROM service_games WHERE service = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s details: %w", id, err)
	}
	defer rows.Close()

	svc := &Service{id: id, platforms: make(map[string][]string)}
	for rows.Next() {
		var appID, details string
		if err := rows.Scan(&appID, &details); err != nil {
			return nil, fmt.Errorf("failed to scan %s details: %w", id, err)
		}
		if appID == "" {
			continue
		}
		svc.platforms[appID] = Platforms(details, platformPath)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	log.Debugf("service loaded: service=%s games=%d path=%s", id, len(svc.platforms), platformPath)

	return svc, nil
}

func (s *Service) ID() string {
	return s.id
}

// PlatformsFor returns the platforms recorded for the game's app id.
func (s *Service) PlatformsFor(game games.Game) []string {
	return s.platforms[game.AppID]
}

// Platforms extracts platform names from a details document. The value at path
// may be an array of strings, an array of objects with a "name" field, an
// object whose true-valued keys are platforms (as in {"windows": true}), or a
// single string.
func Platforms(details string, path string) []string {
	if details == "" || !gjson.Valid(details) {
		return nil
	}

	value := gjson.Get(details, path)
	var platforms []string
	switch {
	case value.IsArray():
		for _, item := range value.Array() {
			if item.IsObject() {
				item = item.Get("name")
			}
			if item.String() != "" {
				platforms = append(platforms, item.String())
			}
		}
	case value.IsObject():
		value.ForEach(func(key, v gjson.Result) bool {
			if v.Bool() {
				platforms = append(platforms, key.String())
			}
			return true
		})
	case value.Type == gjson.String && value.String() != "":
		platforms = append(platforms, value.String())
	}
	return platforms
}
