// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

const (
	envFile     = "GAMESQ_CFG_FILE"
	defaultFile = "gamesq.yaml"
)

// ErrNotFound is wrapped by lookups whose dotted key does not resolve.
var ErrNotFound = errors.New("config key not found")

// Type is a loaded gamesq.yaml. Source is the file it came from and Data its
// decoded tree. When Namespace is set, "<Namespace>.<key>" shadows "<key>".
type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

// Config is the process-wide configuration.
var Config Type

func init() {
	// A missing file is normal.
	_, _ = Load()
}

// IsNotFound reports whether err means a key was missing rather than present
// with the wrong shape.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// valueOr resolves key and converts it with conv. A missing key yields def[0]
// when exactly one default is supplied.
func valueOr[T any](key string, conv func(any) (T, bool), want string, def []T) (T, error) {
	var zero T

	val, err := lookup(key)
	if err != nil {
		if len(def) == 1 {
			return def[0], nil
		}
		return zero, err
	}

	out, ok := conv(val)
	if !ok {
		return zero, fmt.Errorf("%s: value is not %s", key, want)
	}
	return out, nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asStrings(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// GetInt returns the int at key, or the single default when key is missing.
func GetInt(key string, defaultValue ...int) (int, error) {
	return valueOr(key, asInt, "an int", defaultValue)
}

// GetString returns the string at key, or the single default when key is
// missing.
func GetString(key string, defaultValue ...string) (string, error) {
	return valueOr(key, asString, "a string", defaultValue)
}

// GetStringSlice returns the list of strings at key, or the single default when
// key is missing.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	return valueOr(key, asStrings, "a list of strings", defaultValue)
}

// Decode unmarshals the subtree at key into v, a pointer to a yaml-tagged type.
func Decode(key string, v interface{}) error {
	val, err := lookup(key)
	if err != nil {
		return err
	}

	// Re-encode so the yaml tags on v apply.
	raw, err := yaml.Marshal(val)
	if err == nil {
		err = yaml.Unmarshal(raw, v)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

// Load reads the config file into the global Config, keeping its Namespace.
func Load() (Type, error) {
	path, err := configPath()
	if err != nil {
		return Type{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Type{}, fmt.Errorf("%s: %w", path, err)
	}

	Config = Type{Source: path, Namespace: Config.Namespace, Data: data}
	return Config, nil
}

func lookup(key string) (any, error) {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}
	return Config.get(key)
}

// get walks the dotted key through Data, trying the namespaced form first.
func (cfg *Type) get(key string) (any, error) {
	tried := []string{key}
	if cfg.Namespace != "" {
		tried = []string{cfg.Namespace + "." + key, key}
	}

	for _, k := range tried {
		if v, ok := walk(cfg.Data, strings.Split(k, ".")); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: tried %v", ErrNotFound, tried)
}

func walk(node any, path []string) (any, bool) {
	for _, part := range path {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if node, ok = m[part]; !ok {
			return nil, false
		}
	}
	return node, true
}

// configPath finds the config file: $GAMESQ_CFG_FILE when set, else
// gamesq.yaml in the user config directory.
func configPath() (string, error) {
	if p := os.Getenv(envFile); p != "" {
		fi, err := os.Stat(p)
		switch {
		case err != nil:
			return "", fmt.Errorf("config file not found at %s path: %s", envFile, p)
		case fi.IsDir():
			return "", fmt.Errorf("%s points to a directory: %s", envFile, p)
		}
		log.Debugf("using config file from %s: %s", envFile, p)
		return p, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	p := filepath.Join(dir, defaultFile)
	if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
		log.Debugf("using config file: %s", p)
		return p, nil
	}
	return "", errors.New("no config file found in standard locations")
}
