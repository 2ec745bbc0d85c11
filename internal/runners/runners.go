// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package runners

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/gamesq/gamesq/internal/log"
	"github.com/gamesq/gamesq/internal/search"
)

// Runner is anything that can run games and knows whether it is installed.
type Runner interface {
	Name() string
	Description() string
	IsInstalled() bool
}

// Definition is a runner declared in the configuration file:
//
//	runners:
//	  - name: wine
//	    description: Runs Windows games
//	    executable: wine
//	    paths: [~/.local/share/lutris/runners/wine]
type Definition struct {
	RunnerName        string   `yaml:"name" json:"name"`
	RunnerDescription string   `yaml:"description" json:"description"`
	Executable        string   `yaml:"executable" json:"executable"`
	Paths             []string `yaml:"paths" json:"paths"`
}

func (d Definition) Name() string        { return d.RunnerName }
func (d Definition) Description() string { return d.RunnerDescription }

// IsInstalled reports whether any configured path exists or the executable is
// found on PATH.
func (d Definition) IsInstalled() bool {
	for _, p := range d.Paths {
		expanded, err := homedir.Expand(p)
		if err != nil {
			log.Debugf("runner path not expanded: runner=%s path=%s err=%v", d.RunnerName, p, err)
			continue
		}
		if _, err := os.Stat(filepath.Clean(expanded)); err == nil {
			return true
		}
	}

	if d.Executable == "" {
		return false
	}
	_, err := exec.LookPath(d.Executable)
	return err == nil
}

// Record is the output shape of a runner.
type Record struct {
	Name        string `attr:"name"`
	Description string `attr:"description"`
	Installed   bool   `attr:"installed"`
}

// Row flattens the runner into the generic row shape used by output.
func Row(r Runner) map[string]interface{} {
	return map[string]interface{}{
		"name":        r.Name(),
		"description": r.Description(),
		"installed":   r.IsInstalled(),
	}
}

// Kind is the search.Kind for runners. The only recognized tag is installed.
type Kind struct{}

// NewSearch returns a runner search over text.
func NewSearch(text string) *search.Search[Runner] {
	return search.New[Runner](text, Kind{})
}

func (Kind) Tags() []string {
	return []string{"installed"}
}

// CandidateText is the runner's name and description on separate lines.
func (Kind) CandidateText(candidate Runner) string {
	return fmt.Sprintf("%s\n%s", candidate.Name(), candidate.Description())
}

func (Kind) PartPredicate(_ context.Context, name, value string) (search.Predicate[Runner], error) {
	if name != "installed" {
		return nil, nil
	}

	flag, ok := search.ParseFlag(strings.TrimSpace(value))
	if !ok {
		return nil, nil
	}
	if flag == search.FlagMaybe {
		return search.Always[Runner](), nil
	}

	installed := flag.Bool()
	return func(r Runner) bool {
		return r.IsInstalled() == installed
	}, nil
}
