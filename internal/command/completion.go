// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/gamesq/gamesq/internal/meta"
)

const bashCompletionScript = `# bash completion for gamesq
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_gamesq()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "gq rq si completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color -c --output -o --padding --query -q --schema --sort -s --titles -t"
    local library="--db --hidden --installed --service"
    local tags="installed: hidden: favorite: categorized: category: runner: platform:"

    case "$cmd" in
        gq)
            local opts="$common $library"
            ;;
        rq)
            local opts="$common"
            tags="installed:"
            ;;
        si)
            local opts="$library"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            return 0
            ;;
        --db)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Search terms: offer the tag names.
    COMPREPLY=( $(compgen -W "$tags" -- "$cur") )
    compopt -o nospace 2>/dev/null
    return 0
}

complete -F _gamesq gamesq
`

const zshCompletionScript = `#compdef gamesq

_gamesq() {
  local -a cmds
  cmds=(
    'gq:game query'
    'rq:runner query'
    'si:interactive game search'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '--padding[spaces between columns]:padding'
  '(-q --query)'{-q,--query}'[search text]:query'
  '--schema[list attributes]'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  local -a library
  library=(
  '--db[game library database]:database:_files'
  '--hidden[include hidden games]'
  '--installed[only installed games]'
  '--service[service catalog to search]:service'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'gamesq commands' cmds
    return
  fi

  case $words[2] in
    gq)
      _arguments -C $common $library '*:search terms:(installed: hidden: favorite: categorized: category: runner: platform:)'
      ;;
    rq)
      _arguments -C $common '*:search terms:(installed:)'
      ;;
    si)
      _arguments -C $library
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _gamesq gamesq
`

func completionCommandAction(_ context.Context, cmd *cli.Command) error {
	w := writer(cmd)

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		return fmt.Errorf("usage: gamesq completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "gamesq completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
