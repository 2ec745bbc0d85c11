// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/gamesq/gamesq/internal/config"
	"github.com/gamesq/gamesq/internal/games"
	"github.com/gamesq/gamesq/internal/log"
	"github.com/gamesq/gamesq/internal/meta"
)

const siMaxHistory = 1000

// siQueryFunc runs one search typed into the console and returns the text to
// show for it.
type siQueryFunc func(text string) string

// siCommandAction is the action handler for the "si" subcommand. It opens the
// game library and launches an interactive search console over it.
func siCommandAction(ctx context.Context, cmd *cli.Command) error {
	if m := GetMeta(cmd); len(m.Args) > 1 {
		log.Debugf("executing action for %v", m.Args[1:])
	}

	config.Config.Namespace = "si"

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("si needs an interactive terminal, use gq instead")
	}

	lib, err := openGameLibrary(ctx, cmd)
	if err != nil {
		return err
	}
	defer lib.Close()

	includeHidden := cmd.Bool("hidden")
	installedOnly := cmd.Bool("installed")
	query := func(text string) string {
		matched, err := lib.Search(ctx, text, includeHidden, installedOnly)
		if err != nil {
			return fmt.Sprintf("error: %v", err)
		}
		return formatSiResult(matched)
	}

	welcome := fmt.Sprintf("Interactive game search. %d games loaded.", len(lib.candidates))
	p := tea.NewProgram(initialSiModel(welcome, query, getSiHistoryFile()))
	_, err = p.Run()
	return err
}

// formatSiResult lists the matched game names, one per line.
func formatSiResult(matched []games.Game) string {
	if len(matched) == 0 {
		return "No games found."
	}

	var b strings.Builder
	for i, g := range matched {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(g.Name)
		if g.Runner != "" {
			fmt.Fprintf(&b, " (%s)", g.Runner)
		}
	}
	fmt.Fprintf(&b, "\n%d games", len(matched))
	return b.String()
}

// siModel represents the Bubble Tea model for the si command.
type siModel struct {
	input textinput.Model
	// Full history for navigation, including the history file.
	history []string
	// Commands from this session, matched one to one with outputs after the
	// welcome lines.
	sessionHistory []string
	histIndex      int
	output         []string
	query          siQueryFunc
	historyFile    string
}

func initialSiModel(welcome string, query siQueryFunc, historyFile string) siModel {
	ti := textinput.New()
	ti.Placeholder = ""
	ti.Focus()
	ti.CharLimit = 2048
	ti.Width = 999
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorBlink)

	return siModel{
		input:          ti,
		history:        loadSiHistory(historyFile),
		sessionHistory: []string{},
		histIndex:      -1,
		output:         []string{welcome, "Type 'help' for syntax, 'exit' or Ctrl+C to quit."},
		query:          query,
		historyFile:    historyFile,
	}
}

func (m siModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m siModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			entry := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if entry == "" {
				return m, nil
			}
			if entry == "exit" || entry == "quit" {
				return m, tea.Quit
			}

			var result string
			if entry == "help" {
				result = getSiHelp()
			} else {
				result = m.query(entry)
			}

			m.history = append(m.history, entry)
			m.sessionHistory = append(m.sessionHistory, entry)
			m.histIndex = -1
			m.output = append(m.output, result)
			saveSiHistory(m.historyFile, m.history)
			return m, nil

		case "up":
			if len(m.history) == 0 {
				return m, nil
			}
			if m.histIndex == -1 {
				m.histIndex = len(m.history) - 1
			} else if m.histIndex > 0 {
				m.histIndex--
			}
			m.input.SetValue(m.history[m.histIndex])
			m.input.CursorEnd()
			return m, nil

		case "down":
			if len(m.history) == 0 {
				return m, nil
			}
			if m.histIndex >= 0 && m.histIndex < len(m.history)-1 {
				m.histIndex++
				m.input.SetValue(m.history[m.histIndex])
				m.input.CursorEnd()
			} else {
				m.histIndex = -1
				m.input.SetValue("")
			}
			return m, nil

		case "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m siModel) View() string {
	promptStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#2e8b57"))

	var lines []string
	lines = append(lines, m.output[:2]...)

	for i, entry := range m.sessionHistory {
		lines = append(lines, promptStyle.Render("> ")+entry)
		if i+2 < len(m.output) {
			lines = append(lines, m.output[i+2])
		}
	}

	lines = append(lines, promptStyle.Render("> ")+m.input.View())

	return strings.Join(lines, "\n")
}

func getSiHelp() string {
	return `Search syntax:
  Words match game names, ignoring case and accents. Every term must match.

     portal                 - names containing "portal"
     "half life"            - quoted phrase
     -demo                  - names not containing "demo"

  Tags:
     installed:yes|no       - installed state
     hidden:yes|no          - in the .hidden category
     favorite:yes|no        - in the favorite category
     categorized:yes|no     - in any user category
     category:NAME          - in category NAME
     runner:NAME            - uses runner NAME
     platform:NAME          - runs on platform NAME

  A flag value of maybe matches everything, so hidden:maybe shows hidden
  games too. Prefix a tag with - to negate it: -runner:wine.

  Navigation:
     up/down arrows         - command history
     Ctrl+C                 - exit`
}

// getSiHistoryFile returns the path to the si history file.
func getSiHistoryFile() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gamesq_si_history"
	}
	return filepath.Join(homeDir, ".gamesq_si_history")
}

func loadSiHistory(filename string) []string {
	var history []string

	file, err := os.Open(filename)
	if err != nil {
		return history
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			history = append(history, line)
		}
	}

	return history
}

// saveSiHistory keeps the last siMaxHistory entries. Write failures are
// logged and otherwise ignored.
func saveSiHistory(filename string, history []string) {
	start := 0
	if len(history) > siMaxHistory {
		start = len(history) - siMaxHistory
	}

	file, err := os.Create(filename)
	if err != nil {
		log.Debugf("si history not saved: err=%v", err)
		return
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, entry := range history[start:] {
		fmt.Fprintln(w, entry)
	}
	if err := w.Flush(); err != nil {
		log.Debugf("si history not saved: err=%v", err)
	}
}

// siCommandBuilder constructs the cli.Command for "si" and wires up metadata,
// flags, and the action handler.
func siCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "si",
		Usage:     "interactive game search",
		UsageText: "gamesq si [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  NewLibraryFlags("si", meta.Config.Source),
		Action: siCommandAction,
	}
}
