// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/gamesq/gamesq/internal/command"
	"github.com/gamesq/gamesq/internal/config"
	"github.com/gamesq/gamesq/internal/log"
	"github.com/gamesq/gamesq/internal/version"
)

var ctx = context.Background()

// valueFlags are the flags that consume the following argument.
var valueFlags = []string{
	"--attrs", "-a",
	"--db",
	"--output", "-o",
	"--padding",
	"--query", "-q",
	"--service",
	"--sort", "-s",
}

// boolFlags are the flags that never consume the following argument.
var boolFlags = []string{
	"--color", "-c",
	"--help", "-h",
	"--hidden",
	"--installed",
	"--schema",
	"--titles", "-t",
	"--version", "-v",
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--" {
			break
		}
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		// Short-circuit completion: pass args directly.
		return args
	}

	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	args = protectQueryTerms(args)
	args = deduplicateFlags(args)
	log.Debugf("args after flag processing: args=%v", args)

	return args
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--" {
			break
		}
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly expands the first @set argument with the string list at
// "<command>.<set>" in the config file. Each entry is split on whitespace.
func processSetOnly(args []string) []string {
	if len(args) < 3 {
		return args
	}

	removeIdx := -1
	set := ""
	for i, a := range args[2:] {
		if a == "--" {
			break
		}
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			set = a[1:]
			removeIdx = i + 2
			break
		}
	}
	if removeIdx == -1 {
		return args
	}

	setArgs, err := config.GetStringSlice(args[1] + "." + set)
	if err != nil {
		log.Warnf("set not expanded: set=%s err=%v", set, err)
	}

	var expanded []string
	for _, entry := range setArgs {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	result := make([]string, 0, len(args)+len(expanded))
	result = append(result, args[:removeIdx]...)
	result = append(result, expanded...)
	result = append(result, args[removeIdx+1:]...)
	return result
}

// isFlag reports whether a is a flag the CLI knows, in either --name or
// --name=value form.
func isFlag(a string) bool {
	name, _, _ := strings.Cut(a, "=")
	return slices.Contains(valueFlags, name) || slices.Contains(boolFlags, name)
}

// protectQueryTerms moves the search terms after "--" so that negated terms
// such as -hidden:yes or -demo reach the command as positional arguments
// instead of being parsed as flags. Term order is kept, since a tag and its
// value may be separate arguments. Anything already after "--" stays there.
func protectQueryTerms(args []string) []string {
	if len(args) < 3 {
		return args
	}

	head := slices.Clone(args[:2])
	var terms []string

	rest := args[2:]
	for i := 0; i < len(rest); i++ {
		a := rest[i]
		switch {
		case a == "--":
			terms = append(terms, rest[i+1:]...)
			i = len(rest)
		case isFlag(a):
			head = append(head, a)
			if slices.Contains(valueFlags, a) && i+1 < len(rest) {
				i++
				head = append(head, rest[i])
			}
		case strings.HasPrefix(a, "--"):
			// Unknown long flags are left for the CLI to reject.
			head = append(head, a)
		default:
			terms = append(terms, a)
		}
	}

	if len(terms) == 0 {
		return head
	}
	return append(append(head, "--"), terms...)
}

// deduplicateFlags removes earlier occurrences of repeated flags so the last
// one wins, along with the value each removed flag consumed. Arguments after
// "--" are never touched.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type occurrence struct {
		name  string
		start int
		end   int
	}

	end := len(args)
	if idx := slices.Index(args, "--"); idx != -1 {
		end = idx
	}

	var occurrences []occurrence
	for i := 2; i < end; i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") || a == "-" {
			continue
		}
		name, _, hasValue := strings.Cut(a, "=")
		o := occurrence{name: name, start: i, end: i}
		consumes := slices.Contains(valueFlags, name) ||
			(!slices.Contains(boolFlags, name) && i+1 < end && !strings.HasPrefix(args[i+1], "-"))
		if !hasValue && consumes && i+1 < end {
			o.end = i + 1
			i++
		}
		occurrences = append(occurrences, o)
	}

	last := make(map[string]int)
	for idx, o := range occurrences {
		last[o.name] = idx
	}

	drop := make(map[int]bool)
	for idx, o := range occurrences {
		if last[o.name] != idx {
			for i := o.start; i <= o.end; i++ {
				drop[i] = true
			}
		}
	}

	result := make([]string, 0, len(args))
	for i, a := range args {
		if !drop[i] {
			result = append(result, a)
		}
	}
	return result
}
