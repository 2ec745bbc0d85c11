// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package search implements the gamesq query language: free-form text such as
//
//	installed:yes -category:"My Games" castle
//
// is turned into a list of predicates that are AND-ed together and evaluated
// against candidate records.
//
// Processing happens in three stages:
//
//   - Tokenize splits the text into words, whitespace runs, lone "-" tokens,
//     "name:" labels and quoted phrases.
//   - Extract walks the non-whitespace tokens with a (prev, current, next)
//     window and produces Components. A "-" immediately before a term negates
//     it. A label whose name is in the active tag vocabulary takes the
//     following token as its value.
//   - Compile asks the search Kind for a tag-specific predicate and falls back
//     to an accent- and case-insensitive substring match against the
//     candidate's display text.
//
// Malformed input never fails. Unterminated quotes, stray "-" tokens, unknown
// tags and unrecognized flag values all degrade to literal text matching.
// The only errors surfaced come from the Kind's collaborators while compiling.
package search
