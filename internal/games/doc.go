// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package games binds the search language to game library records.
//
// Recognized tags:
//
//   - installed:<flag>   installed state, from the bound service when there is one
//   - hidden:<flag>      membership in the reserved ".hidden" category
//   - favorite:<flag>    membership in the reserved "favorite" category
//   - categorized:<flag> membership in any user category
//   - category:<name>    membership in the named category
//   - runner:<name>      case-insensitive runner equality
//   - platform:<name>    case-insensitive platform equality
//
// Flags are yes/true, no/false or maybe. "maybe" performs no test.
package games
