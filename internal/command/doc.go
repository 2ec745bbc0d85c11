// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command wires the gamesq CLI: the gq game query, the rq runner
// query, the si interactive console and shell completion.
package command
