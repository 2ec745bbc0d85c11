// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package runners searches the runners that can launch games. Runners are
// declared under the "runners" key of the configuration file; untagged terms
// match a runner's name and description, and installed:<flag> checks whether
// the runner is present on this machine.
package runners
