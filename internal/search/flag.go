// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package search

// Flag is the tri-state value of a flag tag such as installed:yes.
type Flag int

const (
	FlagFalse Flag = iota
	FlagTrue
	// FlagMaybe performs no test. It still counts as mentioning the tag, which
	// lets callers skip their own default for it.
	FlagMaybe
)

var flagTexts = map[string]Flag{
	"true":  FlagTrue,
	"yes":   FlagTrue,
	"false": FlagFalse,
	"no":    FlagFalse,
	"maybe": FlagMaybe,
}

// ParseFlag resolves a flag word. Matching is case-insensitive. The second
// return value is false when value is not a flag word.
func ParseFlag(value string) (Flag, bool) {
	flag, ok := flagTexts[Fold(value)]
	return flag, ok
}

// Bool returns the flag as a boolean. FlagMaybe has no boolean value and
// reports false.
func (f Flag) Bool() bool {
	return f == FlagTrue
}

func (f Flag) String() string {
	switch f {
	case FlagTrue:
		return "yes"
	case FlagFalse:
		return "no"
	case FlagMaybe:
		return "maybe"
	default:
		return "unknown"
	}
}
