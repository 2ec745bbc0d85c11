// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"strings"

	"github.com/gamesq/gamesq/internal/log"
)

// Component is one decoded term of a query.
type Component struct {
	// Name is the folded tag name, or empty for an untagged term.
	Name string `yaml:"name" json:"Name"`
	// Value is the tag value with quotes stripped. For untagged terms it is the
	// term itself.
	Value string `yaml:"value" json:"Value"`
	// Raw is the literal text used when the term falls back to substring
	// matching.
	Raw string `yaml:"raw" json:"Raw"`
	// Negated is set when the term was immediately preceded by a lone "-".
	Negated bool `yaml:"negated" json:"Negated"`
}

// window is the (prev, current, next) view over the non-whitespace tokens.
type window struct {
	prev, current, next string
}

// windows slides over the non-whitespace tokens of text. Slots past either end
// of the token list are empty strings.
func windows(text string) []window {
	var words []string
	for _, token := range Tokenize(text) {
		if !isSpaceToken(token) {
			words = append(words, token)
		}
	}

	at := func(i int) string {
		if i < 0 || i >= len(words) {
			return ""
		}
		return words[i]
	}

	result := make([]window, 0, len(words))
	for i := range words {
		result = append(result, window{prev: at(i - 1), current: at(i), next: at(i + 1)})
	}
	return result
}

// Extract decodes text into its Components using tags as the vocabulary of
// recognized label names. Order is preserved.
func Extract(text string, tags []string) []Component {
	var components []Component

	skip := false
	for _, w := range windows(text) {
		// The previous label already consumed this token as its value.
		if skip {
			skip = false
			continue
		}

		negated := w.prev == "-"

		switch {
		case w.current == "-":
			continue
		case strings.HasPrefix(w.current, `"`):
			unquoted := cleanToken(w.current)
			components = append(components, Component{Value: unquoted, Raw: unquoted, Negated: negated})
			continue
		case strings.HasSuffix(w.current, ":"):
			name := Fold(strings.TrimSpace(strings.TrimSuffix(w.current, ":")))
			if hasTag(tags, name) {
				value := cleanToken(w.next)
				components = append(components, Component{
					Name:    name,
					Value:   value,
					Raw:     w.current + value,
					Negated: negated,
				})
				skip = true
				continue
			}
			log.Tracef("unknown tag treated as text: token=%s", w.current)
		}

		components = append(components, Component{Value: w.current, Raw: w.current, Negated: negated})
	}

	return components
}

// cleanToken strips the quotes from a quoted token. The trailing quote is only
// removed when it is a distinct character from the leading one. Unquoted
// tokens are trimmed of surrounding whitespace.
func cleanToken(token string) string {
	if !strings.HasPrefix(token, `"`) {
		return strings.TrimSpace(token)
	}

	unquoted := token[1:]
	if len(token) >= 2 && strings.HasSuffix(token, `"`) {
		unquoted = unquoted[:len(unquoted)-1]
	}
	return unquoted
}

func hasTag(tags []string, name string) bool {
	for _, tag := range tags {
		if tag == name {
			return true
		}
	}
	return false
}
