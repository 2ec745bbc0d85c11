// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// tokenizer is the state carried across a single left-to-right pass over the
// query text. buffer holds the token being accumulated and space records
// whether it is a whitespace run.
type tokenizer struct {
	tokens []string
	buffer strings.Builder
	space  bool
}

// Tokenize splits text into its lexical tokens. Concatenating the result
// reproduces text exactly. Empty tokens are never returned.
//
// Token kinds are implicit in their content:
//
//   - a run of whitespace
//   - a lone "-"
//   - a label ending in ":" (the ":" always terminates the token)
//   - a quoted phrase starting with `"` and running to the next `"` or to the
//     end of the text when the quote is unterminated
//   - any other run of non-whitespace characters
func Tokenize(text string) []string {
	t := &tokenizer{}

	// Runes are decoded only to classify them; the text's own bytes are
	// copied into tokens, so invalid UTF-8 survives unchanged.
	for i := 0; i < len(text); {
		ch, size := utf8.DecodeRuneInString(text[i:])
		raw := text[i : i+size]
		isSpace := unicode.IsSpace(ch)

		// A change between whitespace and non-whitespace always ends the
		// current token.
		if t.buffer.Len() > 0 && isSpace != t.space {
			t.flush()
		}

		switch {
		case isSpace:
			t.space = true
			t.buffer.WriteString(raw)
		case ch == '-':
			t.flush()
			t.emit(raw)
		case ch == ':':
			t.buffer.WriteString(raw)
			t.flush()
		case ch == '"':
			t.flush()
			end := strings.IndexByte(text[i+1:], '"')
			if end < 0 {
				size = len(text) - i
			} else {
				size = end + 2 // both quotes
			}
			t.emit(text[i : i+size])
		default:
			t.space = false
			t.buffer.WriteString(raw)
		}
		i += size
	}
	t.flush()

	return t.tokens
}

// flush emits the accumulated buffer, if any, and starts a new one.
func (t *tokenizer) flush() {
	t.emit(t.buffer.String())
	t.buffer.Reset()
	t.space = false
}

func (t *tokenizer) emit(token string) {
	if token != "" {
		t.tokens = append(t.tokens, token)
	}
}

// isSpaceToken reports whether token is a whitespace run.
func isSpaceToken(token string) bool {
	return strings.TrimSpace(token) == ""
}
