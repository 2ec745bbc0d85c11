// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold strips diacritics from s and case-folds it so that "Élan" and "elan"
// compare equal. It is safe for concurrent use.
func Fold(s string) string {
	// Transformers carry state, so a fresh chain is built per call.
	stripper := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripper, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}

// FoldCase case-folds s and leaves diacritics alone, so "WINE" and "wine"
// compare equal but "wïne" does not.
func FoldCase(s string) string {
	return cases.Fold().String(s)
}
