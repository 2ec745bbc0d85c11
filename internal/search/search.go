// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"context"
	"strings"
	"sync"

	"github.com/gamesq/gamesq/internal/log"
)

// Kind supplies the domain specifics of a search: the recognized tags, the
// display text used for substring matching and the tag predicates.
type Kind[T any] interface {
	// Tags is the fixed vocabulary of label names, already folded.
	Tags() []string
	// CandidateText is the text searched by untagged terms.
	CandidateText(candidate T) string
	// PartPredicate compiles a tag-specific predicate. It returns a nil
	// predicate when the name/value combination is not handled, in which case
	// the term falls back to substring matching on its raw text. Collaborator
	// lookups belong here, once per compiled predicate, never inside the
	// returned predicate.
	PartPredicate(ctx context.Context, name, value string) (Predicate[T], error)
}

// Search is a query text bound to a Kind. The compiled Query is built on first
// use and cached for the life of the Search. The text cannot change after
// construction.
type Search[T any] struct {
	text string
	kind Kind[T]

	mu       *sync.Mutex
	compiled bool
	query    *Query[T]
	err      error
}

// New returns a Search for text.
func New[T any](text string, kind Kind[T]) *Search[T] {
	return &Search[T]{
		text: text,
		kind: kind,
		mu:   &sync.Mutex{},
	}
}

func (s *Search[T]) String() string {
	return s.text
}

// IsEmpty reports whether the search has no text. An empty search matches
// every candidate.
func (s *Search[T]) IsEmpty() bool {
	return s.text == ""
}

// Components decodes the search text using the Kind's tag vocabulary.
func (s *Search[T]) Components() []Component {
	return Extract(s.text, s.kind.Tags())
}

// HasComponent reports whether the text mentions the tag name, whatever its
// value.
func (s *Search[T]) HasComponent(name string) bool {
	for _, c := range s.Components() {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Compile returns the compiled Query, building it on the first call. Later
// calls return the cached result, including a Kind error. A failure while ctx
// is done is not cached, so a later call with a live context compiles again.
func (s *Search[T]) Compile(ctx context.Context) (*Query[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.compiled {
		return s.query, s.err
	}

	q, err := compile(ctx, s.kind, s.Components())
	if err != nil && ctx.Err() != nil {
		return nil, err
	}
	s.query, s.err, s.compiled = q, err, true
	return q, err
}

// Matches reports whether candidate satisfies every term of the search.
func (s *Search[T]) Matches(ctx context.Context, candidate T) (bool, error) {
	q, err := s.Compile(ctx)
	if err != nil {
		return false, err
	}
	return q.Matches(candidate), nil
}

// WithPredicate returns a new Search whose compiled Query is s's plus p. The
// receiver is left unchanged and keeps sharing its own compiled predicates.
func (s *Search[T]) WithPredicate(ctx context.Context, p Predicate[T]) (*Search[T], error) {
	q, err := s.Compile(ctx)
	if err != nil {
		return nil, err
	}

	extended := New(s.text, s.kind)
	extended.query, extended.compiled = q.With(p), true
	return extended, nil
}

// compile turns components into negation-adjusted predicates.
func compile[T any](ctx context.Context, kind Kind[T], components []Component) (*Query[T], error) {
	predicates := make([]Predicate[T], 0, len(components))

	for _, c := range components {
		var predicate Predicate[T]
		if c.Name != "" {
			p, err := kind.PartPredicate(ctx, c.Name, c.Value)
			if err != nil {
				return nil, err
			}
			predicate = p
		}
		if predicate == nil {
			if c.Name != "" {
				log.Tracef("tag value falls back to text: raw=%s", c.Raw)
			}
			predicate = TextPredicate(kind, c.Raw)
		}

		if c.Negated {
			predicate = Not(predicate)
		}
		predicates = append(predicates, predicate)
	}

	return &Query[T]{predicates: predicates}, nil
}

// TextPredicate matches candidates whose display text contains text, ignoring
// case and diacritics.
func TextPredicate[T any](kind Kind[T], text string) Predicate[T] {
	folded := Fold(text)
	return func(candidate T) bool {
		return strings.Contains(Fold(kind.CandidateText(candidate)), folded)
	}
}
