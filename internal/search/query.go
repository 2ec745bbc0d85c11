// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package search

// Predicate tests a single candidate. Predicates capture everything they need
// when compiled and hold no other state.
type Predicate[T any] func(candidate T) bool

// Not returns the complement of p.
func Not[T any](p Predicate[T]) Predicate[T] {
	return func(candidate T) bool {
		return !p(candidate)
	}
}

// Always is the predicate that performs no test.
func Always[T any]() Predicate[T] {
	return func(T) bool { return true }
}

// Query is an immutable, compiled list of predicates. It is safe to share
// between goroutines and to evaluate candidates in parallel.
type Query[T any] struct {
	predicates []Predicate[T]
}

// Len returns the number of compiled predicates.
func (q *Query[T]) Len() int {
	return len(q.predicates)
}

// Matches reports whether candidate passes every predicate. Evaluation stops
// at the first failure. An empty query matches everything.
func (q *Query[T]) Matches(candidate T) bool {
	for _, p := range q.predicates {
		if !p(candidate) {
			return false
		}
	}
	return true
}

// Filter returns the candidates that match, preserving order.
func (q *Query[T]) Filter(candidates []T) []T {
	var matched []T
	for _, c := range candidates {
		if q.Matches(c) {
			matched = append(matched, c)
		}
	}
	return matched
}

// With returns a new Query holding q's predicates plus p. q is not modified.
func (q *Query[T]) With(p Predicate[T]) *Query[T] {
	predicates := make([]Predicate[T], 0, len(q.predicates)+1)
	predicates = append(predicates, q.predicates...)
	predicates = append(predicates, p)
	return &Query[T]{predicates: predicates}
}
