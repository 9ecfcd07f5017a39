// Package selector picks the next issue to work on. Candidate sets come from
// the tracker already filtered by labels and sorted oldest-first; the
// selector only walks the priority cascade and takes the head of the first
// non-empty tier.
package selector

import (
	"context"
	"errors"

	"github.com/steveyegge/backlog/internal/gh"
	"github.com/steveyegge/backlog/internal/labels"
	"github.com/steveyegge/backlog/internal/types"
)

var (
	// ErrNoMatch is returned when an explicitly requested tier has no
	// candidates. No fallback occurs; the empty result is final.
	ErrNoMatch = errors.New("no issue matches the requested filters")

	// ErrExhausted is returned when the full priority cascade found no
	// candidates at any tier.
	ErrExhausted = errors.New("no issue found at any priority tier")
)

// Lister is the tracker subset the selector needs.
type Lister interface {
	ListIssues(ctx context.Context, opts gh.ListOptions) ([]gh.IssueSummary, error)
}

// Selector queries one tracker for candidate issues.
type Selector struct {
	tracker Lister
}

// New creates a Selector over the given tracker.
func New(tracker Lister) *Selector {
	return &Selector{tracker: tracker}
}

// Next returns the oldest open issue carrying priority:<priority> and
// status:<status> labels, optionally narrowed to epic:<epic>. Returns
// ErrNoMatch when the tier is empty; transport errors pass through.
func (s *Selector) Next(ctx context.Context, priority, epic, status string) (*gh.IssueSummary, error) {
	filters := []string{
		labels.Encode(types.PrefixPriority, priority),
		labels.Encode(types.PrefixStatus, status),
	}
	if epic != "" {
		filters = append(filters, labels.Encode(types.PrefixEpic, epic))
	}

	candidates, err := s.tracker.ListIssues(ctx, gh.ListOptions{Labels: filters})
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoMatch
	}

	// The tracker query sorts ascending by creation time; the head is the
	// oldest candidate.
	return &candidates[0], nil
}

// NextWithFallback walks the priority cascade critical → high → medium → low
// and returns the first tier's oldest candidate. A single critical issue,
// however old, beats any number of lower-tier issues. Returns ErrExhausted
// when every tier is empty; a transport error aborts the cascade.
func (s *Selector) NextWithFallback(ctx context.Context, epic, status string) (*gh.IssueSummary, error) {
	for _, tier := range types.Priorities() {
		issue, err := s.Next(ctx, tier, epic, status)
		if errors.Is(err, ErrNoMatch) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return issue, nil
	}
	return nil, ErrExhausted
}
