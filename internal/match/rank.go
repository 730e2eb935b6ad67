package match

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Defaults for recommendation ranking. Callers fetch at most 2*limit source
// records before scoring to bound cost.
const (
	DefaultLimit    = 10
	DefaultMinScore = 30
)

// Entry pairs a scored item with its score for response assembly.
type Entry[T any] struct {
	Item  T
	Score Score
}

// Rank scores every item concurrently, drops entries below minScore, sorts
// descending by overall score (stable: original relative order is preserved
// on ties), and truncates to limit. minScore and limit fall back to the
// package defaults when non-positive.
func Rank[T any](ctx context.Context, items []T, score func(context.Context, T) (Score, error), minScore, limit int) ([]Entry[T], error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if minScore <= 0 {
		minScore = DefaultMinScore
	}

	scores := make([]Score, len(items))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		g.Go(func() error {
			s, err := score(gctx, item)
			if err != nil {
				return err
			}
			scores[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]Entry[T], 0, len(items))
	for i, item := range items {
		if scores[i].Overall >= minScore {
			entries = append(entries, Entry[T]{Item: item, Score: scores[i]})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score.Overall > entries[j].Score.Overall
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
