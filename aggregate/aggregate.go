package aggregate

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/catsim/cooccur"
	"github.com/hupe1980/catsim/model"
	"github.com/hupe1980/catsim/sparse"
)

// ErrFrozen is returned when a level is added after Finish.
var ErrFrozen = errors.New("aggregate: aggregator is frozen")

// LevelStats describes one added level.
type LevelStats struct {
	Level      int
	Categories int
	Members    int    // total category memberships after restriction
	Pairs      int    // distinct co-occurring pairs at this level
	Work       uint64 // pair increments performed
}

// Aggregator accumulates levels in order. It is not safe for concurrent use.
type Aggregator struct {
	n         int
	builder   *cooccur.Builder
	combined  *sparse.Counts
	degree    []uint64
	survivors map[string]struct{}
	levels    int
	frozen    bool
}

// New creates an Aggregator over n level-0 items. A nil builder builds
// sequentially.
func New(n int, builder *cooccur.Builder) *Aggregator {
	if builder == nil {
		builder = cooccur.NewBuilder(1)
	}
	return &Aggregator{
		n:        n,
		builder:  builder,
		combined: sparse.NewCounts(n),
		degree:   make([]uint64, n),
	}
}

// N returns the number of items.
func (a *Aggregator) N() int { return a.n }

// Levels returns the number of levels added so far.
func (a *Aggregator) Levels() int { return a.levels }

// Survives reports whether label was a filtered category of the most
// recently added level. Before the first level every label survives.
func (a *Aggregator) Survives(label string) bool {
	if a.levels == 0 {
		return true
	}
	_, ok := a.survivors[label]
	return ok
}

// Survivors returns the number of categories that survived the last level.
func (a *Aggregator) Survivors() int { return len(a.survivors) }

// Restrict keeps the rows whose parent label survived the previous level.
func Restrict[T any](a *Aggregator, rows []T, parent func(T) string) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if a.Survives(parent(r)) {
			out = append(out, r)
		}
	}
	return out
}

// AddLevel builds the co-occurrence counts of the already filtered cats,
// caps them at limit (0 disables), scales them by weight and adds them into
// the combined state. The labels of cats become the survivors that the next
// level is restricted to. A zero weight still records the survivors.
func (a *Aggregator) AddLevel(ctx context.Context, cats []model.Category, weight, limit uint32) (LevelStats, error) {
	if a.frozen {
		return LevelStats{}, ErrFrozen
	}

	stats := LevelStats{Level: a.levels, Categories: len(cats), Work: cooccur.PairWork(cats)}

	counts, err := a.builder.Build(ctx, a.n, cats, limit)
	if err != nil {
		return stats, fmt.Errorf("level %d: %w", a.levels, err)
	}
	stats.Pairs = counts.Len()

	if err := a.combined.AddScaled(counts, weight); err != nil {
		return stats, fmt.Errorf("level %d: %w", a.levels, err)
	}

	survivors := make(map[string]struct{}, len(cats))
	for _, c := range cats {
		survivors[c.Label] = struct{}{}
		stats.Members += c.Size()
		if weight == 0 {
			continue
		}
		for id := range c.Members.All() {
			a.degree[id] += uint64(weight)
		}
	}

	a.survivors = survivors
	a.levels++
	return stats, nil
}

// Combined returns the running combined counts. The caller must not modify it.
func (a *Aggregator) Combined() *sparse.Counts { return a.combined }

// Degree returns the running weighted degree vector. The caller must not
// modify it.
func (a *Aggregator) Degree() []uint64 { return a.degree }

// Finish freezes the aggregator and returns its final state.
func (a *Aggregator) Finish() (*sparse.Counts, []uint64) {
	a.frozen = true
	return a.combined, a.degree
}
