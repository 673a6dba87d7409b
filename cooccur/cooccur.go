package cooccur

import (
	"context"
	"fmt"
	"runtime"

	"github.com/hupe1980/catsim/model"
	"github.com/hupe1980/catsim/sparse"
	"golang.org/x/sync/errgroup"
)

// minParallelCategories is the level size below which sharding costs more
// than it saves.
const minParallelCategories = 64

// Validate checks that every member of every category addresses one of the
// n items.
func Validate(n int, cats []model.Category) error {
	for row, c := range cats {
		mx, ok := c.Members.Max()
		if !ok {
			continue
		}
		if int64(mx) >= int64(n) {
			return model.NewMalformedInputError(row, c.Label, c.Members.Slice(),
				fmt.Errorf("item %d: %w (n=%d)", mx, sparse.ErrIndexOutOfRange, n))
		}
	}
	return nil
}

// Build accumulates the co-occurrence counts of cats sequentially.
// limit caps each pair's count; 0 disables the cap.
func Build(n int, cats []model.Category, limit uint32) (*sparse.Counts, error) {
	if err := Validate(n, cats); err != nil {
		return nil, err
	}
	counts := sparse.NewCounts(n)
	accumulate(counts, cats, limit)
	return counts, nil
}

// BuildParallel is Build with categories sharded across workers.
// workers <= 0 uses GOMAXPROCS. The result equals Build's.
func BuildParallel(ctx context.Context, n int, cats []model.Category, limit uint32, workers int) (*sparse.Counts, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || len(cats) < minParallelCategories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return Build(n, cats, limit)
	}
	if err := Validate(n, cats); err != nil {
		return nil, err
	}

	shards := make([]*sparse.Counts, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			local := sparse.NewCounts(n)
			for step, k := 0, w; k < len(cats); step, k = step+1, k+workers {
				if step%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				// Uncapped here: the cap is only valid on merged totals.
				accumulate(local, cats[k:k+1], 0)
			}
			shards[w] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := shards[0]
	for _, s := range shards[1:] {
		if err := merged.Merge(s); err != nil {
			return nil, err
		}
	}
	merged.Cap(limit)
	return merged, nil
}

func accumulate(counts *sparse.Counts, cats []model.Category, limit uint32) {
	for _, c := range cats {
		switch size := c.Size(); {
		case size < 2:
			continue
		case size == 2:
			ids := c.Members.Slice()
			counts.Inc(ids[0], ids[1], limit)
		default:
			ids := c.Members.Slice()
			for a := 0; a < len(ids); a++ {
				for b := a + 1; b < len(ids); b++ {
					counts.Inc(ids[a], ids[b], limit)
				}
			}
		}
	}
}

// PairWork returns the number of pair increments building cats requires.
func PairWork(cats []model.Category) uint64 {
	var total uint64
	for _, c := range cats {
		k := uint64(c.Size())
		if k >= 2 {
			total += k * (k - 1) / 2
		}
	}
	return total
}

// Builder carries the worker configuration used by the level aggregator.
type Builder struct {
	workers int
}

// NewBuilder creates a Builder. workers <= 1 builds sequentially.
func NewBuilder(workers int) *Builder {
	return &Builder{workers: workers}
}

// Workers returns the configured worker count.
func (b *Builder) Workers() int { return b.workers }

// Build builds one level's co-occurrence counts.
func (b *Builder) Build(ctx context.Context, n int, cats []model.Category, limit uint32) (*sparse.Counts, error) {
	if b == nil || b.workers <= 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return Build(n, cats, limit)
	}
	return BuildParallel(ctx, n, cats, limit, b.workers)
}
