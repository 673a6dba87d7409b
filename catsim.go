package catsim

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/catsim/aggregate"
	"github.com/hupe1980/catsim/cooccur"
	"github.com/hupe1980/catsim/filter"
	"github.com/hupe1980/catsim/jaccard"
	"github.com/hupe1980/catsim/model"
	"github.com/hupe1980/catsim/resource"
	"github.com/hupe1980/catsim/sparse"
	"github.com/hupe1980/catsim/table"
)

// Progress reports one aggregated level.
type Progress struct {
	RunID  string
	Level  int
	Levels int
	Stats  aggregate.LevelStats
}

// Result is the output of LeveledJaccardSimilarity. Items, Degree and the
// rows of Similarity share one order.
type Result struct {
	RunID      string
	Items      []model.Item
	Similarity *sparse.Matrix
	Degree     []float64              // weighted category count per item, in Weights units
	Weights    []uint32               // rationalized level weights
	Excluded   []model.ItemIndex      // level-0 rows dropped as disambiguation items
	Levels     []aggregate.LevelStats // one entry per level
}

// LeveledJaccardSimilarity loads every level table from src, aggregates the
// weighted co-occurrence of items across the category hierarchy and returns
// the generalized Jaccard similarity of every item pair.
//
// Exactly one of WithLevels or WithLevelPaths must be given; any other
// configuration problem is reported as a *ConfigError before src is used.
// Items whose raw level-0 category cell contains the disambiguation marker
// are removed from the result after the matrix is built.
func LeveledJaccardSimilarity(ctx context.Context, src table.Source, opts ...Option) (res *Result, err error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p, err := o.resolve()
	if err != nil {
		return nil, err
	}

	r := &run{
		id:  uuid.NewString(),
		o:   &o,
		p:   p,
		src: src,
	}
	r.log = o.logger.WithRunID(r.id).WithLevels(len(p.paths))

	start := time.Now()
	defer func() {
		d := time.Since(start)
		items, excluded := 0, 0
		if res != nil {
			items, excluded = len(res.Items), len(res.Excluded)
		}
		o.metrics.RecordRun(items, excluded, d, err)
		r.log.LogRun(ctx, items, excluded, d, err)
	}()

	if err := o.controller.AcquireWorkers(ctx, p.workers); err != nil {
		return nil, err
	}
	defer o.controller.ReleaseWorkers(p.workers)

	return r.execute(ctx)
}

type run struct {
	id    string
	o     *options
	p     *plan
	src   table.Source
	log   *Logger
	agg   *aggregate.Aggregator
	stats []aggregate.LevelStats
}

func (r *run) execute(ctx context.Context) (*Result, error) {
	rows, err := r.loadItems(ctx)
	if err != nil {
		return nil, err
	}
	n := len(rows)
	if uint64(n) > model.MaxItems {
		return nil, fmt.Errorf("catsim: %d items exceed the addressable %d", n, uint64(model.MaxItems))
	}
	r.agg = aggregate.New(n, cooccur.NewBuilder(r.p.workers))

	ms, err := table.Explode(rows)
	if err != nil {
		return nil, fmt.Errorf("level 0 (%s): %w", r.p.paths[0], err)
	}
	kept := filter.Apply(r.o.filter, ms, func(m table.Membership) any { return m.Label })
	cats := table.Group(kept)
	if err := r.addLevel(ctx, 0, cats); err != nil {
		return nil, err
	}

	prev := membersByLabel(cats)
	for l := 1; l < len(r.p.paths); l++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if cats, err = r.loadLevel(ctx, l, prev); err != nil {
			return nil, err
		}
		if err := r.addLevel(ctx, l, cats); err != nil {
			return nil, err
		}
		prev = membersByLabel(cats)
	}

	counts, degree := r.agg.Finish()
	start := time.Now()
	sim, err := jaccard.Normalize(counts, degree, r.o.epsilon)
	if err != nil {
		return nil, err
	}
	d := time.Since(start)
	r.o.metrics.RecordNormalize(sim.NNZ(), d)
	r.log.LogNormalize(ctx, sim.NNZ(), d)

	return r.result(rows, kept, sim, degree), nil
}

func (r *run) load(ctx context.Context, l int) ([]table.Record, error) {
	path := r.p.paths[l]
	recs, err := r.src.Load(ctx, path)
	r.log.LogLoad(ctx, l, path, len(recs), err)
	if err != nil {
		return nil, fmt.Errorf("level %d: %w", l, err)
	}
	return recs, nil
}

func (r *run) loadItems(ctx context.Context) ([]table.ItemRow, error) {
	recs, err := r.load(ctx, 0)
	if err != nil {
		return nil, err
	}
	rows, err := table.ItemRows(recs, table.ItemColumns{
		ID:         r.o.idColumn,
		Title:      r.o.titleColumn,
		Categories: r.p.columns[0],
	})
	if err != nil {
		return nil, fmt.Errorf("level 0 (%s): %w", r.p.paths[0], err)
	}
	return rows, nil
}

// loadLevel reads level l, keeps the rows whose category survived level
// l-1, filters their parents and regroups the members by parent. A row
// without member ids inherits the members of its category at level l-1.
func (r *run) loadLevel(ctx context.Context, l int, prev map[string]*model.ItemSet) ([]model.Category, error) {
	recs, err := r.load(ctx, l)
	if err != nil {
		return nil, err
	}
	rows, err := table.CategoryRows(recs, table.CategoryColumns{
		Label:   r.p.columns[l-1],
		Members: r.o.membersCol,
		Parents: r.p.columns[l],
	})
	if err != nil {
		return nil, fmt.Errorf("level %d (%s): %w", l, r.p.paths[l], err)
	}
	links, err := table.Links(rows, r.o.membersCol)
	if err != nil {
		return nil, fmt.Errorf("level %d (%s): %w", l, r.p.paths[l], err)
	}

	links = aggregate.Restrict(r.agg, links, func(k table.Link) string { return k.Child })
	for i := range links {
		if links[i].Members == nil {
			links[i].Members = prev[links[i].Child]
		}
		links[i].Parents = r.o.filter.Strings(links[i].Parents)
	}
	return table.Regroup(links, ""), nil
}

func (r *run) addLevel(ctx context.Context, l int, cats []model.Category) error {
	weight, limit := r.p.weights[l], r.p.caps[l]

	reserve := pairReservation(r.agg.N(), cats)
	if err := r.o.controller.AcquireMemory(ctx, reserve); err != nil {
		return fmt.Errorf("level %d: %w", l, err)
	}
	defer r.o.controller.ReleaseMemory(reserve)

	start := time.Now()
	stats, err := r.agg.AddLevel(ctx, cats, weight, limit)
	d := time.Since(start)
	r.log.LogLevel(ctx, stats, weight, limit, d, err)
	if err != nil {
		return err
	}

	r.o.metrics.RecordLevel(l, stats.Categories, stats.Pairs, d)
	r.stats = append(r.stats, stats)
	if r.o.progress != nil {
		r.o.progress(Progress{RunID: r.id, Level: l, Levels: len(r.p.paths), Stats: stats})
	}
	return nil
}

// pairReservation estimates the bytes of one level's pair accumulator.
func pairReservation(n int, cats []model.Category) int64 {
	pairs := cooccur.PairWork(cats)
	if n > 1 {
		pairs = min(pairs, uint64(n)*uint64(n-1)/2)
	}
	const limit = uint64(1<<63-1) / resource.PairBytes
	return int64(min(pairs, limit) * resource.PairBytes)
}

func membersByLabel(cats []model.Category) map[string]*model.ItemSet {
	m := make(map[string]*model.ItemSet, len(cats))
	for _, c := range cats {
		m[c.Label] = c.Members
	}
	return m
}

// result rebuilds the filtered top-level categories of every item and
// drops disambiguation items from the items and both matrix axes.
func (r *run) result(rows []table.ItemRow, kept []table.Membership, sim *sparse.Matrix, degree []uint64) *Result {
	byItem := make([][]string, len(rows))
	for _, m := range kept {
		if !slices.Contains(byItem[m.Item], m.Label) {
			byItem[m.Item] = append(byItem[m.Item], m.Label)
		}
	}

	excluded := model.NewItemSet()
	if r.o.marker != "" {
		for i, row := range rows {
			if strings.Contains(row.Raw(), r.o.marker) {
				excluded.Add(model.ItemIndex(i))
			}
		}
	}

	res := &Result{
		RunID:      r.id,
		Items:      make([]model.Item, 0, len(rows)-excluded.Len()),
		Degree:     make([]float64, 0, len(rows)-excluded.Len()),
		Similarity: sim.Without(excluded),
		Weights:    r.p.weights,
		Excluded:   excluded.Slice(),
		Levels:     r.stats,
	}
	for i, row := range rows {
		if excluded.Contains(model.ItemIndex(i)) {
			continue
		}
		cats := byItem[i]
		if cats == nil {
			cats = []string{}
		}
		res.Items = append(res.Items, model.Item{
			Index:      model.ItemIndex(len(res.Items)),
			ID:         row.ID,
			Title:      row.Title,
			Categories: cats,
		})
		res.Degree = append(res.Degree, float64(degree[i]))
	}
	return res
}
