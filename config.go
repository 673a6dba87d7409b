package catsim

import (
	"fmt"
	"math"
	"runtime"

	"github.com/hupe1980/catsim/jaccard"
	"github.com/hupe1980/catsim/table"
	"github.com/hupe1980/catsim/weights"
)

// plan is the validated configuration of one run.
type plan struct {
	paths   []string
	columns []string
	weights []uint32
	caps    []uint32
	workers int
}

func (o *options) resolve() (*plan, error) {
	switch {
	case o.levelsSet && len(o.paths) > 0:
		return nil, configError("levels", ErrAmbiguousLevels)
	case !o.levelsSet && len(o.paths) == 0:
		return nil, configError("levels", ErrMissingLevels)
	}

	p := &plan{paths: o.paths}
	if o.levelsSet {
		if o.levels <= 0 {
			return nil, configError("levels", fmt.Errorf("%w: got %d levels", ErrMissingLevels, o.levels))
		}
		p.paths = table.LevelPaths(o.levels, o.project)
	}
	levels := len(p.paths)

	p.columns = o.columns
	if len(p.columns) == 0 && o.levelsSet {
		p.columns = table.LevelColumns(levels)
	}
	if len(p.columns) != levels {
		return nil, configError("columns", fmt.Errorf("%w: want %d, got %d", ErrMissingColumns, levels, len(p.columns)))
	}
	for l, c := range p.columns {
		if c == "" {
			return nil, configError("columns", fmt.Errorf("%w: level %d is empty", ErrMissingColumns, l))
		}
	}
	if o.titleColumn == "" {
		return nil, configError("title column", ErrMissingColumns)
	}

	w := o.weights
	if w == nil {
		w = weights.Ones(levels)
	}
	if len(w) != levels {
		return nil, configError("weights", fmt.Errorf("%w: want %d, got %d", ErrWeightCount, levels, len(w)))
	}
	rw, err := weights.Rationalize(w)
	if err != nil {
		return nil, configError("weights", err)
	}
	p.weights = rw

	p.caps = o.caps
	if p.caps == nil {
		p.caps = make([]uint32, levels)
	}
	if len(p.caps) != levels {
		return nil, configError("caps", fmt.Errorf("%w: want %d, got %d", ErrCapCount, levels, len(p.caps)))
	}

	if o.epsilon < 0 || math.IsNaN(o.epsilon) || math.IsInf(o.epsilon, 0) {
		return nil, configError("epsilon", fmt.Errorf("%w: %v", jaccard.ErrInvalidEpsilon, o.epsilon))
	}

	p.workers = o.workers
	switch {
	case o.controller != nil:
		p.workers = o.controller.Workers(o.workers)
	case p.workers <= 0:
		p.workers = runtime.GOMAXPROCS(0)
	}
	return p, nil
}
