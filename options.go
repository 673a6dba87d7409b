package catsim

import (
	"github.com/hupe1980/catsim/filter"
	"github.com/hupe1980/catsim/jaccard"
	"github.com/hupe1980/catsim/resource"
	"github.com/hupe1980/catsim/table"
)

// DefaultDisambiguationMarker marks items whose raw level-0 category cell
// identifies a disambiguation page.
const DefaultDisambiguationMarker = "isambig"

type options struct {
	levels      int
	levelsSet   bool
	paths       []string
	project     string
	columns     []string
	idColumn    string
	titleColumn string
	membersCol  string
	weights     []float64
	caps        []uint32
	epsilon     float64
	workers     int
	marker      string
	filter      *filter.Filter
	logger      *Logger
	metrics     MetricsCollector
	progress    func(Progress)
	controller  *resource.Controller
}

func defaultOptions() options {
	return options{
		idColumn:    table.DefaultMembersColumn,
		titleColumn: table.DefaultTitleColumn,
		membersCol:  table.DefaultMembersColumn,
		epsilon:     jaccard.DefaultEpsilon,
		workers:     1,
		marker:      DefaultDisambiguationMarker,
		filter:      filter.Default(),
		logger:      NoopLogger(),
		metrics:     NoopMetricsCollector{},
	}
}

// Option configures LeveledJaccardSimilarity.
type Option func(*options)

// WithLevels derives the level table paths of a project with the given
// number of hierarchy levels (see table.LevelPaths). Mutually exclusive with
// WithLevelPaths.
func WithLevels(levels int) Option {
	return func(o *options) {
		o.levels = levels
		o.levelsSet = true
	}
}

// WithLevelPaths sets explicit level table paths, level 0 first. Column
// names must then be given with WithColumns.
func WithLevelPaths(paths ...string) Option {
	return func(o *options) {
		o.paths = append([]string(nil), paths...)
	}
}

// WithProject sets the directory the paths derived by WithLevels live in.
func WithProject(project string) Option {
	return func(o *options) {
		o.project = project
	}
}

// WithColumns sets the label column of every level. Level l ≥ 1 tables are
// read with columns[l-1] as the child label and columns[l] as the parents.
// Defaults to table.LevelColumns when WithLevels is used.
func WithColumns(columns ...string) Option {
	return func(o *options) {
		o.columns = append([]string(nil), columns...)
	}
}

// WithItemColumns sets the id and title columns of the level-0 table.
// An empty id column numbers items by row.
func WithItemColumns(id, title string) Option {
	return func(o *options) {
		o.idColumn = id
		o.titleColumn = title
	}
}

// WithMembersColumn sets the column holding item ids in level l ≥ 1 tables.
func WithMembersColumn(name string) Option {
	return func(o *options) {
		o.membersCol = name
	}
}

// WithWeights sets one non-negative weight per level. Only the ratios matter.
// Defaults to 1 for every level.
func WithWeights(weights ...float64) Option {
	return func(o *options) {
		o.weights = append([]float64(nil), weights...)
	}
}

// WithCaps sets the per-pair co-occurrence cap of every level. 0 disables
// the cap for that level.
func WithCaps(caps ...uint32) Option {
	return func(o *options) {
		o.caps = append([]uint32(nil), caps...)
	}
}

// WithEpsilon sets the Jaccard denominator term. Defaults to
// jaccard.DefaultEpsilon.
func WithEpsilon(epsilon float64) Option {
	return func(o *options) {
		o.epsilon = epsilon
	}
}

// WithWorkers sets the number of co-occurrence workers per level.
// Values <= 0 use GOMAXPROCS. Defaults to 1.
func WithWorkers(workers int) Option {
	return func(o *options) {
		o.workers = workers
	}
}

// WithDisambiguationMarker sets the substring that excludes an item.
func WithDisambiguationMarker(marker string) Option {
	return func(o *options) {
		o.marker = marker
	}
}

// WithFilter replaces the category filter. Defaults to filter.Default.
func WithFilter(f *filter.Filter) Option {
	return func(o *options) {
		if f == nil {
			f = filter.Default()
		}
		o.filter = f
	}
}

// WithLogger sets the logger. Defaults to NoopLogger.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithProgress registers a callback invoked after every level.
func WithProgress(fn func(Progress)) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithResourceController bounds worker count and accumulator memory.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}
