package prom

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/catsim"
	"github.com/hupe1980/catsim/table"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLevel(0, 12, 40, 5*time.Millisecond)
	c.RecordLevel(1, 7, 55, time.Millisecond)
	c.RecordNormalize(110, time.Millisecond)
	c.RecordRun(30, 2, time.Second, nil)
	c.RecordRun(0, 0, time.Second, errors.New("boom"))

	assert.Equal(t, 12.0, testutil.ToFloat64(c.levelCategories.WithLabelValues("0")))
	assert.Equal(t, 55.0, testutil.ToFloat64(c.levelPairs.WithLabelValues("1")))
	assert.Equal(t, 110.0, testutil.ToFloat64(c.normalizeNNZ))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runsTotal.WithLabelValues("error")))
	assert.Equal(t, 30.0, testutil.ToFloat64(c.runItems))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.runExcluded))

	n, err := testutil.GatherAndCount(reg, "catsim_level_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCollectorDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)
	assert.Panics(t, func() { NewCollector(reg) })
}

func TestCollectorWithPipeline(t *testing.T) {
	reg := prometheus.NewRegistry()
	src := table.MemorySource{
		"l0.csv": {
			{"title": "a", "category": "['A']"},
			{"title": "b", "category": "['A', 'B']"},
			{"title": "c", "category": "['B (disambiguation)']"},
		},
	}
	_, err := catsim.LeveledJaccardSimilarity(context.Background(), src,
		catsim.WithLevelPaths("l0.csv"),
		catsim.WithColumns("category"),
		catsim.WithMetricsCollector(NewCollector(reg)),
	)
	require.NoError(t, err)

	expected := `
# HELP catsim_run_excluded_items Disambiguation items dropped by the last successful run
# TYPE catsim_run_excluded_items gauge
catsim_run_excluded_items 1
# HELP catsim_run_items Items in the result of the last successful run
# TYPE catsim_run_items gauge
catsim_run_items 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "catsim_run_items", "catsim_run_excluded_items"))
}
