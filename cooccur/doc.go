// Package cooccur turns one hierarchy level (category → member items) into a
// sparse symmetric matrix of shared-category counts.
//
// Entry (i, j) is the number of categories at this level containing both
// item i and item j. An optional per-pair limit caps the contribution of
// very large categories; the cap applies within a single level only.
//
// BuildParallel shards categories across workers, accumulates into private
// Counts, sums them key-wise and only then applies the cap, since a shard
// cannot know the global count of a pair.
package cooccur
