// Package testutil provides testing utilities for catsim.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random category hierarchies and
// computing the reference similarity of a hierarchy by brute force.
//
// # Random Hierarchies
//
//	rng := testutil.NewRNG(seed)
//	h := rng.Hierarchy(200, 3, 40, 3)
//	src := h.Source("project")
//
// # Reference Similarity
//
//	want := testutil.ReferenceSimilarity(h, []float64{1, 1, 1}, nil, keep, 1e-4)
package testutil
