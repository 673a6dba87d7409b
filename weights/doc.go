// Package weights converts real per-level weights into small integers with
// the same pairwise ratios.
//
// Weighted Jaccard similarity is invariant under a uniform rescale of all
// level weights, so integer weights change no similarity value while
// letting the aggregator accumulate in integer sparse storage.
package weights
