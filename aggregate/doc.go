// Package aggregate folds per-level co-occurrence counts into one combined,
// weighted matrix and a weighted degree vector.
//
// All state is indexed by the level-0 item space. A level's categories are
// only admitted when their parent label survived filtering at the previous
// level (see Restrict), which forms a chain of validity from level 0 upward.
package aggregate
