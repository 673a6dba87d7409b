// Package model defines the core types shared by every catsim component.
//
// # Identity Types
//
//   - ItemIndex: dense, 0-based index of an item, fixed by the row order of
//     the level-0 table. Every matrix and vector is indexed by it.
//   - ItemSet: a sorted, de-duplicated set of ItemIndex values backed by a
//     Roaring bitmap.
//
// # Data Types
//
//   - Category: a category label together with the items that belong to it.
//   - Item: an output row (identifier, title, filtered top-level categories).
package model
