// Package silhouette scores a clustering of items against their Jaccard
// distance matrix.
//
// The distance matrix is a dense gonum mat.SymDense holding 1 - S with a
// zero diagonal. Score returns the mean silhouette coefficient in [-1, 1].
package silhouette
