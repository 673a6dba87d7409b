// Package sparse provides the sparse n×n structures used to build and ship
// item similarity graphs.
//
// # Counts
//
// Counts is a coordinate-list accumulator keyed by unordered item pairs
// (i < j). Inserting an existing pair updates it in place, so the structure
// never holds duplicates. The diagonal is never stored: an item does not
// co-occur with itself.
//
// # Matrix
//
// Matrix is an immutable compressed sparse row (CSR) matrix. Counts.ToMatrix
// materializes both triangles, so the result is symmetric with a zero
// diagonal.
//
//	counts := sparse.NewCounts(3)
//	counts.Inc(0, 1, 0)
//	m := counts.ToMatrix(func(_ sparse.Pair, v uint32) float64 { return float64(v) })
//	m.At(1, 0) // 1
//
// # Persistence
//
// Matrices serialize to a self-describing binary format made of LZ4 or ZSTD
// compressed blocks, with a CRC32C checksum over the uncompressed payload.
package sparse
