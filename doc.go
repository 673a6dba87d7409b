// Package catsim turns a category hierarchy over a fixed set of items into a
// pairwise item similarity suitable for graph clustering.
//
// Items are tagged with categories (level 0), categories are tagged with
// parent categories (level 1), and so on. At every level the items sharing a
// category co-occur; the weighted co-occurrence counts of all levels are
// summed and normalized into a generalized weighted Jaccard similarity:
//
//	S[i,j] = M[i,j] / (d[i] + d[j] - M[i,j] + ε)
//
// where M is the combined co-occurrence and d the weighted number of
// categories of each item.
//
// # Quick Start
//
//	ctx := context.Background()
//	src := table.NewBlobSource(blobstore.NewLocalStore("./data"))
//	res, err := catsim.LeveledJaccardSimilarity(ctx, src,
//	    catsim.WithLevels(3),
//	    catsim.WithProject("physics"),
//	    catsim.WithWeights(1, 0.5, 0.25),
//	    catsim.WithCaps(0, 5, 5),
//	)
//
// WithLevels derives the stage file names of a project (see
// table.GenerateStages); WithLevelPaths names the level tables explicitly and
// then needs WithColumns. Passing both, or neither, is a *ConfigError.
//
// # Filtering
//
// Administrative categories such as stubs or birth years are
// removed at every level by a filter.Filter. A category removed at level l
// never contributes its parents at level l+1. Items whose raw level-0
// category cell contains "isambig" are dropped from the result after the
// similarity matrix is complete.
//
// # Evaluating Clusterings
//
// The similarity matrix is meant to be clustered by an external algorithm.
// The resulting labels can be scored with package silhouette:
//
//	score, err := silhouette.ScoreSimilarity(res.Similarity, labels)
//
// # Persistence
//
// SaveResult writes the matrix (CSIM format, see package sparse) and the
// item table to any blobstore.Store: local disk, memory, S3 or MinIO.
package catsim
