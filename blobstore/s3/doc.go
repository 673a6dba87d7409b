// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	if err != nil { ... }
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "catsim/1k")
//
//	res, err := catsim.LeveledJaccardSimilarity(ctx, table.NewBlobSource(store), catsim.WithLevels(3))
//
// # Features
//
//   - Range reads for partial fetches
//   - Multipart uploads with CRC32C checksums for large similarity files
//   - Automatic pagination for listing
//   - Configurable prefix for per-project isolation
package s3
