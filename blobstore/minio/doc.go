// Package minio provides a blobstore.Store implementation using the MinIO client.
//
// MinIO is an S3-compatible object storage system. The package uses the
// official MinIO Go client and also works with Ceph, SeaweedFS and Garage.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "wiki", "catsim/1k")
//	res, err := catsim.LeveledJaccardSimilarity(ctx, table.NewBlobSource(store), catsim.WithLevels(2))
package minio
