package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/catsim/blobstore"
	miniostore "github.com/hupe1980/catsim/blobstore/minio"
	s3store "github.com/hupe1980/catsim/blobstore/s3"
)

// openStore resolves a store location:
//
//	s3://bucket/prefix            AWS S3 with the default credential chain
//	minio://host:port/bucket/pfx  MinIO or another S3-compatible endpoint
//	file:///dir or dir            local directory
func openStore(ctx context.Context, location string, mc minioConfig) (blobstore.Store, error) {
	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain paths, including Windows drive letters.
		return blobstore.NewLocalStore(location), nil
	}

	switch u.Scheme {
	case "file":
		return blobstore.NewLocalStore(u.Path), nil
	case "s3":
		if u.Host == "" {
			return nil, fmt.Errorf("store %q: missing bucket", location)
		}
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		return s3store.NewStore(s3.NewFromConfig(cfg), u.Host, strings.Trim(u.Path, "/")), nil
	case "minio":
		bucket, prefix, _ := strings.Cut(strings.Trim(u.Path, "/"), "/")
		if u.Host == "" || bucket == "" {
			return nil, fmt.Errorf("store %q: want minio://host/bucket[/prefix]", location)
		}
		creds := credentials.NewEnvMinio()
		if mc.AccessKey != "" {
			creds = credentials.NewStaticV4(mc.AccessKey, mc.SecretKey, "")
		}
		client, err := minio.New(u.Host, &minio.Options{
			Creds:  creds,
			Secure: mc.Secure,
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		return miniostore.NewStore(client, bucket, prefix), nil
	default:
		return nil, fmt.Errorf("store %q: unsupported scheme %q", location, u.Scheme)
	}
}
