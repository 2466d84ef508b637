package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/cohort/blobstore"
	miniostore "github.com/hupe1980/cohort/blobstore/minio"
	s3store "github.com/hupe1980/cohort/blobstore/s3"
	"github.com/hupe1980/cohort/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// openStore builds the blob store described by src.
func openStore(ctx context.Context, src config.SourceConfig) (blobstore.BlobStore, error) {
	switch src.Kind {
	case "", "local":
		root := src.Root
		if root == "" {
			root = "."
		}
		return blobstore.NewLocalStore(root), nil

	case "s3":
		var loadOpts []func(*awsconfig.LoadOptions) error
		if src.Region != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(src.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if src.Endpoint != "" {
				o.BaseEndpoint = aws.String(src.Endpoint)
				o.UsePathStyle = true
			}
		})
		return s3store.NewStore(client, src.Bucket, src.Prefix), nil

	case "minio":
		client, err := minio.New(src.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(src.AccessKey, src.SecretKey, ""),
			Secure: src.Secure,
			Region: src.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("create minio client: %w", err)
		}
		return miniostore.NewStore(client, src.Bucket, src.Prefix), nil

	default:
		return nil, fmt.Errorf("unknown source kind %q", src.Kind)
	}
}
