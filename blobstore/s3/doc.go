// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	client := s3.NewFromConfig(cfg)
//	store := s3blob.NewStore(client, "my-bucket", "cohorts/")
//
//	ds, err := dataset.Load(ctx, store, "patients.csv.zst")
//
// # Features
//
//   - Whole-object reads through the SDK download manager (parallel ranged GETs)
//   - Range reads for partial fetches
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
