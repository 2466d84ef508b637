// Package minio provides a BlobStore implementation using the MinIO client.
//
// It works with MinIO and other S3-compatible services such as Ceph,
// SeaweedFS and Garage, without pulling in the AWS SDK.
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
//	store := minioblob.NewStore(client, "datasets", "cohorts/")
//	ds, err := dataset.Load(ctx, store, "patients.csv")
package minio
