// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the small Client interface used by the
// reconciler: feeds can be read from s3://bucket/key locations and exports can
// be uploaded next to them. Both AWS S3 and self-hosted MinIO are supported.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: ensure the export bucket exists.
//   - PutObject: uploads content (with size and options).
//   - GetObject: retrieves content as a stream.
//   - Upload: convenience helper combining the above for exports.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.Upload(ctx, client, "exports", "catalog.json", data, "application/json")
package storage
