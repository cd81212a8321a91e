// Package source provides the backends raw resource content is read from.
//
// A Source maps a slash-separated resource name to bytes. Names are cleaned
// before use, so "../" segments can never escape the configured root.
//
// # Implementations
//
//   - Dir: a local directory (or any fs.FS via NewFS).
//   - Bucket: an S3/MinIO bucket through storage.Client, below an optional key prefix.
//   - HTTP: an origin URL, with an LRU-backed HTTP cache and a response size limit.
//
// Missing content is reported as ErrNotFound by every implementation, which
// lets callers map it to a 404 without knowing the backend. Dir and Bucket
// also implement Checker for readiness checks.
//
// # Usage
//
//	src, err := source.New(cfg.Source, store, cfg.Storage.Bucket)
//	data, err := src.Fetch(ctx, "views/home.html")
package source
