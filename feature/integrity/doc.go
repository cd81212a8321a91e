// Package integrity verifies that the resource source is reachable and that
// identifiers resolve, and publishes rendered resources to the bucket.
//
// # Endpoints
//
//	GET  /integrity?id=<identifier>&id=...   source and resource report
//	GET  /integrity/source                   source report only
//	POST /integrity/publish {"ids": [...]}   render and upload
//
// Without id parameters the configured integrity.resources are checked.
// Failures answer 503 with the full report.
package integrity
