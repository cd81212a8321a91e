// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting the resource API.
//   - rayid: a unique request ID (ray ID) for every request, stored in the
//     context locals and echoed in the X-Ray-ID response header.
//
// RayID must be registered first so every later log line can carry the ID.
package middleware
