// Package resource exposes the proc loader over HTTP.
//
// # Endpoints
//
//	GET    /resources?id=<identifier>[&ext=&loader=&default=]
//	GET    /procedures
//	PUT    /procedures/:name   {"expression": "<cel>"}
//	DELETE /procedures/:name
//	GET    /defaults
//	PUT    /defaults           {"procedure","ext","loader","param_separator"}
//
// Query overrides on /resources apply to a single request. Missing resources
// answer 404, malformed requests and unknown loader plugins 400, failing
// HTTP origins 502.
package resource
