// Package server holds the HTTP server configuration.
//
// The serve command reads the listen port, the API key protecting the
// resource API, whether /metrics is exposed, and the graceful shutdown
// timeout from Config.
package server
