// Package logger provides a structured logging facility based on Zap.
//
// A "debug" level selects zap's development configuration, anything else the
// production one. Format selects json or console encoding.
//
// # Request correlation
//
// WithRayID extracts the ray ID stored by the rayid middleware from a Fiber
// context and attaches it to the log entry, so every log line of a request
// can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Resource load failed", zap.Error(err))
package logger
