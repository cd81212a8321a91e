// Package host resolves resource identifiers through named loader plugins.
//
// An identifier has the form "<plugin>!<resource>". The host splits it at the
// first delimiter, looks up the plugin, and calls its Load method with the
// remainder, itself (as a Requirer), and the plugin's configuration. Plugins
// call back into the host to load what they depend on, so identifiers nest:
//
//	proc!data/text!revert  ->  proc plugin  ->  text!data/text.html  ->  source
//
// Identifiers without a delimiter are fetched verbatim from the host's source.
//
// # Configuration
//
// Each plugin has a generic Config map set with Configure. With returns a view
// of the host where one plugin sees a different configuration, which is how
// per-request overrides are applied without touching shared state.
//
// # Observability
//
// An Observer (see core/telemetry) is notified after each plugin resolution,
// and every resolution is logged at debug level.
package host
