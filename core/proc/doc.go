// Package proc implements the resource transform plugin.
//
// The plugin is registered in a host under the name "proc". It receives the
// rest of an identifier, parses it as
//
//	[<loader>!]<path>[.<ext>][!<procedure>[~<param>...]]
//
// asks the host for "<loader>!<path>.<ext>", and applies the named procedure to
// whatever the loader returns.
//
// # Parsing
//
// The procedure segment always starts after the LAST delimiter, so
// "json!data.json!prepare" loads "data.json" through the json loader and
// applies "prepare". When the path segment embeds a loader, no default loader
// is injected. Parameters follow the procedure name, separated by the
// configured parameter separator ("~" by default).
//
// # Resolution
//
// Without an explicit procedure the per-call default applies, then the
// plugin's default. Names are looked up in the per-call "proc" map first and
// then in the registry. Anything that does not resolve to a Procedure means
// pass-through: the loaded content is returned unchanged. Missing procedures
// are never an error.
//
// # Per-call configuration
//
// The host hands the plugin a generic map. Recognized keys are defaultExt,
// default, loader, paramSeparator and proc. WithNestedConfig enables a shim
// for hosts that pass one shared map with plugin settings nested under the
// plugin's module ID.
//
// # Usage
//
//	p := proc.New().
//	    SetProcedure("revert", revert).
//	    SetDefaultExtension("txt")
//	h := host.New(src).Register(proc.Name, p)
//	loaders.Register(h)
//	v, err := h.Require(ctx, "proc!data/text!revert")
package proc
