package proc

import (
	"context"
	"sync"

	"proc-loader/core/host"

	"go.uber.org/zap"
)

// Plugin is the resource transform plugin. It loads a resource through an
// underlying loader and applies a procedure to the loaded content.
//
// Each Plugin owns its registry and settings; nothing is shared between
// instances.
type Plugin struct {
	registry  *Registry
	logger    *zap.Logger
	nestedKey string

	mu       sync.RWMutex
	settings Settings
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithLogger sets the plugin logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Plugin) { p.logger = l }
}

// WithSettings replaces the initial settings.
func WithSettings(s Settings) Option {
	return func(p *Plugin) { p.settings = s }
}

// WithNestedConfig enables the compatibility shim for hosts that hand every
// plugin the same generic configuration: when the configuration holds a
// nested map under moduleID, that map is used instead.
func WithNestedConfig(moduleID string) Option {
	return func(p *Plugin) { p.nestedKey = moduleID }
}

// New creates a plugin with default settings and an empty registry.
func New(opts ...Option) *Plugin {
	p := &Plugin{
		registry: NewRegistry(),
		logger:   zap.NewNop(),
		settings: DefaultSettings(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetProcedure registers proc under name, replacing any existing entry.
func (p *Plugin) SetProcedure(name string, proc Procedure) *Plugin {
	p.registry.Set(name, proc)
	return p
}

// GetProcedure returns the procedure registered under name, or nil.
func (p *Plugin) GetProcedure(name string) Procedure {
	return p.registry.Get(name)
}

// RemoveProcedure removes the procedure registered under name, if any.
func (p *Plugin) RemoveProcedure(name string) *Plugin {
	p.registry.Remove(name)
	return p
}

// Procedures returns the registered procedure names.
func (p *Plugin) Procedures() []string {
	return p.registry.Names()
}

// SetDefaultProcedure sets the procedure used when an identifier names none.
// A Named reference is resolved at load time, not here.
func (p *Plugin) SetDefaultProcedure(ref Ref) *Plugin {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settings.Procedure = ref
	return p
}

// SetDefaultExtension sets the extension (without leading dot) appended to
// paths that have none.
func (p *Plugin) SetDefaultExtension(ext string) *Plugin {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settings.Extension = ext
	return p
}

// SetDefaultLoader sets the underlying loader (without trailing delimiter).
func (p *Plugin) SetDefaultLoader(name string) *Plugin {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settings.Loader = name
	return p
}

// SetParamSeparator sets the separator between a procedure name and its
// parameters. An empty separator disables parameters.
func (p *Plugin) SetParamSeparator(sep string) *Plugin {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settings.ParamSeparator = sep
	return p
}

// Settings returns a snapshot of the current settings.
func (p *Plugin) Settings() Settings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.settings
}

// Load satisfies [host.Plugin]. It requires the underlying resource from req
// exactly once and returns the content transformed by the effective
// procedure, or unchanged when no procedure resolves. Errors from req and
// from the procedure are returned as they are.
func (p *Plugin) Load(ctx context.Context, resource string, req host.Requirer, cfg host.Config) (any, error) {
	settings := p.Settings()
	opts := p.options(cfg)

	id := ParseIdentifier(resource, firstNonEmpty(opts.ParamSeparator, settings.ParamSeparator))

	ref := settings.Procedure
	switch {
	case id.HasProcedure():
		ref = Named(id.Procedure)
	case !opts.Default.IsZero():
		ref = opts.Default
	}

	dep := dependency(id, opts, settings, req)
	content, err := req.Require(ctx, dep)
	if err != nil {
		return nil, err
	}

	proc := p.resolve(ref, opts)
	p.logger.Debug("Loaded resource",
		zap.String("resource", resource),
		zap.String("dependency", dep),
		zap.Stringer("procedure", ref),
		zap.Bool("applied", proc != nil),
	)
	if proc == nil {
		return content, nil
	}
	return proc.Execute(content, id.Args...)
}

// options scopes and decodes the host configuration.
func (p *Plugin) options(cfg host.Config) Options {
	if p.nestedKey != "" {
		switch nested := cfg[p.nestedKey].(type) {
		case host.Config:
			cfg = nested
		case map[string]any:
			cfg = nested
		}
	}
	opts, err := DecodeOptions(cfg)
	if err != nil {
		p.logger.Debug("Ignoring undecodable plugin configuration", zap.Error(err))
	}
	return opts
}

// resolve returns the procedure ref points to, or nil. Names are looked up in
// the per-call procedures first, then in the registry.
func (p *Plugin) resolve(ref Ref, opts Options) Procedure {
	if ref.proc != nil {
		return ref.proc
	}
	if ref.name == "" {
		return nil
	}
	if proc, ok := opts.Procs[ref.name]; ok {
		return proc
	}
	return p.registry.Get(ref.name)
}

// dependency builds the identifier handed to the host: the loader prefix
// followed by the normalized resource path.
func dependency(id Identifier, opts Options, settings Settings, req host.Requirer) string {
	loader := id.Loader
	if loader == "" {
		loader = firstNonEmpty(opts.Loader, settings.Loader)
	}
	name := req.ToURL(WithExtension(id.Path, firstNonEmpty(opts.DefaultExt, settings.Extension)))
	if loader == "" {
		return name
	}
	return loader + Delimiter + name
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
