package host

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"path"
	"slices"
	"strings"
	"sync"
	"time"

	"proc-loader/core/source"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Delimiter separates a plugin name from the resource it should load.
const Delimiter = "!"

// ErrUnknownPlugin is returned when an identifier names an unregistered plugin.
var ErrUnknownPlugin = errors.New("unknown loader plugin")

// Config is the generic, per-plugin configuration handed to a plugin on every load.
type Config map[string]any

// Requirer resolves dependency identifiers. Plugins receive the host as a Requirer.
type Requirer interface {
	// Require resolves id to a value.
	Require(ctx context.Context, id string) (any, error)
	// ToURL normalizes a resource path against the host's base path.
	ToURL(name string) string
}

// Plugin loads the resource part of a "<plugin>!<resource>" identifier.
type Plugin interface {
	Load(ctx context.Context, resource string, req Requirer, cfg Config) (any, error)
}

// PluginFunc is a [Plugin] that can be represented just by the [Load] method.
type PluginFunc func(ctx context.Context, resource string, req Requirer, cfg Config) (any, error)

// Load satisfies [Plugin].
func (fn PluginFunc) Load(ctx context.Context, resource string, req Requirer, cfg Config) (any, error) {
	return fn(ctx, resource, req, cfg)
}

// Observer is notified after every plugin resolution.
type Observer interface {
	Observe(plugin string, err error, elapsed time.Duration)
}

// Host resolves identifiers by dispatching to registered plugins, and reads
// plain identifiers directly from its source.
type Host struct {
	mu       sync.RWMutex
	plugins  map[string]Plugin
	configs  map[string]Config
	source   source.Source
	baseURL  string
	logger   *zap.Logger
	observer Observer
}

// Option configures a Host.
type Option func(*Host)

// WithBaseURL sets the path ToURL resolves relative names against.
func WithBaseURL(base string) Option {
	return func(h *Host) { h.baseURL = base }
}

// WithLogger sets the host logger.
func WithLogger(l *zap.Logger) Option {
	return func(h *Host) { h.logger = l }
}

// WithObserver sets the resolution observer.
func WithObserver(o Observer) Option {
	return func(h *Host) { h.observer = o }
}

// New creates a host reading raw content from src.
func New(src source.Source, opts ...Option) *Host {
	h := &Host{
		plugins: make(map[string]Plugin),
		configs: make(map[string]Config),
		source:  src,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register installs a plugin under name, replacing any previous one.
func (h *Host) Register(name string, p Plugin) *Host {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.plugins[name] = p
	return h
}

// Configure sets the configuration handed to the named plugin.
func (h *Host) Configure(name string, cfg Config) *Host {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.configs[name] = cfg
	return h
}

// Config returns the configuration of the named plugin.
func (h *Host) Config(name string) Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.configs[name]
}

// Source returns the source plain identifiers are read from.
func (h *Host) Source() source.Source {
	return h.source
}

// Plugins returns the registered plugin names in sorted order.
func (h *Host) Plugins() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Sorted(maps.Keys(h.plugins))
}

// With returns a copy of the host whose named plugin sees cfg instead of its
// configured value. The receiver is left untouched.
func (h *Host) With(name string, cfg Config) *Host {
	h.mu.RLock()
	defer h.mu.RUnlock()
	view := &Host{
		plugins:  maps.Clone(h.plugins),
		configs:  maps.Clone(h.configs),
		source:   h.source,
		baseURL:  h.baseURL,
		logger:   h.logger,
		observer: h.observer,
	}
	view.configs[name] = cfg
	return view
}

// ToURL satisfies [Requirer]. Relative names are joined to the base path;
// absolute paths and URLs are returned as given.
func (h *Host) ToURL(name string) string {
	if h.baseURL == "" || path.IsAbs(name) || strings.Contains(name, "://") {
		return name
	}
	return path.Join(h.baseURL, name)
}

// Require satisfies [Requirer]. The identifier is split at its first
// delimiter; the prefix names the plugin that receives the remainder.
// Identifiers without a delimiter are fetched verbatim from the source.
func (h *Host) Require(ctx context.Context, id string) (any, error) {
	name, resource, ok := strings.Cut(id, Delimiter)
	if !ok {
		if h.source == nil {
			return nil, fmt.Errorf("no source configured for %q", id)
		}
		data, err := h.source.Fetch(ctx, id)
		if err != nil {
			return nil, err
		}
		return data, nil
	}

	h.mu.RLock()
	plugin, found := h.plugins[name]
	cfg := h.configs[name]
	h.mu.RUnlock()
	if !found {
		return nil, fmt.Errorf("%w: %q in %q", ErrUnknownPlugin, name, id)
	}

	start := time.Now()
	value, err := plugin.Load(ctx, resource, h, cfg)
	elapsed := time.Since(start)
	if h.observer != nil {
		h.observer.Observe(name, err, elapsed)
	}
	h.logger.Debug("Resolved resource",
		zap.String("plugin", name),
		zap.String("resource", resource),
		zap.Duration("elapsed", elapsed),
		zap.Error(err),
	)
	return value, err
}

// RequireAll resolves ids concurrently. Results keep the order of ids; the
// first failure cancels the remaining resolutions.
func (h *Host) RequireAll(ctx context.Context, ids []string) ([]any, error) {
	results := make([]any, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			value, err := h.Require(ctx, id)
			if err != nil {
				return err
			}
			results[i] = value
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
