package resource

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"proc-loader/core/host"
	"proc-loader/core/proc"
	"proc-loader/core/procedures"

	"go.uber.org/zap"
)

// ErrInvalidInput marks requests the service rejects before loading anything.
var ErrInvalidInput = errors.New("invalid input")

// Overrides are per-request proc plugin options. Empty fields are not applied.
type Overrides struct {
	Ext     string
	Loader  string
	Default string
}

func (o Overrides) isZero() bool {
	return o == Overrides{}
}

// Defaults is a partial update of the plugin settings. Empty fields are left
// untouched.
type Defaults struct {
	Procedure      string `json:"procedure"`
	Ext            string `json:"ext"`
	Loader         string `json:"loader"`
	ParamSeparator string `json:"param_separator"`
}

// Service loads resources through the host and manages the proc plugin.
type Service struct {
	host   *host.Host
	plugin *proc.Plugin
	logger *zap.Logger
}

// NewService creates a new resource service.
func NewService(h *host.Host, p *proc.Plugin, logger *zap.Logger) *Service {
	return &Service{host: h, plugin: p, logger: logger}
}

// Load resolves id. Overrides apply to the proc plugin for this call only.
func (s *Service) Load(ctx context.Context, id string, o Overrides) (any, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrInvalidInput)
	}
	return s.view(o).Require(ctx, id)
}

// LoadAll resolves ids concurrently with the same overrides. Results keep
// the order of ids.
func (s *Service) LoadAll(ctx context.Context, ids []string, o Overrides) ([]any, error) {
	if len(ids) == 0 || slices.Contains(ids, "") {
		return nil, fmt.Errorf("%w: empty identifier", ErrInvalidInput)
	}
	return s.view(o).RequireAll(ctx, ids)
}

// view returns the host, or a copy of it whose proc plugin sees o merged
// over its configuration.
func (s *Service) view(o Overrides) *host.Host {
	if o.isZero() {
		return s.host
	}
	cfg := host.Config{}
	maps.Copy(cfg, s.host.Config(proc.Name))
	if o.Ext != "" {
		cfg["defaultExt"] = o.Ext
	}
	if o.Loader != "" {
		cfg["loader"] = o.Loader
	}
	if o.Default != "" {
		cfg["default"] = o.Default
	}
	return s.host.With(proc.Name, cfg)
}

// Procedures returns the registered procedure names.
func (s *Service) Procedures() []string {
	return s.plugin.Procedures()
}

// RegisterExpression compiles src and registers it under name, replacing any
// existing procedure.
func (s *Service) RegisterExpression(name, src string) error {
	if name == "" || src == "" {
		return fmt.Errorf("%w: name and expression are required", ErrInvalidInput)
	}
	fn, err := procedures.Expression(src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	s.plugin.SetProcedure(name, fn)
	s.logger.Info("Registered expression procedure", zap.String("procedure", name))
	return nil
}

// RemoveProcedure removes name and reports whether it was registered.
func (s *Service) RemoveProcedure(name string) bool {
	if s.plugin.GetProcedure(name) == nil {
		return false
	}
	s.plugin.RemoveProcedure(name)
	s.logger.Info("Removed procedure", zap.String("procedure", name))
	return true
}

// Settings returns the current plugin settings.
func (s *Service) Settings() proc.Settings {
	return s.plugin.Settings()
}

// UpdateDefaults applies d to the plugin settings and returns the result.
func (s *Service) UpdateDefaults(d Defaults) proc.Settings {
	if d.Procedure != "" {
		s.plugin.SetDefaultProcedure(proc.Named(d.Procedure))
	}
	if d.Ext != "" {
		s.plugin.SetDefaultExtension(d.Ext)
	}
	if d.Loader != "" {
		s.plugin.SetDefaultLoader(d.Loader)
	}
	if d.ParamSeparator != "" {
		s.plugin.SetParamSeparator(d.ParamSeparator)
	}
	return s.plugin.Settings()
}
