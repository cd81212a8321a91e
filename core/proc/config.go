package proc

const (
	// Name is the name the plugin is registered under in the host.
	Name = "proc"

	DefaultExtension      = "html"
	DefaultLoader         = "text"
	DefaultParamSeparator = "~"
)

// Config holds the process-wide plugin settings loaded from configuration.
type Config struct {
	// DefaultProcedure names the procedure applied when an identifier has none.
	DefaultProcedure string `mapstructure:"default_procedure" default:""`
	// DefaultExt is appended to resource paths without an extension.
	DefaultExt string `mapstructure:"default_ext" default:"html"`
	// Loader is the underlying loader used when an identifier embeds none.
	Loader string `mapstructure:"loader" default:"text"`
	// ParamSeparator splits a procedure segment into name and parameters.
	ParamSeparator string `mapstructure:"param_separator" default:"~"`
	// BaseURL is the path resource paths are resolved against.
	BaseURL string `mapstructure:"base_url" default:""`
	// Expressions registers CEL expression procedures by name.
	Expressions map[string]string `mapstructure:"expressions"`
}

// Settings are the mutable defaults of a Plugin. No validation is applied.
type Settings struct {
	Procedure      Ref
	Extension      string
	Loader         string
	ParamSeparator string
}

// DefaultSettings returns the settings a new Plugin starts with.
func DefaultSettings() Settings {
	return Settings{
		Extension:      DefaultExtension,
		Loader:         DefaultLoader,
		ParamSeparator: DefaultParamSeparator,
	}
}

// Settings converts the configuration into plugin settings.
func (c Config) Settings() Settings {
	s := Settings{
		Extension:      c.DefaultExt,
		Loader:         c.Loader,
		ParamSeparator: c.ParamSeparator,
	}
	if c.DefaultProcedure != "" {
		s.Procedure = Named(c.DefaultProcedure)
	}
	return s
}
