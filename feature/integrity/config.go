package integrity

// Config holds configuration for resource integrity checks.
type Config struct {
	// Resources lists identifiers that must resolve, comma separated in the environment.
	Resources []string `mapstructure:"resources" default:""`
	// PublishPrefix is the bucket prefix rendered resources are written under.
	PublishPrefix string `mapstructure:"publish_prefix" default:"rendered"`
	// Concurrency bounds parallel resolutions.
	Concurrency int `mapstructure:"concurrency" default:"8"`
}
