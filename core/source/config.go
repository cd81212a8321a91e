package source

// Config holds configuration for the resource source.
type Config struct {
	// Kind selects the source implementation (dir, bucket, http).
	Kind string `mapstructure:"kind" default:"dir"`
	// Root is the directory for the dir kind, or the object prefix for the bucket kind.
	Root string `mapstructure:"root" default:"."`
	// URL is the origin for the http kind.
	URL string `mapstructure:"url" default:""`
	// TimeoutSeconds bounds each http request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// MaxSizeBytes is the largest http response accepted.
	MaxSizeBytes int64 `mapstructure:"max_size_bytes" default:"20971520"`
	// CacheBytes sizes the in-memory http cache; 0 disables it.
	CacheBytes int64 `mapstructure:"cache_bytes" default:"67108864"`
}
