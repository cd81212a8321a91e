// Package config provides configuration management for proc-loader.
//
// It utilizes Viper for loading configuration from a .env file, an optional
// config.yaml and environment variables. Defaults come from the `default`
// struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP server settings (port, API key, metrics)
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Source: where raw resources are read from (dir, bucket, http)
//   - Proc: proc plugin defaults and CEL expression procedures
//   - Integrity: identifiers that must resolve and the publish prefix
//
// Nested keys map to environment variables by replacing dots with
// underscores, e.g. PROC_DEFAULT_EXT overrides proc.default_ext.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Proc.DefaultExt)
package config
