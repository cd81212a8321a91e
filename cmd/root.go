package cmd

import (
	"fmt"
	"os"

	"proc-loader/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "proc-loader",
	Short: "Resource transform loader",
	Long: `proc-loader loads resources through pluggable loaders and applies named
procedures to them, e.g. "proc!data/text!revert".
Resources come from a local directory, an S3/MinIO bucket or an HTTP origin.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console output at debug level gives readable CLI errors with ISO8601 timestamps
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory holding .env and config.yaml")
}
