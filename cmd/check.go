package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var publishFlag bool

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [identifier]...",
	Short: "Check the source and that identifiers resolve",
	Long: `Verifies the configured source is reachable and resolves the given identifiers,
or integrity.resources when none are given. With --publish the rendered results
are uploaded to the storage bucket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := bootstrap(ctx, configDir)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		src := rt.checks.CheckSource(ctx)
		resources := rt.checks.CheckResources(ctx, args)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{"source": src, "resources": resources}); err != nil {
			return err
		}

		if src.Status == "error" || !resources.OK() {
			return fmt.Errorf("integrity check failed: %d unresolved resources", len(resources.Failed))
		}

		if publishFlag {
			keys, err := rt.checks.Publish(ctx, resources.Resolved)
			if err != nil {
				return err
			}
			rt.logger.Info("Published resources", zap.Strings("keys", keys))
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&publishFlag, "publish", false, "upload rendered resources to the bucket")
	RootCmd.AddCommand(checkCmd)
}
