package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// proceduresCmd represents the procedures command
var proceduresCmd = &cobra.Command{
	Use:   "procedures",
	Short: "List the registered procedures and plugin defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context(), configDir)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		out := cmd.OutOrStdout()
		for _, name := range rt.service.Procedures() {
			fmt.Fprintln(out, name)
		}

		s := rt.service.Settings()
		fmt.Fprintf(out, "\ndefault procedure: %s\n", s.Procedure)
		fmt.Fprintf(out, "default extension: %s\n", s.Extension)
		fmt.Fprintf(out, "default loader:    %s\n", s.Loader)
		fmt.Fprintf(out, "param separator:   %s\n", s.ParamSeparator)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(proceduresCmd)
}
