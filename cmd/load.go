package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"proc-loader/feature/resource"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var loadFlags struct {
	overrides resource.Overrides
	output    string
}

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load <identifier>...",
	Short: "Load resources and print the results",
	Long: `Resolves every identifier concurrently and prints the results in order.
Text results are printed as is; structured results are encoded as JSON or YAML.`,
	Example: `  proc-loader load 'proc!data/text!revert'
  proc-loader load --default upper 'proc!data/text' 'proc!json!data.json!'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context(), configDir)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		values, err := rt.service.LoadAll(cmd.Context(), args, loadFlags.overrides)
		if err != nil {
			return err
		}
		for _, v := range values {
			if err := writeValue(cmd.OutOrStdout(), v, loadFlags.output); err != nil {
				return err
			}
		}
		return nil
	},
}

// writeValue prints v followed by a newline.
func writeValue(w io.Writer, v any, format string) error {
	switch value := v.(type) {
	case string:
		_, err := fmt.Fprintln(w, value)
		return err
	case []byte:
		_, err := fmt.Fprintln(w, string(value))
		return err
	case *goquery.Document:
		out, err := value.Html()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, out)
		return err
	}

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func init() {
	loadCmd.Flags().StringVar(&loadFlags.overrides.Ext, "ext", "", "default extension for this call")
	loadCmd.Flags().StringVar(&loadFlags.overrides.Loader, "loader", "", "underlying loader for this call")
	loadCmd.Flags().StringVar(&loadFlags.overrides.Default, "default", "", "default procedure for this call")
	loadCmd.Flags().StringVarP(&loadFlags.output, "output", "o", "json", "encoding of structured results (json, yaml)")
	RootCmd.AddCommand(loadCmd)
}
