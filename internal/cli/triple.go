package cli

import (
	"encoding/json"
	"fmt"

	"github.com/sidekit-dev/sidekit/internal/platform"
	"github.com/spf13/cobra"
)

var tripleJSON bool

var tripleCmd = &cobra.Command{
	Use:   "triple",
	Short: "Print the resolved target triple",
	Long: `Resolve and print the target triple sidecar binaries are named after.
Resolution order: $TARGET, rustc --print host-tuple, GOOS/GOARCH map.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := platform.ResolveTriple("")
		if err != nil {
			return err
		}

		if tripleJSON {
			out, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling triple info: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), res.Triple)
		return nil
	},
}

func init() {
	tripleCmd.Flags().BoolVar(&tripleJSON, "json", false, "Print triple and resolution source as JSON")
	rootCmd.AddCommand(tripleCmd)
}
