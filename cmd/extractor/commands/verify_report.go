package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"countygraph/pkg/metadata"
)

var verifyReportCmd = &cobra.Command{
	Use:   "verify-report <path>",
	Short: "Checks that a run report has not been edited since it was written.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read report: %w", err)
		}

		meta, err := metadata.Verify(string(content))
		if err != nil {
			return err
		}

		status := "with warnings"
		if meta.Clean {
			status = "clean"
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ report verified: run %s, county %s, %s\n", meta.RunID, meta.County, status)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyReportCmd)
}
