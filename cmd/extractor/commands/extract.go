package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"countygraph/internal/pipeline"
)

var reportPath *string

var extractCmd = &cobra.Command{
	Use:   "extract [--county <name>] [--input-dir <dir>] [--output-dir <dir>]",
	Short: "Extracts one county record into entity and relationship files.",
	Args:  cobra.NoArgs,
	RunE:  runExtract,
}

func init() {
	reportPath = rootCmd.PersistentFlags().String("report", "", "Write a markdown run report to this path (overrides config)")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	profile, err := cfg.SelectedCounty()
	if err != nil {
		return err
	}

	report := cfg.Run.Report
	if *reportPath != "" {
		report = *reportPath
	}

	log := newLogger(cmd, cfg)

	summary, err := pipeline.New(profile, pipeline.Options{
		InputDir:   cfg.Run.InputDir,
		OutputDir:  cfg.Run.OutputDir,
		ReportPath: report,
	}, log).Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "✅ %s: wrote %d entities and %d relationships to %s\n",
		profile.Name, summary.Write.Entities, summary.Write.Relationships, cfg.Run.OutputDir)

	if cfg.Logging.ShowProgress {
		fmt.Fprintln(out)
		fmt.Fprint(out, summary.Report.Markdown())
	}

	return nil
}
