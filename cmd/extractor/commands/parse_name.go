package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"countygraph/internal/owners"
	"countygraph/internal/pipeline"
)

var parseNameCmd = &cobra.Command{
	Use:   "parse-name <text>",
	Short: "Shows how an owner line is tokenized, classified and split into owners.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		profile, err := cfg.SelectedCounty()
		if err != nil {
			return err
		}

		parser, err := owners.NewParser(pipeline.OwnerOptions(profile.Names))
		if err != nil {
			return fmt.Errorf("invalid name settings: %w", err)
		}

		text := strings.Join(args, " ")
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "county:         %s\n", profile.Name)
		fmt.Fprintf(out, "tokens:         %s\n", strings.Join(owners.Tokenize(text), " | "))
		fmt.Fprintf(out, "classification: %s\n", parser.Classify(text))

		built, issues := parser.ParseText(text, "owner")

		fmt.Fprintf(out, "owners:         %d\n", len(built))

		for i, o := range built {
			var record any = o.Person
			if o.Kind == owners.KindCompany {
				record = o.Company
			}

			data, err := json.Marshal(record)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "  %d. %s %s\n", i+1, o.Kind, data)
		}

		issues.PrintWarnings(out)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseNameCmd)
}
