package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"countygraph/internal/formatter"
)

var countiesCmd = &cobra.Command{
	Use:   "counties",
	Short: "Lists the configured county profiles.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		selected, err := cfg.SelectedCounty()
		if err != nil {
			return err
		}

		var sb strings.Builder

		sb.WriteString("| County | Format | Use codes | Deed types | Address required |\n")
		sb.WriteString("|---|---|---|---|---|\n")

		for _, name := range cfg.CountyNames() {
			p, err := cfg.County(name)
			if err != nil {
				return err
			}

			label := p.Name
			if p == selected {
				label += " (selected)"
			}

			fmt.Fprintf(&sb, "| %s | %s | %d | %d | %t |\n",
				formatter.EscapeCell(label), p.Format, len(p.PropertyUseCodes), len(p.DeedTypes), p.AddressFileRequired)
		}

		fmt.Fprint(cmd.OutOrStdout(), formatter.AlignTables(sb.String()))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(countiesCmd)
}
