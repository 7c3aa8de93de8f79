package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"countygraph/internal/validator"
)

// Report summarizes one extraction run.
type Report struct {
	RunID         string
	County        string
	ParcelID      string
	OutputDir     string
	StartedAt     time.Time
	Duration      time.Duration
	EntityCounts  map[string]int
	Relationships int
	Issues        validator.Result
}

// Markdown renders the report with aligned tables.
func (r *Report) Markdown() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Extraction report: %s\n\n", r.County)

	sb.WriteString("| Field | Value |\n| --- | --- |\n")

	fields := [][2]string{
		{"Run", r.RunID},
		{"Parcel", r.ParcelID},
		{"Output", r.OutputDir},
		{"Started", r.StartedAt.UTC().Format(time.RFC3339)},
		{"Duration", r.Duration.Round(time.Millisecond).String()},
		{"Relationships", fmt.Sprint(r.Relationships)},
	}

	for _, f := range fields {
		fmt.Fprintf(&sb, "| %s | %s |\n", f[0], EscapeCell(f[1]))
	}

	sb.WriteString("\n## Entities\n\n| Kind | Count |\n| --- | --- |\n")

	kinds := make([]string, 0, len(r.EntityCounts))
	for kind := range r.EntityCounts {
		kinds = append(kinds, kind)
	}

	sort.Strings(kinds)

	for _, kind := range kinds {
		fmt.Fprintf(&sb, "| %s | %d |\n", kind, r.EntityCounts[kind])
	}

	fmt.Fprintf(&sb, "\n## Warnings\n\n%s\n", r.Issues.String())

	if r.Issues.Len() > 0 {
		sb.WriteString("\n| Code | Path | Value | Message |\n| --- | --- | --- | --- |\n")

		for _, issue := range r.Issues.Issues {
			msg := issue.Message
			if issue.Hint != "" {
				msg += fmt.Sprintf(" (did you mean %q?)", issue.Hint)
			}

			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
				issue.Code, EscapeCell(issue.Path), EscapeCell(issue.Value), EscapeCell(msg))
		}
	}

	return AlignTables(sb.String())
}
