package formatter

import (
	"strings"
	"testing"
	"time"

	"countygraph/internal/validator"
)

func TestAlignTables(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "Basic table formatting",
			input: `
| Header 1 | Header 2 |
| --- | --- |
| val 1 | val 2 |
`,
			expected: `
| Header 1 | Header 2 |
| -------- | -------- |
| val 1    | val 2    |
`,
		},
		{
			name: "Fix excessive dashes",
			input: `
| Col A | Col B |
| ---------------------- | ---------------------------------- |
| A | B |
`,
			expected: `
| Col A | Col B |
| ----- | ----- |
| A     | B     |
`,
		},
		{
			name: "Wide characters",
			input: `
| Name | Count |
| --- | --- |
| 測試 | 1 |
`,
			expected: `
| Name | Count |
| ---- | ----- |
| 測試 | 1     |
`,
		},
		{
			name: "Escaped pipe stays in cell",
			input: `
| Path | Value |
| --- | --- |
| a\|b | x |
`,
			expected: `
| Path | Value |
| ---- | ----- |
| a\|b | x     |
`,
		},
		{
			name:     "Text is untouched",
			input:    "no tables here\n| lone row |",
			expected: "no tables here\n| lone row |",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AlignTables(strings.TrimSpace(tt.input))
			if got != strings.TrimSpace(tt.expected) {
				t.Errorf("AlignTables() = \n%v\nwant \n%v", got, strings.TrimSpace(tt.expected))
			}
		})
	}
}

func TestReport_Markdown(t *testing.T) {
	var issues validator.Result
	issues.Add(validator.Issue{
		Code:    validator.CodeInvalidSuffix,
		Path:    "owners_by_date[current][0].suffix_name",
		Value:   "Jnr",
		Message: "value is not a recognized suffix; set to null",
		Hint:    "Jr.",
	})

	r := &Report{
		RunID:         "run-1",
		County:        "alachua",
		ParcelID:      "06040-001-000",
		OutputDir:     "data",
		StartedAt:     time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Duration:      1500 * time.Millisecond,
		EntityCounts:  map[string]int{"person": 2, "company": 1},
		Relationships: 4,
		Issues:        issues,
	}

	out := r.Markdown()

	for _, want := range []string{
		"# Extraction report: alachua",
		"| Started       | 2024-05-01T12:00:00Z |",
		"| Duration      | 1.5s                 |",
		"| company | 1     |",
		"| person  | 2     |",
		"⚠️  1 warnings",
		`did you mean "Jr."?`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Markdown() missing %q in:\n%s", want, out)
		}
	}
}
