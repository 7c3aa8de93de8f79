// Package validator provides validation diagnostics for extracted county records.
package validator

import (
	"fmt"
	"io"
)

// Issue codes.
const (
	CodeAmbiguousName   = "ambiguous_or_incomplete_person_name"
	CodeNamePattern     = "name_pattern_mismatch"
	CodeInvalidPrefix   = "invalid_prefix"
	CodeInvalidSuffix   = "invalid_suffix"
	CodeUnknownDeedType = "unknown_deed_type"
	CodeUnparsedValue   = "unparsed_value"
	CodeMissingSidecar  = "missing_sidecar"
)

// Issue is a non-fatal validation finding. The offending value is still used by the caller.
type Issue struct {
	Code    string
	Path    string
	Value   string
	Message string
	Hint    string
}

// String returns a one-line rendering of the issue.
func (i Issue) String() string {
	s := fmt.Sprintf("[%s]", i.Code)
	if i.Path != "" {
		s += " " + i.Path
	}

	s += ": " + i.Message

	if i.Value != "" {
		s += fmt.Sprintf(" (found %q)", i.Value)
	}

	if i.Hint != "" {
		s += fmt.Sprintf(" did you mean %q?", i.Hint)
	}

	return s
}

// Result collects issues found during one run.
type Result struct {
	Issues []Issue
}

// Add appends an issue.
func (r *Result) Add(issue Issue) {
	r.Issues = append(r.Issues, issue)
}

// Warn appends an issue built from its parts.
func (r *Result) Warn(code, path, value, message string) {
	r.Add(Issue{Code: code, Path: path, Value: value, Message: message})
}

// Merge appends all issues of other.
func (r *Result) Merge(other Result) {
	r.Issues = append(r.Issues, other.Issues...)
}

// Len returns the number of issues.
func (r *Result) Len() int {
	return len(r.Issues)
}

// Count returns how many issues carry code.
func (r *Result) Count(code string) int {
	n := 0

	for _, i := range r.Issues {
		if i.Code == code {
			n++
		}
	}

	return n
}

// HasCode reports whether any issue carries code.
func (r *Result) HasCode(code string) bool {
	return r.Count(code) > 0
}

// String returns a summary line.
func (r *Result) String() string {
	if len(r.Issues) == 0 {
		return "✅ no warnings"
	}

	return fmt.Sprintf("⚠️  %d warnings", len(r.Issues))
}

// PrintWarnings writes every issue on its own line.
func (r *Result) PrintWarnings(w io.Writer) {
	if len(r.Issues) == 0 {
		return
	}

	fmt.Fprintln(w, "⚠️  Validation Warnings:")

	for _, issue := range r.Issues {
		fmt.Fprintf(w, "  %s\n", issue)
	}
}
