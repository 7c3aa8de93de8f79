package metadata

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSignAndVerify(t *testing.T) {
	generated := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	content := "# Extraction report: lee\n\n| Field | Value |\n"

	signed := Sign(content, Metadata{RunID: "run-1", County: "lee", Clean: true, Generated: generated})

	if !strings.HasPrefix(signed, strings.TrimRight(content, "\n")) {
		t.Fatalf("Sign() changed the report body:\n%s", signed)
	}

	meta, err := Verify(signed)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if meta.RunID != "run-1" || meta.County != "lee" || !meta.Clean {
		t.Errorf("Verify() metadata = %+v", meta)
	}

	if !meta.Generated.Equal(generated) {
		t.Errorf("Generated = %v, want %v", meta.Generated, generated)
	}

	if meta.Hash != CalculateHash(content) {
		t.Errorf("Hash = %s, want %s", meta.Hash, CalculateHash(content))
	}
}

func TestSign_ReplacesExistingBlock(t *testing.T) {
	first := Sign("body", Metadata{RunID: "a"})
	second := Sign(first, Metadata{RunID: "b"})

	if n := strings.Count(second, TagStart); n != 1 {
		t.Fatalf("metadata blocks = %d, want 1", n)
	}

	meta, err := Verify(second)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if meta.RunID != "b" || meta.Clean {
		t.Errorf("metadata = %+v, want run b and not clean", meta)
	}
}

func TestVerify_Errors(t *testing.T) {
	signed := Sign("body", Metadata{RunID: "a"})

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"no block", "body", ErrNoMetadataBlock},
		{"tampered", strings.Replace(signed, "body", "b0dy", 1), ErrHashMismatch},
		{"no hash", "body\n\n" + TagStart + "\nRUN_ID: a\n" + TagEnd, ErrNoHashFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Verify(tt.content)
			if !errors.Is(err, tt.want) {
				t.Errorf("Verify() error = %v, want %v", err, tt.want)
			}
		})
	}
}
