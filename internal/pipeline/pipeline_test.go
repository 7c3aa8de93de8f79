package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"countygraph/internal/config"
	"countygraph/internal/logger"
	"countygraph/internal/source"
	"countygraph/internal/validator"
	"countygraph/pkg/metadata"
)

const page = `<html><body>
<span id="parcel-id">06040-001-000</span>
<span id="property-use">0100 - SINGLE FAMILY</span>
<div id="mailing-address">PO BOX 42 GAINESVILLE FL 32602</div>
<span id="lot-acres">0.25</span>
<table id="sales"><tbody>
<tr><td>06/01/2021</td><td>$250,000</td><td>WD</td><td>4900</td><td>12</td><td><a href="https://records.example/1.pdf">2021001</a></td></tr>
<tr><td>03/15/2019</td><td>$100</td><td>QC</td><td></td><td></td><td></td></tr>
</tbody></table>
<table id="valuation"><tbody>
<tr><td>2024</td><td>$50,000</td><td>$150,000</td><td>$200,000</td><td>$180,000</td><td>$155,000</td></tr>
</tbody></table>
</body></html>`

const ownerData = `{
  "property_06040-001-000": {
    "owners_by_date": {
      "current": [
        {"type": "person", "first_name": "JOHN", "middle_name": "A", "last_name": "SMITH"},
        {"type": "person", "name": "SMITH MARY"}
      ],
      "2019-03-15": [
        {"type": "person", "first_name": "John", "last_name": "Smith"},
        {"type": "company", "name": "ACME HOLDINGS LLC"}
      ]
    }
  }
}`

func writeInput(t *testing.T, dir, name, content string) {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func alachua(t *testing.T) *config.CountyProfile {
	t.Helper()

	cfg, err := config.Default()
	require.NoError(t, err)

	profile, err := cfg.County("alachua")
	require.NoError(t, err)

	return profile
}

func setup(t *testing.T) (string, string) {
	t.Helper()

	root := t.TempDir()
	in := filepath.Join(root, "in")
	out := filepath.Join(root, "data")

	writeInput(t, in, source.HTMLFile, page)
	writeInput(t, in, source.AddressFile, `{"full_address": "123 NW MAIN ST, GAINESVILLE, FL 32601", "county_jurisdiction": "Alachua"}`)
	writeInput(t, in, source.SeedFile, `{"parcel_id": "06040-001-000", "request_identifier": "req-9"}`)
	writeInput(t, in, filepath.Join(source.OwnersDir, source.OwnerDataFile), ownerData)
	writeInput(t, in, filepath.Join(source.OwnersDir, source.StructureFile), `{"property_06040-001-000": {"number_of_stories": 2}}`)

	return in, out
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var v map[string]any
	require.NoError(t, json.Unmarshal(data, &v))

	return v
}

func quiet() *logger.Logger {
	return logger.New(logger.Options{Level: "error", Writer: io.Discard})
}

func TestPipeline_Run(t *testing.T) {
	in, out := setup(t)
	reportPath := filepath.Join(t.TempDir(), "report.md")

	summary, err := New(alachua(t), Options{InputDir: in, OutputDir: out, ReportPath: reportPath}, quiet()).Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 2, summary.Report.EntityCounts["person"])
	assert.Equal(t, 1, summary.Report.EntityCounts["company"])
	assert.Equal(t, 2, summary.Report.EntityCounts["sales_history"])

	for _, name := range []string{
		"property.json", "address.json", "lot.json", "mailing_address_1.json",
		"person_1.json", "person_2.json", "company_1.json",
		"sales_history_1.json", "deed_1.json", "file_1.json",
		"sales_history_2.json", "deed_2.json", "tax_2024.json", "structure_1.json",
		"relationship_sales_history_1_has_person_1.json",
		"relationship_sales_history_1_has_person_2.json",
		"relationship_sales_history_2_has_person_1.json",
		"relationship_sales_history_2_has_company_1.json",
		"relationship_person_1_has_mailing_address_1.json",
		"relationship_person_2_has_mailing_address_1.json",
	} {
		assert.FileExists(t, filepath.Join(out, name))
	}

	assert.NoFileExists(t, filepath.Join(out, "relationship_company_1_has_mailing_address_1.json"))

	person := readJSON(t, filepath.Join(out, "person_1.json"))
	assert.Equal(t, "John", person["first_name"])
	assert.Equal(t, "A", person["middle_name"])

	structure := readJSON(t, filepath.Join(out, "structure_1.json"))
	assert.Equal(t, "req-9", structure["request_identifier"])

	property := readJSON(t, filepath.Join(out, "property.json"))
	assert.Equal(t, "SingleFamily", property["property_type"])

	signed, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	meta, err := metadata.Verify(string(signed))
	require.NoError(t, err)
	assert.Equal(t, summary.RunID, meta.RunID)
	assert.Equal(t, "alachua", meta.County)
}

func TestPipeline_RunIsRepeatable(t *testing.T) {
	in, out := setup(t)
	p := New(alachua(t), Options{InputDir: in, OutputDir: out}, quiet())

	first, err := p.Run(context.Background())
	require.NoError(t, err)

	second, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Write.Files, second.Write.Files)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestPipeline_SchemaError(t *testing.T) {
	in, out := setup(t)
	writeInput(t, in, source.HTMLFile, `<html><span id="parcel-id">1</span><span id="property-use">7777</span></html>`)

	_, err := New(alachua(t), Options{InputDir: in, OutputDir: out}, quiet()).Run(context.Background())

	var se *validator.SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, `{"type":"error","message":"Unknown enum value 7777.","path":"property.property_type"}`, se.JSON())
}

func TestPipeline_MissingOwnerData(t *testing.T) {
	in, out := setup(t)
	require.NoError(t, os.Remove(filepath.Join(in, source.OwnersDir, source.OwnerDataFile)))

	summary, err := New(alachua(t), Options{InputDir: in, OutputDir: out}, quiet()).Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, summary.Report.EntityCounts["person"])
	assert.Zero(t, summary.Report.EntityCounts["company"])
	assert.True(t, summary.Report.Issues.HasCode(validator.CodeMissingSidecar))
}

func TestPipeline_Cancelled(t *testing.T) {
	in, out := setup(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(alachua(t), Options{InputDir: in, OutputDir: out}, quiet()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOwnerOptions(t *testing.T) {
	off := false
	opts := OwnerOptions(config.NameConfig{
		CompanyKeywords:    []string{"VENTURES"},
		SharedSurnameSplit: &off,
		CompanyCasing:      "upper",
	})

	assert.False(t, opts.SharedSurnameSplit)
	assert.True(t, opts.SplitOnComma)
	assert.Equal(t, "upper", opts.CompanyCasing)
	assert.Equal(t, []string{"VENTURES"}, opts.ExtraCompanyKeywords)
}
