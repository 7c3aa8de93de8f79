package source

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"countygraph/internal/config"
	"countygraph/internal/logger"
	"countygraph/internal/validator"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func quietLogger() *logger.Logger {
	return logger.New(logger.Options{Level: "error", Writer: io.Discard})
}

func htmlProfile(required bool) *config.CountyProfile {
	return &config.CountyProfile{
		Name:                "test",
		Format:              config.FormatHTML,
		AddressFileRequired: required,
	}
}

const ownerData = `{
  "property_06040-001-000": {
    "owners_by_date": {
      "current": [{"type": "person", "first_name": "JOHN", "last_name": "SMITH"}],
      "2019-03-15": [{"type": "company", "name": "ACME LLC"}]
    }
  },
  "property_other": {"owners_by_date": {}}
}`

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, HTMLFile, "<html></html>")
	writeFile(t, dir, AddressFile, `{"full_address": "123 MAIN ST", "county_jurisdiction": "Alachua"}`)
	writeFile(t, dir, ParcelFile, `{"parcel_id": "06040-001-000", "request_identifier": "req-1"}`)
	writeFile(t, dir, filepath.Join(OwnersDir, OwnerDataFile), ownerData)
	writeFile(t, dir, filepath.Join(OwnersDir, LayoutFile), `{"property_06040-001-000": {"layouts": [{"space_type": "Bedroom"}, {"space_type": "Kitchen"}]}}`)

	in, err := NewLoader(dir, htmlProfile(true), quietLogger()).Load()
	require.NoError(t, err)

	assert.Equal(t, "<html></html>", string(in.Document))
	require.NotNil(t, in.Address)
	assert.Equal(t, "Alachua", in.Address.CountyJurisdiction)
	require.NotNil(t, in.Seed)
	assert.Equal(t, "req-1", in.Seed.RequestIdentifier)

	snap, err := in.Owners.Owners("06040-001-000")
	require.NoError(t, err)
	assert.Equal(t, []string{"current", "2019-03-15"}, snap.Keys())

	layouts, err := in.Layouts.Records("06040-001-000")
	require.NoError(t, err)
	require.Len(t, layouts, 2)
	assert.Equal(t, "Kitchen", layouts[1]["space_type"])

	// Utilities and structures are missing but tolerated.
	assert.Nil(t, in.Utilities)
	assert.Nil(t, in.Structures)
	assert.Equal(t, 2, in.Issues.Count(validator.CodeMissingSidecar))
}

func TestLoader_MissingDocument(t *testing.T) {
	_, err := NewLoader(t.TempDir(), htmlProfile(false), quietLogger()).Load()
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestLoader_AddressRequired(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, HTMLFile, "<html></html>")

	_, err := NewLoader(dir, htmlProfile(true), quietLogger()).Load()
	assert.ErrorIs(t, err, ErrMissingAddress)

	in, err := NewLoader(dir, htmlProfile(false), quietLogger()).Load()
	require.NoError(t, err)
	assert.Nil(t, in.Address)
	assert.Nil(t, in.Owners)
}

func TestLoader_JSONFormatAndSeedPreference(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, JSONFile, `{"parcel": {}}`)
	writeFile(t, dir, SeedFile, `{"parcel_id": "A1"}`)
	writeFile(t, dir, ParcelFile, `{"parcel_id": "B2"}`)

	profile := &config.CountyProfile{Format: config.FormatJSON}

	in, err := NewLoader(dir, profile, quietLogger()).Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, JSONFile), in.DocumentPath)
	assert.Equal(t, "A1", in.Seed.ParcelID)
}

func TestSidecar_Lookup(t *testing.T) {
	sc, err := ParseSidecar([]byte(ownerData))
	require.NoError(t, err)

	assert.Equal(t, []string{"property_06040-001-000", "property_other"}, sc.Keys())

	_, ok := sc.Lookup("06040-001-000")
	assert.True(t, ok)

	// Punctuation and case are ignored on the fallback pass.
	_, ok = sc.Lookup("06040001000")
	assert.True(t, ok)

	_, ok = sc.Lookup("missing")
	assert.False(t, ok)

	snap, err := sc.Owners("missing")
	assert.NoError(t, err)
	assert.Nil(t, snap)

	var nilSidecar *Sidecar
	snap, err = nilSidecar.Owners("06040-001-000")
	assert.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSidecar_Records(t *testing.T) {
	sc, err := ParseSidecar([]byte(`{
  "property_1": {"electrical": "Yes", "water": "Public"},
  "property_2": [{"a": 1}, 5, {"b": 2}]
}`))
	require.NoError(t, err)

	one, err := sc.Records("1")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "Public", one[0]["water"])

	two, err := sc.Records("2")
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestParseSidecar_Invalid(t *testing.T) {
	_, err := ParseSidecar([]byte(`[1, 2]`))
	assert.ErrorIs(t, err, ErrSidecarNotObject)

	_, err = ParseSidecar([]byte(`{broken`))
	assert.ErrorIs(t, err, ErrSidecarNotObject)
}
