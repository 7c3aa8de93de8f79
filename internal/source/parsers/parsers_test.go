package parsers

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"countygraph/internal/config"
	"countygraph/internal/models"
)

const samplePage = `<!DOCTYPE html>
<html><body>
<div id="summary">
  <span id="parcel-id"> 06040-001-000 </span>
  <span id="property-use">0100 - SINGLE FAMILY</span>
  <div id="situs-address">123  NW MAIN ST<br>GAINESVILLE, FL 32601</div>
  <div id="mailing-address">PO BOX 42<br/>GAINESVILLE FL 32602</div>
  <div id="legal-description">LOT 4 BLK B OAK PARK</div>
  <span id="year-built">1985</span>
</div>
<table id="sales">
  <thead><tr><th>Date</th><th>Price</th><th>Deed</th><th>Book</th><th>Page</th><th>Instrument</th></tr></thead>
  <tbody>
    <tr><td>06/01/2021</td><td>$250,000</td><td>WD</td><td>4900</td><td>12</td><td><a href="https://records.example/doc/1">202100001</a></td></tr>
    <tr><td></td><td></td><td></td><td></td><td></td><td></td></tr>
    <tr><td>03/15/2019</td><td>$100</td><td>QC</td><td>4600</td><td>7</td><td>201900002</td></tr>
  </tbody>
</table>
<table id="valuation">
  <tbody>
    <tr><td>2024</td><td>$50,000</td><td>$150,000</td><td>$200,000</td><td>$180,000</td><td>$155,000</td></tr>
  </tbody>
</table>
</body></html>`

func alachuaProfile(t *testing.T) *config.CountyProfile {
	t.Helper()

	cfg, err := config.Default()
	require.NoError(t, err)

	profile, err := cfg.County("alachua")
	require.NoError(t, err)

	return profile
}

func TestHTMLParser_Parse(t *testing.T) {
	parser, err := New(alachuaProfile(t))
	require.NoError(t, err)

	doc, err := parser.Parse([]byte(samplePage))
	require.NoError(t, err)

	assert.Equal(t, "06040-001-000", doc.ParcelID)
	assert.Equal(t, "0100 - SINGLE FAMILY", doc.PropertyUseCode)
	assert.Equal(t, "123 NW MAIN ST GAINESVILLE, FL 32601", doc.SitusAddress)
	assert.Equal(t, "PO BOX 42 GAINESVILLE FL 32602", doc.MailingAddress)
	assert.Equal(t, "1985", doc.YearBuilt)
	assert.Empty(t, doc.Zoning)

	want := []models.SaleRow{
		{
			Date: "06/01/2021", Price: "$250,000", DeedType: "WD", Book: "4900", Page: "12",
			Instrument: "202100001", Link: "https://records.example/doc/1",
		},
		{Date: "03/15/2019", Price: "$100", DeedType: "QC", Book: "4600", Page: "7", Instrument: "201900002"},
	}

	if diff := cmp.Diff(want, doc.Sales); diff != "" {
		t.Errorf("Sales mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, doc.Valuations, 1)
	assert.Equal(t, "2024", doc.Valuations[0].Year)
	assert.Equal(t, "$155,000", doc.Valuations[0].Taxable)
}

func TestHTMLParser_Empty(t *testing.T) {
	_, err := NewHTMLParser(config.FieldSelectors{}).Parse([]byte("  \n"))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

const samplePayload = `{
  "parcel": {"id": "10-44-25-00-00001.0000", "useCode": "01", "legal": "PARCEL IN SEC 10", "zoning": null},
  "situs": {"fullAddress": "456 Gulf Blvd, Fort Myers, FL 33901"},
  "building": {"yearBuilt": 2004, "livingArea": 1820.5},
  "land": {"acres": 0.31},
  "sales": [
    {"saleDate": "2020-01-01", "salePrice": 310000, "deedCode": "01", "documentUrl": "https://lee.example/d/9"},
    {"saleDate": null, "salePrice": null}
  ],
  "values": [
    {"taxYear": 2023, "land": 90000, "building": 210000, "just": 300000, "assessed": 280000, "taxable": 230000},
    {"taxYear": null}
  ]
}`

func TestJSONParser_Parse(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)

	profile, err := cfg.County("lee")
	require.NoError(t, err)

	parser, err := New(profile)
	require.NoError(t, err)

	doc, err := parser.Parse([]byte(samplePayload))
	require.NoError(t, err)

	assert.Equal(t, "10-44-25-00-00001.0000", doc.ParcelID)
	assert.Equal(t, "01", doc.PropertyUseCode)
	assert.Equal(t, "456 Gulf Blvd, Fort Myers, FL 33901", doc.SitusAddress)
	assert.Equal(t, "2004", doc.YearBuilt)
	assert.Equal(t, "1820.5", doc.LivingArea)
	assert.Equal(t, "0.31", doc.LotAcres)
	assert.Empty(t, doc.Zoning)
	assert.Empty(t, doc.MailingAddress)

	require.Len(t, doc.Sales, 1)
	assert.Equal(t, models.SaleRow{
		Date: "2020-01-01", Price: "310000", DeedType: "01", Link: "https://lee.example/d/9",
	}, doc.Sales[0])

	require.Len(t, doc.Valuations, 1)
	assert.Equal(t, "300000", doc.Valuations[0].Market)
}

func TestJSONParser_Invalid(t *testing.T) {
	_, err := NewJSONParser(config.FieldSelectors{}).Parse([]byte("{not json"))
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestNew_UnsupportedFormat(t *testing.T) {
	_, err := New(&config.CountyProfile{Format: "xml"})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
