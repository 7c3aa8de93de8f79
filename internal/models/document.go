package models

import "encoding/json"

// PropertyDocument holds the raw field values scraped from a county page or payload.
// Values are untrimmed strings; the normalizer owns all parsing.
type PropertyDocument struct {
	ParcelID         string
	PropertyUseCode  string
	SitusAddress     string
	MailingAddress   string
	LegalDescription string
	Subdivision      string
	Zoning           string
	YearBuilt        string
	LivingArea       string
	LotAcres         string
	LotSquareFeet    string
	Sales            []SaleRow
	Valuations       []ValuationRow
}

// SaleRow is one row of the sales table.
type SaleRow struct {
	Date       string
	Price      string
	DeedType   string
	Book       string
	Page       string
	Instrument string
	Link       string
}

// ValuationRow is one row of the valuation/tax table.
type ValuationRow struct {
	Year     string
	Land     string
	Building string
	Market   string
	Assessed string
	Taxable  string
}

// Seed is property_seed.json / parcel.json.
type Seed struct {
	ParcelID          string          `json:"parcel_id"`
	RequestIdentifier string          `json:"request_identifier"`
	SourceHTTPRequest json.RawMessage `json:"source_http_request"`
}

// UnnormalizedAddress is unnormalized_address.json.
type UnnormalizedAddress struct {
	FullAddress        string `json:"full_address"`
	CountyJurisdiction string `json:"county_jurisdiction"`
}
