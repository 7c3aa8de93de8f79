package models

import "encoding/json"

// Property is the root record of the graph.
type Property struct {
	ParcelIdentifier  string          `json:"parcel_identifier"`
	PropertyType      string          `json:"property_type"`
	PropertyUseCode   string          `json:"property_use_code"`
	BuiltYear         *int            `json:"property_structure_built_year"`
	LegalDescription  *string         `json:"property_legal_description_text"`
	Subdivision       *string         `json:"subdivision"`
	Zoning            *string         `json:"zoning"`
	LivableFloorArea  *string         `json:"livable_floor_area"`
	RequestIdentifier string          `json:"request_identifier,omitempty"`
	SourceHTTPRequest json.RawMessage `json:"source_http_request,omitempty"`
}

// Address is the situs address of the property.
type Address struct {
	StreetNumber         *string `json:"street_number"`
	StreetPreDirectional *string `json:"street_pre_directional_text"`
	StreetName           *string `json:"street_name"`
	StreetSuffixType     *string `json:"street_suffix_type"`
	UnitIdentifier       *string `json:"unit_identifier"`
	CityName             *string `json:"city_name"`
	StateCode            *string `json:"state_code"`
	PostalCode           *string `json:"postal_code"`
	CountyName           string  `json:"county_name"`
	UnnormalizedAddress  string  `json:"unnormalized_address"`
}

// MailingAddress is the owners' mailing address as printed on the record.
type MailingAddress struct {
	UnnormalizedAddress string `json:"unnormalized_address"`
}

// Lot describes the land parcel.
type Lot struct {
	LotType     *string  `json:"lot_type"`
	LotAreaSqft *float64 `json:"lot_area_sqft"`
	LotSizeAcre *float64 `json:"lot_size_acre"`
}

// SalesHistory is one ownership transfer.
type SalesHistory struct {
	OwnershipTransferDate string   `json:"ownership_transfer_date"`
	PurchasePriceAmount   *float64 `json:"purchase_price_amount"`
}

// Deed is the instrument recorded for a sale.
type Deed struct {
	DeedType         string  `json:"deed_type"`
	Book             *string `json:"book"`
	Page             *string `json:"page"`
	InstrumentNumber *string `json:"instrument_number"`
}

// File points at a recorded document image.
type File struct {
	DocumentType string  `json:"document_type"`
	FileFormat   *string `json:"file_format"`
	Name         string  `json:"name"`
	OriginalURL  *string `json:"original_url"`
	IPFSURL      *string `json:"ipfs_url"`
}

// Tax is one year of assessed values.
type Tax struct {
	TaxYear        int      `json:"tax_year"`
	LandAmount     *float64 `json:"property_land_amount"`
	BuildingAmount *float64 `json:"property_building_amount"`
	MarketValue    *float64 `json:"property_market_value_amount"`
	AssessedValue  *float64 `json:"property_assessed_value_amount"`
	TaxableValue   *float64 `json:"property_taxable_value_amount"`
}
