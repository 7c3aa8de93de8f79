package normalizer

import (
	"strings"

	"countygraph/internal/validator"
)

// DeedMiscellaneous is used for deed codes with no mapping.
const DeedMiscellaneous = "Miscellaneous"

// PropertyTypes is the closed set of property_type values.
var PropertyTypes = validator.NewEnum("property type",
	"SingleFamily", "Duplex", "Townhouse", "Condominium", "Cooperative",
	"MobileHome", "ManufacturedHousing", "Modular", "MultipleFamily",
	"MultiFamilyLessThan10", "MultiFamilyMoreThan10", "Retirement",
	"MiscellaneousResidential", "VacantLand", "Commercial", "Industrial",
	"Agricultural", "Institutional", "Governmental",
)

// DeedTypes is the closed set of deed_type values.
var DeedTypes = validator.NewEnum("deed type",
	"Warranty Deed", "Special Warranty Deed", "Quitclaim Deed", "Grant Deed",
	"Bargain and Sale Deed", "Lady Bird Deed", "Transfer on Death Deed",
	"Sheriff's Deed", "Tax Deed", "Trustee's Deed", "Personal Representative Deed",
	"Correction Deed", "Deed in Lieu of Foreclosure", "Life Estate Deed",
	"Gift Deed", "Court Order Deed", "Contract for Deed", "Quiet Title Deed",
	"Administrator's Deed", "Guardian's Deed", "Certificate of Title",
	DeedMiscellaneous,
)

// StreetSuffixes maps source abbreviations to street_suffix_type values.
var StreetSuffixes = map[string]string{
	"ST": "St", "STREET": "St",
	"AVE": "Ave", "AV": "Ave", "AVENUE": "Ave",
	"RD": "Rd", "ROAD": "Rd",
	"BLVD": "Blvd", "BOULEVARD": "Blvd",
	"DR": "Dr", "DRIVE": "Dr",
	"LN": "Ln", "LANE": "Ln",
	"CT": "Ct", "COURT": "Ct",
	"CIR": "Cir", "CIRCLE": "Cir",
	"WAY": "Way",
	"PL": "Pl", "PLACE": "Pl",
	"TER": "Ter", "TERRACE": "Ter",
	"HWY": "Hwy", "HIGHWAY": "Hwy",
	"PKWY": "Pkwy", "PARKWAY": "Pkwy",
	"TRL": "Trl", "TRAIL": "Trl",
	"LOOP": "Loop",
	"RUN": "Run",
	"PATH": "Path",
	"PT": "Pt", "POINT": "Pt",
	"SQ": "Sq", "SQUARE": "Sq",
}

var directionals = map[string]bool{
	"N": true, "S": true, "E": true, "W": true,
	"NE": true, "NW": true, "SE": true, "SW": true,
}

// lookupCode finds raw in a code table. Keys are compared exactly, then
// case-insensitively, then by the leading code of "0100 - SINGLE FAMILY"
// style values.
func lookupCode(table map[string]string, raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	if v, ok := table[raw]; ok {
		return v, true
	}

	for k, v := range table {
		if strings.EqualFold(k, raw) {
			return v, true
		}
	}

	code := leadingCode(raw)
	if code == raw {
		return "", false
	}

	for k, v := range table {
		if strings.EqualFold(k, code) {
			return v, true
		}
	}

	return "", false
}

// leadingCode returns the text before the first separator.
func leadingCode(raw string) string {
	if i := strings.IndexAny(raw, " -:"); i > 0 {
		return raw[:i]
	}

	return raw
}
