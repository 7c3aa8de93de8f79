// Package parsers extracts raw property fields from county documents.
package parsers

import (
	"errors"
	"fmt"
	"strings"

	"countygraph/internal/config"
	"countygraph/internal/models"
)

// Parser errors.
var (
	ErrEmptyDocument     = errors.New("document is empty")
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrInvalidDocument   = errors.New("document could not be parsed")
)

// Sale and valuation column names used in table selectors.
const (
	ColDate       = "date"
	ColPrice      = "price"
	ColDeedType   = "deed_type"
	ColBook       = "book"
	ColPage       = "page"
	ColInstrument = "instrument"
	ColLink       = "link"
	ColYear       = "year"
	ColLand       = "land"
	ColBuilding   = "building"
	ColMarket     = "market"
	ColAssessed   = "assessed"
	ColTaxable    = "taxable"
)

// Parser turns a county document into raw field values.
type Parser interface {
	Parse(content []byte) (*models.PropertyDocument, error)
}

// New returns the parser for a county profile's format.
func New(profile *config.CountyProfile) (Parser, error) {
	switch profile.Format {
	case config.FormatHTML, "":
		return NewHTMLParser(profile.Selectors), nil
	case config.FormatJSON:
		return NewJSONParser(profile.JSONPaths), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, profile.Format)
	}
}

// fieldTargets pairs each scalar selector with the document field it fills.
func fieldTargets(sel config.FieldSelectors, doc *models.PropertyDocument) []struct {
	selector string
	target   *string
} {
	return []struct {
		selector string
		target   *string
	}{
		{sel.ParcelID, &doc.ParcelID},
		{sel.PropertyUseCode, &doc.PropertyUseCode},
		{sel.SitusAddress, &doc.SitusAddress},
		{sel.MailingAddress, &doc.MailingAddress},
		{sel.LegalDescription, &doc.LegalDescription},
		{sel.Subdivision, &doc.Subdivision},
		{sel.Zoning, &doc.Zoning},
		{sel.YearBuilt, &doc.YearBuilt},
		{sel.LivingArea, &doc.LivingArea},
		{sel.LotAcres, &doc.LotAcres},
		{sel.LotSquareFeet, &doc.LotSquareFeet},
	}
}

// saleRow builds a sale from extracted cells; rows without a date or price are
// header or filler rows and are dropped.
func saleRow(cells map[string]string) (models.SaleRow, bool) {
	row := models.SaleRow{
		Date:       cells[ColDate],
		Price:      cells[ColPrice],
		DeedType:   cells[ColDeedType],
		Book:       cells[ColBook],
		Page:       cells[ColPage],
		Instrument: cells[ColInstrument],
		Link:       cells[ColLink],
	}

	if strings.TrimSpace(row.Date) == "" && strings.TrimSpace(row.Price) == "" {
		return row, false
	}

	return row, true
}

func valuationRow(cells map[string]string) (models.ValuationRow, bool) {
	row := models.ValuationRow{
		Year:     cells[ColYear],
		Land:     cells[ColLand],
		Building: cells[ColBuilding],
		Market:   cells[ColMarket],
		Assessed: cells[ColAssessed],
		Taxable:  cells[ColTaxable],
	}

	return row, strings.TrimSpace(row.Year) != ""
}
