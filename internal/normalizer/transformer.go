package normalizer

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"countygraph/internal/config"
	"countygraph/internal/models"
	"countygraph/internal/owners"
	"countygraph/internal/validator"
	"countygraph/pkg/utils"
)

// Entity kinds, used as output file stems.
const (
	KindProperty       = "property"
	KindAddress        = "address"
	KindLot            = "lot"
	KindMailingAddress = "mailing_address"
	KindSalesHistory   = "sales_history"
	KindDeed           = "deed"
	KindFile           = "file"
	KindTax            = "tax"
	KindStructure      = "structure"
	KindUtility        = "utility"
	KindLayout         = "layout"
)

const sqftPerAcre = 43560.0

// Transformer builds the entity graph of a validated record.
type Transformer struct {
	profile *config.CountyProfile
	names   *owners.Parser
}

// NewTransformer creates a transformer.
func NewTransformer(profile *config.CountyProfile, names *owners.Parser) *Transformer {
	return &Transformer{profile: profile, names: names}
}

// Transform converts rec into entities and relationships.
func (t *Transformer) Transform(rec *Record) (*Result, error) {
	res := &Result{Graph: models.NewGraph()}
	g := res.Graph
	doc := rec.Document

	property, err := t.property(rec, &res.Issues)
	if err != nil {
		return nil, err
	}

	propertyRef := models.Ref(KindProperty)
	g.Put(propertyRef, property)

	if addr, ok := t.address(rec); ok {
		g.Put(KindAddress, addr)
		g.Link(propertyRef, KindAddress)
	}

	if lot, ok := t.lot(doc, &res.Issues); ok {
		g.Put(KindLot, lot)
		g.Link(propertyRef, KindLot)
	}

	mailingRef := models.IndexedRef(KindMailingAddress, 1)
	if mailing := utils.NormalizeWhitespace(doc.MailingAddress); mailing != "" {
		g.Put(mailingRef, models.MailingAddress{UnnormalizedAddress: mailing})
		res.MailingExtracted = true
	}

	reg := owners.NewRegistry()

	resolved, issues := t.names.Resolve(reg, rec.Owners)
	res.Issues.Merge(issues)
	reg.Put(g)

	events := t.sales(g, propertyRef, doc.Sales, &res.Issues)
	t.taxes(g, propertyRef, doc.Valuations, &res.Issues)

	base := passThrough(rec.Seed)
	for _, sc := range []struct {
		kind    string
		records []map[string]any
	}{
		{KindStructure, rec.Structures},
		{KindUtility, rec.Utilities},
		{KindLayout, rec.Layouts},
	} {
		if err := putSidecars(g, propertyRef, sc.kind, sc.records, base); err != nil {
			return nil, err
		}
	}

	res.OwnerEdges = owners.LinkEvents(g, resolved, events)
	res.OwnerEdges += owners.LinkMailingAddress(g, resolved, mailingRef, res.MailingExtracted)

	return res, nil
}

func (t *Transformer) property(rec *Record, issues *validator.Result) (models.Property, error) {
	doc := rec.Document
	code := strings.TrimSpace(doc.PropertyUseCode)

	mapped, ok := lookupCode(t.profile.PropertyUseCodes, code)
	if !ok {
		return models.Property{}, validator.UnknownEnum(code, "property.property_type")
	}

	propertyType, ok := PropertyTypes.Match(mapped)
	if !ok {
		return models.Property{}, validator.UnknownEnum(mapped, "property.property_type")
	}

	p := models.Property{
		ParcelIdentifier: strings.TrimSpace(rec.ParcelID()),
		PropertyType:     propertyType,
		PropertyUseCode:  leadingCode(code),
		LegalDescription: utils.StringPtr(doc.LegalDescription),
		Subdivision:      utils.StringPtr(doc.Subdivision),
		Zoning:           utils.StringPtr(doc.Zoning),
		LivableFloorArea: utils.StringPtr(doc.LivingArea),
	}

	if strings.TrimSpace(doc.YearBuilt) != "" {
		if year, ok := utils.ParseInt(doc.YearBuilt); ok && year > 0 {
			p.BuiltYear = &year
		} else {
			issues.Warn(validator.CodeUnparsedValue, "property.property_structure_built_year", doc.YearBuilt, "year built is not a number; set to null")
		}
	}

	if rec.Seed != nil {
		p.RequestIdentifier = rec.Seed.RequestIdentifier
		p.SourceHTTPRequest = rec.Seed.SourceHTTPRequest
	}

	return p, nil
}

func (t *Transformer) address(rec *Record) (models.Address, bool) {
	full := rec.Document.SitusAddress
	county := utils.TitleCase(t.profile.Name)

	if rec.Address != nil {
		if strings.TrimSpace(rec.Address.FullAddress) != "" {
			full = rec.Address.FullAddress
		}

		if strings.TrimSpace(rec.Address.CountyJurisdiction) != "" {
			county = strings.TrimSpace(rec.Address.CountyJurisdiction)
		}
	}

	if strings.TrimSpace(full) == "" {
		return models.Address{}, false
	}

	return SplitAddress(full, county), true
}

func (t *Transformer) lot(doc *models.PropertyDocument, issues *validator.Result) (models.Lot, bool) {
	var lot models.Lot

	if v, ok := number(doc.LotAcres, "lot.lot_size_acre", issues); ok {
		lot.LotSizeAcre = &v
	}

	if v, ok := number(doc.LotSquareFeet, "lot.lot_area_sqft", issues); ok {
		lot.LotAreaSqft = &v
	}

	switch {
	case lot.LotSizeAcre == nil && lot.LotAreaSqft == nil:
		return lot, false
	case lot.LotAreaSqft == nil:
		sqft := *lot.LotSizeAcre * sqftPerAcre
		lot.LotAreaSqft = &sqft
	case lot.LotSizeAcre == nil:
		acres := *lot.LotAreaSqft / sqftPerAcre
		lot.LotSizeAcre = &acres
	}

	return lot, true
}

// sales emits sales_history, deed and file entities and returns the dated
// sale events for owner linking.
func (t *Transformer) sales(g *models.Graph, propertyRef models.Ref, rows []models.SaleRow, issues *validator.Result) []owners.Event {
	var events []owners.Event

	n := 0

	for i, row := range rows {
		pathPrefix := fmt.Sprintf("sales[%d]", i)

		date := utils.NormalizeDate(row.Date)
		if date == "" {
			issues.Warn(validator.CodeUnparsedValue, pathPrefix+".ownership_transfer_date", row.Date, "sale date could not be parsed; sale skipped")
			continue
		}

		n++

		saleRef := models.IndexedRef(KindSalesHistory, n)
		g.Put(saleRef, models.SalesHistory{
			OwnershipTransferDate: date,
			PurchasePriceAmount:   utils.CurrencyPtr(row.Price),
		})
		g.Link(propertyRef, saleRef)

		events = append(events, owners.Event{Ref: saleRef, Date: date})

		if !hasDeed(row) {
			continue
		}

		deedRef := models.IndexedRef(KindDeed, n)
		g.Put(deedRef, models.Deed{
			DeedType:         t.deedType(row.DeedType, pathPrefix+".deed_type", issues),
			Book:             utils.StringPtr(row.Book),
			Page:             utils.StringPtr(row.Page),
			InstrumentNumber: utils.StringPtr(row.Instrument),
		})
		g.Link(saleRef, deedRef)

		if link := strings.TrimSpace(row.Link); link != "" {
			fileRef := models.IndexedRef(KindFile, n)
			g.Put(fileRef, documentFile(row, link))
			g.Link(deedRef, fileRef)
		}
	}

	return events
}

func hasDeed(row models.SaleRow) bool {
	for _, v := range []string{row.DeedType, row.Book, row.Page, row.Instrument, row.Link} {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}

	return false
}

// deedType maps a source deed code to the deed enum. Unknown codes become
// Miscellaneous with a warning.
func (t *Transformer) deedType(raw, path string, issues *validator.Result) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DeedMiscellaneous
	}

	if mapped, ok := lookupCode(t.profile.DeedTypes, raw); ok {
		if canonical, ok := DeedTypes.Match(mapped); ok {
			return canonical
		}
	}

	if canonical, ok := DeedTypes.Match(raw); ok {
		return canonical
	}

	_, issue := DeedTypes.Check(validator.CodeUnknownDeedType, path, raw)
	issue.Message = "deed type has no mapping; recorded as " + DeedMiscellaneous
	issues.Add(*issue)

	return DeedMiscellaneous
}

func documentFile(row models.SaleRow, link string) models.File {
	name := strings.TrimSpace(row.Instrument)
	if book, page := strings.TrimSpace(row.Book), strings.TrimSpace(row.Page); name == "" && book != "" {
		name = "Book " + book
		if page != "" {
			name += " Page " + page
		}
	}

	if name == "" {
		name = path.Base(link)
	}

	var format *string

	switch strings.ToLower(strings.TrimPrefix(path.Ext(strings.SplitN(link, "?", 2)[0]), ".")) {
	case "pdf":
		format = utils.StringPtr("pdf")
	case "jpg", "jpeg":
		format = utils.StringPtr("jpeg")
	case "png":
		format = utils.StringPtr("png")
	case "tif", "tiff":
		format = utils.StringPtr("tiff")
	}

	return models.File{
		DocumentType: "Title",
		FileFormat:   format,
		Name:         name,
		OriginalURL:  &link,
	}
}

// taxes emits one tax_<year> entity per valuation year; a repeated year replaces the earlier row.
func (t *Transformer) taxes(g *models.Graph, propertyRef models.Ref, rows []models.ValuationRow, issues *validator.Result) {
	for i, row := range rows {
		year, ok := utils.ParseInt(row.Year)
		if !ok || year < 1000 {
			issues.Warn(validator.CodeUnparsedValue, fmt.Sprintf("valuations[%d].tax_year", i), row.Year, "tax year is not a number; row skipped")
			continue
		}

		ref := models.Ref(KindTax + "_" + strconv.Itoa(year))
		g.Put(ref, models.Tax{
			TaxYear:        year,
			LandAmount:     utils.CurrencyPtr(row.Land),
			BuildingAmount: utils.CurrencyPtr(row.Building),
			MarketValue:    utils.CurrencyPtr(row.Market),
			AssessedValue:  utils.CurrencyPtr(row.Assessed),
			TaxableValue:   utils.CurrencyPtr(row.Taxable),
		})
		g.Link(propertyRef, ref)
	}
}

// number parses a numeric field; empty input is simply absent.
func number(raw, path string, issues *validator.Result) (float64, bool) {
	if strings.TrimSpace(raw) == "" {
		return 0, false
	}

	v, ok := utils.ParseCurrency(raw)
	if !ok {
		issues.Warn(validator.CodeUnparsedValue, path, raw, "not a number; set to null")
		return 0, false
	}

	return v, true
}
