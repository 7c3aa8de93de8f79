package normalizer

import (
	"countygraph/internal/models"
	"countygraph/internal/validator"
)

// Record is everything known about one property before normalization.
type Record struct {
	Document   *models.PropertyDocument
	Seed       *models.Seed
	Address    *models.UnnormalizedAddress
	Owners     *models.OwnershipSnapshot
	Utilities  []map[string]any
	Layouts    []map[string]any
	Structures []map[string]any
}

// ParcelID returns the parcel id from the document, falling back to the seed.
func (r *Record) ParcelID() string {
	if r.Document != nil && r.Document.ParcelID != "" {
		return r.Document.ParcelID
	}

	if r.Seed != nil {
		return r.Seed.ParcelID
	}

	return ""
}

// Result is the normalized graph of one property.
type Result struct {
	Graph            *models.Graph
	Issues           validator.Result
	MailingExtracted bool
	OwnerEdges       int
}
