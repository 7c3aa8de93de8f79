package normalizer

import (
	"errors"
	"strings"

	"countygraph/internal/config"
	"countygraph/internal/validator"
)

// Validation errors.
var (
	ErrNilRecord       = errors.New("record is nil")
	ErrMissingDocument = errors.New("record has no parsed document")
)

// Validator rejects records that cannot produce a valid property graph.
type Validator struct {
	profile *config.CountyProfile
}

// NewValidator creates a validator for a county profile.
func NewValidator(profile *config.CountyProfile) *Validator {
	return &Validator{profile: profile}
}

// Validate checks the required fields. Schema violations are returned as
// *validator.SchemaError.
func (v *Validator) Validate(rec *Record) error {
	if rec == nil {
		return ErrNilRecord
	}

	if rec.Document == nil {
		return ErrMissingDocument
	}

	if strings.TrimSpace(rec.ParcelID()) == "" {
		return validator.MissingRequired("property.parcel_identifier")
	}

	code := strings.TrimSpace(rec.Document.PropertyUseCode)
	if code == "" {
		return validator.MissingRequired("property.property_use_code")
	}

	propertyType, ok := lookupCode(v.profile.PropertyUseCodes, code)
	if !ok {
		return validator.UnknownEnum(code, "property.property_type")
	}

	if _, ok := PropertyTypes.Match(propertyType); !ok {
		return validator.UnknownEnum(propertyType, "property.property_type")
	}

	if v.profile.AddressFileRequired && (rec.Address == nil || strings.TrimSpace(rec.Address.FullAddress) == "") {
		return validator.MissingRequired("address.unnormalized_address")
	}

	return nil
}

func isSchemaError(err error) bool {
	var se *validator.SchemaError
	return errors.As(err, &se)
}
