// Package normalizer turns parsed county records into the output entity graph.
package normalizer

import (
	"fmt"

	"countygraph/internal/config"
	"countygraph/internal/owners"
)

// Processor handles data processing and transformation.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// NewProcessor creates a processor for one county.
func NewProcessor(profile *config.CountyProfile, names *owners.Parser) *Processor {
	return &Processor{
		validator:   NewValidator(profile),
		transformer: NewTransformer(profile, names),
	}
}

// Process validates rec and builds its graph. Schema violations are returned
// unwrapped so callers can report them verbatim.
func (p *Processor) Process(rec *Record) (*Result, error) {
	// 1. Validate the input data
	if err := p.validator.Validate(rec); err != nil {
		if isSchemaError(err) {
			return nil, err
		}

		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// 2. Transform the data
	result, err := p.transformer.Transform(rec)
	if err != nil {
		if isSchemaError(err) {
			return nil, err
		}

		return nil, fmt.Errorf("transformation failed: %w", err)
	}

	return result, nil
}
