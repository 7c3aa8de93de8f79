package parsers

import (
	"bytes"

	"github.com/tidwall/gjson"

	"countygraph/internal/config"
	"countygraph/internal/models"
	"countygraph/pkg/utils"
)

// JSONParser reads appraiser API payloads with gjson paths.
type JSONParser struct {
	paths config.FieldSelectors
}

// NewJSONParser creates a parser for the given paths.
func NewJSONParser(paths config.FieldSelectors) *JSONParser {
	return &JSONParser{paths: paths}
}

// Parse extracts the configured fields from a JSON payload.
func (p *JSONParser) Parse(content []byte) (*models.PropertyDocument, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, ErrEmptyDocument
	}

	if !gjson.ValidBytes(content) {
		return nil, ErrInvalidDocument
	}

	root := gjson.ParseBytes(content)
	doc := &models.PropertyDocument{}

	for _, f := range fieldTargets(p.paths, doc) {
		if f.selector == "" {
			continue
		}

		*f.target = value(root.Get(f.selector))
	}

	if t := p.paths.Sales; t.Rows != "" {
		root.Get(t.Rows).ForEach(func(_, row gjson.Result) bool {
			if sale, ok := saleRow(fields(row, t.Columns)); ok {
				doc.Sales = append(doc.Sales, sale)
			}

			return true
		})
	}

	if t := p.paths.Valuations; t.Rows != "" {
		root.Get(t.Rows).ForEach(func(_, row gjson.Result) bool {
			if v, ok := valuationRow(fields(row, t.Columns)); ok {
				doc.Valuations = append(doc.Valuations, v)
			}

			return true
		})
	}

	return doc, nil
}

func fields(row gjson.Result, columns map[string]string) map[string]string {
	out := make(map[string]string, len(columns))
	for name, path := range columns {
		out[name] = value(row.Get(path))
	}

	return out
}

// value renders scalars as text; missing values and null become "".
func value(r gjson.Result) string {
	if !r.Exists() || r.Type == gjson.Null {
		return ""
	}

	if r.Type == gjson.Number {
		return r.Raw
	}

	return utils.NormalizeWhitespace(r.String())
}
