package normalizer

import (
	"fmt"

	"dario.cat/mergo"

	"countygraph/internal/models"
)

// passThrough returns the request fields copied onto every sidecar record.
func passThrough(seed *models.Seed) map[string]any {
	base := make(map[string]any)
	if seed == nil {
		return base
	}

	if seed.RequestIdentifier != "" {
		base["request_identifier"] = seed.RequestIdentifier
	}

	if len(seed.SourceHTTPRequest) > 0 {
		base["source_http_request"] = seed.SourceHTTPRequest
	}

	return base
}

// putSidecars emits kind_<n> for each record, filling fields the record lacks
// from base, and links each one to the property.
func putSidecars(g *models.Graph, propertyRef models.Ref, kind string, records []map[string]any, base map[string]any) error {
	for i, rec := range records {
		merged := make(map[string]any, len(rec)+len(base))
		for k, v := range rec {
			merged[k] = v
		}

		if err := mergo.Merge(&merged, base); err != nil {
			return fmt.Errorf("failed to merge %s %d: %w", kind, i+1, err)
		}

		ref := models.IndexedRef(kind, i+1)
		g.Put(ref, merged)
		g.Link(propertyRef, ref)
	}

	return nil
}
