package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"countygraph/internal/models"
)

// ErrSidecarNotObject is returned for sidecar files that are not JSON objects.
var ErrSidecarNotObject = errors.New("sidecar must be a JSON object keyed by property")

// Sidecar is a decoded owners/*.json file: one entry per property_<parcel_id> key.
type Sidecar struct {
	root gjson.Result
}

// ParseSidecar validates and wraps raw sidecar JSON.
func ParseSidecar(data []byte) (*Sidecar, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrSidecarNotObject)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, ErrSidecarNotObject
	}

	return &Sidecar{root: root}, nil
}

// Keys returns the property keys in file order.
func (s *Sidecar) Keys() []string {
	if s == nil {
		return nil
	}

	var keys []string

	s.root.ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})

	return keys
}

// Lookup returns the entry for parcelID. Keys are compared exactly first,
// then ignoring case and punctuation in the parcel id.
func (s *Sidecar) Lookup(parcelID string) (gjson.Result, bool) {
	if s == nil || parcelID == "" {
		return gjson.Result{}, false
	}

	want := SidecarKey(parcelID)
	loose := looseKey(want)

	var exact, fuzzy gjson.Result

	s.root.ForEach(func(k, v gjson.Result) bool {
		key := k.String()
		if key == want {
			exact = v
			return false
		}

		if !fuzzy.Exists() && looseKey(key) == loose {
			fuzzy = v
		}

		return true
	})

	if exact.Exists() {
		return exact, true
	}

	return fuzzy, fuzzy.Exists()
}

// Owners decodes the owners_by_date snapshot for parcelID. A missing entry
// yields nil without error.
func (s *Sidecar) Owners(parcelID string) (*models.OwnershipSnapshot, error) {
	entry, ok := s.Lookup(parcelID)
	if !ok {
		return nil, nil
	}

	byDate := entry.Get("owners_by_date")
	if !byDate.Exists() || byDate.Type == gjson.Null {
		return nil, nil
	}

	snap := models.NewOwnershipSnapshot()
	if err := json.Unmarshal([]byte(byDate.Raw), snap); err != nil {
		return nil, fmt.Errorf("owner data for %s: %w", parcelID, err)
	}

	return snap, nil
}

// Records returns the records stored for parcelID. An entry may be a single
// object, an array of objects, or an object wrapping one array (for example
// {"layouts": [...]}).
func (s *Sidecar) Records(parcelID string) ([]map[string]any, error) {
	entry, ok := s.Lookup(parcelID)
	if !ok {
		return nil, nil
	}

	items := unwrap(entry)

	records := make([]map[string]any, 0, len(items))

	for i, item := range items {
		if !item.IsObject() {
			continue
		}

		var rec map[string]any
		if err := json.Unmarshal([]byte(item.Raw), &rec); err != nil {
			return nil, fmt.Errorf("record %d for %s: %w", i, parcelID, err)
		}

		records = append(records, rec)
	}

	return records, nil
}

func unwrap(entry gjson.Result) []gjson.Result {
	if entry.IsArray() {
		return entry.Array()
	}

	if !entry.IsObject() {
		return nil
	}

	fields := entry.Map()
	if len(fields) == 1 {
		for _, v := range fields {
			if v.IsArray() {
				return v.Array()
			}
		}
	}

	return []gjson.Result{entry}
}

func looseKey(s string) string {
	var b strings.Builder

	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}
