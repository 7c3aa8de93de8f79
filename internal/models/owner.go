// Package models defines the records read from county sources and written to the output graph.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Owner kinds.
const (
	OwnerTypePerson  = "person"
	OwnerTypeCompany = "company"
)

// CurrentKey is the snapshot key holding present-day owners.
const CurrentKey = "current"

// ErrSnapshotNotObject is returned when owners_by_date is not a JSON object.
var ErrSnapshotNotObject = errors.New("owners_by_date must be a JSON object")

// OwnerMention is a single owner entry as scraped, before canonicalization.
type OwnerMention struct {
	Type       string  `json:"type"`
	Name       string  `json:"name,omitempty"`
	FirstName  string  `json:"first_name,omitempty"`
	MiddleName *string `json:"middle_name,omitempty"`
	LastName   string  `json:"last_name,omitempty"`
	PrefixName *string `json:"prefix_name,omitempty"`
	SuffixName *string `json:"suffix_name,omitempty"`
}

// HasStructuredName reports whether the mention carries split name fields.
func (m OwnerMention) HasStructuredName() bool {
	return m.FirstName != "" || m.LastName != ""
}

// Person is a canonical person record.
type Person struct {
	FirstName  string  `json:"first_name"`
	MiddleName *string `json:"middle_name"`
	LastName   string  `json:"last_name"`
	PrefixName *string `json:"prefix_name"`
	SuffixName *string `json:"suffix_name"`
}

// Company is a canonical company record.
type Company struct {
	Name string `json:"name"`
}

// OwnershipSnapshot maps a date key (ISO date or "current") to the owners listed for it.
// Key order from the source document is preserved.
type OwnershipSnapshot struct {
	keys   []string
	owners map[string][]OwnerMention
}

// NewOwnershipSnapshot creates an empty snapshot.
func NewOwnershipSnapshot() *OwnershipSnapshot {
	return &OwnershipSnapshot{owners: make(map[string][]OwnerMention)}
}

// Set stores mentions under key. An existing key keeps its position.
func (s *OwnershipSnapshot) Set(key string, mentions []OwnerMention) {
	if s.owners == nil {
		s.owners = make(map[string][]OwnerMention)
	}

	if _, ok := s.owners[key]; !ok {
		s.keys = append(s.keys, key)
	}

	s.owners[key] = mentions
}

// Get returns the mentions for key.
func (s *OwnershipSnapshot) Get(key string) ([]OwnerMention, bool) {
	if s == nil {
		return nil, false
	}

	m, ok := s.owners[key]

	return m, ok
}

// Keys returns the date keys in source order.
func (s *OwnershipSnapshot) Keys() []string {
	if s == nil {
		return nil
	}

	out := make([]string, len(s.keys))
	copy(out, s.keys)

	return out
}

// Len returns the number of date keys.
func (s *OwnershipSnapshot) Len() int {
	if s == nil {
		return 0
	}

	return len(s.keys)
}

// UnmarshalJSON decodes an object while keeping key order.
func (s *OwnershipSnapshot) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrSnapshotNotObject
	}

	s.keys = nil
	s.owners = make(map[string][]OwnerMention)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}

		key, _ := tok.(string)

		var mentions []OwnerMention
		if err := dec.Decode(&mentions); err != nil {
			return fmt.Errorf("owners_by_date[%s]: %w", key, err)
		}

		s.Set(key, mentions)
	}

	_, err = dec.Token()

	return err
}

// MarshalJSON encodes the snapshot in key order.
func (s *OwnershipSnapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, key := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}

		v, err := json.Marshal(s.owners[key])
		if err != nil {
			return nil, err
		}

		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// OwnerRecord is one property's entry in owners/owner_data.json.
type OwnerRecord struct {
	OwnersByDate *OwnershipSnapshot `json:"owners_by_date"`
}
