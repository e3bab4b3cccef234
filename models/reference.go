package models

import (
	"encoding/json"
	"time"
)

// ReferenceKind distinguishes the two shapes the external platform accepts
// for a reference field: exactly one identifier, or an ordered list.
// Supplying the wrong shape is a hard failure on the platform side, so the
// kind travels with every resolution request.
type ReferenceKind string

const (
	ReferenceSingle ReferenceKind = "single"
	ReferenceList   ReferenceKind = "list"
)

// ReferenceValue is a resolved external reference in the shape the platform
// expects. For single kind only ID is set; for list kind only IDs is set.
type ReferenceValue struct {
	Kind ReferenceKind `json:"-"`
	ID   string        `json:"-"`
	IDs  []string      `json:"-"`
}

// MarshalJSON emits a bare string for single references and an array for
// list references, matching the platform's field typing.
func (v ReferenceValue) MarshalJSON() ([]byte, error) {
	if v.Kind == ReferenceList {
		if v.IDs == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.IDs)
	}
	return json.Marshal(v.ID)
}

// MissingMappingRecord tracks one (field, value) pair the reference resolver
// could not satisfy. Frequency counts every occurrence; contexts keeps a
// small set of distinct hints about what triggered the lookup.
type MissingMappingRecord struct {
	Value     string    `json:"value"`
	Frequency int       `json:"frequency"`
	FirstSeen time.Time `json:"firstSeen"`
	LastSeen  time.Time `json:"lastSeen"`
	Contexts  []string  `json:"contexts,omitempty"`
}
