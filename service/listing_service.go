package service

import (
	"log"

	"vitrina-tech/models"
)

// payloadField describes one attribute of a resolved record as the external
// platform's metadata schema sees it: which mapping table it resolves
// against and whether the platform types it as a single reference or a list
// of references. Supplying the wrong shape is a hard failure on the
// platform side.
type payloadField struct {
	name  string
	kind  models.ReferenceKind
	value func(*models.ResolvedRecord) string
}

// payloadFields is the attachment order of the platform's metadata fields.
// Display maps to a list because one panel string can carry several feature
// references (resolution, refresh rate, panel type).
var payloadFields = []payloadField{
	{name: "processor", kind: models.ReferenceSingle, value: func(r *models.ResolvedRecord) string { return r.Processor }},
	{name: "memory", kind: models.ReferenceSingle, value: func(r *models.ResolvedRecord) string { return r.Memory }},
	{name: "graphics", kind: models.ReferenceSingle, value: func(r *models.ResolvedRecord) string { return r.Graphics }},
	{name: "display", kind: models.ReferenceList, value: func(r *models.ResolvedRecord) string { return r.Display }},
	{name: "storage", kind: models.ReferenceSingle, value: func(r *models.ResolvedRecord) string { return r.Storage }},
	{name: "color", kind: models.ReferenceSingle, value: func(r *models.ResolvedRecord) string { return r.Color }},
}

// ListingPayload is what the product-creation layer attaches to the
// external platform call: the resolved references keyed by field, plus the
// fields that could not be resolved and were omitted.
type ListingPayload struct {
	Model      string                           `json:"model"`
	Brand      string                           `json:"brand"`
	References map[string]models.ReferenceValue `json:"references"`
	Omitted    []string                         `json:"omitted,omitempty"`
}

// ListingService assembles the platform metadata payload for a resolved
// record. One missing mapping never blocks the rest of the payload: the
// affected attribute is omitted (and recorded by the reference service) and
// assembly continues.
type ListingService struct {
	references *ReferenceService
}

// NewListingService creates a new ListingService
func NewListingService(references *ReferenceService) *ListingService {
	return &ListingService{
		references: references,
	}
}

// BuildPayload resolves every attribute of the record to its external
// reference(s), omitting attributes whose mapping is absent
func (s *ListingService) BuildPayload(record *models.ResolvedRecord) *ListingPayload {
	payload := &ListingPayload{
		Model:      record.Model,
		Brand:      record.Brand,
		References: make(map[string]models.ReferenceValue, len(payloadFields)),
	}

	for _, field := range payloadFields {
		value := field.value(record)
		ref, found := s.references.ResolveReference(field.name, value, field.kind, record.Model)
		if !found {
			payload.Omitted = append(payload.Omitted, field.name)
			continue
		}
		payload.References[field.name] = *ref
	}

	if len(payload.Omitted) > 0 {
		log.Printf("ℹ️  ListingService: payload for %q assembled with %d of %d references (omitted: %v)",
			record.Model, len(payload.References), len(payloadFields), payload.Omitted)
	} else {
		log.Printf("✓ ListingService: payload for %q fully resolved", record.Model)
	}
	return payload
}
