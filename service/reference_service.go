package service

import (
	"log"
	"strings"

	"vitrina-tech/codec"
	"vitrina-tech/models"
	"vitrina-tech/repository"
)

// attributeTypeForField maps mapping-table field names onto the codec's
// attribute types so alias expansion can re-abbreviate mapping keys. Fields
// without a codec type (e.g. color) skip abbreviation-based aliasing and
// rely on containment only.
var attributeTypeForField = map[string]codec.AttributeType{
	"processor": codec.AttrProcessor,
	"memory":    codec.AttrMemory,
	"graphics":  codec.AttrGraphics,
	"display":   codec.AttrDisplay,
	"storage":   codec.AttrStorage,
}

// ReferenceService maps resolved attribute values onto external reference
// identifiers. The mapping table is known to be incomplete: a miss is an
// expected outcome that gets recorded for operator review, never an error,
// and one miss must never block the rest of a product's assembly.
type ReferenceService struct {
	mappings    repository.MappingRepositoryInterface
	missing     *MissingMappingLog
	abbreviator *codec.Abbreviator
}

// NewReferenceService creates a new ReferenceService
func NewReferenceService(mappings repository.MappingRepositoryInterface, missing *MissingMappingLog, abbreviator *codec.Abbreviator) *ReferenceService {
	return &ReferenceService{
		mappings:    mappings,
		missing:     missing,
		abbreviator: abbreviator,
	}
}

// ResolveReference looks up the external identifier(s) for one attribute
// value. The result always has the shape the platform expects for kind:
// exactly one identifier for single, a non-empty ordered list for list.
// The second return is false on a miss, after the miss has been recorded
// with the caller-supplied context.
func (s *ReferenceService) ResolveReference(fieldName, value string, kind models.ReferenceKind, context string) (*models.ReferenceValue, bool) {
	ids, found := s.lookup(fieldName, value)
	if !found {
		s.missing.Record(fieldName, value, context)
		return nil, false
	}

	if kind == models.ReferenceList {
		return &models.ReferenceValue{Kind: models.ReferenceList, IDs: ids}, true
	}
	// Single-reference fields take the first identifier of a multi-valued
	// mapping entry
	return &models.ReferenceValue{Kind: models.ReferenceSingle, ID: ids[0]}, true
}

// lookup tries the value verbatim first, then expands known aliases: a
// mapping key whose abbreviation equals the value (the operator picked the
// short form), or a key containing the value (the operator typed a bare
// model number like "RTX 4060" for a canonical "NVIDIA GeForce RTX 4060
// 8GB" key).
func (s *ReferenceService) lookup(fieldName, value string) ([]string, bool) {
	if ids, found := s.mappings.Lookup(fieldName, value); found {
		return ids, true
	}

	needle := strings.ToLower(strings.TrimSpace(value))
	if needle == "" {
		return nil, false
	}
	attrType, hasAttrType := attributeTypeForField[fieldName]

	for _, key := range s.mappings.Keys(fieldName) {
		if hasAttrType && strings.EqualFold(s.abbreviator.Abbreviate(key, attrType), strings.TrimSpace(value)) {
			log.Printf("ℹ️  ReferenceService: %s=%q matched mapping key %q via abbreviation", fieldName, value, key)
			return s.mappings.Lookup(fieldName, key)
		}
		if strings.Contains(strings.ToLower(key), needle) {
			log.Printf("ℹ️  ReferenceService: %s=%q matched mapping key %q via containment", fieldName, value, key)
			return s.mappings.Lookup(fieldName, key)
		}
	}
	return nil, false
}
