package service

import (
	"vitrina-tech/models"
)

// ReferenceResolverInterface defines the contract for external reference
// resolution
type ReferenceResolverInterface interface {
	ResolveReference(fieldName, value string, kind models.ReferenceKind, context string) (*models.ReferenceValue, bool)
}

// Ensure ReferenceService implements ReferenceResolverInterface
var _ ReferenceResolverInterface = (*ReferenceService)(nil)
