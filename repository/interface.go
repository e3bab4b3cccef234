package repository

import (
	"vitrina-tech/models"
)

// CatalogRepositoryInterface defines the contract for read-only access to
// the device model catalog
type CatalogRepositoryInterface interface {
	ListEntries() []models.CatalogEntry
	Entry(modelName string) (*models.CatalogEntry, bool)
}

// MappingRepositoryInterface defines the contract for the external reference
// mapping table, keyed by attribute field name
type MappingRepositoryInterface interface {
	Lookup(fieldName, value string) ([]string, bool)
	Keys(fieldName string) []string
	Fields() []string
	Reload() error
}
