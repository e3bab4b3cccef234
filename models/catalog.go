package models

import "strings"

// Configuration represents one concrete hardware bill-of-materials for a model.
// Every field is the full human-readable string as it appears in the catalog
// files (e.g., "15.6-inch FHD (144Hz)"). Immutable once loaded.
type Configuration struct {
	Processor string `json:"processor" yaml:"processor"`
	Memory    string `json:"memory" yaml:"memory"`
	Graphics  string `json:"graphics" yaml:"graphics"`
	Display   string `json:"display" yaml:"display"`
	Storage   string `json:"storage" yaml:"storage"`
}

// CatalogEntry represents one device model in the catalog
type CatalogEntry struct {
	Model          string          `json:"model" yaml:"model"`
	Brand          string          `json:"brand" yaml:"brand"`
	Configurations []Configuration `json:"configurations" yaml:"configurations"`
	Colors         []string        `json:"colors" yaml:"colors"`
}

// HasColor checks whether a color belongs to the entry's valid color set.
// Comparison is case-insensitive because operators type colors by hand
// in the catalog files.
func (e *CatalogEntry) HasColor(color string) bool {
	for _, c := range e.Colors {
		if strings.EqualFold(strings.TrimSpace(c), strings.TrimSpace(color)) {
			return true
		}
	}
	return false
}

// BrandModel represents one model record inside a per-brand catalog file
type BrandModel struct {
	Model          string          `yaml:"model"`
	Colors         []string        `yaml:"colors"`
	Configurations []Configuration `yaml:"configurations"`
}

// BrandFile represents the on-disk shape of one per-brand catalog file
type BrandFile struct {
	Brand  string       `yaml:"brand"`
	Models []BrandModel `yaml:"models"`
}
