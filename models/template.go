package models

// ParsedTemplate holds the structural pieces of a template string after the
// grammar parse: the model name, the five abbreviated spec tokens in catalog
// field order, and the color.
type ParsedTemplate struct {
	Model  string    `json:"model"`
	Tokens [5]string `json:"tokens"` // processor, memory, graphics, display, storage
	Color  string    `json:"color"`
}

// ResolvedRecord is the full-detail configuration a template string resolves
// back to. Every attribute carries the catalog's full string, never the
// abbreviated token.
type ResolvedRecord struct {
	Model     string `json:"model"`
	Brand     string `json:"brand"`
	Processor string `json:"processor"`
	Memory    string `json:"memory"`
	Graphics  string `json:"graphics"`
	Display   string `json:"display"`
	Storage   string `json:"storage"`
	Color     string `json:"color"`
	Exact     bool   `json:"exact"` // true when all six checks matched
	Score     int    `json:"score"` // match score out of 6
}
