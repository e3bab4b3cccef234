package service

import (
	"log"
	"strings"

	"vitrina-tech/codec"
	"vitrina-tech/models"
	"vitrina-tech/repository"
)

// maxScore is the number of checks a candidate configuration is scored on:
// five spec tokens plus the color.
const maxScore = 6

// TemplateResolverService decodes a template string back into the exact
// full-detail catalog record it was generated from. Resolution tolerates
// minor catalog drift: a near-miss model name falls back to substring
// containment, and a configuration may win on a partial score when the
// catalog has moved underneath an older template.
type TemplateResolverService struct {
	catalog     repository.CatalogRepositoryInterface
	abbreviator *codec.Abbreviator
	threshold   int // minimum score for an approximate match
}

// NewTemplateResolverService creates a new TemplateResolverService.
// threshold is the minimum score (out of 6) a candidate needs to be
// returned as an approximate match; values outside 1..6 fall back to 4.
func NewTemplateResolverService(catalog repository.CatalogRepositoryInterface, abbreviator *codec.Abbreviator, threshold int) *TemplateResolverService {
	if threshold < 1 || threshold > maxScore {
		threshold = 4
	}
	return &TemplateResolverService{
		catalog:     catalog,
		abbreviator: abbreviator,
		threshold:   threshold,
	}
}

// Resolve maps a template string back to its full-detail record. A nil
// result means the template could not be resolved (structural parse
// failure, unknown model, or no configuration scoring at or above the
// threshold); the caller surfaces that to the operator, it is never an
// error condition.
func (s *TemplateResolverService) Resolve(template string) *models.ResolvedRecord {
	parsed := codec.Parse(template)
	if parsed == nil {
		log.Printf("⚠️  Resolver: template does not follow the grammar: %q", template)
		return nil
	}

	entry := s.findEntry(parsed.Model)
	if entry == nil {
		log.Printf("⚠️  Resolver: no catalog entry matches model %q", parsed.Model)
		return nil
	}

	best := -1
	bestScore := 0
	for i, cfg := range entry.Configurations {
		score := s.scoreConfiguration(&cfg, parsed, entry)
		if score == maxScore {
			// Exact match, no ambiguity to weigh
			log.Printf("✓ Resolver: exact match for %q (model=%s)", template, entry.Model)
			return buildRecord(entry, &entry.Configurations[i], parsed.Color, score)
		}
		// Strictly-greater keeps catalog order as the tie break
		if score > bestScore {
			bestScore = score
			best = i
		}
	}

	if best < 0 || bestScore < s.threshold {
		log.Printf("⚠️  Resolver: best score %d/6 below threshold %d for %q", bestScore, s.threshold, template)
		return nil
	}

	log.Printf("ℹ️  Resolver: approximate match (%d/6) for %q (model=%s)", bestScore, template, entry.Model)
	return buildRecord(entry, &entry.Configurations[best], parsed.Color, bestScore)
}

// findEntry fetches the catalog entry for a model name, falling back to
// substring containment in either direction to tolerate minor naming drift
// between the picklist and the catalog
func (s *TemplateResolverService) findEntry(modelName string) *models.CatalogEntry {
	if entry, exists := s.catalog.Entry(modelName); exists {
		return entry
	}

	needle := strings.ToLower(strings.TrimSpace(modelName))
	entries := s.catalog.ListEntries()
	for i := range entries {
		known := strings.ToLower(entries[i].Model)
		if strings.Contains(known, needle) || strings.Contains(needle, known) {
			log.Printf("ℹ️  Resolver: model %q matched catalog entry %q by containment", modelName, entries[i].Model)
			return &entries[i]
		}
	}
	return nil
}

// scoreConfiguration counts how many of the six checks a candidate passes:
// each of the five spec fields re-abbreviated and compared to the decoded
// token, plus the color against the entry's color set
func (s *TemplateResolverService) scoreConfiguration(cfg *models.Configuration, parsed *models.ParsedTemplate, entry *models.CatalogEntry) int {
	fields := [5]struct {
		value    string
		attrType codec.AttributeType
	}{
		{cfg.Processor, codec.AttrProcessor},
		{cfg.Memory, codec.AttrMemory},
		{cfg.Graphics, codec.AttrGraphics},
		{cfg.Display, codec.AttrDisplay},
		{cfg.Storage, codec.AttrStorage},
	}

	score := 0
	for i, field := range fields {
		if s.tokenMatches(field.value, field.attrType, parsed.Tokens[i]) {
			score++
		}
	}
	if entry.HasColor(parsed.Color) {
		score++
	}
	return score
}

// tokenMatches compares a catalog value against a decoded token: exact
// token equality first, then case-insensitive substring containment in
// either direction so identity-fallback tokens still match their source
// value
func (s *TemplateResolverService) tokenMatches(fullValue string, attrType codec.AttributeType, token string) bool {
	expected := s.abbreviator.Abbreviate(fullValue, attrType)
	if strings.EqualFold(expected, token) {
		return true
	}

	haystack := strings.ToLower(fullValue)
	needle := strings.ToLower(token)
	return strings.Contains(haystack, needle) || strings.Contains(needle, haystack)
}

// buildRecord assembles the resolved record from the winning configuration.
// Attribute fields always carry the catalog's full strings, never the
// abbreviated tokens.
func buildRecord(entry *models.CatalogEntry, cfg *models.Configuration, color string, score int) *models.ResolvedRecord {
	return &models.ResolvedRecord{
		Model:     entry.Model,
		Brand:     entry.Brand,
		Processor: cfg.Processor,
		Memory:    cfg.Memory,
		Graphics:  cfg.Graphics,
		Display:   cfg.Display,
		Storage:   cfg.Storage,
		Color:     color,
		Exact:     score == maxScore,
		Score:     score,
	}
}
