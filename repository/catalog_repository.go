package repository

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"vitrina-tech/models"
)

// CatalogRepository serves the set of known device models from a directory
// of per-brand YAML files. The catalog is loaded once at construction and
// never mutated afterwards; a process restart picks up edited files.
type CatalogRepository struct {
	entries []models.CatalogEntry
	byModel map[string]int // lowercased model name -> index into entries
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

// NewCatalogRepository loads every *.yaml / *.yml file in catalogDir.
// A missing directory, unreadable file or malformed record degrades to a
// smaller (possibly empty) catalog with a warning; the rest of the system
// keeps running for manual, non-templated entry.
func NewCatalogRepository(catalogDir string) *CatalogRepository {
	repo := &CatalogRepository{
		byModel: make(map[string]int),
	}

	dirEntries, err := os.ReadDir(catalogDir)
	if err != nil {
		log.Printf("⚠️  CatalogRepository: cannot read catalog directory %s: %v (starting with empty catalog)", catalogDir, err)
		return repo
	}

	// Sorted filename order keeps catalog iteration stable across runs
	var files []string
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() {
			continue
		}
		name := dirEntry.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			files = append(files, name)
		}
	}
	sort.Strings(files)

	for _, file := range files {
		path := filepath.Join(catalogDir, file)
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("⚠️  CatalogRepository: failed to read %s: %v (skipping)", path, err)
			continue
		}

		var brandFile models.BrandFile
		if err := yaml.Unmarshal(data, &brandFile); err != nil {
			log.Printf("⚠️  CatalogRepository: failed to parse %s: %v (skipping)", path, err)
			continue
		}

		for _, brandModel := range brandFile.Models {
			modelName := strings.TrimSpace(brandModel.Model)
			if modelName == "" {
				log.Printf("⚠️  CatalogRepository: %s contains a model record without a name (skipping)", path)
				continue
			}
			if containsGrammarDelimiter(modelName) {
				log.Printf("⚠️  CatalogRepository: model %q in %s contains a template delimiter character (skipping)", modelName, path)
				continue
			}
			if _, exists := repo.byModel[strings.ToLower(modelName)]; exists {
				log.Printf("⚠️  CatalogRepository: duplicate model %q in %s (keeping first occurrence)", modelName, path)
				continue
			}

			entry := models.CatalogEntry{
				Model:          modelName,
				Brand:          strings.TrimSpace(brandFile.Brand),
				Configurations: validConfigurations(modelName, brandModel.Configurations),
				Colors:         validColors(modelName, brandModel.Colors),
			}
			repo.byModel[strings.ToLower(modelName)] = len(repo.entries)
			repo.entries = append(repo.entries, entry)
		}
	}

	log.Printf("✓ CatalogRepository: loaded %d models from %d files in %s", len(repo.entries), len(files), catalogDir)
	return repo
}

// containsGrammarDelimiter reports whether a catalog value carries one of
// the template grammar's delimiter characters. Such a value would generate
// a template that fails its own parse, silently breaking the round trip,
// so it is rejected at load time instead.
func containsGrammarDelimiter(value string) bool {
	return strings.ContainsAny(value, "[]/")
}

// validConfigurations drops configurations whose field values contain a
// template delimiter character, logging each rejection
func validConfigurations(modelName string, configs []models.Configuration) []models.Configuration {
	valid := make([]models.Configuration, 0, len(configs))
	for _, cfg := range configs {
		fields := []string{cfg.Processor, cfg.Memory, cfg.Graphics, cfg.Display, cfg.Storage}
		ok := true
		for _, field := range fields {
			if containsGrammarDelimiter(field) {
				log.Printf("⚠️  CatalogRepository: configuration value %q of model %q contains a template delimiter character (skipping configuration)", field, modelName)
				ok = false
				break
			}
		}
		if ok {
			valid = append(valid, cfg)
		}
	}
	return valid
}

// validColors drops colors containing a template delimiter character
func validColors(modelName string, colors []string) []string {
	valid := make([]string, 0, len(colors))
	for _, color := range colors {
		if containsGrammarDelimiter(color) {
			log.Printf("⚠️  CatalogRepository: color %q of model %q contains a template delimiter character (skipping color)", color, modelName)
			continue
		}
		valid = append(valid, color)
	}
	return valid
}

// ListEntries returns every catalog entry in stable load order. The slice
// is a copy so callers cannot mutate the loaded catalog.
func (r *CatalogRepository) ListEntries() []models.CatalogEntry {
	entries := make([]models.CatalogEntry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Entry returns the catalog entry for an exact model name (case-insensitive)
func (r *CatalogRepository) Entry(modelName string) (*models.CatalogEntry, bool) {
	idx, exists := r.byModel[strings.ToLower(strings.TrimSpace(modelName))]
	if !exists {
		return nil, false
	}
	return &r.entries[idx], true
}
