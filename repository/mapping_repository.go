package repository

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// MappingRepository serves the external reference mapping table from a
// directory of per-field JSON files (processor.json, graphics.json, ...).
// Each file is a flat object from a full display string to either one
// identifier string or an array of identifier strings. The table is partial
// by construction and grows over time, so it is reloadable at runtime
// independently of the catalog.
type MappingRepository struct {
	dir string

	mu     sync.RWMutex
	tables map[string]map[string][]string // field -> display string -> identifiers
}

// Ensure MappingRepository implements MappingRepositoryInterface
var _ MappingRepositoryInterface = (*MappingRepository)(nil)

// NewMappingRepository loads the mapping files from mappingsDir. Load
// failures degrade to an empty table for the affected field; the resolver
// treats every lookup against a missing table as a recordable miss.
func NewMappingRepository(mappingsDir string) *MappingRepository {
	repo := &MappingRepository{
		dir:    mappingsDir,
		tables: make(map[string]map[string][]string),
	}
	if err := repo.Reload(); err != nil {
		log.Printf("⚠️  MappingRepository: initial load failed: %v (starting with empty table)", err)
	}
	return repo
}

// Reload re-reads every mapping file, replacing the in-memory table
// atomically. Called at startup and on operator request after mapping files
// are edited.
func (r *MappingRepository) Reload() error {
	dirEntries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("cannot read mappings directory %s: %w", r.dir, err)
	}

	tables := make(map[string]map[string][]string)
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || !strings.HasSuffix(dirEntry.Name(), ".json") {
			continue
		}
		field := strings.TrimSuffix(dirEntry.Name(), ".json")
		path := filepath.Join(r.dir, dirEntry.Name())

		table, err := loadMappingFile(path)
		if err != nil {
			log.Printf("⚠️  MappingRepository: failed to load %s: %v (field %q starts empty)", path, err, field)
			tables[field] = make(map[string][]string)
			continue
		}
		tables[field] = table
	}

	r.mu.Lock()
	r.tables = tables
	r.mu.Unlock()

	log.Printf("✓ MappingRepository: loaded %d mapping files from %s", len(tables), r.dir)
	return nil
}

// loadMappingFile parses one per-field mapping file. Values may be a single
// identifier string or an array of identifier strings; both normalize to a
// slice internally.
func loadMappingFile(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse mapping file: %w", err)
	}

	table := make(map[string][]string, len(raw))
	for key, value := range raw {
		var single string
		if err := json.Unmarshal(value, &single); err == nil {
			table[key] = []string{single}
			continue
		}
		var multi []string
		if err := json.Unmarshal(value, &multi); err == nil {
			table[key] = multi
			continue
		}
		return nil, fmt.Errorf("value for %q is neither a string nor an array of strings", key)
	}
	return table, nil
}

// Lookup returns the identifiers mapped to a display string, matched
// verbatim (after trimming). The second return is false when the field or
// the value is absent from the table.
func (r *MappingRepository) Lookup(fieldName, value string) ([]string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table, exists := r.tables[fieldName]
	if !exists {
		return nil, false
	}
	ids, exists := table[strings.TrimSpace(value)]
	if !exists || len(ids) == 0 {
		return nil, false
	}
	return ids, true
}

// Keys returns every mapped display string for a field, sorted. Used by the
// alias-expansion step of the reference resolver.
func (r *MappingRepository) Keys(fieldName string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table, exists := r.tables[fieldName]
	if !exists {
		return nil
	}
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Fields returns the attribute field names present in the table, sorted
func (r *MappingRepository) Fields() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fields := make([]string, 0, len(r.tables))
	for field := range r.tables {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
