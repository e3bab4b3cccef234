package service

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"vitrina-tech/codec"
	"vitrina-tech/repository"
)

// CacheFormatVersion tags the persisted template cache file. Bump it
// whenever the template grammar or the abbreviation rules change so stale
// caches rebuild instead of serving tokens the resolver no longer produces.
const CacheFormatVersion = 2

// templateCacheFile is the on-disk shape of the persisted cache
type templateCacheFile struct {
	FormatVersion int       `json:"formatVersion"`
	GeneratedAt   time.Time `json:"generatedAt"`
	BuildID       string    `json:"buildId"`
	Templates     []string  `json:"templates"`
}

// TemplateCacheService builds the full picklist of template strings (every
// model x configuration x color in the catalog) and persists it so repeat
// page loads skip the rebuild. The persisted file is derived data: if it is
// missing, stale or corrupt the service just rebuilds, and if it cannot be
// written the service serves from memory in a degraded mode.
type TemplateCacheService struct {
	catalog   repository.CatalogRepositoryInterface
	generator *codec.Generator
	path      string

	mu        sync.Mutex
	templates []string // in-memory copy, nil until first build/load
}

// NewTemplateCacheService creates a new TemplateCacheService
func NewTemplateCacheService(catalog repository.CatalogRepositoryInterface, generator *codec.Generator, cachePath string) *TemplateCacheService {
	return &TemplateCacheService{
		catalog:   catalog,
		generator: generator,
		path:      cachePath,
	}
}

// AllTemplates returns the sorted list of every template string in the
// catalog. Resolution order: in-memory copy, then the persisted cache file
// (if its version tag matches), then a fresh build. The returned slice is a
// copy so callers cannot mutate the cached list.
func (s *TemplateCacheService) AllTemplates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.templates == nil {
		if templates, ok := s.loadPersisted(); ok {
			s.templates = templates
		} else {
			s.templates = s.build()
			s.persist(s.templates)
		}
	}

	templates := make([]string, len(s.templates))
	copy(templates, s.templates)
	return templates
}

// Invalidate drops the in-memory copy and the persisted file so the next
// AllTemplates call rebuilds from the catalog
func (s *TemplateCacheService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.templates = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️  TemplateCache: failed to remove persisted cache %s: %v", s.path, err)
	}
	log.Printf("✓ TemplateCache: invalidated, next access rebuilds")
}

// build generates one template per model/configuration/color combination,
// sorted for stable picklist display
func (s *TemplateCacheService) build() []string {
	started := time.Now()
	templates := []string{}
	for _, entry := range s.catalog.ListEntries() {
		for _, cfg := range entry.Configurations {
			for _, color := range entry.Colors {
				templates = append(templates, s.generator.Generate(entry.Model, cfg, color))
			}
		}
	}
	sort.Strings(templates)
	log.Printf("✓ TemplateCache: built %d templates in %s", len(templates), time.Since(started))
	return templates
}

// loadPersisted reads the cache file and returns its templates if the
// format version matches
func (s *TemplateCacheService) loadPersisted() ([]string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️  TemplateCache: failed to read %s: %v (rebuilding)", s.path, err)
		}
		return nil, false
	}

	var file templateCacheFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.Printf("⚠️  TemplateCache: corrupt cache file %s: %v (rebuilding)", s.path, err)
		return nil, false
	}
	if file.FormatVersion != CacheFormatVersion {
		log.Printf("ℹ️  TemplateCache: cache format v%d != expected v%d (rebuilding)", file.FormatVersion, CacheFormatVersion)
		return nil, false
	}
	if file.Templates == nil {
		file.Templates = []string{}
	}

	log.Printf("✓ TemplateCache: loaded %d templates from %s (built %s)", len(file.Templates), s.path, file.GeneratedAt.Format(time.RFC3339))
	return file.Templates, true
}

// persist writes the cache file as a whole-file replace. Persistence is an
// optimization: failure degrades to rebuilding on each process start, so it
// only warns.
func (s *TemplateCacheService) persist(templates []string) {
	file := templateCacheFile{
		FormatVersion: CacheFormatVersion,
		GeneratedAt:   time.Now().UTC(),
		BuildID:       uuid.NewString(),
		Templates:     templates,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		log.Printf("⚠️  TemplateCache: failed to encode cache: %v", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		log.Printf("⚠️  TemplateCache: failed to create cache directory: %v", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		log.Printf("⚠️  TemplateCache: failed to write %s: %v (serving from memory)", s.path, err)
		return
	}
	log.Printf("✓ TemplateCache: persisted %d templates to %s (build %s)", len(templates), s.path, file.BuildID)
}

// Describe returns a short status line for the health endpoint
func (s *TemplateCacheService) Describe() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.templates == nil {
		return fmt.Sprintf("cold (cache file: %s)", s.path)
	}
	return fmt.Sprintf("%d templates in memory", len(s.templates))
}
