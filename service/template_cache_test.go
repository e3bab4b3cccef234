package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina-tech/codec"
)

func newTestCache(t *testing.T, catalog *stubCatalog) (*TemplateCacheService, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template_cache.json")
	generator := codec.NewGenerator(codec.NewAbbreviator())
	return NewTemplateCacheService(catalog, generator, path), path
}

func TestAllTemplatesBuildsEveryCombination(t *testing.T) {
	catalog := testCatalog()
	cache, _ := newTestCache(t, catalog)

	templates := cache.AllTemplates()

	// 2 configs x 2 colors + 1 config x 1 color
	require.Len(t, templates, 5)
	assert.True(t, sort.StringsAreSorted(templates))
	assert.Contains(t, templates, "ASUS TUF Gaming F15 [i7-12700H/16GB/RTX 4060/144Hz/512GB SSD] [Graphite Black]")
	assert.Contains(t, templates, "Lenovo IdeaPad Gaming 3 [Ryzen 5 5600H/8GB/GTX 1650/120Hz/256GB SSD] [Shadow Black]")
}

func TestAllTemplatesPersistsAndReloads(t *testing.T) {
	catalog := testCatalog()
	cache, path := newTestCache(t, catalog)

	built := cache.AllTemplates()

	// The persisted file carries the version tag and the full list
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var file struct {
		FormatVersion int      `json:"formatVersion"`
		BuildID       string   `json:"buildId"`
		Templates     []string `json:"templates"`
	}
	require.NoError(t, json.Unmarshal(data, &file))
	assert.Equal(t, CacheFormatVersion, file.FormatVersion)
	assert.NotEmpty(t, file.BuildID)
	assert.Equal(t, built, file.Templates)

	// A fresh service instance serves the persisted list without touching
	// the catalog
	generator := codec.NewGenerator(codec.NewAbbreviator())
	fresh := NewTemplateCacheService(&stubCatalog{}, generator, path)
	assert.Equal(t, built, fresh.AllTemplates())
}

func TestAllTemplatesRejectsStaleVersion(t *testing.T) {
	catalog := testCatalog()
	cache, path := newTestCache(t, catalog)

	stale := `{"formatVersion": 1, "templates": ["old template [a/b/c/d/e] [f]"]}`
	require.NoError(t, os.WriteFile(path, []byte(stale), 0o644))

	// Version mismatch forces a rebuild from the catalog
	templates := cache.AllTemplates()
	assert.Len(t, templates, 5)
	assert.NotContains(t, templates, "old template [a/b/c/d/e] [f]")
}

func TestAllTemplatesCorruptCacheFallsBack(t *testing.T) {
	catalog := testCatalog()
	cache, path := newTestCache(t, catalog)

	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o644))

	// Corrupt cache degrades to an in-memory rebuild, never an error
	templates := cache.AllTemplates()
	assert.Len(t, templates, 5)
}

func TestInvalidateForcesRebuild(t *testing.T) {
	catalog := testCatalog()
	cache, path := newTestCache(t, catalog)

	cache.AllTemplates()
	require.FileExists(t, path)

	cache.Invalidate()
	assert.NoFileExists(t, path)

	// Catalog grew between builds; invalidation makes the change visible
	catalog.entries[1].Colors = append(catalog.entries[1].Colors, "Arctic White")
	templates := cache.AllTemplates()
	assert.Len(t, templates, 6)
}

func TestAllTemplatesReturnsCopy(t *testing.T) {
	cache, _ := newTestCache(t, testCatalog())

	templates := cache.AllTemplates()
	require.NotEmpty(t, templates)
	templates[0] = "mutated"

	assert.NotEqual(t, "mutated", cache.AllTemplates()[0])
}

func TestAllTemplatesEmptyCatalog(t *testing.T) {
	cache, _ := newTestCache(t, &stubCatalog{})

	// Degraded but usable: empty picklist, no error
	assert.Empty(t, cache.AllTemplates())
}
