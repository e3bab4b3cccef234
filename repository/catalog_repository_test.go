package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const asusFixture = `brand: ASUS
models:
  - model: ASUS TUF Gaming F15
    colors:
      - Graphite Black
      - Eclipse Gray
    configurations:
      - processor: Intel Core i7-12700H (16 CPUs), ~2.3GHz
        memory: 16GB
        graphics: NVIDIA GeForce RTX 4060 8GB
        display: 15.6-inch FHD (144Hz)
        storage: 512GB SSD
      - processor: Intel Core i5-12500H (16 CPUs), ~2.5GHz
        memory: 8GB
        graphics: NVIDIA GeForce RTX 3050 4GB
        display: 15.6-inch FHD (144Hz)
        storage: 512GB SSD
`

const lenovoFixture = `brand: Lenovo
models:
  - model: Lenovo IdeaPad Gaming 3
    colors:
      - Shadow Black
    configurations:
      - processor: AMD Ryzen 5 5600H (12 CPUs), ~3.3GHz
        memory: 8GB
        graphics: NVIDIA GeForce GTX 1650 4GB
        display: 15.6-inch FHD (120Hz)
        storage: 256GB SSD
`

func writeCatalogDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "asus.yaml"), []byte(asusFixture), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lenovo.yaml"), []byte(lenovoFixture), 0o644))
	return dir
}

func TestCatalogRepositoryLoad(t *testing.T) {
	repo := NewCatalogRepository(writeCatalogDir(t))

	entries := repo.ListEntries()
	require.Len(t, entries, 2)

	// Sorted filename order: asus.yaml before lenovo.yaml
	assert.Equal(t, "ASUS TUF Gaming F15", entries[0].Model)
	assert.Equal(t, "ASUS", entries[0].Brand)
	assert.Len(t, entries[0].Configurations, 2)
	assert.Equal(t, []string{"Graphite Black", "Eclipse Gray"}, entries[0].Colors)

	assert.Equal(t, "Lenovo IdeaPad Gaming 3", entries[1].Model)
	assert.Equal(t, "Lenovo", entries[1].Brand)
}

func TestCatalogRepositoryEntry(t *testing.T) {
	repo := NewCatalogRepository(writeCatalogDir(t))

	entry, found := repo.Entry("ASUS TUF Gaming F15")
	require.True(t, found)
	assert.Equal(t, "Intel Core i7-12700H (16 CPUs), ~2.3GHz", entry.Configurations[0].Processor)

	// Lookup is case-insensitive
	_, found = repo.Entry("asus tuf gaming f15")
	assert.True(t, found)

	_, found = repo.Entry("Unknown Model")
	assert.False(t, found)
}

func TestCatalogRepositoryMissingDir(t *testing.T) {
	repo := NewCatalogRepository(filepath.Join(t.TempDir(), "does-not-exist"))

	// Degraded state, not a failure: empty catalog, usable repository
	assert.Empty(t, repo.ListEntries())
	_, found := repo.Entry("anything")
	assert.False(t, found)
}

func TestCatalogRepositoryMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "asus.yaml"), []byte(asusFixture), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("{{not yaml"), 0o644))

	repo := NewCatalogRepository(dir)

	// The malformed file is skipped, the good one still loads
	assert.Len(t, repo.ListEntries(), 1)
}

func TestCatalogRepositoryDuplicateModelKeepsFirst(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(asusFixture), 0o644))
	duplicate := `brand: Refurb
models:
  - model: ASUS TUF Gaming F15
    colors: [Red]
    configurations: []
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(duplicate), 0o644))

	repo := NewCatalogRepository(dir)

	require.Len(t, repo.ListEntries(), 1)
	entry, found := repo.Entry("ASUS TUF Gaming F15")
	require.True(t, found)
	assert.Equal(t, "ASUS", entry.Brand)
}

func TestCatalogRepositoryRejectsDelimiterValues(t *testing.T) {
	dir := t.TempDir()
	fixture := `brand: HP
models:
  - model: HP Victus [16]
    colors: [Mica Silver]
    configurations:
      - processor: Intel Core i5-12500H (16 CPUs), ~2.5GHz
        memory: 16GB
        graphics: NVIDIA GeForce RTX 3050 4GB
        display: 16.1-inch FHD (144Hz)
        storage: 512GB SSD
  - model: HP Pavilion 15
    colors:
      - Natural Silver
      - Fog Blue/Gray
    configurations:
      - processor: Intel Core i5-1135G7 (8 CPUs), ~2.4GHz
        memory: 8GB
        graphics: Intel Iris Xe Graphics
        display: 15.6-inch FHD
        storage: 512GB SSD
      - processor: Intel Core i7-1255U (12 CPUs), ~1.7GHz
        memory: 16GB
        graphics: Intel Iris Xe Graphics
        display: 15.6-inch FHD w/ 60Hz
        storage: 1TB SSD
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hp.yaml"), []byte(fixture), 0o644))

	repo := NewCatalogRepository(dir)

	// A model name carrying a grammar delimiter would generate templates
	// that cannot parse back, so the whole record is rejected
	require.Len(t, repo.ListEntries(), 1)

	entry, found := repo.Entry("HP Pavilion 15")
	require.True(t, found)

	// The configuration with "w/" in its display and the color with "/"
	// are dropped; the clean ones survive
	require.Len(t, entry.Configurations, 1)
	assert.Equal(t, "Intel Core i5-1135G7 (8 CPUs), ~2.4GHz", entry.Configurations[0].Processor)
	assert.Equal(t, []string{"Natural Silver"}, entry.Colors)
}

func TestListEntriesReturnsCopy(t *testing.T) {
	repo := NewCatalogRepository(writeCatalogDir(t))

	entries := repo.ListEntries()
	require.NotEmpty(t, entries)
	entries[0].Model = "mutated"

	assert.Equal(t, "ASUS TUF Gaming F15", repo.ListEntries()[0].Model)
}

func TestCatalogEntryHasColor(t *testing.T) {
	repo := NewCatalogRepository(writeCatalogDir(t))

	entry, found := repo.Entry("ASUS TUF Gaming F15")
	require.True(t, found)

	assert.True(t, entry.HasColor("Graphite Black"))
	assert.True(t, entry.HasColor("graphite black"))
	assert.False(t, entry.HasColor("Neon Pink"))
}
