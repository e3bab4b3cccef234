package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMappingsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	processor := `{
  "Intel Core i7-12700H (16 CPUs), ~2.3GHz": "ref/cpu/intel-i7-12700h",
  "AMD Ryzen 5 5600H (12 CPUs), ~3.3GHz": "ref/cpu/amd-r5-5600h"
}`
	display := `{
  "15.6-inch FHD (144Hz)": ["ref/panel/fhd", "ref/refresh/144hz"]
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "processor.json"), []byte(processor), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "display.json"), []byte(display), 0o644))
	return dir
}

func TestMappingRepositoryLookup(t *testing.T) {
	repo := NewMappingRepository(writeMappingsDir(t))

	// Single-string values normalize to a one-element slice
	ids, found := repo.Lookup("processor", "Intel Core i7-12700H (16 CPUs), ~2.3GHz")
	require.True(t, found)
	assert.Equal(t, []string{"ref/cpu/intel-i7-12700h"}, ids)

	// Array values keep their order
	ids, found = repo.Lookup("display", "15.6-inch FHD (144Hz)")
	require.True(t, found)
	assert.Equal(t, []string{"ref/panel/fhd", "ref/refresh/144hz"}, ids)
}

func TestMappingRepositoryMisses(t *testing.T) {
	repo := NewMappingRepository(writeMappingsDir(t))

	_, found := repo.Lookup("processor", "Mystery CPU 9000X")
	assert.False(t, found)

	// Field with no mapping file at all
	_, found = repo.Lookup("graphics", "NVIDIA GeForce RTX 4060 8GB")
	assert.False(t, found)
}

func TestMappingRepositoryFieldsAndKeys(t *testing.T) {
	repo := NewMappingRepository(writeMappingsDir(t))

	assert.Equal(t, []string{"display", "processor"}, repo.Fields())

	keys := repo.Keys("processor")
	assert.Equal(t, []string{
		"AMD Ryzen 5 5600H (12 CPUs), ~3.3GHz",
		"Intel Core i7-12700H (16 CPUs), ~2.3GHz",
	}, keys)
	assert.Nil(t, repo.Keys("graphics"))
}

func TestMappingRepositoryReload(t *testing.T) {
	dir := writeMappingsDir(t)
	repo := NewMappingRepository(dir)

	_, found := repo.Lookup("graphics", "NVIDIA GeForce RTX 4060 8GB")
	require.False(t, found)

	// Operator adds a new mapping file, then triggers a reload
	graphics := `{"NVIDIA GeForce RTX 4060 8GB": "ref/gpu/rtx-4060"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "graphics.json"), []byte(graphics), 0o644))
	require.NoError(t, repo.Reload())

	ids, found := repo.Lookup("graphics", "NVIDIA GeForce RTX 4060 8GB")
	require.True(t, found)
	assert.Equal(t, []string{"ref/gpu/rtx-4060"}, ids)
}

func TestMappingRepositoryCorruptFile(t *testing.T) {
	dir := writeMappingsDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "storage.json"), []byte("not json"), 0o644))

	repo := NewMappingRepository(dir)

	// The corrupt field starts empty, other fields still load
	_, found := repo.Lookup("storage", "512GB SSD")
	assert.False(t, found)
	_, found = repo.Lookup("processor", "Intel Core i7-12700H (16 CPUs), ~2.3GHz")
	assert.True(t, found)
}

func TestMappingRepositoryMissingDir(t *testing.T) {
	repo := NewMappingRepository(filepath.Join(t.TempDir(), "missing"))

	_, found := repo.Lookup("processor", "anything")
	assert.False(t, found)
	assert.Empty(t, repo.Fields())
}
