package core_test

import (
	"path/filepath"
	"testing"

	"mrmm/internal/core"
	"mrmm/internal/domain"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractedNames(ex *core.Extraction) []string {
	names := make([]string, len(ex.Files))
	for i, f := range ex.Files {
		names[i] = f.Name
	}
	return names
}

func TestExtractor_PakPassThrough(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := writeFile(t, fs, "/downloads/pakchunk99-Hero_P.pak", "bytes")

	ex, err := core.NewExtractor(fs, "/tmp").Extract(src)
	require.NoError(t, err)

	assert.Equal(t, []string{"pakchunk99-Hero_P.pak"}, extractedNames(ex))
	assert.Equal(t, src, ex.Files[0].Path)
	assert.Empty(t, ex.TempDir)
}

func TestExtractor_Zip_FindsNestedMods(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := writeZip(t, fs, "/downloads/pack.zip", []zipEntry{
		{"readme.txt", "read me"},
		{"a.pak", "A"},
		{"deep/nested/dir/b.pak", "B"},
		{"deep/c.PAK", "not a mod"},
	})

	ex, err := core.NewExtractor(fs, "/tmp").Extract(src)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a.pak", "b.pak"}, extractedNames(ex))
	require.NotEmpty(t, ex.TempDir)
	for _, f := range ex.Files {
		assert.Contains(t, f.Path, ex.TempDir)
	}

	rc, err := ex.Files[0].Open()
	require.NoError(t, err)
	rc.Close()
}

func TestExtractor_Zip_FirstDuplicateWins(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := writeZip(t, fs, "/downloads/dups.zip", []zipEntry{
		{"a/x.pak", "first"},
		{"b/x.pak", "second"},
	})

	ex, err := core.NewExtractor(fs, "/tmp").Extract(src)
	require.NoError(t, err)

	require.Len(t, ex.Files, 1)
	assert.Equal(t, "first", readFile(t, fs, ex.Files[0].Path))
}

func TestExtractor_Zip_NoMods(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := writeZip(t, fs, "/downloads/empty.zip", []zipEntry{{"readme.txt", "nothing here"}})

	ex, err := core.NewExtractor(fs, "/tmp").Extract(src)
	require.NoError(t, err)

	assert.Empty(t, ex.Files)
	assert.Empty(t, ex.TempDir)
}

func TestExtractor_UnsupportedFormat(t *testing.T) {
	fs := afero.NewMemMapFs()

	tests := []string{"/downloads/mod.txt", "/downloads/mod.tar.gz", "/downloads/MOD.PAK", "/downloads/noext"}
	for _, path := range tests {
		t.Run(filepath.Base(path), func(t *testing.T) {
			writeFile(t, fs, path, "x")
			_, err := core.NewExtractor(fs, "/tmp").Extract(path)
			assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
		})
	}
}

func TestExtractor_CorruptArchive(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := writeFile(t, fs, "/downloads/broken.zip", "this is not a zip")

	_, err := core.NewExtractor(fs, "/tmp").Extract(src)
	require.ErrorIs(t, err, domain.ErrExtractionFailed)

	// Temp dir removed on failure
	entries, err := afero.ReadDir(fs, "/tmp")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExtractor_ZipSlipRejected(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := writeZip(t, fs, "/downloads/evil.zip", []zipEntry{
		{"ok.pak", "fine"},
		{"../../escape.pak", "evil"},
	})

	_, err := core.NewExtractor(fs, "/tmp").Extract(src)
	require.ErrorIs(t, err, domain.ErrExtractionFailed)

	exists, err := afero.Exists(fs, "/escape.pak")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestExtractor_MissingSource(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := core.NewExtractor(fs, "/tmp").Extract("/downloads/gone.zip")
	assert.ErrorIs(t, err, domain.ErrIOFailure)
}

func TestExtractor_CanExtract(t *testing.T) {
	e := core.NewExtractor(afero.NewMemMapFs(), "")

	assert.True(t, e.CanExtract("mod.zip"))
	assert.True(t, e.CanExtract("mod.ZIP"))
	assert.True(t, e.CanExtract("mod.7z"))
	assert.True(t, e.CanExtract("mod.rar"))
	assert.True(t, e.CanExtract("mod.pak"))
	assert.False(t, e.CanExtract("mod.Pak"))
	assert.False(t, e.CanExtract("mod.txt"))
}
