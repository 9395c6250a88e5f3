package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/release-publisher/internal/config"
	"github.com/shinji-kodama/release-publisher/internal/model"
)

// --- Locate tests ---

// TestLocate verifies deterministic naming with and without a pre-release.
func TestLocate(t *testing.T) {
	cfg := config.Default()
	store := filepath.FromSlash("/release/store")

	tests := []struct {
		name      string
		info      model.VersionInfo
		installer string
		archive   string
	}{
		{
			name:      "final release",
			info:      model.VersionInfo{Major: 2, Minor: 1, Number: "2.1.0"},
			installer: "The maRla Project Setup 2.1.0.exe",
			archive:   "The maRla Project 2.1.0.zip",
		},
		{
			name:      "pre-release",
			info:      model.VersionInfo{Major: 2, Minor: 1, Number: "2.1.0", PreRelease: "beta"},
			installer: "The maRla Project Setup 2.1.0 beta.exe",
			archive:   "The maRla Project 2.1.0 beta.zip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := Locate(store, cfg, tt.info)
			assert.Equal(t, filepath.Join(store, tt.installer), paths.Installer)
			assert.Equal(t, filepath.Join(store, tt.archive), paths.Archive)

			// Pure: a second call yields the same result.
			assert.Equal(t, paths, Locate(store, cfg, tt.info))
		})
	}
}

// TestPaths_Order verifies installer-first ordering.
func TestPaths_Order(t *testing.T) {
	p := Paths{Installer: "a.exe", Archive: "a.zip"}
	assert.Equal(t, []string{"a.exe", "a.zip"}, p.List())
	assert.Equal(t, "a.exe", p.For(model.KindInstaller))
	assert.Equal(t, "a.zip", p.For(model.KindArchive))
}

// TestTitle covers the title format.
func TestTitle(t *testing.T) {
	info := model.VersionInfo{Number: "2.1.0", PreRelease: "beta"}
	assert.Equal(t, "The maRla Project 2.1.0 beta for Windows", Title("The maRla Project", info, "for Windows"))
	assert.Equal(t, "Tool 1.0.0", Title("Tool", model.VersionInfo{Number: "1.0.0"}, ""))
}

// TestDescribe builds a descriptor per kind.
func TestDescribe(t *testing.T) {
	cfg := config.Default()
	info := model.VersionInfo{Number: "2.1.0"}

	d := Describe(cfg, model.KindArchive, "/store/x.zip", info)
	assert.Equal(t, model.KindArchive, d.Kind)
	assert.Equal(t, "/store/x.zip", d.Path)
	assert.Equal(t, "The maRla Project 2.1.0 for any operating system", d.Label)
	assert.Equal(t, "cross-platform archive", d.DisplayName)
	assert.Equal(t, []string{"Featured", "OpSys-All", "Type-Archive"}, d.Tags)
	assert.Equal(t, cfg.Archive.Description, d.Description)
	assert.Zero(t, d.SizeBytes)
}

// --- Checker tests ---

// TestChecker_VerifyPresent covers both-present and either-absent cases.
func TestChecker_VerifyPresent(t *testing.T) {
	dir := t.TempDir()
	installer := filepath.Join(dir, "setup.exe")
	archive := filepath.Join(dir, "app.zip")
	require.NoError(t, os.WriteFile(installer, []byte("MZ"), 0644))

	c := NewChecker()

	assert.False(t, c.VerifyPresent(installer, archive), "archive missing")
	assert.Equal(t, []string{archive}, c.Missing(installer, archive))

	require.NoError(t, os.WriteFile(archive, []byte("PK"), 0644))
	assert.True(t, c.VerifyPresent(installer, archive))
	assert.Empty(t, c.Missing(installer, archive))

	require.NoError(t, os.Remove(installer))
	assert.False(t, c.VerifyPresent(installer, archive), "installer missing")
}

// TestChecker_Directory verifies a directory is not an artifact.
func TestChecker_Directory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "The maRla Project 2.1.0.zip")
	require.NoError(t, os.Mkdir(sub, 0755))

	assert.False(t, NewChecker().IsPresent(sub))
}

// TestChecker_Unreadable verifies open failures count as absent.
func TestChecker_Unreadable(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "setup.exe")
	require.NoError(t, os.WriteFile(p, []byte("MZ"), 0644))

	c := &Checker{open: func(string) (*os.File, error) { return nil, errors.New("permission denied") }}
	assert.False(t, c.IsPresent(p))
}

// TestChecker_NonRegularNotOpened verifies that paths which are not regular
// files are rejected without being opened.
func TestChecker_NonRegularNotOpened(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "store")
	require.NoError(t, os.Mkdir(sub, 0755))

	tests := []struct {
		name string
		path string
	}{
		{"directory", sub},
		{"missing file", filepath.Join(dir, "setup.exe")},
		{"dangling symlink", danglingSymlink(t, dir)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opened := false
			c := &Checker{open: func(name string) (*os.File, error) {
				opened = true
				return os.Open(name)
			}}
			assert.False(t, c.IsPresent(tt.path))
			assert.False(t, opened, "open must not be called for %s", tt.path)
		})
	}
}

func danglingSymlink(t *testing.T, dir string) string {
	t.Helper()
	link := filepath.Join(dir, "release.zip")
	// Without symlink support the path is simply missing.
	_ = os.Symlink(filepath.Join(dir, "gone.zip"), link)
	return link
}

// TestChecker_Empty verifies degenerate input.
func TestChecker_Empty(t *testing.T) {
	c := NewChecker()
	assert.False(t, c.VerifyPresent())
	assert.False(t, c.IsPresent(""))
}
