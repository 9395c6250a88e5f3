package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/release-publisher/internal/model"
)

// writeFile is a small helper that writes content into dir/name.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

// --- Default / LoadForRoot tests ---

// TestDefault_IsValid verifies the stock configuration passes validation.
func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.Validate())
	assert.Equal(t, "The maRla Project", cfg.ProductName)
	assert.Equal(t, []string{"Featured", "OpSys-Windows", "Type-Installer"}, cfg.Installer.Tags)
	assert.Equal(t, []string{"Featured", "OpSys-All", "Type-Archive"}, cfg.Archive.Tags)
}

// TestLoadForRoot_NoFile returns the defaults and no path.
func TestLoadForRoot_NoFile(t *testing.T) {
	cfg, path, err := LoadForRoot(t.TempDir(), "")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)
}

// TestLoad_JSONC verifies comments and trailing commas are accepted and
// that absent fields keep their defaults.
func TestLoad_JSONC(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".release-publisher.jsonc", `{
  // product shown in titles
  "productName": "Get Organized",
  "projectId": "get-organized",
  "archive": {
    "nameTemplate": "{product} {version}{pre} Portable.zip",
    "tags": ["Featured", "OpSys-All", "Type-Archive",],
  },
}`)

	cfg, path, err := LoadForRoot(dir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".release-publisher.jsonc"), path)

	assert.Equal(t, "Get Organized", cfg.ProductName)
	assert.Equal(t, "get-organized", cfg.ProjectID)
	assert.Equal(t, "{product} {version}{pre} Portable.zip", cfg.Archive.NameTemplate)

	// Untouched fields keep defaults.
	assert.Equal(t, Default().Installer, cfg.Installer)
	assert.Equal(t, "store", cfg.StoreDir)
	assert.Empty(t, cfg.Validate())
}

// TestLoad_YAML verifies YAML configuration files.
func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".release-publisher.yaml", `
productName: Get Organized
projectId: acme/get-organized
transport:
  kind: github
  timeout: 5m
installer:
  qualifier: for Windows (64-bit)
`)

	cfg, _, err := LoadForRoot(dir, "")
	require.NoError(t, err)

	assert.Equal(t, TransportGitHub, cfg.Transport.Kind)
	assert.Equal(t, "for Windows (64-bit)", cfg.Installer.Qualifier)
	assert.Equal(t, Default().Installer.NameTemplate, cfg.Installer.NameTemplate)

	timeout, err := cfg.UploadTimeout()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, timeout)
	assert.Empty(t, cfg.Validate())
}

// TestLoad_DiscoveryPriority verifies .jsonc wins over .yaml.
func TestLoad_DiscoveryPriority(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".release-publisher.yaml", "productName: from-yaml\n")
	writeFile(t, dir, ".release-publisher.jsonc", `{"productName": "from-jsonc"}`)

	cfg, _, err := LoadForRoot(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "from-jsonc", cfg.ProductName)
}

// TestLoad_Explicit verifies an explicit path bypasses discovery.
func TestLoad_Explicit(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".release-publisher.jsonc", `{"productName": "discovered"}`)
	explicit := writeFile(t, t.TempDir(), "custom.yml", "productName: explicit\n")

	cfg, path, err := LoadForRoot(dir, explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, path)
	assert.Equal(t, "explicit", cfg.ProductName)
}

// TestLoad_EmptyFile returns the defaults.
func TestLoad_EmptyFile(t *testing.T) {
	p := writeFile(t, t.TempDir(), ".release-publisher.json", "  \n")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

// TestLoad_Errors verifies read and parse failures become ExitConfigInvalid.
func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.jsonc"))
	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitConfigInvalid, cliErr.Code)

	bad := writeFile(t, dir, "bad.json", `{"productName": `)
	_, err = Load(bad)
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitConfigInvalid, cliErr.Code)
}

// --- path helpers ---

// TestPaths verifies relative paths resolve against the root and absolute
// paths are kept.
func TestPaths(t *testing.T) {
	cfg := Default()
	root := filepath.FromSlash("/releases/marla")

	assert.Equal(t, filepath.Join(root, "store"), cfg.StorePath(root))
	assert.Equal(t, filepath.Join(root, "src", "marla", "ide", "gui", "Domain.java"), cfg.SourcePath(root))

	abs := filepath.FromSlash("/mnt/builds")
	cfg.StoreDir = abs
	assert.Equal(t, abs, cfg.StorePath(root))
}

// TestEndpointURL expands the project placeholder.
func TestEndpointURL(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "https://marla.googlecode.com/files", cfg.EndpointURL())

	cfg.Transport.Endpoint = "https://uploads.example.com/{project}"
	assert.Equal(t, "https://uploads.example.com/marla", cfg.EndpointURL())

	cfg.Transport = TransportConfig{Kind: TransportGitHub}
	assert.Empty(t, cfg.UploadEndpoint())
}

// TestArtifact returns the per-kind configuration.
func TestArtifact(t *testing.T) {
	cfg := Default()
	assert.Equal(t, cfg.Installer, cfg.Artifact(model.KindInstaller))
	assert.Equal(t, cfg.Archive, cfg.Artifact(model.KindArchive))
}

// --- Validate tests ---

// TestValidate reports each broken field.
func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"empty product", func(c *Config) { c.ProductName = " " }, "productName"},
		{"empty marker", func(c *Config) { c.VersionMarker = "" }, "versionMarker"},
		{"template without version", func(c *Config) { c.Installer.NameTemplate = "setup.exe" }, "installer.nameTemplate"},
		{"template with path", func(c *Config) { c.Archive.NameTemplate = "sub/{version}.zip" }, "archive.nameTemplate"},
		{"same template twice", func(c *Config) { c.Archive.NameTemplate = c.Installer.NameTemplate }, "archive.nameTemplate"},
		{"no tags", func(c *Config) { c.Archive.Tags = []string{" "} }, "archive.tags"},
		{"unknown transport", func(c *Config) { c.Transport.Kind = "ftp" }, "transport.kind"},
		{"http endpoint not a URL", func(c *Config) { c.Transport.Endpoint = "uploads/{project}" }, "transport.endpoint"},
		{"github without owner", func(c *Config) { c.Transport.Kind = TransportGitHub }, "projectId"},
		{"bad timeout", func(c *Config) { c.Transport.Timeout = "soon" }, "transport.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			errs := cfg.Validate()
			require.NotEmpty(t, errs)

			fields := make([]string, 0, len(errs))
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

// TestValidationError_Error formats the field and message.
func TestValidationError_Error(t *testing.T) {
	e := &ValidationError{Field: "projectId", Message: "must not be empty"}
	assert.Equal(t, "release configuration error: projectId: must not be empty", e.Error())
}
