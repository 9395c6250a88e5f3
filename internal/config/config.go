package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/release-publisher/internal/model"
	"github.com/shinji-kodama/release-publisher/internal/version"
)

// FileNames lists the configuration file names searched in a release root,
// in priority order.
var FileNames = []string{
	".release-publisher.jsonc",
	".release-publisher.json",
	".release-publisher.yaml",
	".release-publisher.yml",
}

// Transport kinds.
const (
	TransportHTTP   = "http"
	TransportGitHub = "github"
)

// DefaultHTTPEndpoint is the http transport's upload URL when none is
// configured.
const DefaultHTTPEndpoint = "https://{project}.googlecode.com/files"

// Placeholders understood by artifact name templates.
const (
	PlaceholderProduct    = "{product}"
	PlaceholderVersion    = "{version}"
	PlaceholderPreRelease = "{pre}"
	PlaceholderProject    = "{project}"
)

// Config is the release configuration.
type Config struct {
	// ProductName is the human-readable product name used in titles and
	// artifact file names.
	ProductName string `json:"productName" yaml:"productName"`

	// ProjectID identifies the project on the upload endpoint. For the
	// GitHub transport it is "owner/repo".
	ProjectID string `json:"projectId" yaml:"projectId"`

	// SourceFile is the version source file, relative to the release root.
	SourceFile string `json:"sourceFile" yaml:"sourceFile"`

	// StoreDir is the directory holding built artifacts, relative to the
	// release root.
	StoreDir string `json:"storeDir" yaml:"storeDir"`

	// VersionMarker and PreReleaseMarker identify the assignment lines in
	// SourceFile.
	VersionMarker    string `json:"versionMarker" yaml:"versionMarker"`
	PreReleaseMarker string `json:"preReleaseMarker" yaml:"preReleaseMarker"`

	// Installer and Archive describe the two artifact kinds.
	Installer ArtifactConfig `json:"installer" yaml:"installer"`
	Archive   ArtifactConfig `json:"archive" yaml:"archive"`

	// Transport selects and configures the upload transport.
	Transport TransportConfig `json:"transport" yaml:"transport"`

	// RevisionPageHint is printed after a successful publish as a reminder
	// of the manual follow-up. Empty disables the reminder.
	RevisionPageHint string `json:"revisionPageHint" yaml:"revisionPageHint"`
}

// ArtifactConfig describes how one artifact kind is named and labelled.
type ArtifactConfig struct {
	// NameTemplate is the file name inside StoreDir. Supports {product},
	// {version} and {pre}; {pre} expands to the pre-release label with a
	// leading space, or to nothing.
	NameTemplate string `json:"nameTemplate" yaml:"nameTemplate"`

	// DisplayName is used in progress narration ("Windows installation").
	DisplayName string `json:"displayName" yaml:"displayName"`

	// Qualifier is appended to the upload title ("for Windows").
	Qualifier string `json:"qualifier" yaml:"qualifier"`

	// Description is the long-form upload description.
	Description string `json:"description" yaml:"description"`

	// Tags are the classification tags for this kind.
	Tags []string `json:"tags" yaml:"tags"`
}

// TransportConfig configures the upload transport.
type TransportConfig struct {
	// Kind is "http" (multipart upload) or "github" (release assets).
	Kind string `json:"kind" yaml:"kind"`

	// Endpoint is the upload URL for the http transport. It may contain
	// {project}; empty means DefaultHTTPEndpoint. For the github transport
	// it optionally overrides the API base URL (GitHub Enterprise).
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Timeout bounds one upload, as a Go duration string ("10m").
	Timeout string `json:"timeout" yaml:"timeout"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		ProductName:      "The maRla Project",
		ProjectID:        "marla",
		SourceFile:       filepath.Join("src", "marla", "ide", "gui", "Domain.java"),
		StoreDir:         "store",
		VersionMarker:    version.DefaultVersionMarker,
		PreReleaseMarker: version.DefaultPreReleaseMarker,
		Installer: ArtifactConfig{
			NameTemplate: "{product} Setup {version}{pre}.exe",
			DisplayName:  "Windows installation",
			Qualifier:    "for Windows",
			Description: "The Windows installer for The maRla Project, a statistics IDE for students. " +
				"The installer downloads and configures R, LaTeX and the Java Runtime Environment if they are missing.",
			Tags: []string{"Featured", "OpSys-Windows", "Type-Installer"},
		},
		Archive: ArtifactConfig{
			NameTemplate: "{product} {version}{pre}.zip",
			DisplayName:  "cross-platform archive",
			Qualifier:    "for any operating system",
			Description: "The cross-platform version of The maRla Project, a statistics IDE for students. " +
				"Requires R, LaTeX and Java; runs on any operating system that supports Java.",
			Tags: []string{"Featured", "OpSys-All", "Type-Archive"},
		},
		Transport: TransportConfig{
			Kind:    TransportHTTP,
			Timeout: "30m",
		},
		RevisionPageHint: "You will still need to update the revision page so users are informed of this update.",
	}
}

// Artifact returns the configuration for the given kind.
func (c *Config) Artifact(kind model.ArtifactKind) ArtifactConfig {
	if kind == model.KindInstaller {
		return c.Installer
	}
	return c.Archive
}

// SourcePath returns the absolute path to the version source file.
func (c *Config) SourcePath(root string) string {
	return resolve(root, c.SourceFile)
}

// StorePath returns the absolute path to the artifact store directory.
func (c *Config) StorePath(root string) string {
	return resolve(root, c.StoreDir)
}

// UploadTimeout parses Transport.Timeout. Zero means no timeout.
func (c *Config) UploadTimeout() (time.Duration, error) {
	if strings.TrimSpace(c.Transport.Timeout) == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Transport.Timeout)
}

// UploadEndpoint returns the configured endpoint, falling back to
// DefaultHTTPEndpoint for the http transport.
func (c *Config) UploadEndpoint() string {
	if c.Transport.Endpoint == "" && (c.Transport.Kind == TransportHTTP || c.Transport.Kind == "") {
		return DefaultHTTPEndpoint
	}
	return c.Transport.Endpoint
}

// EndpointURL expands {project} in the upload endpoint.
func (c *Config) EndpointURL() string {
	return strings.ReplaceAll(c.UploadEndpoint(), PlaceholderProject, c.ProjectID)
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// Discover returns the path of the first configuration file found in
// root, or "" when the root has none.
func Discover(root string) string {
	for _, name := range FileNames {
		p := filepath.Join(root, name)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p
		}
	}
	return ""
}

// LoadForRoot loads the configuration for a release root. An explicit
// path wins over discovery; with neither, the defaults are returned.
func LoadForRoot(root, explicit string) (*Config, string, error) {
	path := explicit
	if path == "" {
		path = Discover(root)
	}
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Load reads a configuration file on top of the defaults. The format is
// chosen by extension: .yaml/.yml are YAML, anything else is JSONC.
//
// Returns a CLIError with ExitConfigInvalid if the file cannot be read or
// parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigInvalid,
			fmt.Sprintf("cannot read release configuration %s", path), err)
	}

	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		// Strip // and /* */ comments and trailing commas before decoding.
		err = json.Unmarshal(jsonc.ToJSON(data), cfg)
	}
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigInvalid,
			fmt.Sprintf("cannot parse release configuration %s", path), err)
	}
	return cfg, nil
}
