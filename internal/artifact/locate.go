package artifact

import (
	"path/filepath"
	"strings"

	"github.com/shinji-kodama/release-publisher/internal/config"
	"github.com/shinji-kodama/release-publisher/internal/model"
)

// Paths holds the derived artifact paths for one version.
type Paths struct {
	Installer string `json:"installer"`
	Archive   string `json:"archive"`
}

// List returns the paths in upload order.
func (p Paths) List() []string {
	return []string{p.Installer, p.Archive}
}

// For returns the path of the given kind.
func (p Paths) For(kind model.ArtifactKind) string {
	if kind == model.KindInstaller {
		return p.Installer
	}
	return p.Archive
}

// Locate builds the installer and archive paths under storeDir from the
// configured name templates. No I/O is performed.
func Locate(storeDir string, cfg *config.Config, info model.VersionInfo) Paths {
	return Paths{
		Installer: filepath.Join(storeDir, FileName(cfg.Installer.NameTemplate, cfg.ProductName, info)),
		Archive:   filepath.Join(storeDir, FileName(cfg.Archive.NameTemplate, cfg.ProductName, info)),
	}
}

// FileName expands a name template, e.g.
//
//	"{product} Setup {version}{pre}.exe" → "The maRla Project Setup 2.1.0 beta.exe"
func FileName(template, product string, info model.VersionInfo) string {
	r := strings.NewReplacer(
		config.PlaceholderProduct, product,
		config.PlaceholderVersion, info.Number,
		config.PlaceholderPreRelease, info.Suffix(),
	)
	return r.Replace(template)
}

// Title builds the upload title: "<product> <version><pre> <qualifier>".
func Title(product string, info model.VersionInfo, qualifier string) string {
	title := product + " " + info.Display()
	if qualifier != "" {
		title += " " + qualifier
	}
	return title
}

// Describe builds the descriptor for one kind. SizeBytes is left at zero;
// it is read at upload time.
func Describe(cfg *config.Config, kind model.ArtifactKind, path string, info model.VersionInfo) model.ArtifactDescriptor {
	ac := cfg.Artifact(kind)
	return model.ArtifactDescriptor{
		Kind:        kind,
		Path:        path,
		Label:       Title(cfg.ProductName, info, ac.Qualifier),
		DisplayName: ac.DisplayName,
		Description: ac.Description,
		Tags:        model.NormalizeTags(ac.Tags),
	}
}
