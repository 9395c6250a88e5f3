package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shinji-kodama/release-publisher/internal/config"
	"github.com/shinji-kodama/release-publisher/internal/model"
	"github.com/shinji-kodama/release-publisher/internal/version"
)

// release is a loaded release root: where it is, how it is configured and
// which version it declares.
type release struct {
	root       string
	cfg        *config.Config
	configPath string
	extractor  *version.Extractor
}

// resolveReleaseRoot returns the release root for a path argument. A
// directory is used as is; for a file (such as a script kept in the
// release root) its directory is used. ok is false when the path does
// not exist.
func resolveReleaseRoot(path string) (root string, ok bool, err error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if errors.Is(err, os.ErrNotExist) {
		return abs, false, nil
	}
	if err != nil {
		return "", false, &model.FileAccessError{Path: abs, Op: "stat", Err: err}
	}
	if !info.IsDir() {
		return filepath.Dir(abs), true, nil
	}
	return abs, true, nil
}

// loadRelease resolves and configures the release root for path. It
// returns nil with no error when the root does not exist, after printing
// a diagnostic to out. Configuration problems are CLIErrors with
// ExitConfigInvalid.
func loadRelease(out io.Writer, path, explicitConfig string) (*release, error) {
	root, ok, err := resolveReleaseRoot(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		fmt.Fprintf(out, "The directory %s does not exist. Specify the release root of the product.\n", root)
		return nil, nil
	}
	VerboseLog("Release root: %s", root)

	cfg, cfgPath, err := config.LoadForRoot(root, explicitConfig)
	if err != nil {
		return nil, err
	}
	if cfgPath != "" {
		VerboseLog("Loaded configuration from %s", cfgPath)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i := range errs {
			msgs[i] = errs[i].Error()
		}
		return nil, model.NewCLIError(model.ExitConfigInvalid,
			"invalid release configuration:\n  "+strings.Join(msgs, "\n  "))
	}

	return &release{
		root:       root,
		cfg:        cfg,
		configPath: cfgPath,
		extractor:  version.NewExtractor(cfg.VersionMarker, cfg.PreReleaseMarker),
	}, nil
}

// sourcePath returns the version source file.
func (r *release) sourcePath() string {
	return r.cfg.SourcePath(r.root)
}

// storePath returns the artifact store directory.
func (r *release) storePath() string {
	return r.cfg.StorePath(r.root)
}

// hasStore reports whether the store directory exists.
func (r *release) hasStore() bool {
	info, err := os.Stat(r.storePath())
	return err == nil && info.IsDir()
}

// readVersion extracts the declared version and prints a diagnostic for
// the conditions an operator can fix by pointing at the right directory:
// a missing source file or a source without a version declaration. In
// those cases it returns ok=false with no error.
func (r *release) readVersion(out io.Writer) (info model.VersionInfo, ok bool, err error) {
	info, err = r.extractor.Extract(r.sourcePath())
	var fileErr *model.FileAccessError
	switch {
	case err == nil:
		VerboseLog("Declared version: %s", info.Display())
		return info, true, nil
	case errors.As(err, &fileErr):
		fmt.Fprintf(out, "The version source %s could not be read. Is %s the release root?\n", fileErr.Path, r.root)
		return info, false, nil
	case errors.Is(err, model.ErrVersionAbsent):
		fmt.Fprintf(out, "No version declaration (%s) was found in %s.\n", r.extractor.VersionMarker, r.sourcePath())
		return info, false, nil
	default:
		return info, false, model.WrapCLIError(model.ExitGeneralError, "cannot read the declared version", err)
	}
}
