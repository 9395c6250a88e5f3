package version

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/shinji-kodama/release-publisher/internal/model"
)

const (
	// DefaultVersionMarker identifies the version assignment line.
	DefaultVersionMarker = "VERSION ="

	// DefaultPreReleaseMarker identifies the pre-release assignment line.
	DefaultPreReleaseMarker = "PRE_RELEASE ="
)

// maxLineSize bounds a single source line. Generated sources occasionally
// carry very long lines; bufio's 64 KiB default is too small for them.
const maxLineSize = 1 << 20

// Extractor reads version declarations from a source file.
// It is read-only and holds no state beyond its markers, so one value can
// be reused for any number of files.
type Extractor struct {
	// VersionMarker is the substring that identifies the version line.
	VersionMarker string

	// PreReleaseMarker is the substring that identifies the pre-release line.
	PreReleaseMarker string
}

// NewExtractor creates an Extractor with the given markers. Empty markers
// fall back to the defaults.
func NewExtractor(versionMarker, preReleaseMarker string) *Extractor {
	if versionMarker == "" {
		versionMarker = DefaultVersionMarker
	}
	if preReleaseMarker == "" {
		preReleaseMarker = DefaultPreReleaseMarker
	}
	return &Extractor{VersionMarker: versionMarker, PreReleaseMarker: preReleaseMarker}
}

// ExtractVersionNumber returns the value of the last version assignment in
// the file at path, with quotes and the trailing semicolon removed.
// It returns "" with a nil error when the file declares no version.
func (e *Extractor) ExtractVersionNumber(path string) (string, error) {
	return scanFile(path, e.VersionMarker)
}

// ExtractPreRelease returns the last pre-release label declared in the
// file at path. A non-empty label is returned with one leading space so it
// can be appended to the version number; an empty label returns "".
func (e *Extractor) ExtractPreRelease(path string) (string, error) {
	label, err := scanFile(path, e.PreReleaseMarker)
	if err != nil {
		return "", err
	}
	if label == "" {
		return "", nil
	}
	return " " + label, nil
}

// Extract reads both declarations and parses the numeric components.
//
// Returns model.ErrVersionAbsent when the file declares no version and
// model.ErrVersionMalformed when the declared text is not a version.
func (e *Extractor) Extract(path string) (model.VersionInfo, error) {
	number, err := e.ExtractVersionNumber(path)
	if err != nil {
		return model.VersionInfo{}, err
	}
	if number == "" {
		return model.VersionInfo{}, fmt.Errorf("%s: %w", path, model.ErrVersionAbsent)
	}

	pre, err := e.ExtractPreRelease(path)
	if err != nil {
		return model.VersionInfo{}, err
	}

	return ParseVersionInfo(number, strings.TrimPrefix(pre, " "))
}

// ParseVersionInfo builds a VersionInfo from the declared number and the
// bare pre-release label. semver.NewVersion is used in its lenient mode so
// that short declarations such as "2.1" still parse; Number keeps the
// declared text either way.
func ParseVersionInfo(number, preRelease string) (model.VersionInfo, error) {
	v, err := semver.NewVersion(number)
	if err != nil {
		return model.VersionInfo{}, fmt.Errorf("%q: %w: %v", number, model.ErrVersionMalformed, err)
	}

	return model.VersionInfo{
		Major:      int(v.Major()),
		Minor:      int(v.Minor()),
		Patch:      int(v.Patch()),
		PreRelease: preRelease,
		Number:     number,
	}, nil
}

// scanFile opens path and folds its lines with scanLast.
func scanFile(path, marker string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &model.FileAccessError{Path: path, Op: "open", Err: err}
	}
	defer func() { _ = f.Close() }()

	value, err := scanLast(f, marker)
	if err != nil {
		return "", &model.FileAccessError{Path: path, Op: "read", Err: err}
	}
	return value, nil
}

// scanLast is a fold over the lines of r: the accumulator starts empty and
// is replaced by the value of every line that contains marker. Scanning
// never stops early, so the last matching line wins.
func scanLast(r io.Reader, marker string) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	latest := ""
	for scanner.Scan() {
		if value, ok := assignmentValue(scanner.Text(), marker); ok {
			latest = value
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return latest, nil
}

// assignmentValue extracts the right-hand side of an assignment line.
//
// The value is the text after the first "=". When it starts with a quote,
// the value is what lies between that quote and the next one, which also
// drops a trailing semicolon or comment. Otherwise the semicolon and any
// surrounding whitespace are trimmed.
func assignmentValue(line, marker string) (string, bool) {
	if !strings.Contains(line, marker) {
		return "", false
	}

	_, rhs, found := strings.Cut(line, "=")
	if !found {
		return "", true
	}
	rhs = strings.TrimSpace(rhs)

	if strings.HasPrefix(rhs, `"`) {
		if end := strings.Index(rhs[1:], `"`); end >= 0 {
			return rhs[1 : end+1], true
		}
		// Unterminated literal: take everything after the opening quote.
		return strings.TrimSpace(strings.TrimSuffix(rhs[1:], ";")), true
	}

	return strings.TrimSpace(strings.TrimSuffix(rhs, ";")), true
}
