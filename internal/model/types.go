package model

import (
	"sort"
	"strings"
)

// StatusCreated is the status code an upload transport returns when the
// remote endpoint accepted the artifact.
const StatusCreated = 201

// VersionInfo is the version declared by the release source file.
//
// Number keeps the literal declared text ("X.Y.Z") so that display strings
// and artifact file names match exactly what the source declares, even when
// the numeric components would render differently (e.g. "1.0" vs "1.0.0").
type VersionInfo struct {
	// Major, Minor and Patch are the parsed numeric components.
	Major int `json:"major"`
	Minor int `json:"minor"`
	Patch int `json:"patch"`

	// PreRelease is the bare pre-release label ("beta"), empty for final releases.
	PreRelease string `json:"preRelease,omitempty"`

	// Number is the declared version text as it appears in the source file.
	Number string `json:"number"`
}

// Suffix returns the pre-release label with a single leading space, or the
// empty string when there is no label. It can be appended directly to
// Number for display and file naming.
func (v VersionInfo) Suffix() string {
	if v.PreRelease == "" {
		return ""
	}
	return " " + v.PreRelease
}

// Display returns the version as shown to operators and used in file names,
// e.g. "2.1.0 beta".
func (v VersionInfo) Display() string {
	return v.Number + v.Suffix()
}

// Tag returns the release tag for this version ("v2.1.0" or "v2.1.0-beta").
// Whitespace inside the label is replaced so the tag is a single token.
func (v VersionInfo) Tag() string {
	if v.PreRelease == "" {
		return "v" + v.Number
	}
	return "v" + v.Number + "-" + strings.Join(strings.Fields(v.PreRelease), "-")
}

// IsPreRelease reports whether the version carries a pre-release label.
func (v VersionInfo) IsPreRelease() bool {
	return v.PreRelease != ""
}

// String satisfies fmt.Stringer.
func (v VersionInfo) String() string {
	return v.Display()
}

// ArtifactKind identifies one of the fixed artifact kinds a release ships.
type ArtifactKind string

const (
	// KindInstaller is the platform-specific installer (.exe).
	KindInstaller ArtifactKind = "installer"

	// KindArchive is the cross-platform archive (.zip).
	KindArchive ArtifactKind = "archive"
)

// ArtifactKinds lists every kind in upload order. The installer always
// goes first; progress narration and the aggregate result rely on it.
var ArtifactKinds = []ArtifactKind{KindInstaller, KindArchive}

// String returns the string representation of ArtifactKind.
func (k ArtifactKind) String() string {
	return string(k)
}

// ArtifactDescriptor describes one file to be uploaded.
// It is derived deterministically from a VersionInfo and the release layout.
type ArtifactDescriptor struct {
	// Kind is the artifact kind (installer or archive).
	Kind ArtifactKind `json:"kind"`

	// Path is the absolute path to the artifact on the local filesystem.
	Path string `json:"path"`

	// Label is the upload title, e.g. "Product 2.1.0 beta for Windows".
	Label string `json:"label"`

	// DisplayName is the short name used in progress messages,
	// e.g. "Windows installation". Empty falls back to Label.
	DisplayName string `json:"displayName,omitempty"`

	// Description is the long-form text shown on the download page.
	Description string `json:"description,omitempty"`

	// Tags are the classification tags for this kind, sorted and unique.
	Tags []string `json:"tags"`

	// SizeBytes is read at upload time; zero until then.
	SizeBytes int64 `json:"sizeBytes"`
}

// NormalizeTags returns tags as a sorted set: duplicates and empty
// entries are dropped.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// ArtifactOutcome records what happened when one artifact was uploaded.
type ArtifactOutcome struct {
	// Artifact is the descriptor that was uploaded, with SizeBytes filled in.
	Artifact ArtifactDescriptor `json:"artifact"`

	// StatusCode is the code returned by the transport; zero when the
	// transport failed before the remote side answered.
	StatusCode int `json:"statusCode"`

	// Failure is set when the upload did not succeed.
	Failure error `json:"-"`
}

// Succeeded reports whether the transport accepted the artifact.
func (o ArtifactOutcome) Succeeded() bool {
	return o.Failure == nil && o.StatusCode == StatusCreated
}

// PublishResult is the aggregate result of one publish run.
type PublishResult struct {
	// Version is the version that was published.
	Version VersionInfo `json:"version"`

	// Outcomes holds one entry per artifact, in upload order.
	Outcomes []ArtifactOutcome `json:"outcomes"`

	// OverallSuccess is true only if every artifact was accepted.
	OverallSuccess bool `json:"overallSuccess"`

	// State is the last state the run reached.
	State PublishState `json:"state"`
}

// Failed returns the outcomes that did not succeed, in upload order.
func (r *PublishResult) Failed() []ArtifactOutcome {
	var failed []ArtifactOutcome
	for _, o := range r.Outcomes {
		if !o.Succeeded() {
			failed = append(failed, o)
		}
	}
	return failed
}

// PublishState is the state of one publish run.
// The state transitions are:
//
//	NotStarted → ArtifactsLocated → ArtifactsVerified → InstallerUploaded → ArchiveUploaded → Done
//
// A run whose artifacts are missing stops at ArtifactsLocated and is
// reported as "not ready". Done is reached whatever the upload outcomes.
type PublishState string

const (
	StateNotStarted        PublishState = "not-started"
	StateArtifactsLocated  PublishState = "artifacts-located"
	StateArtifactsVerified PublishState = "artifacts-verified"
	StateInstallerUploaded PublishState = "installer-uploaded"
	StateArchiveUploaded   PublishState = "archive-uploaded"
	StateDone              PublishState = "done"
)

// String returns the string representation of PublishState.
func (s PublishState) String() string {
	return string(s)
}

// UploadedState returns the state reached once the given kind has been
// attempted.
func UploadedState(kind ArtifactKind) PublishState {
	if kind == KindInstaller {
		return StateInstallerUploaded
	}
	return StateArchiveUploaded
}

// Credentials are the operator's credentials for the upload endpoint.
// They live in process memory for one publish run and are never persisted.
type Credentials struct {
	Username string
	Password string
}

// IsComplete reports whether both fields are set.
func (c Credentials) IsComplete() bool {
	return c.Username != "" && c.Password != ""
}

// String masks the password so credentials never leak into logs.
func (c Credentials) String() string {
	if c.Password == "" {
		return c.Username
	}
	return c.Username + ":********"
}
