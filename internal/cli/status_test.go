package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/release-publisher/internal/artifact"
	"github.com/shinji-kodama/release-publisher/internal/model"
)

// TestBuildReleaseStatus verifies presence and readiness per artifact.
func TestBuildReleaseStatus(t *testing.T) {
	root := newReleaseRoot(t, installerName)
	var out bytes.Buffer

	rel, err := loadRelease(&out, root, "")
	require.NoError(t, err)
	require.NotNil(t, rel)
	info, ok, err := rel.readVersion(&out)
	require.NoError(t, err)
	require.True(t, ok)

	status := buildReleaseStatus(rel, info, artifact.NewChecker())

	assert.False(t, status.Ready)
	assert.Equal(t, "v2.1.0-beta", status.Tag)
	assert.Equal(t, "https://marla.googlecode.com/files", status.Endpoint)
	require.Len(t, status.Artifacts, 2)

	assert.Equal(t, model.KindInstaller, status.Artifacts[0].Kind)
	assert.True(t, status.Artifacts[0].Present)
	assert.Equal(t, int64(len("artifact "+installerName)), status.Artifacts[0].SizeBytes)

	assert.Equal(t, model.KindArchive, status.Artifacts[1].Kind)
	assert.False(t, status.Artifacts[1].Present)
}

// TestRunStatus_Text verifies the human-readable report.
func TestRunStatus_Text(t *testing.T) {
	root := newReleaseRoot(t, installerName, archiveName)
	var out bytes.Buffer

	require.NoError(t, runStatus(&out, root, &statusFlags{}))

	text := out.String()
	assert.Contains(t, text, "Version:      2.1.0 beta (tag v2.1.0-beta)")
	assert.Contains(t, text, installerName)
	assert.Contains(t, text, archiveName)
	assert.Contains(t, text, "Ready to publish.")
}

// TestFormatSize covers size rendering.
func TestFormatSize(t *testing.T) {
	assert.Equal(t, "0 B", formatSize(0))
	assert.Equal(t, "1.5 kB", formatSize(1500))
	assert.Equal(t, "unknown size", formatSize(-1))
}

// TestFailureMessage covers outcomes with and without a recorded failure.
func TestFailureMessage(t *testing.T) {
	o := model.ArtifactOutcome{
		Artifact:   model.ArtifactDescriptor{Kind: model.KindInstaller},
		StatusCode: 403,
		Failure:    &model.TransportFailure{Kind: model.KindInstaller, StatusCode: 403},
	}
	assert.Equal(t, "installer upload was not accepted, error code 403", failureMessage(o))

	o.Failure = nil
	assert.Equal(t, "installer upload was not accepted, error code 403", failureMessage(o))
}
