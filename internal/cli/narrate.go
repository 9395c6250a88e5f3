package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/shinji-kodama/release-publisher/internal/model"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	okColor      = color.New(color.FgGreen)
	failColor    = color.New(color.FgRed, color.Bold)
	noteColor    = color.New(color.FgYellow)
)

// narrator prints upload progress for an operator watching the terminal.
// It implements publish.Reporter.
type narrator struct {
	out io.Writer
}

func (n *narrator) UploadStarted(a model.ArtifactDescriptor) {
	name := a.DisplayName
	if name == "" {
		name = a.Label
	}
	fmt.Fprintf(n.out, "Uploading %s (%s)...\n", name, formatSize(a.SizeBytes))
}

func (n *narrator) UploadFinished(o model.ArtifactOutcome) {
	if o.Succeeded() {
		okColor.Fprintf(n.out, "  %s uploaded\n", o.Artifact.Kind)
		return
	}
	failColor.Fprintf(n.out, "  %s\n", failureMessage(o))
}

// failureMessage describes a failed outcome for the operator.
func failureMessage(o model.ArtifactOutcome) string {
	if o.Failure != nil {
		return o.Failure.Error()
	}
	return fmt.Sprintf("%s upload was not accepted, error code %d", o.Artifact.Kind, o.StatusCode)
}

// formatSize renders a byte count for display, e.g. "12 MB".
func formatSize(n int64) string {
	if n < 0 {
		return "unknown size"
	}
	return humanize.Bytes(uint64(n))
}
