package publish

import "github.com/shinji-kodama/release-publisher/internal/model"

// Reporter receives progress events during Publish, in upload order.
type Reporter interface {
	// UploadStarted is called right before an artifact is sent.
	UploadStarted(a model.ArtifactDescriptor)

	// UploadFinished is called once the transport has answered.
	UploadFinished(o model.ArtifactOutcome)
}

// NopReporter ignores all events.
type NopReporter struct{}

func (NopReporter) UploadStarted(model.ArtifactDescriptor) {}
func (NopReporter) UploadFinished(model.ArtifactOutcome)   {}
