package transport

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/shinji-kodama/release-publisher/internal/config"
	"github.com/shinji-kodama/release-publisher/internal/model"
)

// StatusCreated is the status an Uploader returns for an accepted artifact.
const StatusCreated = model.StatusCreated

// UploadRequest carries everything one upload needs.
type UploadRequest struct {
	// FilePath is the artifact on the local filesystem.
	FilePath string

	// ProjectID identifies the project on the remote endpoint.
	ProjectID string

	// Username and Password are the operator's credentials.
	Username string
	Password string

	// Title, Description and Tags describe the artifact on the remote side.
	Title       string
	Description string
	Tags        []string

	// ReleaseTag and PreRelease identify the release the artifact belongs
	// to, for transports that group artifacts by release.
	ReleaseTag string
	PreRelease bool
}

// Uploader sends one artifact and returns the remote status code.
// A non-nil error means the call failed before or while talking to the
// remote side; the status code may still be set when the remote answered.
type Uploader interface {
	Upload(ctx context.Context, req UploadRequest) (int, error)
}

// UploaderFunc adapts a function to the Uploader interface.
type UploaderFunc func(ctx context.Context, req UploadRequest) (int, error)

// Upload calls f.
func (f UploaderFunc) Upload(ctx context.Context, req UploadRequest) (int, error) {
	return f(ctx, req)
}

// New builds the Uploader selected by the configuration.
func New(cfg *config.Config, logger *log.Logger) (Uploader, error) {
	timeout, err := cfg.UploadTimeout()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigInvalid, "invalid transport timeout", err)
	}
	if logger == nil {
		logger = log.Default()
	}

	switch cfg.Transport.Kind {
	case config.TransportHTTP, "":
		return NewHTTPUploader(cfg.UploadEndpoint(), &http.Client{Timeout: timeout}, logger), nil
	case config.TransportGitHub:
		return NewGitHubUploader(cfg.UploadEndpoint(), timeout, logger)
	default:
		return nil, model.NewCLIError(model.ExitConfigInvalid,
			fmt.Sprintf("unknown transport %q", cfg.Transport.Kind))
	}
}
