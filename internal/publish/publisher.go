// Package publish uploads the artifacts of one release.
//
// A publish run goes through two steps. Prepare locates the artifacts for a
// version and checks that they are all on disk, producing a Plan. Publish
// takes a ready Plan and uploads the installer and then the archive, one
// attempt each. A failed upload does not stop the run: every artifact is
// attempted and the aggregate result says whether all of them were
// accepted.
//
// Publish is the single error boundary of the package. Anything that goes
// wrong outside the known failure kinds, including a panic in a transport,
// is returned as *model.UnknownFailure.
package publish

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/log"

	"github.com/shinji-kodama/release-publisher/internal/artifact"
	"github.com/shinji-kodama/release-publisher/internal/config"
	"github.com/shinji-kodama/release-publisher/internal/model"
	"github.com/shinji-kodama/release-publisher/internal/transport"
)

// Plan is a located, possibly verified, set of artifacts for one version.
type Plan struct {
	// State is StateArtifactsVerified when every artifact is present and
	// StateArtifactsLocated otherwise.
	State model.PublishState

	Version model.VersionInfo
	Paths   artifact.Paths

	// Missing lists the artifacts that were not found, in upload order.
	Missing []string
}

// Ready reports whether the plan can be published.
func (p *Plan) Ready() bool {
	return p != nil && p.State == model.StateArtifactsVerified
}

// Publisher runs publish operations against one transport.
type Publisher struct {
	cfg      *config.Config
	uploader transport.Uploader
	checker  *artifact.Checker
	reporter Reporter
	log      *log.Logger

	// stat reads artifact sizes right before upload; os.Stat outside tests.
	stat func(name string) (os.FileInfo, error)
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithReporter sets the progress reporter.
func WithReporter(r Reporter) Option {
	return func(p *Publisher) { p.reporter = r }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(p *Publisher) { p.log = l }
}

// WithChecker sets the presence checker.
func WithChecker(c *artifact.Checker) Option {
	return func(p *Publisher) { p.checker = c }
}

// New creates a Publisher.
func New(cfg *config.Config, uploader transport.Uploader, opts ...Option) *Publisher {
	p := &Publisher{
		cfg:      cfg,
		uploader: uploader,
		checker:  artifact.NewChecker(),
		reporter: NopReporter{},
		log:      log.Default(),
		stat:     os.Stat,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Prepare locates the artifacts for info under storeDir and verifies they
// are present. It never touches the transport.
func (p *Publisher) Prepare(storeDir string, info model.VersionInfo) *Plan {
	plan := &Plan{State: model.StateNotStarted, Version: info}

	plan.Paths = artifact.Locate(storeDir, p.cfg, info)
	plan.State = model.StateArtifactsLocated
	p.log.Debug("artifacts located", "installer", plan.Paths.Installer, "archive", plan.Paths.Archive)

	plan.Missing = p.checker.Missing(plan.Paths.List()...)
	if len(plan.Missing) == 0 {
		plan.State = model.StateArtifactsVerified
	} else {
		p.log.Debug("artifacts missing", "paths", plan.Missing)
	}
	return plan
}

// Publish uploads the plan's artifacts, installer first.
//
// It returns model.ErrNotReady without any upload when the plan is not
// verified, and *model.ArtifactIOError when an artifact can no longer be
// read; in that case the partial result is returned alongside the error.
// Rejected or failed uploads are not errors: they are recorded in the
// result as *model.TransportFailure outcomes.
func (p *Publisher) Publish(ctx context.Context, plan *Plan, creds model.Credentials) (result *model.PublishResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("publish aborted", "panic", r)
			err = model.NewUnknownFailure(r)
		}
	}()

	if !plan.Ready() {
		return nil, model.ErrNotReady
	}

	result = &model.PublishResult{Version: plan.Version, State: plan.State}
	for _, kind := range model.ArtifactKinds {
		outcome, err := p.upload(ctx, plan, kind, creds)
		if err != nil {
			return result, err
		}
		result.Outcomes = append(result.Outcomes, outcome)
		result.State = model.UploadedState(kind)
	}

	result.State = model.StateDone
	result.OverallSuccess = len(result.Failed()) == 0
	p.log.Debug("publish finished", "version", plan.Version.Display(), "success", result.OverallSuccess)
	return result, nil
}

// upload sends one artifact. Only an unreadable artifact is returned as an
// error; transport problems are folded into the outcome.
func (p *Publisher) upload(ctx context.Context, plan *Plan, kind model.ArtifactKind, creds model.Credentials) (model.ArtifactOutcome, error) {
	path := plan.Paths.For(kind)
	fi, err := p.stat(path)
	if err != nil {
		return model.ArtifactOutcome{}, &model.ArtifactIOError{Path: path, Err: err}
	}
	if !fi.Mode().IsRegular() {
		return model.ArtifactOutcome{}, &model.ArtifactIOError{Path: path, Err: errors.New("not a regular file")}
	}

	desc := artifact.Describe(p.cfg, kind, path, plan.Version)
	desc.SizeBytes = fi.Size()
	p.reporter.UploadStarted(desc)

	status, upErr := p.uploader.Upload(ctx, transport.UploadRequest{
		FilePath:    path,
		ProjectID:   p.cfg.ProjectID,
		Username:    creds.Username,
		Password:    creds.Password,
		Title:       desc.Label,
		Description: desc.Description,
		Tags:        desc.Tags,
		ReleaseTag:  plan.Version.Tag(),
		PreRelease:  plan.Version.IsPreRelease(),
	})

	outcome := model.ArtifactOutcome{Artifact: desc, StatusCode: status}
	if upErr != nil || status != model.StatusCreated {
		outcome.Failure = &model.TransportFailure{Kind: kind, StatusCode: status, Err: upErr}
		p.log.Warn("upload not accepted", "kind", kind, "status", status, "err", upErr)
	}
	p.reporter.UploadFinished(outcome)
	return outcome, nil
}
