package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// GitHubUploader attaches artifacts to a GitHub release.
//
// The request's ProjectID is "owner/repo" and its Password is used as the
// API token. The release is looked up by ReleaseTag and created when it
// does not exist yet, so the first artifact of a version creates the
// release and the second one joins it.
type GitHubUploader struct {
	// baseURL overrides the API and upload endpoints (GitHub Enterprise or
	// tests). Empty means github.com.
	baseURL *url.URL
	timeout time.Duration
	log     *log.Logger
}

// NewGitHubUploader creates an uploader. endpoint may be empty.
func NewGitHubUploader(endpoint string, timeout time.Duration, logger *log.Logger) (*GitHubUploader, error) {
	if logger == nil {
		logger = log.Default()
	}
	u := &GitHubUploader{timeout: timeout, log: logger}
	if endpoint != "" {
		if !strings.HasSuffix(endpoint, "/") {
			endpoint += "/"
		}
		parsed, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse GitHub endpoint: %w", err)
		}
		u.baseURL = parsed
	}
	return u, nil
}

// ParseRepo splits "owner/repo".
func ParseRepo(projectID string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(projectID), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("project %q is not in owner/repo form", projectID)
	}
	return owner, repo, nil
}

// Upload attaches the artifact and returns the status of the asset upload.
func (u *GitHubUploader) Upload(ctx context.Context, req UploadRequest) (int, error) {
	owner, repo, err := ParseRepo(req.ProjectID)
	if err != nil {
		return 0, err
	}
	if req.Password == "" {
		return 0, errors.New("GitHub token is required")
	}

	client := u.client(ctx, req.Password)

	release, status, err := u.release(ctx, client, owner, repo, req)
	if err != nil {
		return status, err
	}

	f, err := os.Open(req.FilePath)
	if err != nil {
		return 0, fmt.Errorf("open artifact: %w", err)
	}
	defer func() { _ = f.Close() }()

	opts := &github.UploadOptions{
		Name:  filepath.Base(req.FilePath),
		Label: req.Title,
	}
	u.log.Debug("uploading release asset", "repo", req.ProjectID, "release", release.GetID(), "file", opts.Name)

	_, resp, err := client.Repositories.UploadReleaseAsset(ctx, owner, repo, release.GetID(), opts, f)
	if err != nil {
		return statusOf(resp), fmt.Errorf("upload release asset: %w", err)
	}
	return resp.StatusCode, nil
}

// release finds the release for the tag or creates it.
func (u *GitHubUploader) release(ctx context.Context, client *github.Client, owner, repo string, req UploadRequest) (*github.RepositoryRelease, int, error) {
	release, resp, err := client.Repositories.GetReleaseByTag(ctx, owner, repo, req.ReleaseTag)
	if err == nil {
		return release, 0, nil
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		return nil, statusOf(resp), fmt.Errorf("get release %s: %w", req.ReleaseTag, err)
	}

	u.log.Debug("creating release", "repo", req.ProjectID, "tag", req.ReleaseTag)
	release, resp, err = client.Repositories.CreateRelease(ctx, owner, repo, &github.RepositoryRelease{
		TagName:    github.String(req.ReleaseTag),
		Name:       github.String(req.ReleaseTag),
		Body:       github.String(req.Description),
		Prerelease: github.Bool(req.PreRelease),
	})
	if err != nil {
		return nil, statusOf(resp), fmt.Errorf("create release %s: %w", req.ReleaseTag, err)
	}
	return release, 0, nil
}

// client builds an authenticated API client for one upload.
func (u *GitHubUploader) client(ctx context.Context, token string) *github.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = u.timeout

	client := github.NewClient(tc)
	if u.baseURL != nil {
		client.BaseURL = u.baseURL
		client.UploadURL = u.baseURL
	}
	return client
}

func statusOf(resp *github.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}
	return resp.StatusCode
}
