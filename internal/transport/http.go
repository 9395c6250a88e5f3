package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/shinji-kodama/release-publisher/internal/config"
)

// userAgent identifies uploads in the remote endpoint's logs.
const userAgent = "release-publisher"

// maxDrain bounds how much of a response body is read before closing, so
// the connection can be reused without buffering an arbitrary error page.
const maxDrain = 64 * 1024

// HTTPUploader posts artifacts as multipart forms.
//
// Form layout:
//
//	summary      upload title
//	description  long description
//	label        one field per tag
//	filename     the artifact (file part)
type HTTPUploader struct {
	endpoint string
	client   *http.Client
	log      *log.Logger
}

// NewHTTPUploader creates an uploader for the endpoint template. The
// template may contain {project}, which is replaced by the request's
// ProjectID.
func NewHTTPUploader(endpoint string, client *http.Client, logger *log.Logger) *HTTPUploader {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = log.Default()
	}
	return &HTTPUploader{endpoint: endpoint, client: client, log: logger}
}

// Upload streams the artifact to the endpoint and returns the HTTP status.
func (u *HTTPUploader) Upload(ctx context.Context, req UploadRequest) (int, error) {
	f, err := os.Open(req.FilePath)
	if err != nil {
		return 0, fmt.Errorf("open artifact: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat artifact: %w", err)
	}

	// The form fields and the file part header are buffered; the file
	// itself is streamed. mw.Close is not called: the closing boundary is
	// appended by hand after the file so the body length is known upfront.
	var head bytes.Buffer
	mw := multipart.NewWriter(&head)
	fields := [][2]string{{"summary", req.Title}, {"description", req.Description}}
	for _, tag := range req.Tags {
		fields = append(fields, [2]string{"label", tag})
	}
	for _, kv := range fields {
		if err := mw.WriteField(kv[0], kv[1]); err != nil {
			return 0, fmt.Errorf("encode form field %s: %w", kv[0], err)
		}
	}
	if _, err := mw.CreateFormFile("filename", filepath.Base(req.FilePath)); err != nil {
		return 0, fmt.Errorf("encode file part: %w", err)
	}
	tail := "\r\n--" + mw.Boundary() + "--\r\n"
	headLen := int64(head.Len())

	url := strings.ReplaceAll(u.endpoint, config.PlaceholderProject, req.ProjectID)
	body := io.MultiReader(&head, f, strings.NewReader(tail))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return 0, fmt.Errorf("build upload request: %w", err)
	}
	httpReq.ContentLength = headLen + info.Size() + int64(len(tail))
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.SetBasicAuth(req.Username, req.Password)

	u.log.Debug("uploading artifact", "url", url, "file", filepath.Base(req.FilePath), "bytes", info.Size())

	resp, err := u.client.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("upload to %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))

	u.log.Debug("upload answered", "status", resp.StatusCode, "location", resp.Header.Get("Location"))
	return resp.StatusCode, nil
}
