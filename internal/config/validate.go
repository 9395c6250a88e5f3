// validate.go checks a loaded configuration before any file or network
// access is attempted, so that a typo in the configuration is reported as
// such instead of surfacing later as a missing artifact or a failed upload.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shinji-kodama/release-publisher/internal/model"
)

// ValidationError represents a specific validation failure in the
// release configuration.
type ValidationError struct {
	// Field is the configuration field that failed validation
	// (e.g., "installer.nameTemplate").
	Field string

	// Message describes what's wrong with the field value.
	Message string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("release configuration error: %s: %s", e.Field, e.Message)
}

// Validate returns every problem found in the configuration
// (empty list = valid configuration).
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	required := []struct {
		field, value string
	}{
		{"productName", c.ProductName},
		{"projectId", c.ProjectID},
		{"sourceFile", c.SourceFile},
		{"storeDir", c.StoreDir},
		{"versionMarker", c.VersionMarker},
		{"preReleaseMarker", c.PreReleaseMarker},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, ValidationError{Field: r.field, Message: "must not be empty"})
		}
	}

	for _, kind := range model.ArtifactKinds {
		errs = append(errs, validateArtifact(kind.String(), c.Artifact(kind))...)
	}

	// Both kinds resolving to the same file would upload one artifact twice.
	if c.Installer.NameTemplate != "" && c.Installer.NameTemplate == c.Archive.NameTemplate {
		errs = append(errs, ValidationError{
			Field:   "archive.nameTemplate",
			Message: "must differ from installer.nameTemplate",
		})
	}

	errs = append(errs, c.validateTransport()...)
	return errs
}

func validateArtifact(prefix string, a ArtifactConfig) []ValidationError {
	var errs []ValidationError

	if a.NameTemplate == "" {
		errs = append(errs, ValidationError{Field: prefix + ".nameTemplate", Message: "must not be empty"})
	} else {
		if !strings.Contains(a.NameTemplate, PlaceholderVersion) {
			errs = append(errs, ValidationError{
				Field:   prefix + ".nameTemplate",
				Message: fmt.Sprintf("must contain %s so each release has its own file", PlaceholderVersion),
			})
		}
		if strings.ContainsAny(a.NameTemplate, `/\`) {
			errs = append(errs, ValidationError{
				Field:   prefix + ".nameTemplate",
				Message: "must be a file name inside storeDir, not a path",
			})
		}
	}

	if len(model.NormalizeTags(a.Tags)) == 0 {
		errs = append(errs, ValidationError{Field: prefix + ".tags", Message: "at least one tag is required"})
	}
	return errs
}

func (c *Config) validateTransport() []ValidationError {
	var errs []ValidationError

	switch c.Transport.Kind {
	case TransportHTTP:
		if u, err := url.Parse(c.EndpointURL()); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, ValidationError{Field: "transport.endpoint", Message: "must be an http or https URL"})
		}
	case TransportGitHub:
		owner, repo, ok := strings.Cut(c.ProjectID, "/")
		if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
			errs = append(errs, ValidationError{Field: "projectId", Message: `must be "owner/repo" for the github transport`})
		}
	default:
		errs = append(errs, ValidationError{
			Field:   "transport.kind",
			Message: fmt.Sprintf("invalid transport %q (valid: %s, %s)", c.Transport.Kind, TransportHTTP, TransportGitHub),
		})
	}

	if _, err := c.UploadTimeout(); err != nil {
		errs = append(errs, ValidationError{Field: "transport.timeout", Message: err.Error()})
	}
	return errs
}
