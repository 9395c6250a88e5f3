package model

import (
	"errors"
	"fmt"
)

// ExitCode defines the CLI exit codes. These codes allow scripts and CI
// systems to programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitConfigInvalid indicates the release configuration file could not
	// be read or failed validation.
	ExitConfigInvalid ExitCode = 2

	// ExitPublishIncomplete indicates at least one upload was not accepted.
	ExitPublishIncomplete ExitCode = 3

	// ExitUnknownFailure indicates an unexpected failure during publishing.
	ExitUnknownFailure ExitCode = 4

	// ExitUserCancelled indicates the user interrupted an interactive prompt.
	ExitUserCancelled ExitCode = 5
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

var (
	// ErrVersionAbsent is the ParseAbsence outcome: the source file has no
	// version declaration. Raw extraction reports it as an empty string;
	// only structured extraction turns it into this error.
	ErrVersionAbsent = errors.New("version declaration not found")

	// ErrVersionMalformed means a version declaration exists but its
	// numeric components cannot be parsed.
	ErrVersionMalformed = errors.New("version declaration is malformed")

	// ErrNotReady means the expected artifacts are not all present.
	// No upload is ever attempted for a plan in this state.
	ErrNotReady = errors.New("release artifacts are not ready")
)

// FileAccessError reports a source file or artifact that is missing or
// unreadable where it is required.
type FileAccessError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// ArtifactIOError reports an artifact that passed the presence check but
// could no longer be read at upload time. It aborts the publish run, since
// it means the file changed between check and use.
type ArtifactIOError struct {
	Path string
	Err  error
}

func (e *ArtifactIOError) Error() string {
	return fmt.Sprintf("artifact %s became unreadable after verification: %v", e.Path, e.Err)
}

func (e *ArtifactIOError) Unwrap() error {
	return e.Err
}

// TransportFailure records an upload the remote side did not accept, either
// because it answered with a status other than StatusCreated or because
// the transport itself failed (Err set).
type TransportFailure struct {
	Kind       ArtifactKind
	StatusCode int
	Err        error
}

func (e *TransportFailure) Error() string {
	if e.Err != nil {
		if e.StatusCode != 0 {
			return fmt.Sprintf("%s upload failed with status %d: %v", e.Kind, e.StatusCode, e.Err)
		}
		return fmt.Sprintf("%s upload failed: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s upload was not accepted, error code %d", e.Kind, e.StatusCode)
}

func (e *TransportFailure) Unwrap() error {
	return e.Err
}

// UnknownFailure is raised at the publish boundary for anything the
// taxonomy above does not cover, including recovered panics. It keeps the
// error kind, its arguments and the message for manual follow-up.
type UnknownFailure struct {
	// Kind is the Go type of the original failure, e.g. "*fs.PathError".
	Kind string

	// Args is the raw failure value (the panic value or wrapped error).
	Args any

	// Err is the original error, when the failure was an error value.
	Err error
}

// NewUnknownFailure builds an UnknownFailure from a recovered value.
func NewUnknownFailure(v any) *UnknownFailure {
	f := &UnknownFailure{Kind: fmt.Sprintf("%T", v), Args: v}
	if err, ok := v.(error); ok {
		f.Err = err
	}
	return f
}

func (e *UnknownFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unknown failure (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("unknown failure (%s): %v", e.Kind, e.Args)
}

func (e *UnknownFailure) Unwrap() error {
	return e.Err
}
