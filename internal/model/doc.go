// Package model defines the domain types and value objects for the
// release-publisher CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities (VersionInfo, ArtifactDescriptor, PublishResult) are transient:
// they are recomputed on every invocation from the current state of the
// release root and are never persisted.
//
// The package also defines exit codes (ExitCode), a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling,
// and the error taxonomy shared by the extractor, publisher, and transports.
package model
