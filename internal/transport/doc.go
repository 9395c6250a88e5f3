// Package transport uploads release artifacts to a remote hosting endpoint.
//
// The publisher only depends on the Uploader interface: one call per
// artifact, returning the status code the remote side answered with.
// StatusCreated (201) means the artifact was accepted; any other code is a
// server-reported failure, and a returned error is a communication failure.
//
// Two implementations are provided:
//   - HTTPUploader posts a multipart form (summary, description, one label
//     per tag, and the file) with basic authentication, streaming the file
//     from disk.
//   - GitHubUploader attaches the file to the GitHub release for the
//     version tag, creating the release if needed. It uses
//     github.com/google/go-github with an oauth2 token taken from the
//     password credential.
//
// Uploaders never retry. A failed upload is reported to the caller, which
// decides what to do with it.
package transport
