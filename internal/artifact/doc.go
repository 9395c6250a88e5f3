// Package artifact derives release artifact paths and checks that the
// artifacts exist before anything is uploaded.
//
// Path derivation is pure: the same version and layout always produce the
// same two paths, installer first. Presence checking asks the filesystem
// whether each path is a regular file that can be opened for reading; a
// missing artifact stops the publish run before any network call.
package artifact
