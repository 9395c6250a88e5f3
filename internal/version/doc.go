// Package version extracts the declared release version from a source file.
//
// The source file is expected to contain assignment lines such as
//
//	public static final String VERSION = "2.1.0";
//	public static final String PRE_RELEASE = "beta";
//
// Extraction is a linear scan over every line: the last line containing the
// marker wins, so comment lines that mention the marker earlier in the file
// never shadow the authoritative declaration. A missing marker is not an
// error; it yields the empty string and leaves the decision to the caller.
//
// The package also exposes the literal string-slicing selectors used by
// the get-version command to print single version fields.
package version
