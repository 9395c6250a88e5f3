package artifact

import (
	"os"
)

// Checker verifies that artifacts exist on the local filesystem.
//
// The publisher takes it as a dependency; tests swap the open function.
type Checker struct {
	// open is os.Open, replaceable in tests.
	open func(name string) (*os.File, error)
}

// NewChecker creates a Checker backed by the real filesystem.
func NewChecker() *Checker {
	return &Checker{open: os.Open}
}

// IsPresent reports whether path is a regular file that can be opened
// for reading. Directories, pipes, broken symlinks and unreadable files
// are reported as absent.
//
// The mode is checked before opening so that a named pipe in the store
// never blocks the open.
func (c *Checker) IsPresent(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	f, err := c.open(path)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

// VerifyPresent returns true only if every path is present.
// An empty list is not a release and returns false.
func (c *Checker) VerifyPresent(paths ...string) bool {
	if len(paths) == 0 {
		return false
	}
	return len(c.Missing(paths...)) == 0
}

// Missing returns the paths that are not present, in input order.
func (c *Checker) Missing(paths ...string) []string {
	var missing []string
	for _, p := range paths {
		if !c.IsPresent(p) {
			missing = append(missing, p)
		}
	}
	return missing
}
