//go:build unix

package artifact

import (
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestChecker_NamedPipe verifies a FIFO in the store is reported absent
// instead of blocking the presence check.
func TestChecker_NamedPipe(t *testing.T) {
	fifo := filepath.Join(t.TempDir(), "The maRla Project 2.1.0.zip")
	require.NoError(t, syscall.Mkfifo(fifo, 0644))

	done := make(chan bool, 1)
	go func() { done <- NewChecker().IsPresent(fifo) }()

	select {
	case present := <-done:
		assert.False(t, present)
	case <-time.After(5 * time.Second):
		t.Fatal("IsPresent blocked on a named pipe")
	}
}
