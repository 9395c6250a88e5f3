package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIsYes covers the accepted confirmation answers.
func TestIsYes(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"y", true},
		{"yes", true},
		{"Y", true},
		{" YES ", true},
		{"", false},
		{"n", false},
		{"no", false},
		{"yep", false},
		{"ye", false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			assert.Equal(t, tt.want, IsYes(tt.answer))
		})
	}
}

// TestLinePrompter reads a full credential and confirmation exchange.
func TestLinePrompter(t *testing.T) {
	in := strings.NewReader("alice\ns3cret\nyes\n")
	var out bytes.Buffer
	p := NewLinePrompter(in, &out)

	user, err := p.Input("Username", "")
	require.NoError(t, err)
	assert.Equal(t, "alice", user)

	pass, err := p.Password("Password")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pass)

	ok, err := p.Confirm("Upload?")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Contains(t, out.String(), "Username: ")
	assert.Contains(t, out.String(), "Upload? [y/N]: ")
}

// TestLinePrompter_Default verifies an empty answer takes the default.
func TestLinePrompter_Default(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("\n"), &out)

	user, err := p.Input("Username", "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", user)
	assert.Equal(t, "Username [bob]: ", out.String())
}

// TestLinePrompter_EOF verifies closed input.
func TestLinePrompter_EOF(t *testing.T) {
	t.Run("no answer", func(t *testing.T) {
		p := NewLinePrompter(strings.NewReader(""), &bytes.Buffer{})
		_, err := p.Confirm("Upload?")
		assert.ErrorIs(t, err, ErrCancelled)
	})

	t.Run("answer without newline", func(t *testing.T) {
		p := NewLinePrompter(strings.NewReader("y"), &bytes.Buffer{})
		ok, err := p.Confirm("Upload?")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

// TestStatic verifies the fixed-answer prompter.
func TestStatic(t *testing.T) {
	s := &Static{Username: "alice", Secret: "pw", Confirmed: true}

	user, _ := s.Input("Username", "x")
	pass, _ := s.Password("Password")
	ok, _ := s.Confirm("Go?")

	assert.Equal(t, "alice", user)
	assert.Equal(t, "pw", pass)
	assert.True(t, ok)
	assert.Equal(t, []string{"Username", "Password", "Go?"}, s.Asked)

	failing := &Static{Err: errors.New("boom")}
	_, err := failing.Confirm("Go?")
	assert.Error(t, err)
}
