package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSelectors pins the literal slicing rules, including the truncated
// minor field for multi-digit minors.
func TestSelectors(t *testing.T) {
	tests := []struct {
		number string
		major  string
		minor  string
		patch  string
	}{
		{"1.2.3", "1", "2", "3"},
		{"2.13.4", "2", "1", "4"}, // minor is one character by contract
		{"10.0.11", "10", "0", "11"},
		{"2.1", "2", "1", ""},
		{"2.", "2", "", ""},
		{"7", "", "", ""}, // no dot drops the last character
		{"12", "1", "", ""},
		{"", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			assert.Equal(t, tt.major, Major(tt.number), "major")
			assert.Equal(t, tt.minor, Minor(tt.number), "minor")
			assert.Equal(t, tt.patch, Patch(tt.number), "patch")
		})
	}
}

// TestParseSelector accepts exactly 0..3.
func TestParseSelector(t *testing.T) {
	for arg, want := range map[string]Selector{"0": SelectMajor, "1": SelectMinor, "2": SelectPatch, "3": SelectPreRelease} {
		got, err := ParseSelector(arg)
		require.NoError(t, err, arg)
		assert.Equal(t, want, got)
	}

	for _, arg := range []string{"4", "-1", "major", ""} {
		_, err := ParseSelector(arg)
		assert.ErrorIs(t, err, ErrInvalidSelection, arg)
	}
}

// TestField routes each selector to its field.
func TestField(t *testing.T) {
	tests := []struct {
		sel  Selector
		want string
	}{
		{SelectMajor, "2"},
		{SelectMinor, "1"},
		{SelectPatch, "4"},
		{SelectPreRelease, " beta"},
	}

	for _, tt := range tests {
		got, err := Field("2.13.4", " beta", tt.sel)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := Field("2.13.4", "", Selector(9))
	assert.ErrorIs(t, err, ErrInvalidSelection)
}
