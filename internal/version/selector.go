package version

import (
	"errors"
	"fmt"
	"strings"
)

// Selector picks one field of a declared version for the get-version command.
type Selector int

const (
	SelectMajor      Selector = 0
	SelectMinor      Selector = 1
	SelectPatch      Selector = 2
	SelectPreRelease Selector = 3
)

// ErrInvalidSelection is returned for selectors outside 0..3.
var ErrInvalidSelection = errors.New("the argument specified is not a valid selection")

// ParseSelector converts a command-line argument into a Selector.
func ParseSelector(arg string) (Selector, error) {
	switch strings.TrimSpace(arg) {
	case "0":
		return SelectMajor, nil
	case "1":
		return SelectMinor, nil
	case "2":
		return SelectPatch, nil
	case "3":
		return SelectPreRelease, nil
	default:
		return 0, fmt.Errorf("%q: %w", arg, ErrInvalidSelection)
	}
}

// Major returns the text before the first ".".
//
// Without a dot the last character is dropped ("12" yields "1", "7"
// yields ""). Version strings already published were cut this way, so the
// output stays byte-compatible with them.
func Major(number string) string {
	if number == "" {
		return ""
	}
	idx := strings.Index(number, ".")
	if idx < 0 {
		return number[:len(number)-1]
	}
	return number[:idx]
}

// Minor returns the single character that follows the first ".".
//
// This is deliberately a one-character slice, not the full minor
// component: "2.13.4" yields "1". Published tooling reads this output
// byte for byte, so a multi-digit minor stays truncated.
func Minor(number string) string {
	idx := strings.Index(number, ".")
	if idx < 0 || idx+1 >= len(number) {
		return ""
	}
	return number[idx+1 : idx+2]
}

// Patch returns the text after the second ".", or "" when there is no
// second dot.
func Patch(number string) string {
	first := strings.Index(number, ".")
	if first < 0 {
		return ""
	}
	second := strings.Index(number[first+1:], ".")
	if second < 0 {
		return ""
	}
	return number[first+1+second+1:]
}

// Field returns the selected field. number is the declared version text;
// preSuffix is the pre-release value as returned by ExtractPreRelease
// (leading space included).
func Field(number, preSuffix string, sel Selector) (string, error) {
	switch sel {
	case SelectMajor:
		return Major(number), nil
	case SelectMinor:
		return Minor(number), nil
	case SelectPatch:
		return Patch(number), nil
	case SelectPreRelease:
		return preSuffix, nil
	default:
		return "", fmt.Errorf("%d: %w", sel, ErrInvalidSelection)
	}
}
