package domain

import (
	"regexp"

	dErrors "mymyunsw/pkg/domain-errors"
)

// zidPrefix is the optional leading character of a zID as users type it.
const zidPrefix = 'z'

// zidDigits is the number of digits in a normalized zID.
const zidDigits = 7

// zidPattern is anchored at both ends; `$` in Go's RE2 does not match before
// a trailing newline. Digits are ASCII only: Unicode digits and a trailing
// "\n" are rejected on purpose.
var zidPattern = regexp.MustCompile(`^[0-9]{7}$`)

// ZID is a normalized student identifier: exactly seven ASCII digits.
// Invariant: values produced by ParseZID always match zidPattern.
//
// Usage: construct via ParseZID at the command-line boundary; direct casting
// bypasses validation.
type ZID string

// ParseZID normalizes a user-supplied zID.
//
// A leading lowercase 'z' is stripped and the next seven characters are kept
// (fewer when the input is shorter). The result must be exactly seven digits.
// There is no separate length check: short, long, non-numeric and malformed
// inputs all fail the same pattern test with CodeInvalidIdentifier.
func ParseZID(s string) (ZID, error) {
	candidate := s
	runes := []rune(s)
	if len(runes) > 0 && runes[0] == zidPrefix {
		end := min(len(runes), 1+zidDigits)
		candidate = string(runes[1:end])
	}
	if !zidPattern.MatchString(candidate) {
		return "", dErrors.New(dErrors.CodeInvalidIdentifier, "Invalid zID")
	}
	return ZID(candidate), nil
}

// String returns the seven digits.
func (z ZID) String() string {
	return string(z)
}

// Prefixed returns the zID in its display form, e.g. z1234567.
func (z ZID) Prefixed() string {
	return string(zidPrefix) + string(z)
}

// IsZero reports whether the zID is unset.
func (z ZID) IsZero() bool {
	return z == ""
}
