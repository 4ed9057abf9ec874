package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// emailPattern accepts a dotted or quoted local part and either a bracketed IPv4
// literal or a dotted hostname with a 2+ letter TLD.
var emailPattern = regexp.MustCompile(`^(([^<>()[\]\\.,:\s@']+(\.[^<>()[\]\\.,:\s@']+)*)|('.+'))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)

// EmailPattern returns the expression used by ValidEmail.
func EmailPattern() *regexp.Regexp {
	return emailPattern
}

// RequiredString fails when the value is empty or whitespace only.
func RequiredString(field, value string) Rule {
	return newRule(field, "is required", "validation.required",
		func() bool { return strings.TrimSpace(value) != "" },
		nil,
	)
}

// MinLenString fails when the value has fewer than min characters.
func MinLenString(field, value string, min int) Rule {
	return newRule(field, fmt.Sprintf("must be at least %d characters long", min), "validation.min_length",
		func() bool { return utf8.RuneCountInString(value) >= min },
		map[string]any{"min": min},
	)
}

// MaxLenString fails when the value has more than max characters.
func MaxLenString(field, value string, max int) Rule {
	return newRule(field, fmt.Sprintf("must not exceed %d characters", max), "validation.max_length",
		func() bool { return utf8.RuneCountInString(value) <= max },
		map[string]any{"max": max},
	)
}

// LenString fails unless the value has exactly length characters.
func LenString(field, value string, length int) Rule {
	return newRule(field, fmt.Sprintf("must be exactly %d characters long", length), "validation.exact_length",
		func() bool { return utf8.RuneCountInString(value) == length },
		map[string]any{"length": length},
	)
}

// MatchString fails when the value does not match re.
// Empty values pass; combine with RequiredString to reject them.
func MatchString(field, value string, re *regexp.Regexp) Rule {
	return newRule(field, "has an invalid format", "validation.pattern",
		func() bool { return value == "" || re.MatchString(value) },
		nil,
	)
}

// ValidEmail fails when a non-empty value is not an email address.
func ValidEmail(field, value string) Rule {
	return newRule(field, "must be a valid email address", "validation.email",
		func() bool { return value == "" || emailPattern.MatchString(value) },
		nil,
	)
}

// EqualString fails when value differs from other.
// otherField names the counterpart for messages and translations.
func EqualString(field, value, otherField, other string) Rule {
	return newRule(field, "must match "+otherField, "validation.equal",
		func() bool { return value == other },
		map[string]any{"other": otherField},
	)
}
