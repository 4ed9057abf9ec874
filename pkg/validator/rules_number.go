package validator

import "fmt"

// Number is any integer or floating point type.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// RequiredNum fails on the zero value.
func RequiredNum[T Number](field string, value T) Rule {
	return newRule(field, "is required", "validation.required",
		func() bool { return value != 0 },
		nil,
	)
}

// MinNum fails when value is below min.
func MinNum[T Number](field string, value, min T) Rule {
	return newRule(field, fmt.Sprintf("must be at least %v", min), "validation.min",
		func() bool { return value >= min },
		map[string]any{"min": min},
	)
}

// MaxNum fails when value is above max.
func MaxNum[T Number](field string, value, max T) Rule {
	return newRule(field, fmt.Sprintf("must not exceed %v", max), "validation.max",
		func() bool { return value <= max },
		map[string]any{"max": max},
	)
}
