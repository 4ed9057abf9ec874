package validator

import "fmt"

// RequiredSlice fails on an empty slice.
func RequiredSlice[T any](field string, value []T) Rule {
	return newRule(field, "is required", "validation.required",
		func() bool { return len(value) > 0 },
		nil,
	)
}

// RequiredMap fails on an empty map.
func RequiredMap[K comparable, V any](field string, value map[K]V) Rule {
	return newRule(field, "is required", "validation.required",
		func() bool { return len(value) > 0 },
		nil,
	)
}

// MinLenSlice fails when the slice has fewer than min items.
func MinLenSlice[T any](field string, value []T, min int) Rule {
	return newRule(field, fmt.Sprintf("must contain at least %d items", min), "validation.min_items",
		func() bool { return len(value) >= min },
		map[string]any{"min": min},
	)
}

// MaxLenSlice fails when the slice has more than max items.
func MaxLenSlice[T any](field string, value []T, max int) Rule {
	return newRule(field, fmt.Sprintf("must not contain more than %d items", max), "validation.max_items",
		func() bool { return len(value) <= max },
		map[string]any{"max": max},
	)
}
