// Package slug turns post titles into URL-safe path segments.
//
//	slug.Make("Café & Restaurant")                 // "cafe-restaurant"
//	slug.Make("Long Article Title", slug.MaxLength(12)) // "long-article"
//	slug.Make("new", slug.Reserved("new"))        // "new-k7x2m4"
//
// Latin diacritics are folded to ASCII through Unicode decomposition; any other
// rune outside [a-z0-9] becomes a separator.
package slug
