package models

import "strings"

// UnknownProduct is the placeholder a transaction may reference when no
// specific product applies. It never names a real product.
const UnknownProduct = "unknown"

// NormalizeName is the canonical form used for every case-insensitive name comparison.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SameName reports whether a and b refer to the same product name.
func SameName(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}

// IsUnknownProduct reports whether name is the reserved sentinel, in any case.
func IsUnknownProduct(name string) bool {
	return SameName(name, UnknownProduct)
}

// SplitNames splits a comma separated list, trimming blanks and dropping empty entries.
func SplitNames(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}
