package parcel

import "strings"

// parseName looks a name up in an enum name table, ignoring case and surrounding spaces.
func parseName[T ~int](names map[T]string, name string) (T, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	for value, candidate := range names {
		if candidate == normalized {
			return value, true
		}
	}
	var zero T
	return zero, false
}
