package utils

import "strings"

// FindColumnIndex finds the index of a column by possible names
func FindColumnIndex(header []string, possibleNames ...string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, name := range possibleNames {
			if strings.ToLower(name) == h {
				return i
			}
		}
	}
	return -1
}
