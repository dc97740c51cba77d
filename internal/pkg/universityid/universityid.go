// Package universityid decomposes structured university identifiers of the
// form "BWU/BCA/23/734" into the course ("BCA") and enrollment batch ("2023")
// encoded in them. Identifiers that do not follow the format yield empty
// values rather than errors; callers treat that as a degraded-but-valid result.
package universityid

import "strings"

const tokenCount = 4

// Parse extracts the course and batch from a slash-delimited university
// identifier. The second token is the course and the third is a two-digit
// enrollment year, expanded to a four-digit batch by prefixing "20".
// Malformed or absent identifiers yield empty course and batch.
func Parse(universityID string) (course, batch string) {
	parts := strings.Split(universityID, "/")
	if len(parts) < tokenCount {
		return "", ""
	}

	course = strings.TrimSpace(parts[1])

	year := strings.TrimSpace(parts[2])
	if isTwoDigitYear(year) {
		batch = "20" + year
	}

	return course, batch
}

func isTwoDigitYear(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
