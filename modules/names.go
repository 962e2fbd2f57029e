package modules

import (
	"strings"

	"detector-go/common"
)

// MaxNameLength is the longest canonical display name the platform accepts.
const MaxNameLength = 13

// NormalizeName turns a raw display name into its canonical form: separator
// characters become spaces, runs of whitespace collapse to one space, and the
// result is trimmed and lowercased. Returns ErrInvalidName when the canonical
// form is empty, too long, or contains characters outside [a-z0-9 ].
func NormalizeName(raw string) (string, error) {
	replacer := strings.NewReplacer("_", " ", "-", " ", " ", " ")
	name := replacer.Replace(raw)
	name = strings.ToLower(strings.Join(strings.Fields(name), " "))

	if len(name) == 0 || len(name) > MaxNameLength {
		return "", common.ErrInvalidName
	}

	for _, c := range name {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != ' ' {
			return "", common.ErrInvalidName
		}
	}
	return name, nil
}
