package dracor

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidName marks identifier validation failures so callers can
// distinguish them from upstream errors with errors.Is.
var ErrInvalidName = errors.New("invalid name")

var (
	namePattern     = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	wikidataPattern = regexp.MustCompile(`^Q[0-9]+$`)
)

// ValidateName rejects corpus and play identifiers that could escape their
// URL path segment. Only letters, digits, hyphens and underscores pass.
func ValidateName(name, field string) error {
	if name == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidName, field)
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %s may only contain letters, digits, hyphens and underscores", ErrInvalidName, field)
	}
	return nil
}

// ValidateWikidataID accepts ids of the form Q followed by digits.
func ValidateWikidataID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: wikidata_id cannot be empty", ErrInvalidName)
	}
	if !wikidataPattern.MatchString(id) {
		return fmt.Errorf("%w: wikidata_id must match Q<digits>", ErrInvalidName)
	}
	return nil
}
