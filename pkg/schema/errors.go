package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the read surface. Handlers match on these with
// errors.Is; the wrapped messages carry the human-facing detail.
var (
	// ErrNotInitialized means a read arrived before Prefetch completed.
	ErrNotInitialized = errors.New("schema snapshot not initialized: call Prefetch at server startup")

	// ErrUnknownCategory means a request named a category absent from
	// configuration.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrUnknownType means a request named a type absent from the schema.
	ErrUnknownType = errors.New("type not found in schema")
)

const (
	maxSuggestions   = 5
	maxAvailableHint = 10
)

// unknownTypeError builds an ErrUnknownType with up to 5 case-insensitive
// substring suggestions, falling back to the first 10 available names when
// nothing matches. available must already be sorted.
func unknownTypeError(name string, available []string) error {
	lower := strings.ToLower(name)
	var similar []string
	for _, candidate := range available {
		if strings.Contains(strings.ToLower(candidate), lower) {
			similar = append(similar, candidate)
			if len(similar) == maxSuggestions {
				break
			}
		}
	}

	if len(similar) > 0 {
		return fmt.Errorf("%w: %q. Similar types: %s",
			ErrUnknownType, name, strings.Join(similar, ", "))
	}

	hint := available
	if len(hint) > maxAvailableHint {
		hint = hint[:maxAvailableHint]
	}
	return fmt.Errorf("%w: %q. Available types include: %s",
		ErrUnknownType, name, strings.Join(hint, ", "))
}

// unknownCategoryError builds an ErrUnknownCategory embedding the full list
// of valid category names.
func unknownCategoryError(name string, valid []string) error {
	return fmt.Errorf("%w: %q. Valid categories: %s",
		ErrUnknownCategory, name, strings.Join(valid, ", "))
}
