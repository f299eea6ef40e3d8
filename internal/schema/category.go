// Package schema holds the closed set of query categories, the per-category
// field schemas used to drive structured extraction, and the field-to-platform
// key mappings consumed by the query compiler. All tables are read-only after
// package init and safe to share across requests.
package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Category is the classification label for the subject of a query.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryFile
	CategoryURL
	CategoryDomain
	CategoryIP
	CategoryCollection
)

var (
	// ErrUnknownCategory means the label is not one of the recognized categories.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrUnsupportedCategory means the category is recognized but carries no
	// schema (COLLECTION is classified but not translatable).
	ErrUnsupportedCategory = errors.New("unsupported category")
)

func (c Category) String() string {
	switch c {
	case CategoryFile:
		return "FILE"
	case CategoryURL:
		return "URL"
	case CategoryDomain:
		return "DOMAIN"
	case CategoryIP:
		return "IP"
	case CategoryCollection:
		return "COLLECTION"
	default:
		return "UNKNOWN"
	}
}

// Labels returns the category labels in their declared order. The classifier
// checks oracle responses against these, in this order.
func Labels() []string {
	return []string{"FILE", "URL", "DOMAIN", "IP", "COLLECTION"}
}

// ParseCategory maps a label (any case, surrounding space ignored) to its
// Category. Unrecognized labels return ErrUnknownCategory.
func ParseCategory(s string) (Category, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FILE":
		return CategoryFile, nil
	case "URL":
		return CategoryURL, nil
	case "DOMAIN":
		return CategoryDomain, nil
	case "IP":
		return CategoryIP, nil
	case "COLLECTION":
		return CategoryCollection, nil
	default:
		return CategoryUnknown, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}
