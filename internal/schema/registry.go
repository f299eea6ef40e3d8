package schema

import "fmt"

// SchemaFor returns the field schema for a translatable category. COLLECTION
// is recognized but has no schema and yields ErrUnsupportedCategory.
func SchemaFor(c Category) (*CategorySchema, error) {
	switch c {
	case CategoryFile:
		return &fileSchema, nil
	case CategoryURL:
		return &urlSchema, nil
	case CategoryDomain:
		return &domainSchema, nil
	case CategoryIP:
		return &ipSchema, nil
	case CategoryCollection:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCategory, c)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, c)
	}
}

// MappingFor returns the field-to-platform-key table for a translatable
// category.
func MappingFor(c Category) (*FieldMapping, error) {
	switch c {
	case CategoryFile:
		return &fileMapping, nil
	case CategoryURL:
		return &urlMapping, nil
	case CategoryDomain:
		return &domainMapping, nil
	case CategoryIP:
		return &ipMapping, nil
	case CategoryCollection:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCategory, c)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, c)
	}
}

// Translatable reports whether a category carries a schema.
func Translatable(c Category) bool {
	switch c {
	case CategoryFile, CategoryURL, CategoryDomain, CategoryIP:
		return true
	default:
		return false
	}
}
