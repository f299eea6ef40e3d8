package vtquery

import (
	"strconv"
	"strings"
)

// Platform key classes with dedicated formatting. Kept in lock-step with the
// mapping tables in internal/schema.
var (
	// byteSizeKeys take values in bytes and are rendered in the largest unit
	// that stays whole.
	byteSizeKeys = map[string]bool{"size": true}

	// timestampKeys take date values with a direction suffix.
	timestampKeys = map[string]bool{"ls": true, "fs": true, "la": true, "lm": true}

	// minCountKeys are minimum-value counters and always carry '+'.
	minCountKeys = map[string]bool{"p": true, "s": true, "us": true}
)

// formatScalar renders one atomic value for emission under key. field is the
// source field name; it decides range direction ("min"/"max", "after"/
// "before").
func formatScalar(field, key string, v any) string {
	if n, ok := numeric(v); ok {
		switch {
		case byteSizeKeys[key]:
			return sizeString(n) + rangeSuffix(strings.Contains(field, "min"))
		case minCountKeys[key]:
			return numString(n) + "+"
		default:
			return numString(n)
		}
	}

	s := scalarString(v)
	switch {
	case timestampKeys[key]:
		return s + rangeSuffix(strings.Contains(field, "after"))
	case minCountKeys[key]:
		return s + "+"
	default:
		return quoteIfSpaced(s)
	}
}

// sizeString converts a byte count to the largest unit where the magnitude
// stays non-fractional, matching the platform's size modifier.
func sizeString(n float64) string {
	switch {
	case n < 1024:
		return strconv.FormatInt(int64(n), 10)
	case n < 1024*1024:
		return strconv.FormatInt(int64(n/1024), 10) + "KB"
	default:
		return strconv.FormatInt(int64(n/(1024*1024)), 10) + "MB"
	}
}

func rangeSuffix(min bool) string {
	if min {
		return "+"
	}
	return "-"
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// numString renders a number without a trailing ".0" for whole values.
func numString(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	default:
		if n, ok := numeric(v); ok {
			return numString(n)
		}
		return ""
	}
}

// quoteIfSpaced wraps values containing whitespace in double quotes so they
// stay one token in the compiled query.
func quoteIfSpaced(s string) string {
	if strings.ContainsAny(s, " \t") {
		return `"` + s + `"`
	}
	return s
}
