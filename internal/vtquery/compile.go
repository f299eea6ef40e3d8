// Package vtquery compiles a structured query into the VirusTotal
// Intelligence search syntax: space-joined key:value tokens, NOT-prefixed
// negations, bare tag tokens, and parenthesized OR groups. The output grammar
// is a wire contract with the search platform and must stay byte-stable.
package vtquery

import (
	"fmt"
	"strings"

	"github.com/threatlingo/threatlingo/internal/schema"
)

// Compile renders q into the platform query string for category cat. It is
// pure and deterministic: fields are emitted in the mapping table's declared
// order and nothing outside q and the static tables influences the output.
// An empty result is valid, not an error. The category is validated here even
// though the pipeline validates it upstream.
func Compile(q schema.StructuredQuery, cat schema.Category) (string, error) {
	fm, err := schema.MappingFor(cat)
	if err != nil {
		return "", fmt.Errorf("compile: invalid category: %w", err)
	}

	var tokens []string
	for _, entry := range fm.Entries {
		v, ok := q[entry.Field]
		if !ok || v.Kind == schema.KindNone {
			continue
		}

		// The multi-key path comes first: a boolean value on an OR-expanded
		// field must not fall through to the bare-tag case.
		if len(entry.Keys) > 1 {
			if group := compileGroup(entry, v); group != "" {
				tokens = append(tokens, group)
			}
			continue
		}

		key := entry.Keys[0]
		switch v.Kind {
		case schema.KindBool:
			if v.Bool {
				tokens = append(tokens, boolToken(key))
			}
		case schema.KindInt:
			tokens = append(tokens, key+":"+formatScalar(entry.Field, key, float64(v.Int)))
		case schema.KindModifier:
			tokens = append(tokens, compileModifier(entry.Field, key, v.Modifier)...)
		}
	}

	return strings.Join(tokens, " "), nil
}

// compileModifier emits one token per value; a sequence becomes several
// space-joined tokens (implicit AND), unlike the multi-key case which OR-joins
// across keys.
func compileModifier(field, key string, m schema.Modifier) []string {
	prefix := ""
	if m.IsNegative {
		prefix = "NOT "
	}

	tokens := make([]string, 0, len(m.Values))
	for _, v := range m.Values {
		tokens = append(tokens, prefix+key+":"+formatScalar(field, key, v))
	}
	return tokens
}

// compileGroup expands a field mapped to several keys into a parenthesized OR
// group, one disjunct per key, each value carrying a trailing minimum-bound
// marker.
func compileGroup(entry schema.MappingEntry, v schema.FieldValue) string {
	value := groupValue(entry.Field, v)
	if value == "" {
		return ""
	}

	parts := make([]string, 0, len(entry.Keys))
	for _, key := range entry.Keys {
		parts = append(parts, key+":"+withMinBound(formatScalar(entry.Field, key, value)))
	}
	return "( " + strings.Join(parts, " OR ") + " )"
}

// groupValue renders the field's single value for OR expansion. A sequence of
// strings is space-joined with whitespace-bearing elements quoted.
func groupValue(field string, v schema.FieldValue) string {
	switch v.Kind {
	case schema.KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case schema.KindInt:
		return fmt.Sprintf("%d", v.Int)
	case schema.KindModifier:
		if len(v.Modifier.Values) == 0 {
			return ""
		}
		if !v.Modifier.List {
			return scalarString(v.Modifier.Values[0])
		}
		parts := make([]string, 0, len(v.Modifier.Values))
		for _, el := range v.Modifier.Values {
			parts = append(parts, quoteIfSpaced(scalarString(el)))
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}

// boolToken renders a true boolean flag. A mapped key that already encodes a
// complete token (the IP category's count-range keys) is emitted verbatim;
// anything else becomes a tag token.
func boolToken(key string) string {
	if strings.Contains(key, ":") {
		return key
	}
	return "tag:" + key
}

func withMinBound(s string) string {
	if strings.HasSuffix(s, "+") || strings.HasSuffix(s, "-") {
		return s
	}
	return s + "+"
}
