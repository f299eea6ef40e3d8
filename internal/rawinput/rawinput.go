// Package rawinput recognizes input that is already a literal artifact
// (hash, IP, domain or URL) and needs no model involvement.
package rawinput

import (
	"regexp"
	"strings"
)

type pattern struct {
	kind string
	re   *regexp.Regexp
}

// Patterns are tested in this order. The formats are disjoint by length and
// charset so at most one can match, but the order is fixed for determinism.
var patterns = []pattern{
	{"MD5", regexp.MustCompile(`^[a-fA-F0-9]{32}$`)},
	{"SHA1", regexp.MustCompile(`^[a-fA-F0-9]{40}$`)},
	{"SHA256", regexp.MustCompile(`^[a-fA-F0-9]{64}$`)},
	{"IP", regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)},
	{"DOMAIN", regexp.MustCompile(`^[a-zA-Z0-9][-a-zA-Z0-9.]*\.[a-zA-Z]{2,}$`)},
	{"URL", regexp.MustCompile(`^https?://[-a-zA-Z0-9@:%._\+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b[-a-zA-Z0-9()@:%_\+.~#?&//=]*$`)},
}

// Detect reports whether every whitespace-separated token of text matches the
// same literal format, and if so which one (uppercase kind). Empty input is
// not raw.
func Detect(text string) (bool, string) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return false, ""
	}

	for _, p := range patterns {
		all := true
		for _, tok := range tokens {
			if !p.re.MatchString(tok) {
				all = false
				break
			}
		}
		if all {
			return true, p.kind
		}
	}
	return false, ""
}
