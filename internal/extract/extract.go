// Package extract turns free text into a schema-conformant structured query
// by prompting the oracle once and leniently parsing its answer.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/threatlingo/threatlingo/internal/oracle"
	"github.com/threatlingo/threatlingo/internal/schema"
)

// ErrorKind discriminates the ways an oracle response can fail to yield a
// structured query.
type ErrorKind int

const (
	// NoStructureFound: the response contains no object literal at all.
	NoStructureFound ErrorKind = iota
	// MalformedOutput: an object literal was found but does not parse.
	MalformedOutput
	// UnexpectedShape: the parsed content is not a mapping-shaped value.
	UnexpectedShape
)

func (k ErrorKind) String() string {
	switch k {
	case NoStructureFound:
		return "no structure found"
	case MalformedOutput:
		return "malformed output"
	case UnexpectedShape:
		return "unexpected shape"
	default:
		return "unknown"
	}
}

// Error is a terminal extraction failure. Raw carries the full oracle
// response for diagnostics.
type Error struct {
	Kind ErrorKind
	Raw  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("extraction failed (%s)", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Extractor drives the oracle with a schema-derived extraction prompt. It
// does not retry; retries, if desired, are the caller's responsibility.
type Extractor struct {
	oracle oracle.Oracle
	log    *zap.Logger
}

// New creates an Extractor. A nil logger is replaced with a no-op one.
func New(o oracle.Oracle, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{oracle: o, log: log}
}

// Extract asks the oracle for a structured representation of queryText
// according to cs and parses the answer. Oracle transport failures propagate
// unchanged; response-interpretation failures come back as *Error.
func (x *Extractor) Extract(ctx context.Context, queryText string, cs *schema.CategorySchema) (schema.StructuredQuery, error) {
	prompt := BuildPrompt(queryText, cs)

	resp, err := x.oracle.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	literal, ok := ObjectLiteral(resp)
	if !ok {
		return nil, &Error{Kind: NoStructureFound, Raw: resp}
	}

	parsed, err := parseLiteral(literal, resp)
	if err != nil {
		return nil, err
	}

	return x.conform(parsed, cs), nil
}

// parseLiteral parses a candidate object literal into a StructuredQuery. It
// is separate from the lenient scan so the scan heuristic can be swapped for
// a stricter grammar without touching this validation.
func parseLiteral(literal, raw string) (schema.StructuredQuery, error) {
	var shape any
	if err := json.Unmarshal([]byte(literal), &shape); err != nil {
		return nil, &Error{Kind: MalformedOutput, Raw: raw, Err: err}
	}
	if _, isMap := shape.(map[string]any); !isMap {
		return nil, &Error{Kind: UnexpectedShape, Raw: raw, Err: fmt.Errorf("got %T", shape)}
	}

	var parsed schema.StructuredQuery
	if err := json.Unmarshal([]byte(literal), &parsed); err != nil {
		return nil, &Error{Kind: MalformedOutput, Raw: raw, Err: err}
	}
	return parsed, nil
}

// conform drops fields the schema does not declare and fields the oracle
// emitted as null.
func (x *Extractor) conform(q schema.StructuredQuery, cs *schema.CategorySchema) schema.StructuredQuery {
	known := make(map[string]bool, len(cs.Fields))
	for _, f := range cs.Fields {
		known[f.Name] = true
	}

	out := make(schema.StructuredQuery, len(q))
	for name, v := range q {
		if !known[name] {
			x.log.Debug("dropping undeclared field", zap.String("field", name))
			continue
		}
		if v.Kind == schema.KindNone {
			continue
		}
		out[name] = v
	}
	return out
}

// BuildPrompt states the schema's field names and semantics, the negation
// convention, and the raw query, instructing the oracle to emit only a JSON
// object.
func BuildPrompt(queryText string, cs *schema.CategorySchema) string {
	var sb strings.Builder
	sb.WriteString("Extract structured data from the following natural language query, without explaining ANYTHING. DO NOT EXPLAIN ANYTHING.\n")
	sb.WriteString("Emit only a JSON object using the field names below. Omit fields the query does not mention.\n")
	sb.WriteString("Constraint fields are objects of the form {\"is_negative\": <bool>, \"value\": <scalar or list of scalars>}; set is_negative to true to express a negation.\n")
	sb.WriteString("Boolean flag fields are plain true or false. Integer fields are plain numbers.\n\n")

	fmt.Fprintf(&sb, "Fields for the %s category:\n", cs.Category)
	for _, f := range cs.Fields {
		fmt.Fprintf(&sb, "- %s: %s", f.Name, f.Desc)
		switch f.Kind {
		case schema.FieldEnumModifier:
			fmt.Fprintf(&sb, " (value must be one of: %s)", strings.Join(f.Enum, ", "))
		case schema.FieldBool:
			sb.WriteString(" (boolean flag)")
		case schema.FieldInt:
			sb.WriteString(" (integer)")
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "\nQuery: %s\n", queryText)
	return sb.String()
}

// ObjectLiteral returns the substring from the first '{' to the last '}' of
// text. Oracle responses frequently wrap the JSON payload in prose or code
// fences; this greedy scan is deliberately permissive and the JSON parser
// still validates what it finds.
func ObjectLiteral(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}
