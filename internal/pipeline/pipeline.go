// Package pipeline composes raw-input detection, classification, extraction
// and compilation into the end-to-end translation flow.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/threatlingo/threatlingo/internal/classify"
	"github.com/threatlingo/threatlingo/internal/extract"
	"github.com/threatlingo/threatlingo/internal/oracle"
	"github.com/threatlingo/threatlingo/internal/rawinput"
	"github.com/threatlingo/threatlingo/internal/schema"
	"github.com/threatlingo/threatlingo/internal/vtquery"
)

// ErrNotSecurityQuery means the relevance gate decided the input is not about
// files, URLs, domains, IPs or malware.
var ErrNotSecurityQuery = errors.New("query is not security related")

const translationPrompt = `Translate this text to English, without replying. Only output the translation, nothing else:
%s`

const relevancePrompt = `You are a computer science query validator. Determine if the query is related to malware, files, domains, IP, or URLs.
Return ONLY "true" or "false". Do not give any additional explanation.

Examples:
"PDF files" -> true
"give me some domains that are malicious" -> true
"what's the weather today" -> false
"tell me a joke" -> false
"IP with suspicious connections" -> true
"what's the capital of France" -> false

Query to validate:
%s

Output (true/false):`

// Options toggle the optional pre-classification gates.
type Options struct {
	// TranslateInput runs the query through a translate-to-English prompt
	// before classification.
	TranslateInput bool
	// RelevanceGate rejects queries unrelated to security analysis.
	RelevanceGate bool
}

// Result is a completed translation. Either Literal is set (raw fast path,
// no oracle involved) or Structured is.
type Result struct {
	Structured schema.StructuredQuery
	Literal    string
	Compiled   string
	Category   string
}

// Translator runs the full flow. It holds no per-request state and is safe
// for concurrent use.
type Translator struct {
	oracle     oracle.Oracle
	classifier *classify.Classifier
	extractor  *extract.Extractor
	opts       Options
	log        *zap.Logger
}

// New creates a Translator around the given oracle. A nil logger is replaced
// with a no-op one.
func New(o oracle.Oracle, opts Options, log *zap.Logger) *Translator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Translator{
		oracle:     o,
		classifier: classify.New(o, log),
		extractor:  extract.New(o, log),
		opts:       opts,
		log:        log,
	}
}

// Translate turns rawText into a platform query. explicitCategory, when
// non-empty, overrides classification. Every failure is a typed error; the
// pipeline never panics past this boundary.
func (t *Translator) Translate(ctx context.Context, rawText, explicitCategory string) (*Result, error) {
	if isRaw, kind := rawinput.Detect(rawText); isRaw {
		literal := strings.TrimSpace(rawText)
		t.log.Debug("raw input fast path", zap.String("kind", kind))
		return &Result{
			Literal:  literal,
			Compiled: literal,
			Category: kind,
		}, nil
	}

	text := rawText
	if t.opts.TranslateInput {
		translated, err := t.oracle.Complete(ctx, fmt.Sprintf(translationPrompt, rawText))
		if err != nil {
			return nil, fmt.Errorf("translate input: %w", err)
		}
		text = translated
	}

	if t.opts.RelevanceGate {
		verdict, err := t.oracle.Complete(ctx, fmt.Sprintf(relevancePrompt, text))
		if err != nil {
			return nil, fmt.Errorf("relevance gate: %w", err)
		}
		if !strings.Contains(strings.ToLower(verdict), "true") {
			return nil, ErrNotSecurityQuery
		}
	}

	cat, err := t.resolveCategory(ctx, text, explicitCategory)
	if err != nil {
		return nil, err
	}
	if !schema.Translatable(cat) {
		return nil, fmt.Errorf("%w: %s", schema.ErrUnsupportedCategory, cat)
	}

	cs, err := schema.SchemaFor(cat)
	if err != nil {
		return nil, err
	}

	structured, err := t.extractor.Extract(ctx, text, cs)
	if err != nil {
		return nil, err
	}

	compiled, err := vtquery.Compile(structured, cat)
	if err != nil {
		return nil, err
	}

	t.log.Info("query translated",
		zap.String("category", cat.String()),
		zap.Int("fields", len(structured)))

	return &Result{
		Structured: structured,
		Compiled:   compiled,
		Category:   cat.String(),
	}, nil
}

func (t *Translator) resolveCategory(ctx context.Context, text, explicit string) (schema.Category, error) {
	if strings.TrimSpace(explicit) != "" {
		return schema.ParseCategory(explicit)
	}
	return t.classifier.Classify(ctx, text)
}
