// Package classify assigns one of the closed query categories to free-form
// text by prompting the oracle and matching its answer leniently.
package classify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/threatlingo/threatlingo/internal/oracle"
	"github.com/threatlingo/threatlingo/internal/schema"
)

// ErrClassificationFailed means the retry budget was exhausted without a
// recognizable category in any oracle response. Callers treat this as a
// terminal, user-visible failure.
var ErrClassificationFailed = errors.New("classification failed")

// DefaultMaxAttempts bounds the retry loop.
const DefaultMaxAttempts = 10

const classificationPrompt = `You are an expert computer science assistant. You will be provided with a query asking for type of things and must classify it into one of the following categories: "FILE", "URL", "DOMAIN", "IP", or "COLLECTION".

Examples:
- "I want malicious PEs" -> "FILE"
- "Check the reputation of 8.8.8.8" -> "IP"
- "Analyze www.example.com on VirusTotal" -> "DOMAIN"
- "Verify if http://malicious.com is in blacklists" -> "URL"

Return only one of these options without additional explanations.

Query:
%s

Expected output:
`

// Classifier drives the oracle with a fixed classification prompt and a
// bounded retry loop.
type Classifier struct {
	oracle      oracle.Oracle
	maxAttempts int
	log         *zap.Logger
}

// New creates a Classifier. A nil logger is replaced with a no-op one.
func New(o oracle.Oracle, log *zap.Logger) *Classifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Classifier{
		oracle:      o,
		maxAttempts: DefaultMaxAttempts,
		log:         log,
	}
}

// WithMaxAttempts overrides the retry budget. Values below 1 are ignored.
func (c *Classifier) WithMaxAttempts(n int) *Classifier {
	if n >= 1 {
		c.maxAttempts = n
	}
	return c
}

// Classify returns the category of queryText. The identical prompt is
// re-issued on every attempt; oracle outputs are free text, so any category
// label occurring as a substring of the uppercased response counts as a
// match. Transport failures consume attempts like garbage responses do.
func (c *Classifier) Classify(ctx context.Context, queryText string) (schema.Category, error) {
	prompt := fmt.Sprintf(classificationPrompt, queryText)

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return schema.CategoryUnknown, fmt.Errorf("classify: %w", err)
		}

		resp, err := c.oracle.Complete(ctx, prompt)
		if err != nil {
			c.log.Debug("classification attempt failed",
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}

		answer := strings.ToUpper(strings.TrimSpace(resp))
		for _, label := range schema.Labels() {
			if strings.Contains(answer, label) {
				cat, err := schema.ParseCategory(label)
				if err != nil {
					return schema.CategoryUnknown, err
				}
				return cat, nil
			}
		}

		c.log.Debug("unrecognized classification response",
			zap.Int("attempt", attempt),
			zap.String("response", resp))
	}

	return schema.CategoryUnknown, fmt.Errorf("%w after %d attempts", ErrClassificationFailed, c.maxAttempts)
}
