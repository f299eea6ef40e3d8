package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threatlingo/threatlingo/internal/oracle"
	"github.com/threatlingo/threatlingo/internal/schema"
)

func fileSchema(t *testing.T) *schema.CategorySchema {
	t.Helper()
	cs, err := schema.SchemaFor(schema.CategoryFile)
	require.NoError(t, err)
	return cs
}

func TestObjectLiteral(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"prose around", "Sure! Here you go:\n{\"a\":1}\nHope that helps.", `{"a":1}`, true},
		{"code fence", "```json\n{\"a\": {\"b\": 2}}\n```", `{"a": {"b": 2}}`, true},
		{"greedy to last brace", `x {"a":1} y {"b":2} z`, `{"a":1} y {"b":2}`, true},
		{"no braces", "no json here", "", false},
		{"reversed braces", "} {", "", false},
		{"empty", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ObjectLiteral(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtract(t *testing.T) {
	fake := oracle.NewFake("Here is the JSON:\n" +
		`{"file_type": {"is_negative": false, "value": "pdf"}, "min_file_size": {"value": 2097152}, "is_signed": true}`)
	x := New(fake, nil)

	q, err := x.Extract(context.Background(), "malicious PDFs larger than 2MB", fileSchema(t))
	require.NoError(t, err)

	require.Contains(t, q, "file_type")
	assert.Equal(t, []any{"pdf"}, q["file_type"].Modifier.Values)
	require.Contains(t, q, "min_file_size")
	assert.Equal(t, []any{float64(2097152)}, q["min_file_size"].Modifier.Values)
	require.Contains(t, q, "is_signed")
	assert.True(t, q["is_signed"].Bool)

	// The prompt carries the schema and the raw query.
	require.Equal(t, 1, fake.CallCount())
	assert.Contains(t, fake.Prompts[0], "file_type")
	assert.Contains(t, fake.Prompts[0], "is_negative")
	assert.Contains(t, fake.Prompts[0], "malicious PDFs larger than 2MB")
}

func TestExtractDropsUndeclaredAndNullFields(t *testing.T) {
	fake := oracle.NewFake(`{"file_type": "pdf", "invented_field": "x", "tags": null}`)
	x := New(fake, nil)

	q, err := x.Extract(context.Background(), "pdfs", fileSchema(t))
	require.NoError(t, err)
	assert.Contains(t, q, "file_type")
	assert.NotContains(t, q, "invented_field")
	assert.NotContains(t, q, "tags")
}

func TestExtractNoStructureFound(t *testing.T) {
	fake := oracle.NewFake("I cannot produce JSON for that.")
	x := New(fake, nil)

	_, err := x.Extract(context.Background(), "x", fileSchema(t))
	var xerr *Error
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, NoStructureFound, xerr.Kind)
	assert.Equal(t, "I cannot produce JSON for that.", xerr.Raw)
}

func TestExtractMalformedOutput(t *testing.T) {
	fake := oracle.NewFake(`{"file_type": "pdf",}`)
	x := New(fake, nil)

	_, err := x.Extract(context.Background(), "x", fileSchema(t))
	var xerr *Error
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, MalformedOutput, xerr.Kind)
	assert.NotEmpty(t, xerr.Raw)
}

func TestParseLiteralUnexpectedShape(t *testing.T) {
	// The greedy brace scan always hands parseLiteral something starting
	// with '{', but the parse stage must not rely on that: a swapped-in
	// scanner could surface lists or scalars.
	_, err := parseLiteral(`[1, 2, 3]`, "raw response")
	var xerr *Error
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, UnexpectedShape, xerr.Kind)
	assert.Equal(t, "raw response", xerr.Raw)
}

func TestExtractOracleErrorPropagates(t *testing.T) {
	fake := &oracle.Fake{Err: &oracle.UnavailableError{Backend: "test", Err: errors.New("down")}}
	x := New(fake, nil)

	_, err := x.Extract(context.Background(), "x", fileSchema(t))
	require.Error(t, err)
	assert.True(t, oracle.IsUnavailable(err))

	var xerr *Error
	assert.False(t, errors.As(err, &xerr))
}
