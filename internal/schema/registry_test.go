package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func translatableCategories() []Category {
	return []Category{CategoryFile, CategoryURL, CategoryDomain, CategoryIP}
}

// The schema and the field mapping for each category must stay field-for-field
// consistent: every schema field has exactly one mapping entry and every
// mapping entry refers to a declared schema field.
func TestSchemaMappingConsistency(t *testing.T) {
	for _, cat := range translatableCategories() {
		t.Run(cat.String(), func(t *testing.T) {
			cs, err := SchemaFor(cat)
			require.NoError(t, err)
			fm, err := MappingFor(cat)
			require.NoError(t, err)

			schemaFields := map[string]bool{}
			for _, f := range cs.Fields {
				require.Falsef(t, schemaFields[f.Name], "duplicate schema field %q", f.Name)
				schemaFields[f.Name] = true
			}

			mappedFields := map[string]bool{}
			for _, e := range fm.Entries {
				require.Falsef(t, mappedFields[e.Field], "duplicate mapping entry %q", e.Field)
				mappedFields[e.Field] = true
				require.NotEmptyf(t, e.Keys, "mapping entry %q has no keys", e.Field)
				assert.Truef(t, schemaFields[e.Field], "mapping entry %q has no schema field", e.Field)
			}

			for name := range schemaFields {
				assert.Truef(t, mappedFields[name], "schema field %q has no mapping entry", name)
			}
		})
	}
}

func TestSchemaForCollection(t *testing.T) {
	_, err := SchemaFor(CategoryCollection)
	require.ErrorIs(t, err, ErrUnsupportedCategory)

	_, err = MappingFor(CategoryCollection)
	require.ErrorIs(t, err, ErrUnsupportedCategory)
}

func TestSchemaForUnknown(t *testing.T) {
	_, err := SchemaFor(CategoryUnknown)
	require.ErrorIs(t, err, ErrUnknownCategory)
}

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"FILE", CategoryFile, true},
		{"file", CategoryFile, true},
		{"  Url ", CategoryURL, true},
		{"DOMAIN", CategoryDomain, true},
		{"IP", CategoryIP, true},
		{"COLLECTION", CategoryCollection, true},
		{"IPS", CategoryUnknown, false},
		{"", CategoryUnknown, false},
	}
	for _, tc := range cases {
		got, err := ParseCategory(tc.in)
		if tc.ok {
			require.NoError(t, err, tc.in)
			assert.Equal(t, tc.want, got, tc.in)
		} else {
			assert.ErrorIs(t, err, ErrUnknownCategory, tc.in)
		}
	}
}

func TestMultiKeyEntryDeclared(t *testing.T) {
	fm, err := MappingFor(CategoryDomain)
	require.NoError(t, err)
	e, ok := fm.Entry("creation_update_date_after")
	require.True(t, ok)
	assert.Equal(t, []string{"creation_date", "last_update_date"}, e.Keys)
}
