package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceRoundTrip(t *testing.T) {
	def := Definition{
		Collection: "posts",
		Fields: []FieldDef{
			{Name: "title", Type: FieldString},
			{Name: "publishedAt", Type: FieldTimestamp},
		},
		Note: "hand-tuned",
	}

	src := def.Source()
	assert.Contains(t, src, "# curator schema for posts")

	parsed := ParseSource(src)
	assert.Equal(t, def.Fields, parsed.Fields)
	assert.Equal(t, def.Note, parsed.Note)
}

func TestParseSourceSkipsNamelessFields(t *testing.T) {
	src := "fields:\n  - name: title\n    type: string\n  - type: number\n  - name: \"  \"\n    type: string\n"
	parsed := ParseSource(src)
	require.Len(t, parsed.Fields, 1)
	assert.Equal(t, "title", parsed.Fields[0].Name)
}

func TestParseSourceBadYAMLIsEmpty(t *testing.T) {
	parsed := ParseSource("fields: [unclosed")
	assert.True(t, parsed.IsEmpty())
}

func TestValidate(t *testing.T) {
	good := Definition{Fields: []FieldDef{
		{Name: "title", Type: FieldString},
		{Name: "views", Type: FieldNumber},
	}}
	assert.NoError(t, good.Validate())

	dup := Definition{Fields: []FieldDef{
		{Name: "title", Type: FieldString},
		{Name: "title", Type: FieldNumber},
	}}
	assert.ErrorContains(t, dup.Validate(), "duplicate")

	unknown := Definition{Fields: []FieldDef{{Name: "title", Type: "varchar"}}}
	assert.ErrorContains(t, unknown.Validate(), "unknown type")

	nameless := Definition{Fields: []FieldDef{{Name: " ", Type: FieldString}}}
	assert.Error(t, nameless.Validate())
}
