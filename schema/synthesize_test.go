package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdrahmanz/curator/document"
)

func samplePost() *document.Document {
	doc := document.New("post-1")
	doc.Set("title", document.String("Hello"))
	doc.Set("authorEmail", document.String("me@example.com"))
	doc.Set("publishedAt", document.Time(time.Date(2024, 5, 18, 14, 0, 0, 0, time.UTC)))
	doc.Set("views", document.Number(42))
	doc.Set("featured", document.Bool(true))
	return doc
}

func TestSynthesizeFromSample(t *testing.T) {
	def := Synthesize("posts", samplePost())

	require.False(t, def.IsEmpty())
	assert.Equal(t, "posts", def.Collection)
	require.Len(t, def.Fields, 6) // id plus five sample fields

	assert.Equal(t, FieldDef{Name: "id", Type: FieldString}, def.Fields[0])
	assert.Equal(t, FieldDef{Name: "title", Type: FieldString}, def.Fields[1])
	assert.Equal(t, FieldDef{Name: "authorEmail", Type: FieldEmail}, def.Fields[2])
	assert.Equal(t, FieldDef{Name: "publishedAt", Type: FieldTimestamp}, def.Fields[3])
	assert.Equal(t, FieldDef{Name: "views", Type: FieldNumber}, def.Fields[4])
	assert.Equal(t, FieldDef{Name: "featured", Type: FieldBoolean}, def.Fields[5])
}

func TestSynthesizeWithoutSample(t *testing.T) {
	for _, sample := range []*document.Document{nil, document.New("")} {
		def := Synthesize("posts", sample)
		assert.True(t, def.IsEmpty())
		assert.Empty(t, def.Fields)
		assert.NotEmpty(t, def.Note)
	}
}

func TestSynthesizePlanRoundTrip(t *testing.T) {
	// planning the synthesized definition yields the sample's field names,
	// in order, with id dropped
	sample := samplePost()
	def := Synthesize("posts", sample)
	plan := Plan(def.Source())

	require.Len(t, plan, sample.Len())
	for i, f := range sample.Fields() {
		assert.Equal(t, f.Name, plan[i].Name, "field %d", i)
		assert.Equal(t, Classify(f.Value), plan[i].Kind, "field %d", i)
	}
}

func TestPlanDropsOnlyID(t *testing.T) {
	src := "fields:\n  - name: id\n    type: string\n  - name: title\n    type: string\n  - name: identity\n    type: string\n"
	plan := Plan(src)
	require.Len(t, plan, 2)
	assert.Equal(t, "title", plan[0].Name)
	assert.Equal(t, "identity", plan[1].Name)
}

func TestPlanEchoesDeclaredTokens(t *testing.T) {
	src := "fields:\n  - name: when\n    type: datetime\n  - name: stamp\n    type: timestamp\n"
	plan := Plan(src)
	require.Len(t, plan, 2)
	assert.Equal(t, FieldDatetime, plan[0].Kind)
	assert.Equal(t, FieldTimestamp, plan[1].Kind)
}

func TestPlanOfGarbageIsEmpty(t *testing.T) {
	assert.Empty(t, Plan("this is not yaml: ["))
	assert.Empty(t, Plan(""))
	assert.Empty(t, Plan("fields: []\n"))
}
