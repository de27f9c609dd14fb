package document

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSONScalars(t *testing.T) {
	cases := []struct {
		raw  string
		kind Kind
	}{
		{`"hello"`, KindString},
		{`"2024-05-18T14:00:00Z"`, KindTime},
		{`"2024-05-18"`, KindString}, // only exact RFC 3339 promotes to a timestamp
		{`42`, KindNumber},
		{`3.14`, KindNumber},
		{`true`, KindBool},
		{`false`, KindBool},
		{`null`, KindNull},
		{`{"a":1}`, KindOpaque},
		{`[1,2]`, KindOpaque},
	}
	for _, tc := range cases {
		v := FromJSON(json.RawMessage(tc.raw))
		assert.Equal(t, tc.kind, v.Kind(), "raw %s", tc.raw)
	}
}

func TestValueDisplay(t *testing.T) {
	assert.Equal(t, "hello", String("hello").Display())
	assert.Equal(t, "42", Number(42).Display())
	assert.Equal(t, "12.5", Number(12.5).Display())
	assert.Equal(t, "true", Bool(true).Display())
	assert.Equal(t, "", Null().Display())
}

func TestSetReplacesInPlace(t *testing.T) {
	doc := New("d1")
	doc.Set("a", String("one"))
	doc.Set("b", String("two"))
	doc.Set("a", String("updated"))

	require.Equal(t, 2, doc.Len())
	assert.Equal(t, "a", doc.Fields()[0].Name)
	v, ok := doc.Get("a")
	require.True(t, ok)
	assert.Equal(t, "updated", v.Str())
}

func TestEncodeDecodePreservesFieldOrder(t *testing.T) {
	doc := New("d1")
	doc.Set("zeta", String("z"))
	doc.Set("alpha", Number(1))
	doc.Set("mid", Bool(true))
	doc.Set("when", Time(time.Date(2024, 5, 18, 14, 0, 0, 0, time.UTC)))
	doc.Set("nothing", Null())

	data, err := doc.EncodeFields()
	require.NoError(t, err)

	decoded, err := DecodeFields("d1", data)
	require.NoError(t, err)
	require.Equal(t, doc.Len(), decoded.Len())

	for i, f := range doc.Fields() {
		assert.Equal(t, f.Name, decoded.Fields()[i].Name, "field %d", i)
	}
}

func TestTimestampSurvivesRoundTrip(t *testing.T) {
	when := time.Date(2024, 5, 18, 14, 30, 0, 0, time.UTC)
	doc := New("d1")
	doc.Set("publishedAt", Time(when))

	data, err := doc.EncodeFields()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"2024-05-18T14:30:00Z"`)

	decoded, err := DecodeFields("d1", data)
	require.NoError(t, err)
	v, ok := decoded.Get("publishedAt")
	require.True(t, ok)
	require.Equal(t, KindTime, v.Kind())
	assert.True(t, when.Equal(v.Time()))
}

func TestOpaquePassesThroughUntouched(t *testing.T) {
	raw := json.RawMessage(`{"nested":{"deep":[1,2,3]}}`)
	doc := New("d1")
	doc.Set("payload", Opaque(raw))

	data, err := doc.EncodeFields()
	require.NoError(t, err)

	decoded, err := DecodeFields("d1", data)
	require.NoError(t, err)
	v, _ := decoded.Get("payload")
	require.Equal(t, KindOpaque, v.Kind())
	assert.JSONEq(t, string(raw), string(v.Raw()))
}

func TestDecodeFieldsRejectsNonObjects(t *testing.T) {
	for _, raw := range []string{`[]`, `"str"`, `42`, ``, `{`} {
		_, err := DecodeFields("d1", []byte(raw))
		assert.Error(t, err, "raw %s", raw)
	}
}
