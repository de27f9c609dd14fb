package form

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdrahmanz/curator/document"
	"github.com/mdrahmanz/curator/schema"
)

func TestLabel(t *testing.T) {
	cases := map[string]string{
		"title":       "Title",
		"publishedAt": "Published At",
		"url":         "Url",
		"URL":         "URL",
		"coverURL":    "Cover URL",
		"isActive":    "Is Active",
		"a":           "A",
		"":            "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Label(in))
	}
}

func TestPlanCreateFormControls(t *testing.T) {
	plan := []schema.PlannedField{
		{Name: "title", Kind: schema.FieldString},
		{Name: "content", Kind: schema.FieldString},
		{Name: "projectDescription", Kind: schema.FieldString},
		{Name: "email", Kind: schema.FieldEmail},
		{Name: "views", Kind: schema.FieldNumber},
		{Name: "featured", Kind: schema.FieldBoolean},
		{Name: "publishedAt", Kind: schema.FieldTimestamp},
		{Name: "dueDate", Kind: schema.FieldDatetime},
		{Name: "extra", Kind: schema.FieldAny},
	}

	widgets := PlanCreateForm(plan, nil)
	require.Len(t, widgets, len(plan))

	byName := make(map[string]Widget)
	for _, w := range widgets {
		byName[w.Name] = w
	}

	assert.Equal(t, ControlText, byName["title"].Control)
	assert.Equal(t, ControlTextarea, byName["content"].Control)
	assert.Equal(t, ControlTextarea, byName["projectDescription"].Control)
	assert.Equal(t, ControlText, byName["email"].Control)
	assert.Equal(t, ControlNumber, byName["views"].Control)
	assert.Equal(t, ControlCheckbox, byName["featured"].Control)
	assert.Equal(t, ControlDateTime, byName["publishedAt"].Control)
	assert.Equal(t, ControlDateTime, byName["dueDate"].Control)
	assert.Equal(t, ControlText, byName["extra"].Control)
}

func TestPlanCreateFormPreservesOrder(t *testing.T) {
	plan := []schema.PlannedField{
		{Name: "b", Kind: schema.FieldString},
		{Name: "a", Kind: schema.FieldNumber},
		{Name: "c", Kind: schema.FieldBoolean},
	}
	widgets := PlanCreateForm(plan, nil)
	require.Len(t, widgets, 3)
	assert.Equal(t, "b", widgets[0].Name)
	assert.Equal(t, "a", widgets[1].Name)
	assert.Equal(t, "c", widgets[2].Name)
}

func TestInferredCollectionRendersLikeItsSample(t *testing.T) {
	// sample → synthesized schema → plan → create form, end to end
	sample := document.New("p1")
	sample.Set("title", document.String("Hello"))
	sample.Set("views", document.Number(42))
	sample.Set("featured", document.Bool(true))
	sample.Set("bio", document.String(strings.Repeat("a", 150)))

	def := schema.Synthesize("people", sample)
	require.Equal(t, []schema.FieldDef{
		{Name: "id", Type: schema.FieldString},
		{Name: "title", Type: schema.FieldString},
		{Name: "views", Type: schema.FieldNumber},
		{Name: "featured", Type: schema.FieldBoolean},
		{Name: "bio", Type: schema.FieldString},
	}, def.Fields)

	plan := schema.Plan(def.Source())
	require.Len(t, plan, 4)
	assert.Equal(t, "title", plan[0].Name)
	assert.Equal(t, "bio", plan[3].Name)

	widgets := PlanCreateForm(plan, sample)
	require.Len(t, widgets, 4)
	assert.Equal(t, ControlText, widgets[0].Control)
	assert.Equal(t, ControlNumber, widgets[1].Control)
	assert.Equal(t, ControlCheckbox, widgets[2].Control)
	// the sampled bio runs past the length threshold, so create mode widens it
	assert.Equal(t, ControlTextarea, widgets[3].Control)
}

func TestPlanEditFormPrefills(t *testing.T) {
	published := time.Date(2024, 5, 18, 14, 30, 45, 0, time.UTC)
	doc := document.New("post-1")
	doc.Set("title", document.String("Hello"))
	doc.Set("body", document.String(strings.Repeat("x", 120)))
	doc.Set("note", document.String("line one\nline two"))
	doc.Set("views", document.Number(42))
	doc.Set("featured", document.Bool(true))
	doc.Set("publishedAt", document.Time(published))

	widgets := PlanEditForm(doc)
	require.Len(t, widgets, 6)

	byName := make(map[string]Widget)
	for _, w := range widgets {
		byName[w.Name] = w
	}

	assert.Equal(t, ControlText, byName["title"].Control)
	assert.Equal(t, "Hello", byName["title"].Value)

	// long strings and strings with newlines widen to a textarea
	assert.Equal(t, ControlTextarea, byName["body"].Control)
	assert.Equal(t, ControlTextarea, byName["note"].Control)

	assert.Equal(t, ControlNumber, byName["views"].Control)
	assert.Equal(t, "42", byName["views"].Value)

	assert.Equal(t, ControlCheckbox, byName["featured"].Control)
	assert.True(t, byName["featured"].Checked)

	assert.Equal(t, ControlDateTime, byName["publishedAt"].Control)
	assert.Equal(t, "2024-05-18T14:30", byName["publishedAt"].Value)
}

func TestPlanEditFormSkipsID(t *testing.T) {
	doc := document.New("doc-1")
	doc.Set("id", document.String("doc-1"))
	doc.Set("title", document.String("Hello"))

	widgets := PlanEditForm(doc)
	require.Len(t, widgets, 1)
	assert.Equal(t, "title", widgets[0].Name)
}

func TestDecodeSubmission(t *testing.T) {
	plan := []schema.PlannedField{
		{Name: "title", Kind: schema.FieldString},
		{Name: "views", Kind: schema.FieldNumber},
		{Name: "featured", Kind: schema.FieldBoolean},
		{Name: "publishedAt", Kind: schema.FieldTimestamp},
		{Name: "contact", Kind: schema.FieldEmail},
	}
	values := url.Values{
		"title":       {"Hello"},
		"views":       {"12.5"},
		"featured":    {"on"},
		"publishedAt": {"2024-05-18T14:30"},
		"contact":     {"me@example.com"},
	}

	doc, errs := DecodeSubmission(plan, values)
	require.Nil(t, errs)
	require.NotNil(t, doc)

	v, ok := doc.Get("views")
	require.True(t, ok)
	assert.Equal(t, document.KindNumber, v.Kind())
	assert.Equal(t, 12.5, v.Num())

	v, _ = doc.Get("featured")
	assert.Equal(t, document.KindBool, v.Kind())
	assert.True(t, v.Bool())

	v, _ = doc.Get("publishedAt")
	require.Equal(t, document.KindTime, v.Kind())
	assert.Equal(t, time.Date(2024, 5, 18, 14, 30, 0, 0, time.UTC), v.Time())
}

func TestDecodeSubmissionCollectsErrors(t *testing.T) {
	plan := []schema.PlannedField{
		{Name: "views", Kind: schema.FieldNumber},
		{Name: "publishedAt", Kind: schema.FieldTimestamp},
		{Name: "contact", Kind: schema.FieldEmail},
	}
	values := url.Values{
		"views":       {"not a number"},
		"publishedAt": {"yesterday"},
		"contact":     {"not-an-email"},
	}

	doc, errs := DecodeSubmission(plan, values)
	assert.Nil(t, doc)
	require.Len(t, errs, 3)
	assert.Contains(t, errs, "views")
	assert.Contains(t, errs, "publishedAt")
	assert.Contains(t, errs, "contact")
}

func TestDecodeSubmissionUncheckedBoolAndEmptyFields(t *testing.T) {
	plan := []schema.PlannedField{
		{Name: "featured", Kind: schema.FieldBoolean},
		{Name: "views", Kind: schema.FieldNumber},
		{Name: "publishedAt", Kind: schema.FieldTimestamp},
	}

	doc, errs := DecodeSubmission(plan, url.Values{})
	require.Nil(t, errs)

	v, _ := doc.Get("featured")
	assert.Equal(t, document.KindBool, v.Kind())
	assert.False(t, v.Bool())

	v, _ = doc.Get("views")
	assert.Equal(t, document.KindNumber, v.Kind())
	assert.Equal(t, float64(0), v.Num())

	v, _ = doc.Get("publishedAt")
	assert.Equal(t, document.KindNull, v.Kind())
}

func TestEditPlanClassifiesCurrentValues(t *testing.T) {
	doc := document.New("doc-1")
	doc.Set("id", document.String("doc-1"))
	doc.Set("title", document.String("Hello"))
	doc.Set("views", document.Number(10))
	doc.Set("publishedAt", document.Time(time.Now()))

	plan := EditPlan(doc)
	require.Len(t, plan, 3)
	assert.Equal(t, schema.FieldString, plan[0].Kind)
	assert.Equal(t, schema.FieldNumber, plan[1].Kind)
	assert.Equal(t, schema.FieldTimestamp, plan[2].Kind)
}

func TestRenderEscapesValues(t *testing.T) {
	widgets := []Widget{
		{Name: "title", Label: "Title", Control: ControlText, Value: `<script>alert("x")</script>`},
	}
	html, err := Render(widgets, nil)
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>")
	assert.Contains(t, string(html), "&lt;script&gt;")
}

func TestRenderShowsFieldErrors(t *testing.T) {
	widgets := []Widget{
		{Name: "views", Label: "Views", Control: ControlNumber, Value: "abc"},
	}
	html, err := Render(widgets, FieldErrors{"views": "must be a number"})
	require.NoError(t, err)
	assert.Contains(t, string(html), "must be a number")
}
