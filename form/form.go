package form

import (
	"strings"
	"time"
	"unicode"

	"github.com/mdrahmanz/curator/document"
	"github.com/mdrahmanz/curator/schema"
)

// Control is the input widget chosen for a field.
type Control string

const (
	ControlText     Control = "text"
	ControlTextarea Control = "textarea"
	ControlNumber   Control = "number"
	ControlCheckbox Control = "checkbox"
	ControlDateTime Control = "datetime"
)

// Widget is one renderable form control with its prefill state.
type Widget struct {
	Name    string
	Label   string
	Control Control
	Value   string // prefill for text/number/datetime controls
	Checked bool   // prefill for checkboxes
}

// datetimeLocal is the wire format of HTML datetime-local inputs,
// minute precision.
const datetimeLocal = "2006-01-02T15:04"

// longTextThreshold is the string length past which edit mode switches a
// field to a multi-line control.
const longTextThreshold = 100

// PlanCreateForm chooses a widget per planned field, dispatching on the
// declared kind. Unknown kinds fall through to the text heuristic, so a
// hand-edited schema with a typo still renders something usable.
//
// sample may be nil. When the plan was inferred, the sampled document's
// values refine text fields: a sample string over the length threshold or
// containing a newline widens the field to a multi-line control even when
// its name says nothing.
func PlanCreateForm(plan []schema.PlannedField, sample *document.Document) []Widget {
	widgets := make([]Widget, 0, len(plan))
	for _, f := range plan {
		w := Widget{Name: f.Name, Label: Label(f.Name)}
		switch f.Kind {
		case schema.FieldBoolean:
			w.Control = ControlCheckbox
		case schema.FieldNumber:
			w.Control = ControlNumber
		case schema.FieldDatetime, schema.FieldTimestamp:
			w.Control = ControlDateTime
		default:
			w.Control = textControlFor(f.Name)
			if w.Control == ControlText && sampleWantsTextarea(sample, f.Name) {
				w.Control = ControlTextarea
			}
		}
		widgets = append(widgets, w)
	}
	return widgets
}

func sampleWantsTextarea(sample *document.Document, name string) bool {
	if sample == nil {
		return false
	}
	v, ok := sample.Get(name)
	if !ok || v.Kind() != document.KindString {
		return false
	}
	s := v.Str()
	return len(s) > longTextThreshold || strings.Contains(s, "\n")
}

// PlanEditForm chooses widgets from an existing document's actual values,
// bypassing the schema: editing shows whatever fields exist on the record.
// The id field never gets a control.
func PlanEditForm(doc *document.Document) []Widget {
	if doc == nil {
		return nil
	}
	widgets := make([]Widget, 0, doc.Len())
	for _, f := range doc.Fields() {
		if f.Name == "id" {
			continue
		}
		w := Widget{Name: f.Name, Label: Label(f.Name)}
		switch f.Value.Kind() {
		case document.KindBool:
			w.Control = ControlCheckbox
			w.Checked = f.Value.Bool()
		case document.KindTime:
			w.Control = ControlDateTime
			w.Value = f.Value.Time().Truncate(time.Minute).Format(datetimeLocal)
		case document.KindNumber:
			w.Control = ControlNumber
			w.Value = f.Value.Display()
		case document.KindString:
			s := f.Value.Str()
			if len(s) > longTextThreshold || strings.Contains(s, "\n") {
				w.Control = ControlTextarea
			} else {
				w.Control = ControlText
			}
			w.Value = s
		default:
			w.Control = ControlText
			w.Value = f.Value.Display()
		}
		widgets = append(widgets, w)
	}
	return widgets
}

// textControlFor picks single- or multi-line text by field name: names
// containing "description" or "content" get a textarea.
func textControlFor(name string) Control {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "description") || strings.Contains(lower, "content") {
		return ControlTextarea
	}
	return ControlText
}

// Label turns a field name into a human label: a space before each internal
// capital, first letter capitalized. "publishedAt" -> "Published At".
// Consecutive capitals stay together so acronyms survive: "coverURL" ->
// "Cover URL", not "Cover U R L".
func Label(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) && !unicode.IsUpper(runes[i-1]) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
