package form

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mdrahmanz/curator/document"
	"github.com/mdrahmanz/curator/schema"
)

// FieldErrors maps field names to validation messages, rendered inline next
// to the offending control.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for name, msg := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", name, msg))
	}
	return strings.Join(parts, "; ")
}

// DecodeSubmission converts submitted form values into a document, one field
// per plan entry in plan order. Errors are collected per field; when any
// field fails, no document is returned and nothing is written.
func DecodeSubmission(plan []schema.PlannedField, values url.Values) (*document.Document, FieldErrors) {
	doc := document.New("")
	errs := make(FieldErrors)

	for _, f := range plan {
		raw := values.Get(f.Name)
		switch f.Kind {
		case schema.FieldBoolean:
			// unchecked checkboxes are absent from the submission
			doc.Set(f.Name, document.Bool(raw == "on" || raw == "true"))
		case schema.FieldNumber:
			if strings.TrimSpace(raw) == "" {
				doc.Set(f.Name, document.Number(0))
				continue
			}
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				errs[f.Name] = "must be a number"
				continue
			}
			doc.Set(f.Name, document.Number(n))
		case schema.FieldDatetime, schema.FieldTimestamp:
			if strings.TrimSpace(raw) == "" {
				doc.Set(f.Name, document.Null())
				continue
			}
			t, ok := parseSubmittedTime(raw)
			if !ok {
				errs[f.Name] = "must be a date/time"
				continue
			}
			doc.Set(f.Name, document.Time(t))
		case schema.FieldEmail:
			if raw != "" && !schema.IsEmail(raw) {
				errs[f.Name] = "must be an email address"
				continue
			}
			doc.Set(f.Name, document.String(raw))
		case schema.FieldNullable:
			if raw == "" {
				doc.Set(f.Name, document.Null())
			} else {
				doc.Set(f.Name, document.String(raw))
			}
		default:
			doc.Set(f.Name, document.String(raw))
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return doc, nil
}

// EditPlan derives a plan from a document's current values so that an edit
// submission decodes with the same rules as creation. Classification of the
// stored value decides each field's kind; id is excluded.
func EditPlan(doc *document.Document) []schema.PlannedField {
	if doc == nil {
		return nil
	}
	plan := make([]schema.PlannedField, 0, doc.Len())
	for _, f := range doc.Fields() {
		if f.Name == "id" {
			continue
		}
		plan = append(plan, schema.PlannedField{Name: f.Name, Kind: schema.Classify(f.Value)})
	}
	return plan
}

func parseSubmittedTime(raw string) (time.Time, bool) {
	if t, err := time.Parse(datetimeLocal, raw); err == nil {
		return t, true
	}
	return schema.ParseDatetime(raw)
}
