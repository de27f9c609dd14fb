package schema

import (
	"regexp"
	"time"

	"github.com/mdrahmanz/curator/document"
)

// emailPattern matches the local@domain.tld shape. It is deliberately loose;
// the goal is widget selection, not address verification.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s.]+$`)

// dateLayouts are tried in order when deciding whether a string is a datetime.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123,
}

// IsEmail reports whether s has an email-like shape.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsDatetime reports whether s parses as a date or timestamp.
func IsDatetime(s string) bool {
	_, ok := ParseDatetime(s)
	return ok
}

// ParseDatetime parses s against the recognized datetime layouts.
func ParseDatetime(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// rule is one predicate→type entry of the classifier.
type rule struct {
	match func(document.Value) bool
	typ   FieldType
}

// classifyRules are evaluated in priority order. The list is the whole
// classifier: email beats datetime beats plain string, scalars follow, and
// anything unmatched falls through to "any".
var classifyRules = []rule{
	{func(v document.Value) bool { return v.Kind() == document.KindString && IsEmail(v.Str()) }, FieldEmail},
	{func(v document.Value) bool { return v.Kind() == document.KindString && IsDatetime(v.Str()) }, FieldDatetime},
	{func(v document.Value) bool { return v.Kind() == document.KindString }, FieldString},
	{func(v document.Value) bool { return v.Kind() == document.KindNumber }, FieldNumber},
	{func(v document.Value) bool { return v.Kind() == document.KindBool }, FieldBoolean},
	{func(v document.Value) bool { return v.Kind() == document.KindNull }, FieldNullable},
	{func(v document.Value) bool { return v.Kind() == document.KindTime }, FieldTimestamp},
}

// Classify maps one sample value to its semantic field type. Classification
// is total: values matching no rule are "any".
func Classify(v document.Value) FieldType {
	for _, r := range classifyRules {
		if r.match(v) {
			return r.typ
		}
	}
	return FieldAny
}
