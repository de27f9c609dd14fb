package schema

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FieldType is the closed set of semantic field types a collection schema can
// declare. The value doubles as the serialized token in the definition source.
type FieldType string

const (
	FieldString    FieldType = "string"
	FieldEmail     FieldType = "email"
	FieldDatetime  FieldType = "datetime"
	FieldNumber    FieldType = "number"
	FieldBoolean   FieldType = "boolean"
	FieldNullable  FieldType = "nullable"
	FieldTimestamp FieldType = "timestamp"
	FieldAny       FieldType = "any"
)

// KnownType reports whether t is one of the declared type tokens.
func KnownType(t FieldType) bool {
	return knownTypes[t]
}

var knownTypes = map[FieldType]bool{
	FieldString:    true,
	FieldEmail:     true,
	FieldDatetime:  true,
	FieldNumber:    true,
	FieldBoolean:   true,
	FieldNullable:  true,
	FieldTimestamp: true,
	FieldAny:       true,
}

type FieldDef struct {
	Name string    `yaml:"name"`
	Type FieldType `yaml:"type"`
}

// Definition is the persisted, editable description of a collection's
// expected fields. One definition per collection name; last write wins.
type Definition struct {
	Collection string
	Fields     []FieldDef
	Note       string
	Icon       string
	UpdatedAt  time.Time
}

// IsEmpty reports whether the definition declares no real fields (the
// degenerate result of synthesizing from an absent or empty sample).
func (d Definition) IsEmpty() bool {
	return len(d.Fields) == 0
}

// sourceDoc is the YAML shape of a definition source.
type sourceDoc struct {
	Fields []FieldDef `yaml:"fields,omitempty"`
	Note   string     `yaml:"note,omitempty"`
}

// Source serializes the definition as its canonical YAML field list. This is
// the single textual format the store persists, whether the definition came
// from inference, AI suggestion, or hand editing.
func (d Definition) Source() string {
	var b strings.Builder
	if d.Collection != "" {
		fmt.Fprintf(&b, "# curator schema for %s\n", d.Collection)
	}
	out, err := yaml.Marshal(sourceDoc{Fields: d.Fields, Note: d.Note})
	if err != nil {
		// Cannot happen for this shape; keep the source syntactically valid anyway.
		return b.String() + "fields: []\n"
	}
	b.Write(out)
	return b.String()
}

// ParseSource parses a definition source back into fields and note. A source
// that yields no recognizable field declarations parses to an empty
// definition, which is a valid "no fields yet" state.
func ParseSource(src string) Definition {
	var doc sourceDoc
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		return Definition{}
	}
	var fields []FieldDef
	for _, f := range doc.Fields {
		if strings.TrimSpace(f.Name) == "" {
			continue
		}
		fields = append(fields, f)
	}
	return Definition{Fields: fields, Note: doc.Note}
}

// Validate checks a definition before it is saved: non-empty unique field
// names and known type tokens.
func (d Definition) Validate() error {
	seen := make(map[string]bool, len(d.Fields))
	for _, f := range d.Fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return fmt.Errorf("schema field with empty name")
		}
		if seen[name] {
			return fmt.Errorf("duplicate schema field %q", name)
		}
		seen[name] = true
		if !knownTypes[f.Type] {
			return fmt.Errorf("schema field %q has unknown type %q", name, f.Type)
		}
	}
	return nil
}
