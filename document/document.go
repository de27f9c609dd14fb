package document

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// Field is one named value of a document.
type Field struct {
	Name  string
	Value Value
}

// Document is an ordered set of fields plus the system-assigned identifier.
// Field order is declaration order and survives the JSON round trip, which is
// what keeps inferred schemas and generated forms in the shape the sample
// document had.
type Document struct {
	ID     string
	fields []Field
	index  map[string]int
}

func New(id string) *Document {
	return &Document{ID: id, index: make(map[string]int)}
}

// Set appends a field, or replaces its value in place when the name exists.
func (d *Document) Set(name string, v Value) {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[name]; ok {
		d.fields[i].Value = v
		return
	}
	d.index[name] = len(d.fields)
	d.fields = append(d.fields, Field{Name: name, Value: v})
}

func (d *Document) Get(name string) (Value, bool) {
	if d.index == nil {
		return Value{}, false
	}
	i, ok := d.index[name]
	if !ok {
		return Value{}, false
	}
	return d.fields[i].Value, true
}

// Fields returns the fields in declaration order. The identifier is not a
// field; it lives on Document.ID.
func (d *Document) Fields() []Field {
	return d.fields
}

func (d *Document) Len() int {
	return len(d.fields)
}

// EncodeFields serializes the fields as a JSON object in declaration order.
func (d *Document) EncodeFields() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range d.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, fmt.Errorf("encoding field name %q: %w", f.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encoding field %q: %w", f.Name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeFields parses a JSON object into a document, preserving the key order
// of the payload. The decoder walks tokens rather than unmarshalling into a
// map because Go maps would scramble field order.
func DecodeFields(id string, data []byte) (*Document, error) {
	doc := New(id)
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("decoding document: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding field name: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("decoding field name: unexpected token %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decoding field %q: %w", key, err)
		}
		doc.Set(key, FromJSON(raw))
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return doc, nil
}
