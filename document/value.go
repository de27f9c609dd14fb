package document

import (
	"fmt"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindNull
	KindTime
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindTime:
		return "time"
	default:
		return "opaque"
	}
}

// Value is a closed tagged variant for document field values. Every field a
// collection can hold is one of: string, number, bool, null, timestamp, or an
// opaque raw JSON payload (arrays, nested objects).
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	t    time.Time
	raw  json.RawMessage
}

func String(s string) Value  { return Value{kind: KindString, str: s} }
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func Null() Value            { return Value{kind: KindNull} }
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// Opaque wraps a raw JSON payload that does not fit any scalar variant.
func Opaque(raw json.RawMessage) Value {
	cp := make(json.RawMessage, len(raw))
	copy(cp, raw)
	return Value{kind: KindOpaque, raw: cp}
}

func (v Value) Kind() Kind           { return v.kind }
func (v Value) Str() string          { return v.str }
func (v Value) Num() float64         { return v.num }
func (v Value) Bool() bool           { return v.b }
func (v Value) Time() time.Time      { return v.t }
func (v Value) Raw() json.RawMessage { return v.raw }

// Display renders the value the way a form control or table cell shows it.
func (v Value) Display() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNull:
		return ""
	case KindTime:
		return v.t.Format(time.RFC3339)
	default:
		return string(v.raw)
	}
}

// MarshalJSON encodes timestamps as RFC 3339 strings so jsonb storage
// round-trips them; FromJSON recognizes that shape on the way back.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindNull:
		return []byte("null"), nil
	case KindTime:
		return json.Marshal(v.t.Format(time.RFC3339))
	case KindOpaque:
		if len(v.raw) == 0 {
			return []byte("null"), nil
		}
		return v.raw, nil
	}
	return nil, fmt.Errorf("unknown value kind %d", v.kind)
}

// FromJSON converts one raw JSON value into a Value. Strings in exact
// RFC 3339 form become timestamps; everything non-scalar stays opaque.
func FromJSON(raw json.RawMessage) Value {
	if len(raw) == 0 {
		return Null()
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Opaque(raw)
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return Time(t)
		}
		return String(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return Opaque(raw)
		}
		return Bool(b)
	case 'n':
		return Null()
	case '{', '[':
		return Opaque(raw)
	default:
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return Opaque(raw)
		}
		return Number(f)
	}
}
