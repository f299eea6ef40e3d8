package schema

import (
	"encoding/json"
	"fmt"
)

// Modifier is a single negatable constraint on a field. Values holds one or
// more scalars (string or float64 as decoded from JSON); List records whether
// the source value was a sequence, which the compiler treats differently from
// a single scalar. An empty Values slice is a valid no-op constraint.
type Modifier struct {
	IsNegative bool
	Values     []any
	List       bool
}

// UnmarshalJSON accepts either a full {"is_negative": ..., "value": ...}
// object, a bare scalar, or a bare sequence. The oracle does not always wrap
// values in the object form even when asked to.
func (m *Modifier) UnmarshalJSON(data []byte) error {
	var obj struct {
		IsNegative bool            `json:"is_negative"`
		Value      json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && obj.Value != nil {
		m.IsNegative = obj.IsNegative
		return m.decodeValue(obj.Value)
	}
	m.IsNegative = false
	return m.decodeValue(data)
}

func (m *Modifier) decodeValue(data []byte) error {
	var list []any
	if err := json.Unmarshal(data, &list); err == nil {
		m.Values = list
		m.List = true
		return nil
	}
	var scalar any
	if err := json.Unmarshal(data, &scalar); err != nil {
		return fmt.Errorf("decode modifier value: %w", err)
	}
	switch scalar.(type) {
	case string, float64:
		m.Values = []any{scalar}
		return nil
	case nil:
		// Explicit null: a present field with no values, a compiler no-op.
		m.Values = nil
		return nil
	default:
		return fmt.Errorf("modifier value must be a scalar or sequence, got %T", scalar)
	}
}

// ValueKind discriminates the shapes a structured-query field can take.
type ValueKind int

const (
	KindNone ValueKind = iota
	KindBool
	KindInt
	KindModifier
)

// FieldValue is one field of a StructuredQuery: a plain boolean flag, a plain
// integer, or a Modifier. KindNone marks a field the oracle emitted as null;
// the compiler skips it.
type FieldValue struct {
	Kind     ValueKind
	Bool     bool
	Int      int64
	Modifier Modifier
}

// BoolValue, IntValue and ModifierValue build FieldValues in tests and on the
// raw-input fast path.
func BoolValue(b bool) FieldValue { return FieldValue{Kind: KindBool, Bool: b} }

func IntValue(n int64) FieldValue { return FieldValue{Kind: KindInt, Int: n} }

func ModifierValue(m Modifier) FieldValue { return FieldValue{Kind: KindModifier, Modifier: m} }

func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = BoolValue(b)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = IntValue(n)
		return nil
	}
	var null any
	if err := json.Unmarshal(data, &null); err == nil && null == nil {
		*v = FieldValue{Kind: KindNone}
		return nil
	}
	var m Modifier
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*v = ModifierValue(m)
	return nil
}

// MarshalJSON renders the canonical object form regardless of how lenient the
// decode was.
func (m Modifier) MarshalJSON() ([]byte, error) {
	var value any
	switch {
	case m.List:
		vs := m.Values
		if vs == nil {
			vs = []any{}
		}
		value = vs
	case len(m.Values) > 0:
		value = m.Values[0]
	default:
		value = nil
	}
	return json.Marshal(struct {
		IsNegative bool `json:"is_negative"`
		Value      any  `json:"value"`
	}{IsNegative: m.IsNegative, Value: value})
}

func (v FieldValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindBool:
		return json.Marshal(v.Bool)
	case KindInt:
		return json.Marshal(v.Int)
	case KindModifier:
		return json.Marshal(v.Modifier)
	default:
		return []byte("null"), nil
	}
}

// StructuredQuery maps a subset of a category schema's field names to concrete
// values. It lives for the duration of one request.
type StructuredQuery map[string]FieldValue
