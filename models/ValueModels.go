package models

import (
	"encoding/json"
	"strconv"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "null"
	}
}

// Value is a scalar read from a model or a spreadsheet cell: Null, Number,
// Text or Boolean. The zero Value is Null.
type Value struct {
	Kind Kind
	Num  float64
	Text string
	Bool bool
}

func Null() Value {
	return Value{}
}

func Number(v float64) Value {
	return Value{Kind: KindNumber, Num: v}
}

func Text(v string) Value {
	return Value{Kind: KindText, Text: v}
}

func Boolean(v bool) Value {
	return Value{Kind: KindBoolean, Bool: v}
}

func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

func (v Value) IsNumber() bool {
	return v.Kind == KindNumber
}

func (v Value) Float() float64 {
	return v.Num
}

func (v Value) Equal(o Value) bool {
	return v.Kind == o.Kind && v.Num == o.Num && v.Text == o.Text && v.Bool == o.Bool
}

// TextOrNull returns Text(s), or Null when s is empty.
func TextOrNull(s string) Value {
	if s == "" {
		return Null()
	}
	return Text(s)
}

// String renders the value the way it appears in CSV cells: Null is empty,
// booleans are True/False and numbers use the shortest exact form.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindText:
		return v.Text
	case KindBoolean:
		if v.Bool {
			return "True"
		}
		return "False"
	default:
		return ""
	}
}

// Compare orders values Null < Boolean < Number < Text; within a kind the
// natural order applies.
func (v Value) Compare(o Value) int {
	if v.Kind != o.Kind {
		if v.Kind < o.Kind {
			return -1
		}
		return 1
	}
	switch v.Kind {
	case KindNumber:
		switch {
		case v.Num < o.Num:
			return -1
		case v.Num > o.Num:
			return 1
		}
	case KindText:
		switch {
		case v.Text < o.Text:
			return -1
		case v.Text > o.Text:
			return 1
		}
	case KindBoolean:
		if v.Bool != o.Bool {
			if !v.Bool {
				return -1
			}
			return 1
		}
	}
	return 0
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Num)
	case KindText:
		return json.Marshal(v.Text)
	case KindBoolean:
		return json.Marshal(v.Bool)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case float64:
		*v = Number(t)
	case string:
		*v = Text(t)
	case bool:
		*v = Boolean(t)
	default:
		*v = Null()
	}
	return nil
}

// MarshalYAML lets the CLI print values as plain scalars.
func (v Value) MarshalYAML() (interface{}, error) {
	switch v.Kind {
	case KindNumber:
		return v.Num, nil
	case KindText:
		return v.Text, nil
	case KindBoolean:
		return v.Bool, nil
	default:
		return nil, nil
	}
}
