package ifc

import (
	"strings"

	"ifcdash/models"
)

// ToValue converts a STEP argument to a scalar. Typed values such as
// IFCLENGTHMEASURE(2.5) are unwrapped, LOGICAL enums become booleans
// (UNKNOWN becomes Null) and other enums become text. Lists are joined with
// ", ". References have no scalar form and yield Null.
func ToValue(p Param) models.Value {
	switch p.Kind {
	case ParamInteger:
		return models.Number(float64(p.Int))
	case ParamReal:
		return models.Number(p.Real)
	case ParamString, ParamBinary:
		return models.Text(p.Str)
	case ParamEnum:
		switch p.Str {
		case "T", "TRUE":
			return models.Boolean(true)
		case "F", "FALSE":
			return models.Boolean(false)
		case "U", "UNKNOWN":
			return models.Null()
		}
		return models.Text(p.Str)
	case ParamTyped:
		if len(p.List) == 1 {
			return ToValue(p.List[0])
		}
		return joinValues(p.List)
	case ParamList:
		return joinValues(p.List)
	}
	return models.Null()
}

func joinValues(items []Param) models.Value {
	if len(items) == 0 {
		return models.Null()
	}
	if len(items) == 1 {
		return ToValue(items[0])
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		v := ToValue(it)
		if v.IsNull() {
			continue
		}
		parts = append(parts, v.String())
	}
	return models.TextOrNull(strings.Join(parts, ", "))
}
