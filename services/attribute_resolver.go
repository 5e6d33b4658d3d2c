package services

import (
	"strings"

	"ifcdash/models"
)

// ObjectScalarColumns are the fixed leading columns of a flattened object
// table.
var ObjectScalarColumns = []string{"ExpressId", "GlobalId", "Class", "PredefinedType", "Name", "Level", "Type"}

// ResolveAttribute reads one cell of a record. A path without '.' names a
// scalar field. Otherwise it is split at the first '.' into set and
// property; property sets are searched before quantity sets. Anything not
// found resolves to Null.
func ResolveAttribute(record models.ObjectRecord, path string) models.Value {
	set, prop, nested := strings.Cut(path, ".")
	if !nested {
		return scalarAttribute(record, path)
	}
	if props, ok := record.PropertySets[set]; ok {
		if v, ok := props[prop]; ok {
			return v
		}
		return models.Null()
	}
	if props, ok := record.QuantitySets[set]; ok {
		if v, ok := props[prop]; ok {
			return v
		}
	}
	return models.Null()
}

func scalarAttribute(record models.ObjectRecord, name string) models.Value {
	switch name {
	case "ExpressId":
		return models.Number(float64(record.ExpressId))
	case "GlobalId":
		return record.GlobalId
	case "Class":
		return models.Text(record.Class)
	case "PredefinedType":
		return record.PredefinedType
	case "Name":
		return record.Name
	case "Level":
		return models.Text(record.Level)
	case "Type":
		return models.Text(record.Type)
	}
	return models.Null()
}
