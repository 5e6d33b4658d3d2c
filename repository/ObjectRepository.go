package repository

import (
	"context"
	"fmt"
	"sort"

	"ifcdash/ifc"
	"ifcdash/models"
)

// ExtractObjectData collects one record per entity of typeName (subtypes
// included) together with every "set.prop" path seen across the records.
// Paths are sorted. A structural error on any entity aborts the whole run
// and no records are returned.
func ExtractObjectData(model *ifc.Model, typeName string) ([]models.ObjectRecord, []string, error) {
	return ExtractObjectDataContext(context.Background(), model, typeName)
}

// ExtractObjectDataContext is ExtractObjectData with cancellation; ctx is
// checked between entities.
func ExtractObjectDataContext(ctx context.Context, model *ifc.Model, typeName string) ([]models.ObjectRecord, []string, error) {
	entities := model.EntitiesOfType(typeName)
	records := make([]models.ObjectRecord, 0, len(entities))
	paths := map[string]struct{}{}

	for _, e := range entities {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("extracting %s: %w", typeName, err)
		}
		rec, err := objectRecord(e)
		if err != nil {
			return nil, nil, fmt.Errorf("extracting %s: %w", typeName, err)
		}
		addPaths(paths, rec.PropertySets)
		addPaths(paths, rec.QuantitySets)
		records = append(records, rec)
	}

	discovered := make([]string, 0, len(paths))
	for p := range paths {
		discovered = append(discovered, p)
	}
	sort.Strings(discovered)
	return records, discovered, nil
}

func objectRecord(e *ifc.Entity) (models.ObjectRecord, error) {
	rec := models.ObjectRecord{
		ExpressId: e.ID,
		GlobalId:  attrValue(e, "GlobalId"),
		Class:     e.Type(),
		Name:      attrValue(e, "Name"),
	}

	pt, ok, err := ifc.GetPredefinedType(e)
	if err != nil {
		return rec, err
	}
	if ok {
		rec.PredefinedType = models.Text(pt)
	}

	container, err := ifc.GetContainer(e)
	if err != nil {
		return rec, err
	}
	if container != nil {
		rec.Level = container.AttrString("Name")
	}

	typ, err := ifc.GetType(e)
	if err != nil {
		return rec, err
	}
	if typ != nil {
		rec.Type = typ.AttrString("Name")
	}

	if rec.PropertySets, err = ifc.GetPropertySets(e, ifc.PropertySetsOnly); err != nil {
		return rec, err
	}
	if rec.QuantitySets, err = ifc.GetPropertySets(e, ifc.QuantitySetsOnly); err != nil {
		return rec, err
	}
	return rec, nil
}

func attrValue(e *ifc.Entity, name string) models.Value {
	p, ok := e.Attr(name)
	if !ok {
		return models.Null()
	}
	return ifc.ToValue(p)
}

func addPaths(paths map[string]struct{}, sets models.PropertySets) {
	for set, props := range sets {
		for prop := range props {
			paths[set+"."+prop] = struct{}{}
		}
	}
}
