package ifc

import (
	"fmt"
	"time"

	"ifcdash/models"
)

// SetFilter selects which property definitions GetPropertySets returns.
type SetFilter int

const (
	AllSets SetFilter = iota
	PropertySetsOnly
	QuantitySetsOnly
)

// GetPropertySets returns the property or quantity sets of e keyed by set
// name. For occurrences the sets of the type object are read first and the
// occurrence's own sets override them property by property.
func GetPropertySets(e *Entity, filter SetFilter) (models.PropertySets, error) {
	e.model.buildIndexes()
	out := models.PropertySets{}

	if e.IsA("IfcTypeObject") {
		if err := addTypeSets(out, e, filter); err != nil {
			return nil, err
		}
		return out, nil
	}

	typ, err := GetType(e)
	if err != nil {
		return nil, err
	}
	if typ != nil {
		if err := addTypeSets(out, typ, filter); err != nil {
			return nil, err
		}
	}
	for _, rel := range e.model.definedBy[e.ID] {
		p, ok := rel.Attr("RelatingPropertyDefinition")
		if !ok {
			return nil, &StructureError{EntityID: rel.ID, Msg: "missing RelatingPropertyDefinition"}
		}
		defs, err := rel.resolveAll(p, "RelatingPropertyDefinition")
		if err != nil {
			return nil, err
		}
		for _, def := range defs {
			if err := addDefinition(out, def, filter); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func addTypeSets(out models.PropertySets, typ *Entity, filter SetFilter) error {
	p, ok := typ.Attr("HasPropertySets")
	if !ok || p.IsNull() {
		return nil
	}
	defs, err := typ.resolveAll(p, "HasPropertySets")
	if err != nil {
		return err
	}
	for _, def := range defs {
		if err := addDefinition(out, def, filter); err != nil {
			return err
		}
	}
	return nil
}

func addDefinition(out models.PropertySets, def *Entity, filter SetFilter) error {
	var props map[string]models.Value
	var err error
	switch {
	case def.IsA("IfcElementQuantity"):
		if filter == PropertySetsOnly {
			return nil
		}
		props, err = quantities(def)
	case def.IsA("IfcPropertySet"):
		if filter == QuantitySetsOnly {
			return nil
		}
		props, err = properties(def)
	default:
		// predefined property sets (door linings, window panels) carry
		// no name/value pairs
		return nil
	}
	if err != nil {
		return err
	}
	name := def.AttrString("Name")
	set, ok := out[name]
	if !ok {
		set = map[string]models.Value{}
		out[name] = set
	}
	for k, v := range props {
		set[k] = v
	}
	return nil
}

func properties(pset *Entity) (map[string]models.Value, error) {
	p, ok := pset.Attr("HasProperties")
	if !ok {
		return nil, &StructureError{EntityID: pset.ID, Msg: "missing HasProperties"}
	}
	if p.Kind != ParamList {
		return nil, &StructureError{EntityID: pset.ID, Msg: "HasProperties is not a list"}
	}
	props, err := pset.resolveAll(p, "HasProperties")
	if err != nil {
		return nil, err
	}
	out := make(map[string]models.Value, len(props))
	for _, prop := range props {
		switch {
		case prop.IsA("IfcPropertySingleValue"):
			v, _ := prop.Attr("NominalValue")
			out[prop.AttrString("Name")] = ToValue(v)
		case prop.IsA("IfcPropertyEnumeratedValue"):
			v, _ := prop.Attr("EnumerationValues")
			out[prop.AttrString("Name")] = ToValue(v)
		case prop.IsA("IfcPropertyListValue"):
			v, _ := prop.Attr("ListValues")
			out[prop.AttrString("Name")] = ToValue(v)
		case prop.IsA("IfcProperty"):
			// bounded, table and complex properties have no single scalar
			out[prop.AttrString("Name")] = models.Null()
		default:
			return nil, &StructureError{EntityID: pset.ID, Msg: fmt.Sprintf("%s is not a property", prop)}
		}
	}
	return out, nil
}

func quantities(qset *Entity) (map[string]models.Value, error) {
	p, ok := qset.Attr("Quantities")
	if !ok {
		return nil, &StructureError{EntityID: qset.ID, Msg: "missing Quantities"}
	}
	if p.Kind != ParamList {
		return nil, &StructureError{EntityID: qset.ID, Msg: "Quantities is not a list"}
	}
	qs, err := qset.resolveAll(p, "Quantities")
	if err != nil {
		return nil, err
	}
	out := make(map[string]models.Value, len(qs))
	for _, q := range qs {
		switch {
		case q.IsA("IfcPhysicalSimpleQuantity"):
			out[q.AttrString("Name")] = ToValue(q.Arg(3))
		case q.IsA("IfcPhysicalQuantity"):
			out[q.AttrString("Name")] = models.Null()
		default:
			return nil, &StructureError{EntityID: qset.ID, Msg: fmt.Sprintf("%s is not a quantity", q)}
		}
	}
	return out, nil
}

// GetContainer returns the spatial structure element that directly contains
// e, or nil.
func GetContainer(e *Entity) (*Entity, error) {
	e.model.buildIndexes()
	rel, ok := e.model.contained[e.ID]
	if !ok {
		return nil, nil
	}
	p, _ := rel.Attr("RelatingStructure")
	return rel.resolve(p, "RelatingStructure")
}

// GetType returns the type object assigned to e, or nil. A type object is
// its own type.
func GetType(e *Entity) (*Entity, error) {
	if e.IsA("IfcTypeObject") {
		return e, nil
	}
	e.model.buildIndexes()
	rel, ok := e.model.typedBy[e.ID]
	if !ok {
		return nil, nil
	}
	p, _ := rel.Attr("RelatingType")
	return rel.resolve(p, "RelatingType")
}

// GetPredefinedType returns the predefined subtype of e. The type object's
// PredefinedType (or ElementType) wins unless it is NOTDEFINED; USERDEFINED
// resolves to the user text in ObjectType or ElementType. ok is false when
// no predefined type is recorded.
func GetPredefinedType(e *Entity) (string, bool, error) {
	typ, err := GetType(e)
	if err != nil {
		return "", false, err
	}
	if typ != nil && typ != e {
		if v, ok := predefined(typ); ok && v != "NOTDEFINED" {
			return v, true, nil
		}
	}
	v, ok := predefined(e)
	return v, ok, nil
}

func predefined(e *Entity) (string, bool) {
	p, ok := e.Attr("PredefinedType")
	if !ok || p.Kind != ParamEnum {
		if et := e.AttrString("ElementType"); et != "" {
			return et, true
		}
		return "", false
	}
	if p.Str == "USERDEFINED" {
		if ot := e.AttrString("ObjectType"); ot != "" {
			return ot, true
		}
		if et := e.AttrString("ElementType"); et != "" {
			return et, true
		}
	}
	return p.Str, true
}

// ProjectInfo reads the first IfcProject. The creation date comes from the
// project's owner history and is formatted in UTC.
func ProjectInfo(m *Model) (models.ProjectMetadata, bool) {
	projects := m.EntitiesOfType("IfcProject")
	if len(projects) == 0 {
		return models.ProjectMetadata{}, false
	}
	p := projects[0]
	meta := models.ProjectMetadata{
		Name:        p.AttrString("Name"),
		Description: p.AttrString("Description"),
		Phase:       p.AttrString("Phase"),
	}
	if oh, ok := p.Attr("OwnerHistory"); ok && oh.Kind == ParamRef {
		if hist, found := m.ByID(oh.Ref); found {
			if d, ok := hist.Attr("CreationDate"); ok && d.Kind == ParamInteger {
				meta.CreationDate = time.Unix(d.Int, 0).UTC().Format("2006-01-02 15:04:05")
			}
		}
	}
	return meta, true
}
