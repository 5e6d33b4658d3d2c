package ifc

import "strings"

// parents is the part of the IFC2X3/IFC4 entity hierarchy this reader knows
// about. Types missing here still load; they only match queries for their
// own name.
var parents = map[string]string{
	"IfcRoot":             "",
	"IfcObjectDefinition": "IfcRoot",
	"IfcObject":           "IfcObjectDefinition",
	"IfcContext":          "IfcObjectDefinition",
	"IfcProject":          "IfcContext",
	"IfcProjectLibrary":   "IfcContext",
	"IfcProduct":          "IfcObject",
	"IfcProcess":          "IfcObject",
	"IfcResource":         "IfcObject",
	"IfcActor":            "IfcObject",
	"IfcGroup":            "IfcObject",
	"IfcSystem":           "IfcGroup",
	"IfcZone":             "IfcSystem",

	"IfcElement":          "IfcProduct",
	"IfcAnnotation":       "IfcProduct",
	"IfcGrid":             "IfcProduct",
	"IfcProxy":            "IfcProduct",
	"IfcPort":             "IfcProduct",
	"IfcDistributionPort": "IfcPort",
	"IfcStructuralItem":   "IfcProduct",

	"IfcSpatialElement":          "IfcProduct",
	"IfcSpatialStructureElement": "IfcSpatialElement",
	"IfcSpatialZone":             "IfcSpatialElement",
	"IfcExternalSpatialElement":  "IfcSpatialElement",
	"IfcSite":                    "IfcSpatialStructureElement",
	"IfcBuilding":                "IfcSpatialStructureElement",
	"IfcBuildingStorey":          "IfcSpatialStructureElement",
	"IfcSpace":                   "IfcSpatialStructureElement",

	"IfcBuildingElement":      "IfcElement",
	"IfcBuiltElement":         "IfcElement",
	"IfcBeam":                 "IfcBuildingElement",
	"IfcBeamStandardCase":     "IfcBeam",
	"IfcColumn":               "IfcBuildingElement",
	"IfcColumnStandardCase":   "IfcColumn",
	"IfcWall":                 "IfcBuildingElement",
	"IfcWallStandardCase":     "IfcWall",
	"IfcWallElementedCase":    "IfcWall",
	"IfcSlab":                 "IfcBuildingElement",
	"IfcSlabStandardCase":     "IfcSlab",
	"IfcSlabElementedCase":    "IfcSlab",
	"IfcDoor":                 "IfcBuildingElement",
	"IfcDoorStandardCase":     "IfcDoor",
	"IfcWindow":               "IfcBuildingElement",
	"IfcWindowStandardCase":   "IfcWindow",
	"IfcMember":               "IfcBuildingElement",
	"IfcMemberStandardCase":   "IfcMember",
	"IfcPlate":                "IfcBuildingElement",
	"IfcPlateStandardCase":    "IfcPlate",
	"IfcRoof":                 "IfcBuildingElement",
	"IfcStair":                "IfcBuildingElement",
	"IfcStairFlight":          "IfcBuildingElement",
	"IfcRamp":                 "IfcBuildingElement",
	"IfcRampFlight":           "IfcBuildingElement",
	"IfcRailing":              "IfcBuildingElement",
	"IfcCovering":             "IfcBuildingElement",
	"IfcCurtainWall":          "IfcBuildingElement",
	"IfcFooting":              "IfcBuildingElement",
	"IfcPile":                 "IfcBuildingElement",
	"IfcChimney":              "IfcBuildingElement",
	"IfcShadingDevice":        "IfcBuildingElement",
	"IfcBuildingElementProxy": "IfcBuildingElement",

	"IfcFurnishingElement":         "IfcElement",
	"IfcFurniture":                 "IfcFurnishingElement",
	"IfcSystemFurnitureElement":    "IfcFurnishingElement",
	"IfcElementAssembly":           "IfcElement",
	"IfcTransportElement":          "IfcElement",
	"IfcVirtualElement":            "IfcElement",
	"IfcGeographicElement":         "IfcElement",
	"IfcCivilElement":              "IfcElement",
	"IfcFeatureElement":            "IfcElement",
	"IfcFeatureElementSubtraction": "IfcFeatureElement",
	"IfcFeatureElementAddition":    "IfcFeatureElement",
	"IfcOpeningElement":            "IfcFeatureElementSubtraction",
	"IfcOpeningStandardCase":       "IfcOpeningElement",
	"IfcVoidingFeature":            "IfcFeatureElementSubtraction",
	"IfcProjectionElement":         "IfcFeatureElementAddition",

	"IfcElementComponent":    "IfcElement",
	"IfcBuildingElementPart": "IfcElementComponent",
	"IfcDiscreteAccessory":   "IfcElementComponent",
	"IfcFastener":            "IfcElementComponent",
	"IfcMechanicalFastener":  "IfcElementComponent",
	"IfcReinforcingElement":  "IfcElementComponent",
	"IfcReinforcingBar":      "IfcReinforcingElement",
	"IfcReinforcingMesh":     "IfcReinforcingElement",
	"IfcTendon":              "IfcReinforcingElement",

	"IfcDistributionElement":        "IfcElement",
	"IfcDistributionFlowElement":    "IfcDistributionElement",
	"IfcDistributionControlElement": "IfcDistributionElement",
	"IfcFlowTerminal":               "IfcDistributionFlowElement",
	"IfcFlowSegment":                "IfcDistributionFlowElement",
	"IfcFlowFitting":                "IfcDistributionFlowElement",
	"IfcFlowController":             "IfcDistributionFlowElement",
	"IfcFlowMovingDevice":           "IfcDistributionFlowElement",
	"IfcFlowStorageDevice":          "IfcDistributionFlowElement",
	"IfcFlowTreatmentDevice":        "IfcDistributionFlowElement",
	"IfcEnergyConversionDevice":     "IfcDistributionFlowElement",
	"IfcSanitaryTerminal":           "IfcFlowTerminal",
	"IfcLightFixture":               "IfcFlowTerminal",
	"IfcAirTerminal":                "IfcFlowTerminal",
	"IfcOutlet":                     "IfcFlowTerminal",
	"IfcPipeSegment":                "IfcFlowSegment",
	"IfcDuctSegment":                "IfcFlowSegment",
	"IfcCableSegment":               "IfcFlowSegment",
	"IfcCableCarrierSegment":        "IfcFlowSegment",
	"IfcPipeFitting":                "IfcFlowFitting",
	"IfcDuctFitting":                "IfcFlowFitting",
	"IfcValve":                      "IfcFlowController",
	"IfcDamper":                     "IfcFlowController",
	"IfcSwitchingDevice":            "IfcFlowController",
	"IfcPump":                       "IfcFlowMovingDevice",
	"IfcFan":                        "IfcFlowMovingDevice",
	"IfcTank":                       "IfcFlowStorageDevice",
	"IfcBoiler":                     "IfcEnergyConversionDevice",
	"IfcSensor":                     "IfcDistributionControlElement",
	"IfcAlarm":                      "IfcDistributionControlElement",

	"IfcTypeObject":                  "IfcObjectDefinition",
	"IfcTypeProduct":                 "IfcTypeObject",
	"IfcElementType":                 "IfcTypeProduct",
	"IfcSpatialElementType":          "IfcTypeProduct",
	"IfcSpaceType":                   "IfcSpatialElementType",
	"IfcDoorStyle":                   "IfcTypeProduct",
	"IfcWindowStyle":                 "IfcTypeProduct",
	"IfcBuildingElementType":         "IfcElementType",
	"IfcBeamType":                    "IfcBuildingElementType",
	"IfcColumnType":                  "IfcBuildingElementType",
	"IfcWallType":                    "IfcBuildingElementType",
	"IfcSlabType":                    "IfcBuildingElementType",
	"IfcDoorType":                    "IfcBuildingElementType",
	"IfcWindowType":                  "IfcBuildingElementType",
	"IfcMemberType":                  "IfcBuildingElementType",
	"IfcPlateType":                   "IfcBuildingElementType",
	"IfcRoofType":                    "IfcBuildingElementType",
	"IfcStairType":                   "IfcBuildingElementType",
	"IfcStairFlightType":             "IfcBuildingElementType",
	"IfcRampType":                    "IfcBuildingElementType",
	"IfcRampFlightType":              "IfcBuildingElementType",
	"IfcRailingType":                 "IfcBuildingElementType",
	"IfcCoveringType":                "IfcBuildingElementType",
	"IfcCurtainWallType":             "IfcBuildingElementType",
	"IfcFootingType":                 "IfcBuildingElementType",
	"IfcPileType":                    "IfcBuildingElementType",
	"IfcBuildingElementProxyType":    "IfcBuildingElementType",
	"IfcFurnishingElementType":       "IfcElementType",
	"IfcFurnitureType":               "IfcFurnishingElementType",
	"IfcDistributionElementType":     "IfcElementType",
	"IfcDistributionFlowElementType": "IfcDistributionElementType",

	"IfcPropertyDefinition":    "IfcRoot",
	"IfcPropertySetDefinition": "IfcPropertyDefinition",
	"IfcPropertySet":           "IfcPropertySetDefinition",
	"IfcQuantitySet":           "IfcPropertySetDefinition",
	"IfcElementQuantity":       "IfcQuantitySet",

	"IfcRelationship":                   "IfcRoot",
	"IfcRelDefines":                     "IfcRelationship",
	"IfcRelDefinesByProperties":         "IfcRelDefines",
	"IfcRelDefinesByType":               "IfcRelDefines",
	"IfcRelConnects":                    "IfcRelationship",
	"IfcRelContainedInSpatialStructure": "IfcRelConnects",
	"IfcRelDecomposes":                  "IfcRelationship",
	"IfcRelAggregates":                  "IfcRelDecomposes",
	"IfcRelVoidsElement":                "IfcRelDecomposes",
	"IfcRelAssociates":                  "IfcRelationship",
	"IfcRelAssociatesMaterial":          "IfcRelAssociates",

	"IfcOwnerHistory": "",

	"IfcProperty":                "",
	"IfcSimpleProperty":          "IfcProperty",
	"IfcPropertySingleValue":     "IfcSimpleProperty",
	"IfcPropertyEnumeratedValue": "IfcSimpleProperty",
	"IfcPropertyListValue":       "IfcSimpleProperty",
	"IfcPropertyBoundedValue":    "IfcSimpleProperty",
	"IfcComplexProperty":         "IfcProperty",

	"IfcPhysicalQuantity":        "",
	"IfcPhysicalSimpleQuantity":  "IfcPhysicalQuantity",
	"IfcPhysicalComplexQuantity": "IfcPhysicalQuantity",
	"IfcQuantityLength":          "IfcPhysicalSimpleQuantity",
	"IfcQuantityArea":            "IfcPhysicalSimpleQuantity",
	"IfcQuantityVolume":          "IfcPhysicalSimpleQuantity",
	"IfcQuantityCount":           "IfcPhysicalSimpleQuantity",
	"IfcQuantityWeight":          "IfcPhysicalSimpleQuantity",
	"IfcQuantityTime":            "IfcPhysicalSimpleQuantity",
}

// declared lists the explicit attributes each type adds to its supertype,
// in IFC4 order. Only attributes the reader consumes are needed, but a type's
// list must be complete up to its last consumed attribute.
var declared = map[string][]string{
	"IfcRoot":    {"GlobalId", "OwnerHistory", "Name", "Description"},
	"IfcObject":  {"ObjectType"},
	"IfcContext": {"ObjectType", "LongName", "Phase", "RepresentationContexts", "UnitsInContext"},
	"IfcProduct": {"ObjectPlacement", "Representation"},
	"IfcElement": {"Tag"},

	"IfcSpatialElement":          {"LongName"},
	"IfcSpatialStructureElement": {"CompositionType"},
	"IfcBuildingStorey":          {"Elevation"},

	"IfcTypeObject":  {"ApplicableOccurrence", "HasPropertySets"},
	"IfcTypeProduct": {"RepresentationMaps", "Tag"},
	"IfcElementType": {"ElementType"},

	"IfcSpatialElementType": {"ElementType"},

	"IfcPropertySet":     {"HasProperties"},
	"IfcElementQuantity": {"MethodOfMeasurement", "Quantities"},

	"IfcRelDefinesByProperties":         {"RelatedObjects", "RelatingPropertyDefinition"},
	"IfcRelDefinesByType":               {"RelatedObjects", "RelatingType"},
	"IfcRelContainedInSpatialStructure": {"RelatedElements", "RelatingStructure"},
	"IfcRelAggregates":                  {"RelatingObject", "RelatedObjects"},

	"IfcOwnerHistory": {"OwningUser", "OwningApplication", "State", "ChangeAction",
		"LastModifiedDate", "LastModifyingUser", "LastModifyingApplication", "CreationDate"},

	"IfcProperty":                {"Name", "Description"},
	"IfcPropertySingleValue":     {"NominalValue", "Unit"},
	"IfcPropertyEnumeratedValue": {"EnumerationValues", "EnumerationReference"},
	"IfcPropertyListValue":       {"ListValues", "Unit"},

	"IfcPhysicalQuantity":       {"Name", "Description"},
	"IfcPhysicalSimpleQuantity": {"Unit"},
	"IfcQuantityLength":         {"LengthValue"},
	"IfcQuantityArea":           {"AreaValue"},
	"IfcQuantityVolume":         {"VolumeValue"},
	"IfcQuantityCount":          {"CountValue"},
	"IfcQuantityWeight":         {"WeightValue"},
	"IfcQuantityTime":           {"TimeValue"},

	"IfcDoor":               {"OverallHeight", "OverallWidth", "PredefinedType"},
	"IfcWindow":             {"OverallHeight", "OverallWidth", "PredefinedType"},
	"IfcStairFlight":        {"NumberOfRisers", "NumberOfTreads", "RiserHeight", "TreadLength", "PredefinedType"},
	"IfcPile":               {"PredefinedType", "ConstructionType"},
	"IfcElementAssembly":    {"AssemblyPlace", "PredefinedType"},
	"IfcMechanicalFastener": {"NominalDiameter", "NominalLength", "PredefinedType"},
	"IfcReinforcingElement": {"SteelGrade"},
	"IfcReinforcingBar":     {"NominalDiameter", "CrossSectionArea", "BarLength", "PredefinedType"},
	"IfcSpace":              {"PredefinedType"},
}

// predefinedAt8 are occurrence types whose only own attribute is
// PredefinedType.
var predefinedAt8 = []string{
	"IfcBeam", "IfcColumn", "IfcWall", "IfcSlab", "IfcMember", "IfcPlate", "IfcRoof",
	"IfcStair", "IfcRamp", "IfcRampFlight", "IfcRailing", "IfcCovering", "IfcCurtainWall",
	"IfcFooting", "IfcChimney", "IfcShadingDevice", "IfcBuildingElementProxy",
	"IfcFurniture", "IfcBuildingElementPart", "IfcDiscreteAccessory", "IfcOpeningElement",
	"IfcTransportElement", "IfcFastener", "IfcSanitaryTerminal", "IfcLightFixture",
	"IfcAirTerminal", "IfcOutlet", "IfcPipeSegment", "IfcDuctSegment", "IfcCableSegment",
	"IfcCableCarrierSegment", "IfcPipeFitting", "IfcDuctFitting", "IfcValve", "IfcDamper",
	"IfcSwitchingDevice", "IfcPump", "IfcFan", "IfcTank", "IfcBoiler", "IfcSensor", "IfcAlarm",
}

// canonical maps the upper-case STEP keyword to the schema spelling.
var canonical = map[string]string{}

// attributes caches the full positional attribute list per type.
var attributes = map[string][]string{}

func init() {
	for _, name := range predefinedAt8 {
		declared[name] = []string{"PredefinedType"}
	}
	for name, parent := range parents {
		canonical[strings.ToUpper(name)] = name
		if parent == "IfcElementType" || parent == "IfcBuildingElementType" ||
			parent == "IfcFurnishingElementType" || parent == "IfcDistributionFlowElementType" ||
			parent == "IfcSpatialElementType" {
			if strings.HasSuffix(name, "Type") && !isAbstractType(name) {
				declared[name] = []string{"PredefinedType"}
			}
		}
	}
	for name := range parents {
		attributes[name] = buildAttributes(name)
	}
}

func isAbstractType(name string) bool {
	switch name {
	case "IfcBuildingElementType", "IfcFurnishingElementType",
		"IfcDistributionElementType", "IfcDistributionFlowElementType", "IfcSpatialElementType":
		return true
	}
	return false
}

func buildAttributes(name string) []string {
	var chain []string
	for t := name; t != ""; t = parents[t] {
		chain = append(chain, t)
	}
	var out []string
	for i := len(chain) - 1; i >= 0; i-- {
		out = append(out, declared[chain[i]]...)
	}
	return out
}

// CanonicalName returns the schema spelling of a type name in any case, or
// the input unchanged when the type is not known.
func CanonicalName(name string) string {
	if c, ok := canonical[strings.ToUpper(name)]; ok {
		return c
	}
	return name
}

// IsSubtypeOf reports whether typ equals or inherits from super. Both are
// matched case-insensitively.
func IsSubtypeOf(typ, super string) bool {
	t := CanonicalName(typ)
	s := CanonicalName(super)
	if strings.EqualFold(t, s) {
		return true
	}
	if _, known := parents[t]; !known {
		return false
	}
	for p := parents[t]; p != ""; p = parents[p] {
		if p == s {
			return true
		}
	}
	return false
}

// attributeIndex returns the position of attr in instances of typ.
func attributeIndex(typ, attr string) (int, bool) {
	for i, a := range attributes[CanonicalName(typ)] {
		if a == attr {
			return i, true
		}
	}
	return 0, false
}
