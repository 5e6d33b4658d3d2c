package ifc

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ifcdash/models"
)

func openTower(t *testing.T) *Model {
	t.Helper()
	m, err := Open("testdata/tower.ifc")
	require.NoError(t, err)
	return m
}

func mustEntity(t *testing.T, m *Model, id int) *Entity {
	t.Helper()
	e, ok := m.ByID(id)
	require.True(t, ok, "#%d", id)
	return e
}

func TestEntitiesOfTypeIncludesSubtypes(t *testing.T) {
	m := openTower(t)

	assert.Len(t, m.EntitiesOfType("IfcBeam"), 3)
	assert.Len(t, m.EntitiesOfType("ifcbeam"), 3)
	assert.Len(t, m.EntitiesOfType("IfcBuildingElement"), 6)
	assert.Len(t, m.EntitiesOfType("IfcProduct"), 8)
	assert.Empty(t, m.EntitiesOfType("IfcWindow"))
	assert.Empty(t, m.EntitiesOfType("IfcNoSuchThing"))

	ids := []int{}
	for _, e := range m.EntitiesOfType("IfcBeam") {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int{11, 12, 13}, ids)
}

func TestAllEntityTypeNames(t *testing.T) {
	m := openTower(t)
	names := m.AllEntityTypeNames()
	assert.Contains(t, names, "IfcBeam")
	assert.Contains(t, names, "IfcRelDefinesByProperties")
	assert.IsIncreasing(t, names)
}

func TestGetPropertySetsMergesTypeAndOccurrence(t *testing.T) {
	m := openTower(t)
	beam := mustEntity(t, m, 11)

	psets, err := GetPropertySets(beam, PropertySetsOnly)
	require.NoError(t, err)
	assert.Equal(t, models.PropertySets{
		"Pset_BeamCommon": {
			"LoadBearing": models.Boolean(true),
			"Reference":   models.Text("B-300 override"),
			"Span":        models.Number(6000),
		},
	}, psets)

	qtos, err := GetPropertySets(beam, QuantitySetsOnly)
	require.NoError(t, err)
	assert.Equal(t, models.PropertySets{
		"Qto_BeamBaseQuantities": {
			"NetVolume": models.Number(3.5),
			"Length":    models.Number(6000),
		},
	}, qtos)

	all, err := GetPropertySets(beam, AllSets)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetPropertySetsOfTypeObject(t *testing.T) {
	m := openTower(t)
	psets, err := GetPropertySets(mustEntity(t, m, 10), PropertySetsOnly)
	require.NoError(t, err)
	assert.Equal(t, models.Text("B-300"), psets["Pset_BeamCommon"]["Reference"])
}

func TestContainerAndType(t *testing.T) {
	m := openTower(t)

	c, err := GetContainer(mustEntity(t, m, 11))
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Level 1", c.AttrString("Name"))

	c, err = GetContainer(mustEntity(t, m, 13))
	require.NoError(t, err)
	assert.Nil(t, c)

	typ, err := GetType(mustEntity(t, m, 11))
	require.NoError(t, err)
	require.NotNil(t, typ)
	assert.Equal(t, "B-300", typ.AttrString("Name"))

	typ, err = GetType(mustEntity(t, m, 12))
	require.NoError(t, err)
	assert.Nil(t, typ)
}

func TestGetPredefinedType(t *testing.T) {
	m := openTower(t)
	cases := map[int]string{
		11: "BEAM",     // from the type object
		12: "JOIST",    // occurrence value
		13: "Transfer", // USERDEFINED falls back to ObjectType
		14: "STANDARD",
		16: "DOOR",
	}
	for id, want := range cases {
		got, ok, err := GetPredefinedType(mustEntity(t, m, id))
		require.NoError(t, err)
		assert.True(t, ok, "#%d", id)
		assert.Equal(t, want, got, "#%d", id)
	}

	_, ok, err := GetPredefinedType(mustEntity(t, m, 15))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProjectInfo(t *testing.T) {
	meta, ok := ProjectInfo(openTower(t))
	require.True(t, ok)
	assert.Equal(t, models.ProjectMetadata{
		Name:         "Tower A",
		Description:  "Precast frame",
		Phase:        "Design",
		CreationDate: "2023-11-14 22:13:20",
	}, meta)

	annex, err := Open("testdata/annex.ifc")
	require.NoError(t, err)
	meta, ok = ProjectInfo(annex)
	require.True(t, ok)
	assert.Equal(t, models.NotAvailable, meta.Display().Phase)
	assert.Equal(t, "IFC2X3", annex.Schema())
}

func TestDanglingPropertyReference(t *testing.T) {
	m, err := Parse(strings.NewReader(mini(strings.Join([]string{
		`#1=IFCWALL('g',$,'W',$,$,$,$,$,$);`,
		`#2=IFCRELDEFINESBYPROPERTIES('r',$,$,$,(#1),#99);`,
	}, "\n"))))
	require.NoError(t, err)

	_, err = GetPropertySets(mustEntity(t, m, 1), PropertySetsOnly)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDanglingReference))
	var se *StructureError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 2, se.EntityID)
}

func TestWrongArgumentShape(t *testing.T) {
	m, err := Parse(strings.NewReader(mini(strings.Join([]string{
		`#1=IFCWALL('g',$,'W',$,$,$,$,$,$);`,
		`#2=IFCPROPERTYSET('p',$,'Pset_WallCommon',$,'oops');`,
		`#3=IFCRELDEFINESBYPROPERTIES('r',$,$,$,(#1),#2);`,
	}, "\n"))))
	require.NoError(t, err)

	_, err = GetPropertySets(mustEntity(t, m, 1), AllSets)
	var se *StructureError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 2, se.EntityID)
	assert.False(t, errors.Is(err, ErrDanglingReference))
}

func TestToValue(t *testing.T) {
	assert.Equal(t, models.Number(4), ToValue(Param{Kind: ParamInteger, Int: 4}))
	assert.Equal(t, models.Boolean(false), ToValue(Param{Kind: ParamEnum, Str: "F"}))
	assert.Equal(t, models.Null(), ToValue(Param{Kind: ParamEnum, Str: "U"}))
	assert.Equal(t, models.Text("NOTDEFINED"), ToValue(Param{Kind: ParamEnum, Str: "NOTDEFINED"}))
	assert.Equal(t, models.Null(), ToValue(Param{Kind: ParamRef, Ref: 3}))
	assert.Equal(t, models.Text("A, B"), ToValue(Param{Kind: ParamList, List: []Param{
		{Kind: ParamTyped, Str: "IFCLABEL", List: []Param{{Kind: ParamString, Str: "A"}}},
		{Kind: ParamTyped, Str: "IFCLABEL", List: []Param{{Kind: ParamString, Str: "B"}}},
	}}))
}
