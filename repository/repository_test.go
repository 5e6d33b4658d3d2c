package repository

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ifcdash/ifc"
	"ifcdash/models"
)

func openFixture(t *testing.T, name string) *ifc.Model {
	t.Helper()
	m, err := ifc.Open(filepath.Join("..", "ifc", "testdata", name))
	require.NoError(t, err)
	return m
}

func TestExtractObjectDataBeams(t *testing.T) {
	records, paths, err := ExtractObjectData(openFixture(t, "tower.ifc"), "IfcBeam")
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"Custom.Fire.Rating",
		"Pset_BeamCommon.LoadBearing",
		"Pset_BeamCommon.Reference",
		"Pset_BeamCommon.Span",
		"Qto_BeamBaseQuantities.Length",
		"Qto_BeamBaseQuantities.NetVolume",
	}, paths)

	first := records[0]
	assert.Equal(t, 11, first.ExpressId)
	assert.Equal(t, models.Text("1CZILmCaHETO8tf3SgGEXu"), first.GlobalId)
	assert.Equal(t, "IfcBeam", first.Class)
	assert.Equal(t, models.Text("BEAM"), first.PredefinedType)
	assert.Equal(t, models.Text("Beam:B-300:1"), first.Name)
	assert.Equal(t, "Level 1", first.Level)
	assert.Equal(t, "B-300", first.Type)
	assert.Equal(t, models.Number(3.5), first.QuantitySets["Qto_BeamBaseQuantities"]["NetVolume"])

	last := records[2]
	assert.Equal(t, 13, last.ExpressId)
	assert.True(t, last.Name.IsNull())
	assert.Equal(t, "", last.Level)
	assert.Equal(t, "", last.Type)
	assert.Empty(t, last.PropertySets)
	assert.Empty(t, last.QuantitySets)
}

func TestExtractObjectDataPathsCoverEveryRecord(t *testing.T) {
	records, paths, err := ExtractObjectData(openFixture(t, "tower.ifc"), "IfcBuildingElement")
	require.NoError(t, err)
	known := map[string]bool{}
	for _, p := range paths {
		known[p] = true
	}
	for _, r := range records {
		for set, props := range r.PropertySets {
			for prop := range props {
				assert.True(t, known[set+"."+prop], "%s.%s", set, prop)
			}
		}
		for set, props := range r.QuantitySets {
			for prop := range props {
				assert.True(t, known[set+"."+prop], "%s.%s", set, prop)
			}
		}
	}
}

func TestExtractObjectDataNoMatches(t *testing.T) {
	m := openFixture(t, "tower.ifc")
	for _, typ := range []string{"IfcWindow", "IfcNotAType"} {
		records, paths, err := ExtractObjectData(m, typ)
		require.NoError(t, err)
		assert.Empty(t, records, typ)
		assert.Empty(t, paths, typ)
	}
}

func TestExtractObjectDataAbortsOnDanglingReference(t *testing.T) {
	src := `ISO-10303-21;
HEADER;
FILE_DESCRIPTION((''),'2;1');
FILE_NAME('bad.ifc','',(''),(''),'','','');
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
#1=IFCWALL('a',$,'ok',$,$,$,$,$,$);
#2=IFCWALL('b',$,'broken',$,$,$,$,$,$);
#3=IFCRELCONTAINEDINSPATIALSTRUCTURE('r',$,$,$,(#2),#404);
ENDSEC;
END-ISO-10303-21;
`
	m, err := ifc.Parse(strings.NewReader(src))
	require.NoError(t, err)

	records, paths, err := ExtractObjectData(m, "IfcWall")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ifc.ErrDanglingReference))
	assert.Nil(t, records)
	assert.Nil(t, paths)
}

func TestExtractObjectDataCancelled(t *testing.T) {
	m := openFixture(t, "tower.ifc")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records, paths, err := ExtractObjectDataContext(ctx, m, "IfcBeam")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, records)
	assert.Nil(t, paths)
}

func TestCountBuildingComponents(t *testing.T) {
	assert.Equal(t, map[string]int{
		"IfcBeam":           3,
		"IfcBuildingStorey": 2,
		"IfcDoor":           1,
		"IfcWall":           2,
	}, CountBuildingComponents(openFixture(t, "tower.ifc")))

	assert.Equal(t, map[string]int{
		"IfcBeam":             1,
		"IfcWall":             1,
		"IfcWallStandardCase": 2,
		"IfcWindow":           1,
	}, CountBuildingComponents(openFixture(t, "annex.ifc")))
}

func TestCountByNamePrefix(t *testing.T) {
	m := openFixture(t, "tower.ifc")
	assert.Equal(t, map[string]int{"Beam": 2, Unnamed: 1}, CountByNamePrefix(m, "IfcBeam"))
	assert.Equal(t, map[string]int{"Basic Wall": 2}, CountByNamePrefix(m, "IfcWall"))
	assert.Empty(t, CountByNamePrefix(m, "IfcWindow"))
}

func TestSortCounts(t *testing.T) {
	counts := map[string]int{"Wall": 5, "Door": 2, "Beam": 5}
	assert.Equal(t, []models.CategoryCount{
		{Category: "Beam", Count: 5}, {Category: "Wall", Count: 5}, {Category: "Door", Count: 2},
	}, SortCounts(counts, "Count"))
	assert.Equal(t, []models.CategoryCount{
		{Category: "Wall", Count: 5}, {Category: "Door", Count: 2}, {Category: "Beam", Count: 5},
	}, SortCounts(counts, "Type"))
	assert.Equal(t, "Beam", SortCounts(counts, "")[0].Category)
}

func TestProjectMetadata(t *testing.T) {
	meta := ProjectMetadata(openFixture(t, "tower.ifc"))
	assert.Equal(t, "Tower A", meta.Name)
	assert.Equal(t, "2023-11-14 22:13:20", meta.CreationDate)

	meta = ProjectMetadata(openFixture(t, "annex.ifc"))
	assert.Equal(t, models.ProjectMetadata{
		Name:         models.NotAvailable,
		Description:  models.NotAvailable,
		Phase:        models.NotAvailable,
		CreationDate: models.NotAvailable,
	}, meta)
}

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadSheet(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Element", "Volume", "", "Volume"},
		{"B1", 1.5, "x", 2},
		{},
		{"B2", 2},
	})

	sheet, err := ReadSheet(path)
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", sheet.Name)
	assert.Equal(t, []string{"Element", "Volume", "Unnamed: 2", "Volume.1"}, sheet.Header)
	assert.Equal(t, [][]string{
		{"B1", "1.5", "x", "2"},
		{"B2", "2", "", ""},
	}, sheet.Rows)

	col, ok := sheet.Column("Volume")
	require.True(t, ok)
	assert.Equal(t, []string{"1.5", "2"}, col)
	_, ok = sheet.Column("Mass")
	assert.False(t, ok)
}

func TestReadSheetErrors(t *testing.T) {
	_, err := ReadSheet(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)

	_, err = ReadSheet(writeWorkbook(t, nil))
	assert.ErrorIs(t, err, ErrEmptyWorkbook)
}
