package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"ifcdash/models"
)

func testdata(name string) string {
	return filepath.Join("..", "..", "ifc", "testdata", name)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTypesYAML(t *testing.T) {
	out, err := run(t, "types", testdata("annex.ifc"))
	require.NoError(t, err)

	var res typesResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.Equal(t, "annex.ifc", res.File)
	assert.Equal(t, []string{"IfcBeam", "IfcProject", "IfcWall", "IfcWallStandardCase", "IfcWindow"}, res.Types)
	assert.True(t, strings.HasPrefix(out, "file: annex.ifc\n"))
}

func TestCountsJSON(t *testing.T) {
	out, err := run(t, "--format", "json", "counts", testdata("tower.ifc"), "--product-type", "ifcbeam")
	require.NoError(t, err)

	var res countsResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "IFC4", res.Schema)
	assert.Equal(t, "Tower A", res.Metadata.Name)
	require.NotEmpty(t, res.Counts)
	assert.Equal(t, models.CategoryCount{Category: "IfcBeam", Count: 3}, res.Counts[0])
	require.NotNil(t, res.Detailed)
	assert.Equal(t, "IfcBeam", res.Detailed.ProductType)
	assert.Equal(t, []models.CategoryCount{{Category: "Beam", Count: 2}, {Category: "Unnamed", Count: 1}}, res.Detailed.Counts)
}

func TestUnknownFormat(t *testing.T) {
	_, err := run(t, "--format", "toml", "types", testdata("annex.ifc"))
	assert.ErrorContains(t, err, "invalid format")
}

func TestRejectsNonIFC(t *testing.T) {
	_, err := run(t, "types", "model.txt")
	assert.ErrorContains(t, err, "expected an .ifc file")

	_, err = run(t, "types", filepath.Join(t.TempDir(), "missing.ifc"))
	assert.Error(t, err)
}

func TestExtractBeams(t *testing.T) {
	out, err := run(t, "--format", "json", "extract", testdata("tower.ifc"), "--class", "IfcBeam")
	require.NoError(t, err)

	var res extractResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 3, res.Records)
	require.NotNil(t, res.Table)
	assert.Len(t, res.Table.Rows, 3)
	assert.Contains(t, res.Table.Columns, "Qto_BeamBaseQuantities.NetVolume")

	require.NotNil(t, res.Groups)
	assert.Equal(t, []string{"Level", "Type", "PredefinedType"}, res.Groups.GroupBy)
	total := 0.0
	for _, g := range res.Groups.Rows {
		require.NotNil(t, g.Sum)
		total += *g.Sum
	}
	assert.InDelta(t, 4.75, total, 1e-9)
}

func TestExtractToFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "beams.csv")
	_, err := run(t, "extract", testdata("tower.ifc"), "--class", "IfcBeam", "--out", csvPath)
	require.NoError(t, err)
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "ExpressId,GlobalId,Class,PredefinedType,Name,Level,Type"))
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 4)

	xlsxPath := filepath.Join(dir, "beams.xlsx")
	_, err = run(t, "extract", testdata("tower.ifc"), "--class", "IfcBeam", "--out", xlsxPath)
	require.NoError(t, err)
	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"IfcBeam"}, f.GetSheetList())

	_, err = run(t, "extract", testdata("tower.ifc"), "--out", filepath.Join(dir, "beams.json"))
	assert.ErrorContains(t, err, "must end in .csv or .xlsx")

	_, err = run(t, "extract", testdata("tower.ifc"), "--sum", "Qto_BeamBaseQuantities.NetVolume")
	assert.ErrorContains(t, err, "--sum requires --group-by")
}

func TestExtractMissingGroupColumn(t *testing.T) {
	out, err := run(t, "--format", "json", "extract", testdata("tower.ifc"), "--class", "IfcWall", "--group-by", "Storey")
	require.NoError(t, err)

	var res extractResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Nil(t, res.Groups)
	assert.Equal(t, []string{"Column 'Storey' not found"}, res.Messages)
}

func TestCompare(t *testing.T) {
	out, err := run(t, "--format", "json", "compare", testdata("tower.ifc"), testdata("annex.ifc"))
	require.NoError(t, err)

	var res compareResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Len(t, res.Rows, 6)
	assert.Equal(t, models.ComparisonRow{Category: "IfcBeam", CountA: 3, CountB: 1, Difference: 2}, res.Rows[0])

	out, err = run(t, "--format", "json", "compare", testdata("tower.ifc"), testdata("annex.ifc"), "--component", "IfcWindow")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []models.ComparisonRow{{Category: "IfcWindow", CountA: 0, CountB: 1, Difference: -1}}, res.Rows)

	_, err = run(t, "compare", testdata("tower.ifc"), testdata("annex.ifc"), "--component", "IfcSlab")
	assert.ErrorContains(t, err, "neither file")
}

func TestReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tower.pdf")
	out, err := run(t, "--format", "json", "report", testdata("tower.ifc"), "--out", path, "--chart", "pie", "--author", "Site office")
	require.NoError(t, err)

	var res reportResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, path, res.Output)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	_, err = run(t, "report", testdata("tower.ifc"), "--out", path, "--chart", "radar")
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elements.xlsx")
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Mark", "Volume", "Mass"},
		{"B1", 1.0, 2400},
		{"B2", 2.0, 4800},
		{"B3", 3.0, 7200},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	out, err := run(t, "--format", "json", "describe", path, "--columns", "Volume,Mark")
	require.NoError(t, err)

	var res describeResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "Sheet1", res.Sheet)
	assert.Equal(t, 3, res.Rows)
	require.Len(t, res.Stats, 1)
	assert.Equal(t, "Volume", res.Stats[0].Column)
	assert.InDelta(t, 2.0, res.Stats[0].Mean, 1e-9)
	assert.InDelta(t, 1.0, res.Stats[0].Std, 1e-9)
}
