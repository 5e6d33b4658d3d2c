package services

import (
	"bytes"
	"encoding/csv"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ifcdash/models"
)

func TestDescribeColumns(t *testing.T) {
	sheet := &models.Sheet{
		Name:   "Sheet1",
		Header: []string{"Element", "Volume", "Mass"},
		Rows: [][]string{
			{"B1", "1", "10"},
			{"B2", "2", ""},
			{"B3", "3", "30"},
			{"B4", "4", "x"},
			{"B5", "5", "50"},
		},
	}
	stats := DescribeColumns(sheet, nil)
	require.Len(t, stats, 1, "text and mixed columns are skipped")

	s := stats[0]
	assert.Equal(t, "Volume", s.Column)
	assert.Equal(t, 5, s.Count)
	assert.InDelta(t, 3.0, s.Mean, 1e-9)
	assert.InDelta(t, 1.5811388, s.Std, 1e-6)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 2.0, s.Q25)
	assert.Equal(t, 3.0, s.Q50)
	assert.Equal(t, 4.0, s.Q75)
	assert.Equal(t, 5.0, s.Max)

	assert.Empty(t, DescribeColumns(sheet, []string{"Element", "Nope"}))

	single := DescribeColumns(&models.Sheet{Header: []string{"v"}, Rows: [][]string{{"7"}}}, nil)
	require.Len(t, single, 1)
	assert.Equal(t, 0.0, single[0].Std)
	assert.Equal(t, 7.0, single[0].Q75)
}

func TestRenderChart(t *testing.T) {
	counts := []models.CategoryCount{{Category: "IfcBeam", Count: 3}, {Category: "IfcWall", Count: 2}}
	for _, kind := range []ChartKind{ChartBar, ChartPie} {
		data, err := RenderChart(ComponentChart(counts, kind))
		require.NoError(t, err, kind)
		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, chartWidth, img.Bounds().Dx())
		assert.Equal(t, chartHeight, img.Bounds().Dy())
	}

	row := models.ComparisonRow{Category: "IfcWindow", CountA: 0, CountB: 1, Difference: -1}
	_, err := RenderChart(ComparisonChart(row, "a.ifc", "b.ifc"))
	assert.NoError(t, err, "negative bars are drawn below the axis")
}

func TestRenderChartErrors(t *testing.T) {
	_, err := RenderChart(ComponentChart(nil, ChartBar))
	assert.ErrorIs(t, err, ErrEmptyChart)

	_, err = RenderChart(OverallComparisonChart([]models.ComparisonRow{{Category: "Same", CountA: 1, CountB: 1}}))
	assert.ErrorIs(t, err, ErrEmptyChart)

	_, err = RenderChart(Chart{Kind: ChartBar, Labels: []string{"a", "b"}, Series: []Series{{Values: []float64{1}}}})
	assert.Error(t, err)

	_, err = RenderChart(Chart{Kind: ChartPie, Labels: []string{"a"}, Series: []Series{{Values: []float64{-1}}}})
	assert.Error(t, err)
}

func TestParseChartKind(t *testing.T) {
	for in, want := range map[string]ChartKind{"": ChartBar, "Bar Chart": ChartBar, "pie": ChartPie, "Pie Chart": ChartPie} {
		got, err := ParseChartKind(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseChartKind("radar")
	assert.Error(t, err)
}

func TestOverallComparisonChartUsesAbsoluteDifferences(t *testing.T) {
	ch := OverallComparisonChart([]models.ComparisonRow{
		{Category: "Door", Difference: 2},
		{Category: "Wall", Difference: 0},
		{Category: "Window", Difference: -1},
	})
	assert.Equal(t, []string{"Door", "Window"}, ch.Labels)
	assert.Equal(t, []float64{2, 1}, ch.Series[0].Values)
}

func TestSheetCharts(t *testing.T) {
	sheet := &models.Sheet{
		Header: []string{"element", "net_volume", "grade"},
		Rows:   [][]string{{"B1", "1.5", "C40"}, {"B2", "2", "C40"}, {"B3", "0.5", "C50"}},
	}
	charts := SheetCharts(sheet, []string{"net_volume", "grade", "missing"})
	require.Len(t, charts, 2)

	assert.Equal(t, ChartBar, charts[0].Kind)
	assert.Equal(t, "Net Volume", charts[0].Title)
	assert.Equal(t, []string{"B1", "B2", "B3"}, charts[0].Labels)
	assert.Equal(t, []float64{1.5, 2, 0.5}, charts[0].Series[0].Values)

	assert.Equal(t, ChartPie, charts[1].Kind)
	assert.Equal(t, []string{"C40", "C50"}, charts[1].Labels)
	assert.Equal(t, []float64{2, 1}, charts[1].Series[0].Values)
}

func TestHTMLToText(t *testing.T) {
	assert.Equal(t, "plain text", HTMLToText("plain text"))
	assert.Equal(t, "Intro\nBold part\n• one\n• two",
		HTMLToText("<p>Intro</p><p><b>Bold</b> part</p><ul><li>one</li><li>two</li></ul>"))
	assert.Equal(t, "a & b", HTMLToText("a &amp; b"))
}

func TestBuildReport(t *testing.T) {
	var buf bytes.Buffer
	warnings, err := BuildReport(&buf, Report{
		Metadata:        models.ProjectMetadata{Name: "Tower A"},
		ComponentCounts: []models.CategoryCount{{Category: "IfcBeam", Count: 3}},
		Stats:           []models.ColumnStats{{Column: "Volume", Count: 2, Mean: 1.5}},
		Charts: []Chart{
			ComponentChart([]models.CategoryCount{{Category: "IfcBeam", Count: 3}}, ChartBar),
			ComponentChart(nil, ChartPie),
			ComponentChart([]models.CategoryCount{{Category: "IfcBeam", Count: 3}}, ChartPie),
		},
	}, ReportOptions{
		ReportID:  "rep-1",
		Author:    "Site office",
		CoverText: "<p>Prefabriqué elements</p>",
		Generated: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.True(t, strings.HasPrefix(warnings[0], "Chart 2:"), warnings[0])
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 1000)
}

func exportTable() models.Table {
	return models.Table{
		Columns: []string{"ExpressId", "Name", "Pset_BeamCommon.LoadBearing", "Qto.NetVolume"},
		Rows: [][]models.Value{
			{models.Number(11), models.Text("Beam, long"), models.Boolean(true), models.Number(3.5)},
			{models.Number(12), models.Null(), models.Boolean(false), models.Null()},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, exportTable()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"ExpressId", "Name", "Pset_BeamCommon.LoadBearing", "Qto.NetVolume"},
		{"11", "Beam, long", "True", "3.5"},
		{"12", "", "False", ""},
	}, records)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, exportTable(), "IfcBeam"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"IfcBeam"}, f.GetSheetList())
	rows, err := f.GetRows("IfcBeam")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Qto.NetVolume", rows[0][3])
	assert.Equal(t, "3.5", rows[1][3])
	assert.Equal(t, "TRUE", rows[1][2])
}

func TestSheetName(t *testing.T) {
	cases := map[string]string{
		"IfcBeam":               "IfcBeam",
		"Ifc:Beam":              "Ifc_Beam",
		`a/b\c?d*e[f]`:          "a_b_c_d_e_f_",
		"'quoted'":              "quoted",
		"   ":                   "Data",
		strings.Repeat("é", 40): strings.Repeat("é", 31),
	}
	for in, want := range cases {
		assert.Equal(t, want, SheetName(in), in)
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, exportTable(), "Ifc:Beam"))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Ifc_Beam"}, f.GetSheetList())
}
