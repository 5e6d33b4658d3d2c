package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"ifcdash/models"
)

// ChartKind selects how a Chart is drawn.
type ChartKind string

const (
	ChartBar        ChartKind = "bar"
	ChartPie        ChartKind = "pie"
	ChartGroupedBar ChartKind = "grouped_bar"
)

// ErrEmptyChart is returned when a chart has nothing to draw.
var ErrEmptyChart = errors.New("chart has no data")

// ParseChartKind accepts "bar"/"pie" as well as the "Bar Chart"/"Pie Chart"
// labels of the dashboard. Blank means bar.
func ParseChartKind(s string) (ChartKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bar", "bar chart":
		return ChartBar, nil
	case "pie", "pie chart":
		return ChartPie, nil
	case "grouped_bar", "grouped":
		return ChartGroupedBar, nil
	}
	return "", fmt.Errorf("unknown chart type %q", s)
}

// Series is one named run of values, aligned with Chart.Labels.
type Series struct {
	Name   string
	Values []float64
}

// Chart is a renderable figure. Bar and pie charts read the first series;
// grouped bars draw every series side by side per label.
type Chart struct {
	Kind   ChartKind
	Title  string
	Labels []string
	Series []Series
}

const (
	chartWidth  = 900
	chartHeight = 560

	// horizontal room taken by the y axis labels and canvas padding
	chartAxisRoom = 120
)

var (
	chartColor = hexColors(
		"636efa", "ef553b", "00cc96", "ab63fa", "ffa15a",
		"19d3f3", "ff6692", "b6e880", "ff97ff", "fecb52",
	)
	// comparison bars use the dashboard's red, teal and slate
	comparisonColor = hexColors("cd5c5c", "20b2aa", "778899")
)

func hexColors(hex ...string) []drawing.Color {
	out := make([]drawing.Color, len(hex))
	for i, h := range hex {
		out[i] = drawing.ColorFromHex(h)
	}
	return out
}

var (
	chartFontOnce sync.Once
	chartFont     *truetype.Font
	chartFontErr  error
)

// loadChartFont parses the Go Regular face used for every chart label.
func loadChartFont() (*truetype.Font, error) {
	chartFontOnce.Do(func() {
		chartFont, chartFontErr = truetype.Parse(goregular.TTF)
	})
	return chartFont, chartFontErr
}

// renderer is implemented by chart.BarChart and chart.PieChart.
type renderer interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// RenderChart rasterizes the chart to a chartWidth x chartHeight PNG.
func RenderChart(ch Chart) ([]byte, error) {
	if len(ch.Labels) == 0 || len(ch.Series) == 0 {
		return nil, ErrEmptyChart
	}
	for _, s := range ch.Series {
		if len(s.Values) != len(ch.Labels) {
			return nil, fmt.Errorf("series %q has %d values for %d labels", s.Name, len(s.Values), len(ch.Labels))
		}
		for _, v := range s.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("series %q has a non-finite value", s.Name)
			}
		}
	}
	font, err := loadChartFont()
	if err != nil {
		return nil, fmt.Errorf("loading chart font: %w", err)
	}

	var r renderer
	switch ch.Kind {
	case ChartPie:
		pie, err := pieChart(ch, font)
		if err != nil {
			return nil, err
		}
		r = pie
	case ChartBar, ChartGroupedBar, "":
		r = barChart(ch, font)
	default:
		return nil, fmt.Errorf("unknown chart type %q", ch.Kind)
	}

	var buf bytes.Buffer
	if err := r.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering chart: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

func formatTick(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func tickFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return formatTick(f)
	}
	return fmt.Sprint(v)
}

// barChart lays the series out as one bar per label, or per label and
// series for grouped bars. A grouped chart with a single label names each
// bar after its series. Bars grow from zero, so negative values point down.
func barChart(ch Chart, font *truetype.Font) chart.BarChart {
	series := ch.Series
	palette := chartColor
	if ch.Kind == ChartGroupedBar {
		if len(series) <= len(comparisonColor) {
			palette = comparisonColor
		}
	} else {
		series = series[:1]
	}

	n := len(ch.Labels) * len(series)
	slot := float64(chartWidth-chartAxisRoom) / float64(n)
	maxChars := int(slot/7) - 1
	if maxChars < 4 {
		maxChars = 4
	}

	lo, hi := 0.0, 0.0
	bars := make([]chart.Value, 0, n)
	for i, label := range ch.Labels {
		for si, s := range series {
			v := s.Values[i]
			lo, hi = math.Min(lo, v), math.Max(hi, v)

			text := label
			switch {
			case len(series) > 1 && len(ch.Labels) == 1:
				text = s.Name
			case si > 0:
				text = ""
			}
			if slot < 12 {
				text = ""
			}
			c := palette[0]
			if len(series) > 1 {
				c = palette[si%len(palette)]
			}
			bars = append(bars, chart.Value{
				Label: truncate(text, maxChars),
				Value: v,
				Style: chart.Style{FillColor: c, StrokeColor: c},
			})
		}
	}
	if lo == hi {
		hi = 1
	}

	barWidth := int(slot * 0.75)
	if barWidth > 120 {
		barWidth = 120
	}
	if barWidth < 1 {
		barWidth = 1
	}
	spacing := int(slot) - barWidth
	if spacing < 1 {
		spacing = 1
	}

	bc := chart.BarChart{
		Title:        ch.Title,
		TitleStyle:   chart.Style{FontSize: 14},
		Font:         font,
		Width:        chartWidth,
		Height:       chartHeight,
		Background:   chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		BarWidth:     barWidth,
		BarSpacing:   spacing,
		UseBaseValue: true,
		Bars:         bars,
	}
	// bars grow from zero rather than from the smallest value
	bc.YAxis = chart.YAxis{
		Range:          &chart.ContinuousRange{Min: lo, Max: hi},
		ValueFormatter: tickFormatter,
	}
	return bc
}

// pieChart draws the first series as slices labelled with their share.
// Zero slices are left out; negative ones are an error.
func pieChart(ch Chart, font *truetype.Font) (chart.PieChart, error) {
	values := ch.Series[0].Values
	total := 0.0
	for i, v := range values {
		if v < 0 {
			return chart.PieChart{}, fmt.Errorf("pie slice %q is negative", ch.Labels[i])
		}
		total += v
	}
	if total <= 0 {
		return chart.PieChart{}, ErrEmptyChart
	}

	slices := make([]chart.Value, 0, len(values))
	for i, v := range values {
		if v == 0 {
			continue
		}
		c := chartColor[i%len(chartColor)]
		slices = append(slices, chart.Value{
			Label: fmt.Sprintf("%s %s (%.1f%%)", truncate(ch.Labels[i], 24), formatTick(v), v/total*100),
			Value: v,
			Style: chart.Style{FillColor: c, StrokeColor: drawing.ColorWhite},
		})
	}
	return chart.PieChart{
		Title:      ch.Title,
		TitleStyle: chart.Style{FontSize: 14},
		Font:       font,
		Width:      chartWidth,
		Height:     chartHeight,
		Values:     slices,
	}, nil
}

// Heading turns a column or field name into a display heading, e.g.
// "net_volume" becomes "Net Volume".
func Heading(name string) string {
	caser := cases.Title(language.Und)
	return caser.String(strings.ReplaceAll(name, "_", " "))
}

// ComponentChart charts building component counts in the given order.
func ComponentChart(counts []models.CategoryCount, kind ChartKind) Chart {
	ch := Chart{Kind: kind, Title: "Building Component Count"}
	s := Series{Name: "Count"}
	for _, c := range counts {
		ch.Labels = append(ch.Labels, c.Category)
		s.Values = append(s.Values, float64(c.Count))
	}
	ch.Series = []Series{s}
	return ch
}

// DetailedChart is the pie of one product type broken down by name prefix.
func DetailedChart(productType string, counts []models.CategoryCount) Chart {
	ch := ComponentChart(counts, ChartPie)
	ch.Title = fmt.Sprintf("Distribution of %s Products by Type", productType)
	return ch
}

// ComparisonChart draws one category of two models side by side with their
// difference.
func ComparisonChart(row models.ComparisonRow, file1, file2 string) Chart {
	return Chart{
		Kind:   ChartGroupedBar,
		Title:  fmt.Sprintf("Comparison of %s in %s and %s", row.Category, file1, file2),
		Labels: []string{row.Category},
		Series: []Series{
			{Name: file1 + " - File 1", Values: []float64{float64(row.CountA)}},
			{Name: file2 + " - File 2", Values: []float64{float64(row.CountB)}},
			{Name: "Difference", Values: []float64{float64(row.Difference)}},
		},
	}
}

// OverallComparisonChart is the pie of absolute differences across every
// category that differs.
func OverallComparisonChart(rows []models.ComparisonRow) Chart {
	ch := Chart{Kind: ChartPie, Title: "Overall Comparison of Differences"}
	s := Series{Name: "Difference"}
	for _, r := range rows {
		if r.Difference == 0 {
			continue
		}
		ch.Labels = append(ch.Labels, r.Category)
		s.Values = append(s.Values, math.Abs(float64(r.Difference)))
	}
	ch.Series = []Series{s}
	return ch
}

// SheetCharts builds one chart per selected column: bars of the values for
// numeric columns, labelled by the first column, and a pie of value
// frequencies for text columns.
func SheetCharts(sheet *models.Sheet, columns []string) []Chart {
	var labels []string
	if len(sheet.Header) > 0 {
		labels, _ = sheet.Column(sheet.Header[0])
	}
	var charts []Chart
	for _, name := range columns {
		cells, ok := sheet.Column(name)
		if !ok {
			continue
		}
		if values, numeric := NumericColumn(cells); numeric && len(values) == len(cells) {
			ch := Chart{Kind: ChartBar, Title: Heading(name)}
			ch.Labels = append(ch.Labels, labels...)
			ch.Series = []Series{{Name: name, Values: values}}
			charts = append(charts, ch)
			continue
		}
		freq := map[string]int{}
		for _, c := range cells {
			if c = strings.TrimSpace(c); c != "" {
				freq[c]++
			}
		}
		ch := ComponentChart(sortByCountDesc(freq), ChartPie)
		ch.Title = "Distribution of " + Heading(name)
		charts = append(charts, ch)
	}
	return charts
}

func sortByCountDesc(counts map[string]int) []models.CategoryCount {
	out := make([]models.CategoryCount, 0, len(counts))
	for k, v := range counts {
		out = append(out, models.CategoryCount{Category: k, Count: v})
	}
	SortByCount(out)
	return out
}
