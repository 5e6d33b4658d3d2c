package services

import (
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"ifcdash/models"
)

// NumericColumn parses the cells of a sheet column. ok is false when any
// non-blank cell is not a number; blank cells are skipped.
func NumericColumn(cells []string) (values []float64, ok bool) {
	for _, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return nil, false
		}
		values = append(values, v)
	}
	return values, len(values) > 0
}

// DescribeColumns computes count, mean, sample standard deviation, min,
// quartiles and max for every numeric column among columns (all columns when
// columns is empty). Text columns are left out.
func DescribeColumns(sheet *models.Sheet, columns []string) []models.ColumnStats {
	if len(columns) == 0 {
		columns = sheet.Header
	}
	var out []models.ColumnStats
	for _, name := range columns {
		cells, ok := sheet.Column(name)
		if !ok {
			continue
		}
		values, numeric := NumericColumn(cells)
		if !numeric {
			continue
		}
		out = append(out, describe(name, values))
	}
	return out
}

func describe(name string, values []float64) models.ColumnStats {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	st := models.ColumnStats{
		Column: name,
		Count:  len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
		Q25:    quantile(0.25, sorted),
		Q50:    quantile(0.5, sorted),
		Q75:    quantile(0.75, sorted),
	}
	if len(sorted) > 1 {
		st.Std = stat.StdDev(sorted, nil)
	}
	return st
}

// quantile is the inverse of the empirical CDF: the smallest observation
// whose cumulative share reaches p.
func quantile(p float64, sorted []float64) float64 {
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}
