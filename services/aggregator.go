package services

import (
	"fmt"
	"sort"
	"strings"

	"ifcdash/models"
)

// MissingColumnsError reports grouping or sum columns absent from a table.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	quoted := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		quoted[i] = "'" + c + "'"
	}
	switch len(quoted) {
	case 0:
		return "No columns given"
	case 1:
		return fmt.Sprintf("Column %s not found", quoted[0])
	}
	return fmt.Sprintf("Columns %s and %s not found",
		strings.Join(quoted[:len(quoted)-1], ", "), quoted[len(quoted)-1])
}

func columnIndexes(table models.Table, names []string) ([]int, error) {
	idx := make([]int, len(names))
	var missing []string
	for i, n := range names {
		idx[i] = table.ColumnIndex(n)
		if idx[i] < 0 {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}
	return idx, nil
}

// GroupCount counts table rows per observed combination of keys. Null keys
// form their own group. Rows are ordered by key tuple.
func GroupCount(table models.Table, keys ...string) ([]models.GroupRow, error) {
	return group(table, -1, keys)
}

// GroupSum is GroupCount that also totals sumColumn per group. Null and
// non-numeric cells add nothing but still count toward their group.
func GroupSum(table models.Table, sumColumn string, keys ...string) ([]models.GroupRow, error) {
	names := append(append([]string(nil), keys...), sumColumn)
	idx, err := columnIndexes(table, names)
	if err != nil {
		return nil, err
	}
	return group(table, idx[len(idx)-1], keys)
}

func group(table models.Table, sumIdx int, keys []string) ([]models.GroupRow, error) {
	keyIdx, err := columnIndexes(table, keys)
	if err != nil {
		return nil, err
	}
	groups := map[string]*models.GroupRow{}
	var order []*models.GroupRow
	for _, row := range table.Rows {
		tuple := make([]models.Value, len(keyIdx))
		for i, k := range keyIdx {
			tuple[i] = row[k]
		}
		id := tupleKey(tuple)
		g, ok := groups[id]
		if !ok {
			g = &models.GroupRow{Keys: tuple}
			groups[id] = g
			order = append(order, g)
		}
		g.Count++
		if sumIdx >= 0 {
			if g.Sum == nil {
				g.Sum = new(float64)
			}
			if row[sumIdx].IsNumber() {
				*g.Sum += row[sumIdx].Float()
			}
		}
	}
	out := make([]models.GroupRow, len(order))
	for i, g := range order {
		out[i] = *g
	}
	SortGroups(out)
	return out, nil
}

// tupleKey encodes a key tuple so that distinct tuples never collide and
// tuples that compare equal share a key (-0 and 0 among them).
func tupleKey(tuple []models.Value) string {
	var b strings.Builder
	for _, v := range tuple {
		text := v.String()
		if v.IsNumber() && v.Float() == 0 {
			text = "0"
		}
		fmt.Fprintf(&b, "%d:%d:%s|", v.Kind, len(text), text)
	}
	return b.String()
}

// SortGroups orders rows lexicographically by their key tuples.
func SortGroups(rows []models.GroupRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Keys, rows[j].Keys
		for k := 0; k < len(a) && k < len(b); k++ {
			if c := a[k].Compare(b[k]); c != 0 {
				return c < 0
			}
		}
		return len(a) < len(b)
	})
}

// CompareCounts diffs two category counts over the union of their
// categories. Missing categories count 0 and Difference is CountA - CountB.
func CompareCounts(a, b map[string]int) []models.ComparisonRow {
	seen := map[string]struct{}{}
	for k := range a {
		seen[k] = struct{}{}
	}
	for k := range b {
		seen[k] = struct{}{}
	}
	rows := make([]models.ComparisonRow, 0, len(seen))
	for k := range seen {
		rows = append(rows, models.ComparisonRow{
			Category:   k,
			CountA:     a[k],
			CountB:     b[k],
			Difference: a[k] - b[k],
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	return rows
}

// SortByCount orders counts by descending count, ties by category.
func SortByCount(counts []models.CategoryCount) {
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Category < counts[j].Category
	})
}

// FindComparison returns the row for category, if present.
func FindComparison(rows []models.ComparisonRow, category string) (models.ComparisonRow, bool) {
	for _, r := range rows {
		if r.Category == category {
			return r, true
		}
	}
	return models.ComparisonRow{}, false
}

// GroupTable is GroupSum when sumColumn is set and GroupCount otherwise.
func GroupTable(table models.Table, keys []string, sumColumn string) (*models.GroupResult, error) {
	var rows []models.GroupRow
	var err error
	if sumColumn != "" {
		rows, err = GroupSum(table, sumColumn, keys...)
	} else {
		rows, err = GroupCount(table, keys...)
	}
	if err != nil {
		return nil, err
	}
	return &models.GroupResult{GroupBy: keys, SumColumn: sumColumn, Rows: rows}, nil
}

const (
	BeamClass        = "IfcBeam"
	BeamVolumeColumn = "Qto_BeamBaseQuantities.NetVolume"
)

// BeamGroupKeys are the grouping columns of BeamVolumeTotals.
var BeamGroupKeys = []string{"Level", "Type", "PredefinedType"}

// BeamVolumeTotals sums NetVolume per Level, Type and PredefinedType over
// the rows whose Class is exactly IfcBeam. Subtypes are left out.
func BeamVolumeTotals(table models.Table) ([]models.GroupRow, error) {
	return GroupSum(FilterRows(table, "Class", models.Text(BeamClass)), BeamVolumeColumn, BeamGroupKeys...)
}
