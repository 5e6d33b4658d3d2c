package models

// PropertySets maps a set name to its properties. The same shape is used for
// quantity sets.
type PropertySets map[string]map[string]Value

// ObjectRecord is the flattened view of one model entity.
type ObjectRecord struct {
	ExpressId      int          `json:"ExpressId" yaml:"ExpressId"`
	GlobalId       Value        `json:"GlobalId" yaml:"GlobalId"`
	Class          string       `json:"Class" yaml:"Class"`
	PredefinedType Value        `json:"PredefinedType" yaml:"PredefinedType"`
	Name           Value        `json:"Name" yaml:"Name"`
	Level          string       `json:"Level" yaml:"Level"`
	Type           string       `json:"Type" yaml:"Type"`
	PropertySets   PropertySets `json:"PropertySets" yaml:"PropertySets"`
	QuantitySets   PropertySets `json:"QuantitySets" yaml:"QuantitySets"`
}

// Table is a rectangular result: every row has len(Columns) cells.
type Table struct {
	Columns []string  `json:"columns" yaml:"columns"`
	Rows    [][]Value `json:"rows" yaml:"rows"`
}

// ColumnIndex returns the position of name in Columns, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// GroupRow is one observed combination of grouping keys. Sum is set only by
// a group-sum; a group whose cells are all missing sums to 0.
type GroupRow struct {
	Keys  []Value  `json:"keys" yaml:"keys"`
	Count int      `json:"count" yaml:"count"`
	Sum   *float64 `json:"sum,omitempty" yaml:"sum,omitempty"`
}

// GroupResult carries the grouping columns alongside the rows.
type GroupResult struct {
	GroupBy   []string   `json:"group_by" yaml:"group_by"`
	SumColumn string     `json:"sum_column,omitempty" yaml:"sum_column,omitempty"`
	Rows      []GroupRow `json:"rows" yaml:"rows"`
}

// CategoryCount is one line of a component-count table.
type CategoryCount struct {
	Category string `json:"category" yaml:"category"`
	Count    int    `json:"count" yaml:"count"`
}

// ComparisonRow compares one category between two models.
type ComparisonRow struct {
	Category   string `json:"category" yaml:"category"`
	CountA     int    `json:"file_1_count" yaml:"file_1_count"`
	CountB     int    `json:"file_2_count" yaml:"file_2_count"`
	Difference int    `json:"difference" yaml:"difference"`
}

// ProjectMetadata holds the IfcProject header fields. Empty fields are
// reported as NotAvailable.
type ProjectMetadata struct {
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description" yaml:"description"`
	Phase        string `json:"phase" yaml:"phase"`
	CreationDate string `json:"creation_date" yaml:"creation_date"`
}

const NotAvailable = "Not available"

// Display returns the metadata with NotAvailable substituted for blanks.
func (m ProjectMetadata) Display() ProjectMetadata {
	or := func(s string) string {
		if s == "" {
			return NotAvailable
		}
		return s
	}
	return ProjectMetadata{
		Name:         or(m.Name),
		Description:  or(m.Description),
		Phase:        or(m.Phase),
		CreationDate: or(m.CreationDate),
	}
}
