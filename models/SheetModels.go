package models

// Sheet is a worksheet loaded from an uploaded spreadsheet. Cells keep their
// raw text; every row has len(Header) cells.
type Sheet struct {
	Name   string     `json:"name" yaml:"name"`
	Header []string   `json:"header" yaml:"header"`
	Rows   [][]string `json:"rows" yaml:"rows"`
}

// Column returns the cells of the named column, or false if it is absent.
func (s *Sheet) Column(name string) ([]string, bool) {
	idx := -1
	for i, h := range s.Header {
		if h == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	out := make([]string, len(s.Rows))
	for i, row := range s.Rows {
		out[i] = row[idx]
	}
	return out, true
}

// ColumnStats mirrors a descriptive-statistics column.
type ColumnStats struct {
	Column string  `json:"column" yaml:"column"`
	Count  int     `json:"count" yaml:"count"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Std    float64 `json:"std" yaml:"std"`
	Min    float64 `json:"min" yaml:"min"`
	Q25    float64 `json:"25%" yaml:"25%"`
	Q50    float64 `json:"50%" yaml:"50%"`
	Q75    float64 `json:"75%" yaml:"75%"`
	Max    float64 `json:"max" yaml:"max"`
}
