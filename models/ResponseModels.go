package models

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// IfcAnalysisResponse is returned by the IFC analysis endpoint.
type IfcAnalysisResponse struct {
	FileName        string          `json:"file_name"`
	Schema          string          `json:"schema"`
	Metadata        ProjectMetadata `json:"metadata"`
	ComponentCounts []CategoryCount `json:"component_counts"`
	EntityTypes     []string        `json:"entity_types"`
	Detailed        *DetailedCounts `json:"detailed,omitempty"`
	Messages        []string        `json:"messages,omitempty"`
}

// DetailedCounts breaks one product type down by the type part of its name.
type DetailedCounts struct {
	ProductType string          `json:"product_type" yaml:"product_type"`
	Counts      []CategoryCount `json:"counts" yaml:"counts"`
}

// ObjectDataResponse is the flattened object table of one class.
type ObjectDataResponse struct {
	FileName   string       `json:"file_name"`
	ClassType  string       `json:"class_type"`
	Attributes []string     `json:"attributes"`
	Table      Table        `json:"table"`
	Groups     *GroupResult `json:"groups,omitempty"`
	Messages   []string     `json:"messages,omitempty"`
}

// ComparisonResponse is returned by the comparison endpoint.
type ComparisonResponse struct {
	File1     string          `json:"file_1"`
	File2     string          `json:"file_2"`
	Rows      []ComparisonRow `json:"rows"`
	Component *ComparisonRow  `json:"component,omitempty"`
	Messages  []string        `json:"messages,omitempty"`
}

// SheetAnalysisResponse is returned by the spreadsheet analysis endpoint.
type SheetAnalysisResponse struct {
	FileName string        `json:"file_name"`
	Sheet    string        `json:"sheet"`
	Header   []string      `json:"header"`
	Columns  []string      `json:"columns"`
	Rows     [][]string    `json:"rows"`
	Stats    []ColumnStats `json:"stats,omitempty"`
	Messages []string      `json:"messages,omitempty"`
}
