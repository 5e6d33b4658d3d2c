package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"ifcdash/models"
)

// ErrEmptyWorkbook is returned when a workbook has no sheets or its first
// sheet has no header row.
var ErrEmptyWorkbook = errors.New("workbook has no data")

// ReadSheet loads the first worksheet of an .xlsx file. The first row is the
// header; blank header cells become "Unnamed: <index>" and repeated names get
// a ".<n>" suffix. Blank rows are skipped and short rows are padded.
func ReadSheet(path string) (*models.Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error reading Excel sheet %q: %w", sheets[0], err)
	}
	var data [][]string
	for _, r := range rows {
		if !blankRow(r) {
			data = append(data, r)
		}
	}
	if len(data) == 0 {
		return nil, ErrEmptyWorkbook
	}

	width := 0
	for _, r := range data {
		if len(r) > width {
			width = len(r)
		}
	}
	sheet := &models.Sheet{Name: sheets[0], Header: headerNames(data[0], width)}
	for _, r := range data[1:] {
		row := make([]string, width)
		copy(row, r)
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

func blankRow(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func headerNames(first []string, width int) []string {
	header := make([]string, width)
	seen := map[string]int{}
	for i := range header {
		name := ""
		if i < len(first) {
			name = strings.TrimSpace(first[i])
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		header[i] = name
	}
	return header
}
