package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ifcdash/models"
	"ifcdash/services"
	"ifcdash/utils"
)

// selectColumns keeps the requested columns that exist in the sheet, in
// request order. No request means every column.
func selectColumns(sheet *models.Sheet, requested []string) (columns []string, messages []string) {
	if len(requested) == 0 {
		return append([]string(nil), sheet.Header...), nil
	}
	present := map[string]bool{}
	for _, h := range sheet.Header {
		present[h] = true
	}
	for _, col := range requested {
		if present[col] {
			columns = append(columns, col)
		} else {
			messages = append(messages, fmt.Sprintf("Column '%s' not found", col))
		}
	}
	return columns, messages
}

func projectRows(sheet *models.Sheet, columns []string) [][]string {
	idx := make([]int, len(columns))
	for i, col := range columns {
		for j, h := range sheet.Header {
			if h == col {
				idx[i] = j
				break
			}
		}
	}
	rows := make([][]string, len(sheet.Rows))
	for r, row := range sheet.Rows {
		out := make([]string, len(idx))
		for i, j := range idx {
			out[i] = row[j]
		}
		rows[r] = out
	}
	return rows
}

// AnalyzeExcel godoc
// @Summary      Analyze Excel file
// @Description  Header and rows of the selected columns of the first worksheet. insights=true adds descriptive statistics of the numeric columns.
// @Tags         excel
// @Accept       multipart/form-data
// @Produce      json
// @Param        file      formData  file    true   "Excel workbook (.xlsx)"
// @Param        columns   formData  string  false  "Comma separated columns, default all"
// @Param        insights  formData  bool    false  "Include descriptive statistics"
// @Success      200  {object}  models.SheetAnalysisResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/excel/analyze [post]
func AnalyzeExcel(up Uploads) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := NewSession(c, up)
		defer session.Close()

		sheet, name, err := session.OpenSheet("file")
		if err != nil {
			fail(c, err)
			return
		}

		columns, messages := selectColumns(sheet, utils.FormList(c, "columns"))
		resp := models.SheetAnalysisResponse{
			FileName: name,
			Sheet:    sheet.Name,
			Header:   sheet.Header,
			Columns:  columns,
			Rows:     projectRows(sheet, columns),
			Messages: messages,
		}
		if insights, _ := strconv.ParseBool(c.DefaultPostForm("insights", "false")); insights {
			if len(columns) > 0 {
				resp.Stats = services.DescribeColumns(sheet, columns)
			}
			if len(resp.Stats) == 0 {
				resp.Messages = append(resp.Messages, "No numeric columns selected")
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}
