package handlers

import (
	"bytes"
	"log"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"ifcdash/models"
	"ifcdash/services"
	"ifcdash/utils"
)

// ExportObjectDataCSV godoc
// @Summary      Export object data as CSV
// @Description  The flattened object table of class_type as a CSV download
// @Tags         export
// @Accept       multipart/form-data
// @Produce      text/csv
// @Param        file        formData  file    true  "IFC file"
// @Param        class_type  formData  string  true  "Entity class, e.g. IfcBeam"
// @Success      200  {file}    file  "CSV file"
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/ifc/objects/csv [post]
func ExportObjectDataCSV(up Uploads) gin.HandlerFunc {
	return exportObjectData(up, "text/csv; charset=utf-8", "ifc_data.csv", func(buf *bytes.Buffer, resp objectExport) error {
		return services.WriteCSV(buf, resp.table)
	})
}

// ExportObjectDataXLSX godoc
// @Summary      Export object data as XLSX
// @Description  The flattened object table of class_type as an Excel workbook
// @Tags         export
// @Accept       multipart/form-data
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        file        formData  file    true  "IFC file"
// @Param        class_type  formData  string  true  "Entity class, e.g. IfcBeam"
// @Success      200  {file}    file  "XLSX file"
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/ifc/objects/xlsx [post]
func ExportObjectDataXLSX(up Uploads) gin.HandlerFunc {
	return exportObjectData(up, xlsxContentType, "ifc_data.xlsx", func(buf *bytes.Buffer, resp objectExport) error {
		return services.WriteXLSX(buf, resp.table, resp.sheet)
	})
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func attachment(fileName string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": fileName}); v != "" {
		return v
	}
	return "attachment"
}

type objectExport struct {
	table models.Table
	sheet string
}

// exportObjectData renders into memory first so a failed export can still
// answer with a JSON error instead of a truncated file.
func exportObjectData(up Uploads, contentType, fileName string, write func(*bytes.Buffer, objectExport) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := readObjectRequest(c)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request", err)
			return
		}

		session := NewSession(c, up)
		defer session.Close()

		ctx, cancel := utils.GetDefaultAnalysisContext(c.Request.Context())
		defer cancel()

		resp, err := buildObjectData(ctx, session, req)
		if err != nil {
			fail(c, err)
			return
		}

		var buf bytes.Buffer
		if err := write(&buf, objectExport{table: resp.Table, sheet: resp.ClassType}); err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Error writing export", err)
			return
		}
		log.Printf("export %s: %d rows of %s from %s", fileName, len(resp.Table.Rows), resp.ClassType, resp.FileName)

		c.Header("Content-Disposition", attachment(fileName))
		c.Data(http.StatusOK, contentType, buf.Bytes())
	}
}
