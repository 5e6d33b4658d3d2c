package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"ifcdash/ifc"
	"ifcdash/models"
	"ifcdash/repository"
	"ifcdash/services"
	"ifcdash/utils"
)

const (
	defaultAuthor          = "Author Name"
	excelReportSubject     = "Excel Data Analysis Report"
	excelReportCoverText   = "This report contains the analysis of Excel data."
	excelReportProjectName = "Excel Data Analysis"
)

func reportOptions(c *gin.Context, session *AnalysisSession, subject, coverText string) services.ReportOptions {
	return services.ReportOptions{
		ReportID:  session.ID,
		Author:    c.DefaultPostForm("author", defaultAuthor),
		Subject:   c.DefaultPostForm("subject", subject),
		CoverText: c.DefaultPostForm("cover_text", coverText),
	}
}

// sendReport renders the PDF into memory and sends it as a download.
// Skipped charts are listed in X-Report-Warnings.
func sendReport(c *gin.Context, fileName string, report services.Report, opts services.ReportOptions) {
	var buf bytes.Buffer
	warnings, err := services.BuildReport(&buf, report, opts)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Error generating PDF", err)
		return
	}
	if len(warnings) > 0 {
		c.Header("X-Report-Warnings", strings.ReplaceAll(strings.Join(warnings, "; "), "\n", " "))
	}
	c.Header("Content-Disposition", attachment(fileName))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// IfcReport godoc
// @Summary      Export IFC analysis as PDF
// @Description  Cover page, project metadata, component counts and the component chart. product_type adds the detailed chart of that type.
// @Tags         report
// @Accept       multipart/form-data
// @Produce      application/pdf
// @Param        file          formData  file    true   "IFC file"
// @Param        author        formData  string  false  "Cover page author"
// @Param        subject       formData  string  false  "Cover page title"
// @Param        cover_text    formData  string  false  "Cover page text, may contain HTML"
// @Param        chart_type    formData  string  false  "bar or pie"
// @Param        product_type  formData  string  false  "Product type for a detailed chart"
// @Success      200  {file}    file  "PDF report"
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/ifc/report [post]
func IfcReport(up Uploads) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind, err := services.ParseChartKind(c.PostForm("chart_type"))
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid chart_type", err)
			return
		}

		session := NewSession(c, up)
		defer session.Close()

		ctx, cancel := utils.GetReportContext(c.Request.Context())
		defer cancel()

		model, name, err := session.OpenModel(ctx, "file")
		if err != nil {
			fail(c, err)
			return
		}

		counts := repository.SortCounts(repository.CountBuildingComponents(model), "count")
		report := services.Report{
			Metadata:        repository.ProjectMetadata(model),
			ComponentCounts: counts,
			Charts:          []services.Chart{services.ComponentChart(counts, kind)},
		}
		if productType := strings.TrimSpace(c.PostForm("product_type")); productType != "" {
			detailed := repository.SortCounts(repository.CountByNamePrefix(model, productType), "count")
			report.Charts = append(report.Charts, services.DetailedChart(ifc.CanonicalName(productType), detailed))
		}

		pdfName := strings.TrimSuffix(name, filepath.Ext(name)) + ".pdf"
		sendReport(c, pdfName, report, reportOptions(c, session, services.DefaultReportSubject, services.DefaultReportCoverText))
	}
}

// ExcelReport godoc
// @Summary      Export Excel analysis as PDF
// @Description  One chart per selected column and descriptive statistics of the numeric ones
// @Tags         report
// @Accept       multipart/form-data
// @Produce      application/pdf
// @Param        file        formData  file    true   "Excel workbook (.xlsx)"
// @Param        columns     formData  string  false  "Comma separated columns, default all"
// @Param        author      formData  string  false  "Cover page author"
// @Param        subject     formData  string  false  "Cover page title"
// @Param        cover_text  formData  string  false  "Cover page text, may contain HTML"
// @Success      200  {file}    file  "PDF report"
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/excel/report [post]
func ExcelReport(up Uploads) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := NewSession(c, up)
		defer session.Close()

		sheet, _, err := session.OpenSheet("file")
		if err != nil {
			fail(c, err)
			return
		}
		columns, messages := selectColumns(sheet, utils.FormList(c, "columns"))
		if len(columns) == 0 {
			utils.ErrorResponse(c, http.StatusBadRequest, "No columns selected", errors.New(strings.Join(append(messages, "sheet has no matching columns"), "; ")))
			return
		}
		if len(messages) > 0 {
			c.Header("X-Report-Messages", strings.Join(messages, "; "))
		}

		report := services.Report{
			Metadata: models.ProjectMetadata{Name: excelReportProjectName},
			Stats:    services.DescribeColumns(sheet, columns),
			Charts:   services.SheetCharts(sheet, columns),
		}
		sendReport(c, "excel_analysis.pdf", report, reportOptions(c, session, excelReportSubject, excelReportCoverText))
	}
}
