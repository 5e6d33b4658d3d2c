package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/jpeg"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
	"golang.org/x/net/html"

	"ifcdash/models"
)

const (
	DefaultReportSubject   = "IFC and Excel File Analysis Report"
	DefaultReportCoverText = "This report contains the analysis of IFC and Excel files. The following sections include metadata, component counts, and visualizations of the data."
)

// ReportOptions are the cover page inputs. Zero fields get defaults.
type ReportOptions struct {
	ReportID  string
	Author    string
	Subject   string
	CoverText string
	Generated time.Time
}

// Report is the content of an exported analysis document.
type Report struct {
	Metadata        models.ProjectMetadata
	ComponentCounts []models.CategoryCount
	Stats           []models.ColumnStats
	Charts          []Chart
}

// reportReference is what the cover QR code carries.
type reportReference struct {
	ReportID  string `json:"report_id"`
	Generated string `json:"generated"`
	Subject   string `json:"subject"`
}

// HTMLToText flattens rich-text editor markup to plain text. Input that does
// not parse is returned unchanged.
func HTMLToText(htmlContent string) string {
	if !strings.ContainsAny(htmlContent, "<&") {
		return htmlContent
	}
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}

	var text strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text.WriteString(n.Data)
		case html.ElementNode:
			switch n.Data {
			case "script", "style":
				return
			case "p", "div", "br", "h1", "h2", "h3", "h4", "h5", "h6", "table", "tr":
				text.WriteString("\n")
			case "li":
				text.WriteString("\n• ")
			case "td", "th":
				text.WriteString(" | ")
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			extractText(child)
		}
	}
	extractText(doc)

	result := text.String()
	for strings.Contains(result, "\n\n\n") {
		result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(result)
}

func reportQRCode(ref reportReference) ([]byte, error) {
	data, err := json.Marshal(ref)
	if err != nil {
		return nil, err
	}
	qr, err := qrcode.New(string(data), qrcode.Medium)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, qr.Image(200), nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildReport writes the PDF to w: cover page, metadata table, component
// count table, optional statistics, then one "Chart N" section per chart.
// A chart that fails to render is skipped and described in the returned
// warnings; the rest of the document is still written.
func BuildReport(w io.Writer, r Report, opts ReportOptions) ([]string, error) {
	if opts.ReportID == "" {
		opts.ReportID = uuid.NewString()
	}
	if opts.Generated.IsZero() {
		opts.Generated = time.Now()
	}
	if strings.TrimSpace(opts.Subject) == "" {
		opts.Subject = DefaultReportSubject
	}
	if strings.TrimSpace(opts.CoverText) == "" {
		opts.CoverText = DefaultReportCoverText
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	var warnings []string

	// Cover
	pdf.AddPage()
	pdf.Ln(25)
	pdf.SetFont("Arial", "B", 22)
	pdf.MultiCell(0, 11, tr(opts.Subject), "", "C", false)
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 7, "Date: "+opts.Generated.Format("2006-01-02"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, tr("Author: "+opts.Author), "", 1, "L", false, 0, "")
	pdf.Ln(20)
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, tr(HTMLToText(opts.CoverText)), "", "L", false)

	qrBytes, err := reportQRCode(reportReference{
		ReportID:  opts.ReportID,
		Generated: opts.Generated.Format(time.RFC3339),
		Subject:   opts.Subject,
	})
	if err != nil {
		log.Printf("report %s: QR code skipped: %v", opts.ReportID, err)
		warnings = append(warnings, "QR code: "+err.Error())
	} else {
		imageName := "qr_" + opts.ReportID
		pdf.RegisterImageOptionsReader(imageName, gofpdf.ImageOptions{ImageType: "JPEG"}, bytes.NewReader(qrBytes))
		pdf.ImageOptions(imageName, 160, 240, 30, 30, false, gofpdf.ImageOptions{ImageType: "JPEG"}, 0, "")
		pdf.SetXY(150, 271)
		pdf.SetFont("Arial", "", 7)
		pdf.CellFormat(50, 4, "Report "+shortID(opts.ReportID), "", 0, "C", false, 0, "")
	}

	// Metadata
	pdf.AddPage()
	sectionHeading(pdf, "IFC File Metadata")
	meta := r.Metadata.Display()
	tableHeader(pdf, []string{"Field", "Value"}, []float64{50, 130})
	for _, row := range [][2]string{
		{"Name", meta.Name},
		{"Description", meta.Description},
		{"Phase", meta.Phase},
		{"Creation Date", meta.CreationDate},
	} {
		tableRow(pdf, []string{tr(row[0]), tr(row[1])}, []float64{50, 130})
	}
	pdf.Ln(10)

	// Component count
	sectionHeading(pdf, "Component Count")
	tableHeader(pdf, []string{"Component", "Count"}, []float64{130, 50})
	for _, cc := range r.ComponentCounts {
		tableRow(pdf, []string{tr(cc.Category), strconv.Itoa(cc.Count)}, []float64{130, 50})
	}
	pdf.Ln(10)

	if len(r.Stats) > 0 {
		sectionHeading(pdf, "Descriptive Statistics")
		widths := []float64{36, 16, 16, 16, 16, 16, 16, 16, 16}
		tableHeader(pdf, []string{"Column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"}, widths)
		for _, s := range r.Stats {
			tableRow(pdf, []string{
				tr(truncate(s.Column, 20)), strconv.Itoa(s.Count), statCell(s.Mean), statCell(s.Std),
				statCell(s.Min), statCell(s.Q25), statCell(s.Q50), statCell(s.Q75), statCell(s.Max),
			}, widths)
		}
		pdf.Ln(10)
	}

	// Charts
	const chartW = 180.0
	chartH := chartW * float64(chartHeight) / float64(chartWidth)
	for i, ch := range r.Charts {
		label := fmt.Sprintf("Chart %d", i+1)
		img, err := RenderChart(ch)
		if err != nil {
			log.Printf("report %s: error exporting %s to image: %v", opts.ReportID, label, err)
			warnings = append(warnings, fmt.Sprintf("%s: %v", label, err))
			continue
		}
		_, pageH := pdf.GetPageSize()
		if pdf.GetY()+chartH+20 > pageH-15 {
			pdf.AddPage()
		}
		sectionHeading(pdf, label)
		name := fmt.Sprintf("chart_%d", i+1)
		pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(img))
		pdf.ImageOptions(name, 15, pdf.GetY(), chartW, chartH, true, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		pdf.Ln(8)
	}

	if err := pdf.Output(w); err != nil {
		return warnings, fmt.Errorf("writing pdf: %w", err)
	}
	return warnings, nil
}

func sectionHeading(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 15)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func tableHeader(pdf *gofpdf.Fpdf, cols []string, widths []float64) {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(245, 245, 245)
	for i, col := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 9, col, "1", ln, "C", true, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

func tableRow(pdf *gofpdf.Fpdf, cells []string, widths []float64) {
	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(245, 245, 220)
	for i, cell := range cells {
		ln := 0
		if i == len(cells)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 8, cell, "1", ln, "C", true, 0, "")
	}
}

func statCell(v float64) string {
	return strconv.FormatFloat(v, 'g', 5, 64)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
