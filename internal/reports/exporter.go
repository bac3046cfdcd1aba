package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Exporter renders report rows into a downloadable document. Every method
// returns the file bytes, the suggested filename and the content type.
type Exporter interface {
	ExportHalls(format string, rows []HallReportRow) ([]byte, string, string, error)
	ExportApplications(format string, rows []ApplicationReportRow) ([]byte, string, string, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

//// ============================
/// HALLS REGISTER
//// ============================

func (e *exporter) ExportHalls(format string, rows []HallReportRow) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatCSV:
		data, err := e.exportHallsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("halls_report_%s.csv", timestamp), "text/csv", nil

	case FormatExcel:
		data, err := e.exportHallsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("halls_report_%s.xlsx", timestamp), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		data, err := e.exportHallsPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("halls_report_%s.pdf", timestamp), "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for halls report: %s", format)
	}
}

func (e *exporter) exportHallsCSV(rows []HallReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Slug", "City", "Capacity", "Status", "Premium", "Owner", "Created At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		capacity := ""
		if r.Capacity != nil {
			capacity = strconv.Itoa(*r.Capacity)
		}

		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.Name,
			r.Slug,
			r.City,
			capacity,
			r.Status,
			strconv.FormatBool(r.IsPremium),
			r.GerantName,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) exportHallsExcel(rows []HallReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Halls"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "Name", "Slug", "City", "Capacity", "Status", "Premium", "Owner", "Created At"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Slug)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.City)
		if r.Capacity != nil {
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), *r.Capacity)
		}
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Status)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.IsPremium)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.GerantName)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) exportHallsPDF(rows []HallReportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Halls Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 9)
	headers := []string{"ID", "Name", "City", "Capacity", "Status", "Premium", "Owner", "Created At"}
	widths := []float64{15, 70, 35, 25, 25, 20, 50, 37}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		capacity := ""
		if r.Capacity != nil {
			capacity = strconv.Itoa(*r.Capacity)
		}
		pdf.CellFormat(widths[0], 7, strconv.FormatUint(uint64(r.ID), 10), "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[1], 7, r.Name, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[2], 7, r.City, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[3], 7, capacity, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[4], 7, r.Status, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[5], 7, strconv.FormatBool(r.IsPremium), "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[6], 7, r.GerantName, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[7], 7, r.CreatedAt.Format("2006-01-02"), "1", 0, "", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

//// ============================
/// HOST APPLICATIONS REGISTER
//// ============================

func (e *exporter) ExportApplications(format string, rows []ApplicationReportRow) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatCSV:
		data, err := e.exportApplicationsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("host_applications_report_%s.csv", timestamp), "text/csv", nil

	case FormatExcel:
		data, err := e.exportApplicationsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("host_applications_report_%s.xlsx", timestamp), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		data, err := e.exportApplicationsPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("host_applications_report_%s.pdf", timestamp), "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for applications report: %s", format)
	}
}

func (e *exporter) exportApplicationsCSV(rows []ApplicationReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Hall Name", "City", "Contact Name", "Contact Email", "Status", "Reviewed At", "Created At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		reviewedAt := ""
		if r.ReviewedAt != nil {
			reviewedAt = r.ReviewedAt.Format("2006-01-02 15:04:05")
		}

		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.HallName,
			r.City,
			r.ContactName,
			r.ContactEmail,
			r.Status,
			reviewedAt,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) exportApplicationsExcel(rows []ApplicationReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Host Applications"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "Hall Name", "City", "Contact Name", "Contact Email", "Status", "Reviewed At", "Created At"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.HallName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.City)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.ContactName)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.ContactEmail)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Status)
		if r.ReviewedAt != nil {
			f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.ReviewedAt.Format("2006-01-02 15:04:05"))
		}
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) exportApplicationsPDF(rows []ApplicationReportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Host Applications Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 9)
	headers := []string{"ID", "Hall Name", "City", "Contact", "Email", "Status", "Reviewed At", "Created At"}
	widths := []float64{15, 55, 30, 40, 55, 28, 27, 27}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		reviewedAt := ""
		if r.ReviewedAt != nil {
			reviewedAt = r.ReviewedAt.Format("2006-01-02")
		}
		pdf.CellFormat(widths[0], 7, strconv.FormatUint(uint64(r.ID), 10), "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[1], 7, r.HallName, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[2], 7, r.City, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[3], 7, r.ContactName, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[4], 7, r.ContactEmail, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[5], 7, r.Status, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[6], 7, reviewedAt, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[7], 7, r.CreatedAt.Format("2006-01-02"), "1", 0, "", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
