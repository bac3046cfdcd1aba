package reports

import "time"

// ============================
// 🔷 Formats
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

func validFormat(f string) bool {
	return f == FormatCSV || f == FormatExcel || f == FormatPDF
}

// ============================
// 🟡 Requests

type HallsReportRequest struct {
	Status    string
	City      string
	StartDate *time.Time
	EndDate   *time.Time
}

type ApplicationsReportRequest struct {
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}

// ============================
// 🟢 Report rows

type HallReportRow struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	City       string    `json:"city"`
	Capacity   *int      `json:"capacity"`
	Status     string    `json:"status"`
	IsPremium  bool      `json:"is_premium"`
	GerantName string    `json:"gerant_name"`
	CreatedAt  time.Time `json:"created_at"`
}

type ApplicationReportRow struct {
	ID           uint       `json:"id"`
	HallName     string     `json:"hall_name"`
	City         string     `json:"city"`
	ContactName  string     `json:"contact_name"`
	ContactEmail string     `json:"contact_email"`
	Status       string     `json:"status"`
	ReviewedAt   *time.Time `json:"reviewed_at"`
	CreatedAt    time.Time  `json:"created_at"`
}
