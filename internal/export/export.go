// Package export renders a month of expenses as a downloadable document.
package export

import (
	"errors"
	"fmt"
	"strings"

	"vividexpense-be/internal/entities"
	"vividexpense-be/internal/summary"
)

// Format is a supported document type.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "excel"
)

const (
	ContentTypePDF   = "application/pdf"
	ContentTypeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var ErrUnsupportedFormat = errors.New("unsupported export format, expected pdf or excel")

// ParseFormat maps a user supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatExcel:
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Document is a rendered export ready to be sent to the client.
type Document struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Renderer turns expenses into documents. It never modifies the expenses it is given.
type Renderer struct {
	dashboardURL string
}

// NewRenderer creates a renderer. When dashboardURL is set, PDF reports carry a QR code
// pointing at the month's dashboard page under that URL.
func NewRenderer(dashboardURL string) *Renderer {
	return &Renderer{dashboardURL: strings.TrimRight(dashboardURL, "/")}
}

// Render renders expenses, expected sorted by date ascending, in the given format.
func (r *Renderer) Render(format Format, month summary.Month, expenses []entities.Expense) (*Document, error) {
	switch format {
	case FormatPDF:
		data, err := r.renderPDF(month, expenses)
		if err != nil {
			return nil, fmt.Errorf("failed to render pdf: %w", err)
		}
		return &Document{Data: data, ContentType: ContentTypePDF, Filename: Filename(month, "pdf")}, nil
	case FormatExcel:
		data, err := renderExcel(expenses)
		if err != nil {
			return nil, fmt.Errorf("failed to render excel: %w", err)
		}
		return &Document{Data: data, ContentType: ContentTypeExcel, Filename: Filename(month, "xlsx")}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Filename returns expenses_<YYYY-MM>.<ext>.
func Filename(month summary.Month, ext string) string {
	return fmt.Sprintf("expenses_%s.%s", month, ext)
}

// DashboardLink returns the dashboard URL for month, or "" when no dashboard is configured.
func (r *Renderer) DashboardLink(month summary.Month) string {
	if r.dashboardURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/dashboard?month=%s", r.dashboardURL, month)
}
