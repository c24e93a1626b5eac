package export

import (
	"bytes"
	_ "embed"

	"github.com/go-pdf/fpdf"

	"vividexpense-be/internal/entities"
	"vividexpense-be/internal/summary"
)

// DejaVu Sans Condensed as shipped with fpdf. It covers Latin, Greek,
// Cyrillic and the common currency signs; CJK text renders without glyphs.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	fontRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	fontBold []byte
)

const (
	pdfFont          = "DejaVu"
	descriptionWidth = 30
	qrImageName      = "dashboard-qr"
	qrSize           = 32.0 // mm
)

var (
	pdfColumns = []string{"Date", "Category", "Description", "Amount"}
	pdfWidths  = []float64{30, 45, 80, 35}
)

func (r *Renderer) renderPDF(month summary.Month, expenses []entities.Expense) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.AddUTF8FontFromBytes(pdfFont, "", fontRegular)
	pdf.AddUTF8FontFromBytes(pdfFont, "B", fontBold)
	title := "Expense Report - " + month.String()
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", 20)
	pdf.CellFormat(0, 12, title, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont(pdfFont, "B", 14)
	pdf.CellFormat(0, 10, "Total Expenses: "+formatAmount(summary.Total(expenses)), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// Header: grey background, near-white bold text.
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(245, 245, 245)
	pdf.SetFont(pdfFont, "B", 12)
	for i, col := range pdfColumns {
		pdf.CellFormat(pdfWidths[i], 10, col, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	// Rows: beige background.
	pdf.SetFillColor(245, 245, 220)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(pdfFont, "", 10)
	for _, e := range expenses {
		row := []string{
			e.DateString(),
			e.Category,
			truncate(e.Description, descriptionWidth),
			formatAmount(e.Amount),
		}
		for i, cell := range row {
			pdf.CellFormat(pdfWidths[i], 8, cell, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	if link := r.DashboardLink(month); link != "" {
		if err := drawQRCode(pdf, link); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawQRCode places a scannable link to the online dashboard under the table.
func drawQRCode(pdf *fpdf.Fpdf, link string) error {
	png, err := qrPNG(link)
	if err != nil {
		return err
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(qrImageName, opts, bytes.NewReader(png))

	pdf.Ln(8)
	_, pageHeight := pdf.GetPageSize()
	left, _, _, bottom := pdf.GetMargins()
	if pdf.GetY()+qrSize > pageHeight-bottom-10 {
		pdf.AddPage()
	}
	y := pdf.GetY()
	pdf.ImageOptions(qrImageName, left, y, qrSize, qrSize, false, opts, 0, link)

	pdf.SetXY(left+qrSize+4, y+qrSize/2-4)
	pdf.SetFont(pdfFont, "", 9)
	pdf.CellFormat(0, 8, "Scan to open this month in the dashboard", "", 1, "L", false, 0, link)

	return pdf.Error()
}
