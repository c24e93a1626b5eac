package export

import (
	"errors"

	"github.com/skip2/go-qrcode"

	"vividexpense-be/internal/summary"
)

// QRCodeSize is the edge length in pixels of generated dashboard QR codes.
const QRCodeSize = 256

var ErrNoDashboard = errors.New("dashboard URL is not configured")

// DashboardQRCode returns a PNG QR code linking to month's dashboard page.
func (r *Renderer) DashboardQRCode(month summary.Month) ([]byte, error) {
	link := r.DashboardLink(month)
	if link == "" {
		return nil, ErrNoDashboard
	}
	return qrPNG(link)
}

// qrPNG encodes link with medium error recovery.
func qrPNG(link string) ([]byte, error) {
	code, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return code.PNG(QRCodeSize)
}
