package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"vividexpense-be/internal/middleware"
	"vividexpense-be/internal/service"
)

type ReportController struct {
	reportService service.ReportService
}

func NewReportController(reportService service.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

type monthQuery struct {
	Month string `form:"month" binding:"required"` // YYYY-MM
}

func bindMonth(c *gin.Context) (string, bool) {
	var q monthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, "Query parameter month (YYYY-MM) is required", err)
		return "", false
	}
	return q.Month, true
}

// MonthlySummary handles GET /api/expenses/summary/monthly?month=YYYY-MM
func (rc *ReportController) MonthlySummary(c *gin.Context) {
	month, ok := bindMonth(c)
	if !ok {
		return
	}

	summary, err := rc.reportService.MonthlySummary(c.Request.Context(), middleware.UserID(c), month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Export handles GET /api/expenses/export/:format?month=YYYY-MM
func (rc *ReportController) Export(c *gin.Context) {
	month, ok := bindMonth(c)
	if !ok {
		return
	}

	doc, err := rc.reportService.Export(c.Request.Context(), middleware.UserID(c), month, c.Param("format"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}

// DashboardQRCode handles GET /api/expenses/summary/qrcode?month=YYYY-MM - a PNG linking to the month's dashboard
func (rc *ReportController) DashboardQRCode(c *gin.Context) {
	month, ok := bindMonth(c)
	if !ok {
		return
	}

	png, err := rc.reportService.DashboardQRCode(month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename=dashboard-qrcode.png")
	c.Data(http.StatusOK, "image/png", png)
}
