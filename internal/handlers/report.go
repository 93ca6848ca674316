package handlers

import (
	"time"

	"breadroute/internal/services/report"
	"breadroute/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Daily returns the distribution overview for a date (defaults to today).
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	date := time.Now()
	if q := c.Query("date"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			return response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		}
		date = parsed
	}

	r, err := h.reportService.Daily(c.Context(), date)
	if err != nil {
		return response.ServerError(c, "Failed to build daily report")
	}
	return response.Success(c, "Daily report", r)
}
