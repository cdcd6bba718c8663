package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ReportHandler struct {
	reports ReportService
	logger  *zap.Logger
}

func NewReportHandler(reports ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, logger: logger}
}

// Transactions godoc
// @Summary Transactions of a month
// @Description Stored purchases plus the fixed costs and incomes that fall in the month. Projected rows have ids starting with "recurring:".
// @Tags reports
// @Produce json
// @Param month query int false "Month (1-12), defaults to the current one"
// @Param year query int false "Year, defaults to the current one"
// @Security Bearer
// @Success 200 {object} dto.MonthTransactionsResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/transactions [get]
func (h *ReportHandler) Transactions(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	month, year := monthQuery(c)
	resp, err := h.reports.Transactions(c.UserContext(), userID, month, year)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to load transactions")
	}
	return c.JSON(resp)
}

// Categories godoc
// @Summary Spending per category
// @Tags reports
// @Produce json
// @Param month query int false "Month (1-12), defaults to the current one"
// @Param year query int false "Year, defaults to the current one"
// @Security Bearer
// @Success 200 {object} dto.CategoryReportResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/reports/categories [get]
func (h *ReportHandler) Categories(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	month, year := monthQuery(c)
	resp, err := h.reports.Categories(c.UserContext(), userID, month, year)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to build category report")
	}
	return c.JSON(resp)
}

// Dashboard godoc
// @Summary Current month summary
// @Tags reports
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.DashboardResponse
// @Router /api/v1/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	resp, err := h.reports.Dashboard(c.UserContext(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to build dashboard")
	}
	return c.JSON(resp)
}
