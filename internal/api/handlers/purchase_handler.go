package handlers

import (
	"controle-financeiro/internal/dto"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PurchaseHandler struct {
	purchases PurchaseService
	logger    *zap.Logger
}

func NewPurchaseHandler(purchases PurchaseService, logger *zap.Logger) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases, logger: logger}
}

// List godoc
// @Summary List purchases of a month
// @Tags purchases
// @Produce json
// @Param month query int false "Month (1-12), defaults to the current one"
// @Param year query int false "Year, defaults to the current one"
// @Security Bearer
// @Success 200 {array} dto.PurchaseResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	month, year := monthQuery(c)
	purchases, err := h.purchases.ListByMonth(c.UserContext(), userID, month, year)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list purchases")
	}
	return c.JSON(purchases)
}

// Create godoc
// @Summary Create a purchase
// @Tags purchases
// @Accept json
// @Produce json
// @Param request body dto.PurchaseRequest true "Purchase"
// @Security Bearer
// @Success 201 {object} dto.PurchaseResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req dto.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	purchase, err := h.purchases.Create(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create purchase")
	}
	return c.Status(fiber.StatusCreated).JSON(purchase)
}

// Delete godoc
// @Summary Delete a purchase
// @Tags purchases
// @Param id path string true "Purchase ID"
// @Security Bearer
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/purchases/{id} [delete]
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid purchase ID")
	}
	if err := h.purchases.Delete(c.UserContext(), userID, id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete purchase")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
