package handlers

import (
	"controle-financeiro/internal/dto"
	"controle-financeiro/internal/recurrence"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ObligationHandler serves one kind of obligation. The router mounts one
// instance for fixed costs and one for incomes.
type ObligationHandler struct {
	obligations ObligationService
	kind        recurrence.Kind
	logger      *zap.Logger
}

func NewObligationHandler(obligations ObligationService, kind recurrence.Kind, logger *zap.Logger) *ObligationHandler {
	return &ObligationHandler{obligations: obligations, kind: kind, logger: logger}
}

// List godoc
// @Summary List fixed costs or incomes
// @Tags obligations
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.ObligationResponse
// @Router /api/v1/fixed-costs [get]
// @Router /api/v1/incomes [get]
func (h *ObligationHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	obligations, err := h.obligations.List(c.UserContext(), userID, h.kind)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list "+h.noun())
	}
	return c.JSON(obligations)
}

// Create godoc
// @Summary Create a fixed cost or income
// @Tags obligations
// @Accept json
// @Produce json
// @Param request body dto.ObligationRequest true "Obligation"
// @Security Bearer
// @Success 201 {object} dto.ObligationResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/fixed-costs [post]
// @Router /api/v1/incomes [post]
func (h *ObligationHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req dto.ObligationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	obligation, err := h.obligations.Create(c.UserContext(), userID, h.kind, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create "+h.noun())
	}
	return c.Status(fiber.StatusCreated).JSON(obligation)
}

// Update godoc
// @Summary Replace a fixed cost or income
// @Tags obligations
// @Accept json
// @Param id path string true "Obligation ID"
// @Param request body dto.ObligationRequest true "Obligation"
// @Security Bearer
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/fixed-costs/{id} [put]
// @Router /api/v1/incomes/{id} [put]
func (h *ObligationHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid ID")
	}
	var req dto.ObligationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.obligations.Update(c.UserContext(), userID, id, h.kind, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to update "+h.noun())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary Delete a fixed cost or income
// @Tags obligations
// @Param id path string true "Obligation ID"
// @Security Bearer
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/fixed-costs/{id} [delete]
// @Router /api/v1/incomes/{id} [delete]
func (h *ObligationHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid ID")
	}
	if err := h.obligations.Delete(c.UserContext(), userID, id, h.kind); err != nil {
		return respondError(c, h.logger, err, "Failed to delete "+h.noun())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ObligationHandler) noun() string {
	if h.kind == recurrence.KindIncome {
		return "income"
	}
	return "fixed cost"
}
