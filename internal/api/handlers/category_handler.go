package handlers

import (
	"controle-financeiro/internal/dto"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	categories CategoryService
	logger     *zap.Logger
}

func NewCategoryHandler(categories CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, logger: logger}
}

// List godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.CategoryResponse
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	categories, err := h.categories.List(c.UserContext(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list categories")
	}
	return c.JSON(categories)
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body dto.CategoryRequest true "Category"
// @Security Bearer
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	category, err := h.categories.Create(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create category")
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// Rename godoc
// @Summary Rename a category
// @Tags categories
// @Accept json
// @Param id path string true "Category ID"
// @Param request body dto.CategoryRequest true "Category"
// @Security Bearer
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/categories/{id} [put]
func (h *CategoryHandler) Rename(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid category ID")
	}
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.categories.Rename(c.UserContext(), userID, id, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to rename category")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary Delete a category
// @Tags categories
// @Param id path string true "Category ID"
// @Security Bearer
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid category ID")
	}
	if err := h.categories.Delete(c.UserContext(), userID, id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete category")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Seed godoc
// @Summary Create the default categories
// @Description Adds every default category the user does not have yet
// @Tags categories
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.SeedCategoriesResponse
// @Router /api/v1/categories/defaults [post]
func (h *CategoryHandler) Seed(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	n, err := h.categories.SeedDefaults(c.UserContext(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create default categories")
	}
	return c.JSON(dto.SeedCategoriesResponse{Created: n})
}
