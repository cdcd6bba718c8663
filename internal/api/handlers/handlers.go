// Package handlers exposes the services over HTTP.
package handlers

import (
	"context"
	"errors"
	"time"

	"controle-financeiro/internal/dto"
	"controle-financeiro/internal/recurrence"
	"controle-financeiro/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
}

type ExtractionService interface {
	ExtractURL(ctx context.Context, userID uuid.UUID, req *dto.ExtractURLRequest) (*dto.ExtractionResponse, error)
	ExtractImage(ctx context.Context, userID uuid.UUID, data []byte, fileName string, save bool) (*dto.ExtractionResponse, error)
	ExtractAccessKey(req *dto.AccessKeyRequest) (*dto.ExtractionResponse, error)
	Documents(ctx context.Context, userID uuid.UUID, limit, offset int) ([]dto.DocumentResponse, error)
}

type CategoryService interface {
	List(ctx context.Context, userID uuid.UUID) ([]dto.CategoryResponse, error)
	Create(ctx context.Context, userID uuid.UUID, req *dto.CategoryRequest) (*dto.CategoryResponse, error)
	Rename(ctx context.Context, userID, id uuid.UUID, req *dto.CategoryRequest) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	SeedDefaults(ctx context.Context, userID uuid.UUID) (int64, error)
}

type PurchaseService interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.PurchaseRequest) (*dto.PurchaseResponse, error)
	ListByMonth(ctx context.Context, userID uuid.UUID, month, year int) ([]dto.PurchaseResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type ObligationService interface {
	List(ctx context.Context, userID uuid.UUID, kind recurrence.Kind) ([]dto.ObligationResponse, error)
	Create(ctx context.Context, userID uuid.UUID, kind recurrence.Kind, req *dto.ObligationRequest) (*dto.ObligationResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, kind recurrence.Kind, req *dto.ObligationRequest) error
	Delete(ctx context.Context, userID, id uuid.UUID, kind recurrence.Kind) error
}

type ReportService interface {
	Transactions(ctx context.Context, userID uuid.UUID, month, year int) (*dto.MonthTransactionsResponse, error)
	Categories(ctx context.Context, userID uuid.UUID, month, year int) (*dto.CategoryReportResponse, error)
	Dashboard(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, error)
}

func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals("userID").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, err
	}

	return userID, nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized",
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}

func pathID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// monthQuery reads ?month=&year=, defaulting to the current month.
func monthQuery(c *fiber.Ctx) (int, int) {
	now := time.Now()
	return c.QueryInt("month", int(now.Month())), c.QueryInt("year", now.Year())
}

// respondError maps service errors to statuses. Anything unexpected is logged
// and answered with fallback only.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return badRequest(c, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	case errors.Is(err, service.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Already exists",
		})
	}

	logger.Error(fallback, zap.Error(err), zap.String("path", c.Path()))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fallback,
	})
}
