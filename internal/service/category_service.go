package service

import (
	"context"
	"strings"
	"time"

	"controle-financeiro/internal/dto"
	"controle-financeiro/internal/extraction"
	"controle-financeiro/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxCategoryName = 60

type CategoryService struct {
	categories CategoryStore
	logger     *zap.Logger
}

func NewCategoryService(categories CategoryStore, logger *zap.Logger) *CategoryService {
	return &CategoryService{categories: categories, logger: logger}
}

func (s *CategoryService) List(ctx context.Context, userID uuid.UUID) ([]dto.CategoryResponse, error) {
	categories, err := s.categories.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryResponse(c))
	}
	return out, nil
}

func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name, err := categoryName(req.Name)
	if err != nil {
		return nil, err
	}
	c := &models.Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, storeError(err)
	}
	resp := categoryResponse(c)
	return &resp, nil
}

func (s *CategoryService) Rename(ctx context.Context, userID, id uuid.UUID, req *dto.CategoryRequest) error {
	name, err := categoryName(req.Name)
	if err != nil {
		return err
	}
	return storeError(s.categories.Rename(ctx, userID, id, name))
}

func (s *CategoryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return storeError(s.categories.Delete(ctx, userID, id))
}

// SeedDefaults creates every vocabulary category the user does not have yet
// and returns how many were created.
func (s *CategoryService) SeedDefaults(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.categories.CreateMissing(ctx, userID, extraction.Vocabulary)
	if err != nil {
		return 0, err
	}
	s.logger.Info("Seeded default categories", zap.String("user_id", userID.String()), zap.Int64("created", n))
	return n, nil
}

func categoryName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", invalid("category name is required")
	}
	if len([]rune(name)) > maxCategoryName {
		return "", invalid("category name must have at most %d characters", maxCategoryName)
	}
	return name, nil
}

func categoryResponse(c *models.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
