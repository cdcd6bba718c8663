// Package service holds the application use cases behind the HTTP handlers.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"controle-financeiro/internal/models"
	"controle-financeiro/internal/recurrence"
	"controle-financeiro/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("already exists")
)

// DateLayout is how dates travel through the JSON API.
const DateLayout = "2006-01-02"

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type CategoryStore interface {
	Create(ctx context.Context, c *models.Category) error
	CreateMissing(ctx context.Context, userID uuid.UUID, names []string) (int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Category, error)
	Rename(ctx context.Context, userID, id uuid.UUID, name string) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type PurchaseStore interface {
	Create(ctx context.Context, p *models.Purchase) error
	ListByMonth(ctx context.Context, userID uuid.UUID, month, year int) ([]*models.Purchase, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type ObligationStore interface {
	Create(ctx context.Context, o *models.Obligation) error
	Update(ctx context.Context, o *models.Obligation) error
	Delete(ctx context.Context, userID, id uuid.UUID, kind recurrence.Kind) error
	ListByUser(ctx context.Context, userID uuid.UUID, kinds ...recurrence.Kind) ([]*models.Obligation, error)
}

type DocumentStore interface {
	SaveExtraction(ctx context.Context, doc *models.Document, purchases []*models.Purchase) error
	ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Document, error)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func invalidErr(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

// storeError translates repository sentinels into service ones.
func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrConflict):
		return ErrConflict
	default:
		return err
	}
}

// ValidateMonth checks a month/year pair coming from a query string.
func ValidateMonth(month, year int) error {
	if month < 1 || month > 12 {
		return invalid("month must be between 1 and 12")
	}
	if year < 1 || year > 9999 {
		return invalid("year is out of range")
	}
	return nil
}

func parseDate(s string, fallback time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, invalid("date %q must be YYYY-MM-DD", s)
	}
	return t, nil
}

func categoryOrDefault(category string) string {
	if category = strings.TrimSpace(category); category == "" {
		return recurrence.Uncategorized
	}
	return category
}

func today(now func() time.Time) time.Time {
	t := now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
