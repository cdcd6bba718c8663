package repository

import (
	"context"
	"time"

	"controle-financeiro/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var purchaseColumns = []string{
	"id", "user_id", "document_id", "name", "category", "quantity", "unit_price", "amount", "date", "created_at",
}

type PurchaseRepository struct {
	db     DB
	logger *zap.Logger
}

func NewPurchaseRepository(db DB, logger *zap.Logger) *PurchaseRepository {
	return &PurchaseRepository{db: db, logger: logger}
}

func (r *PurchaseRepository) Create(ctx context.Context, p *models.Purchase) error {
	return insertPurchases(ctx, r.db, []*models.Purchase{p})
}

// CreateBatch inserts all purchases in one statement.
func (r *PurchaseRepository) CreateBatch(ctx context.Context, purchases []*models.Purchase) error {
	return insertPurchases(ctx, r.db, purchases)
}

func insertPurchases(ctx context.Context, db execer, purchases []*models.Purchase) error {
	if len(purchases) == 0 {
		return nil
	}
	q := psql.Insert("purchases").Columns(purchaseColumns...)
	for _, p := range purchases {
		q = q.Values(p.ID, p.UserID, p.DocumentID, p.Name, p.Category, p.Quantity, p.UnitPrice, p.Amount, p.Date, p.CreatedAt)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, sql, args...)
	return mapError(err)
}

// ListByMonth returns the user's purchases dated in the month, oldest first.
func (r *PurchaseRepository) ListByMonth(ctx context.Context, userID uuid.UUID, month, year int) ([]*models.Purchase, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return r.ListBetween(ctx, userID, from, from.AddDate(0, 1, 0))
}

// ListBetween returns purchases with from <= date < to.
func (r *PurchaseRepository) ListBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*models.Purchase, error) {
	sql, args, err := psql.Select(purchaseColumns...).
		From("purchases").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.Lt{"date": to}).
		OrderBy("date", "created_at").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []*models.Purchase
	for rows.Next() {
		var p models.Purchase
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.DocumentID, &p.Name, &p.Category, &p.Quantity, &p.UnitPrice, &p.Amount, &p.Date, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		purchases = append(purchases, &p)
	}
	return purchases, rows.Err()
}

func (r *PurchaseRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return execAffecting(ctx, r.db, psql.Delete("purchases").
		Where(squirrel.Eq{"id": id, "user_id": userID}))
}
