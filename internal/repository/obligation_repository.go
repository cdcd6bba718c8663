package repository

import (
	"context"

	"controle-financeiro/internal/models"
	"controle-financeiro/internal/recurrence"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var obligationColumns = []string{
	"id", "user_id", "kind", "name", "category", "amount", "period",
	"anchor_month", "anchor_year", "due_day", "one_off_date", "created_at", "updated_at",
}

// ObligationRepository stores fixed costs and incomes in one table, told apart
// by kind.
type ObligationRepository struct {
	db     DB
	logger *zap.Logger
}

func NewObligationRepository(db DB, logger *zap.Logger) *ObligationRepository {
	return &ObligationRepository{db: db, logger: logger}
}

func (r *ObligationRepository) Create(ctx context.Context, o *models.Obligation) error {
	sql, args, err := psql.Insert("obligations").
		Columns(obligationColumns...).
		Values(o.ID, o.UserID, o.Kind, o.Name, o.Category, o.Amount, o.Period,
			o.AnchorMonth, o.AnchorYear, o.DueDay, o.OneOffDate, o.CreatedAt, o.UpdatedAt).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, sql, args...)
	return mapError(err)
}

// Update overwrites the mutable fields of an obligation the user owns with the
// same kind.
func (r *ObligationRepository) Update(ctx context.Context, o *models.Obligation) error {
	return execAffecting(ctx, r.db, psql.Update("obligations").
		SetMap(map[string]any{
			"name":         o.Name,
			"category":     o.Category,
			"amount":       o.Amount,
			"period":       o.Period,
			"anchor_month": o.AnchorMonth,
			"anchor_year":  o.AnchorYear,
			"due_day":      o.DueDay,
			"one_off_date": o.OneOffDate,
			"updated_at":   o.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": o.ID, "user_id": o.UserID, "kind": o.Kind}))
}

func (r *ObligationRepository) Delete(ctx context.Context, userID, id uuid.UUID, kind recurrence.Kind) error {
	return execAffecting(ctx, r.db, psql.Delete("obligations").
		Where(squirrel.Eq{"id": id, "user_id": userID, "kind": kind}))
}

// ListByUser returns the user's obligations of the given kinds, or of every
// kind when none is given.
func (r *ObligationRepository) ListByUser(ctx context.Context, userID uuid.UUID, kinds ...recurrence.Kind) ([]*models.Obligation, error) {
	where := squirrel.Eq{"user_id": userID}
	if len(kinds) > 0 {
		where["kind"] = kinds
	}

	sql, args, err := psql.Select(obligationColumns...).
		From("obligations").
		Where(where).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var obligations []*models.Obligation
	for rows.Next() {
		var o models.Obligation
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.Kind, &o.Name, &o.Category, &o.Amount, &o.Period,
			&o.AnchorMonth, &o.AnchorYear, &o.DueDay, &o.OneOffDate, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		obligations = append(obligations, &o)
	}
	return obligations, rows.Err()
}
