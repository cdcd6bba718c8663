package repository

import (
	"context"

	"controle-financeiro/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CategoryRepository struct {
	db     DB
	logger *zap.Logger
}

func NewCategoryRepository(db DB, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{db: db, logger: logger}
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	sql, args, err := psql.Insert("categories").
		Columns("id", "user_id", "name", "created_at").
		Values(c.ID, c.UserID, c.Name, c.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, sql, args...)
	return mapError(err)
}

// CreateMissing inserts the named categories for a user, skipping names the
// user already has. It returns how many were inserted.
func (r *CategoryRepository) CreateMissing(ctx context.Context, userID uuid.UUID, names []string) (int64, error) {
	if len(names) == 0 {
		return 0, nil
	}
	q := psql.Insert("categories").Columns("id", "user_id", "name")
	for _, name := range names {
		q = q.Values(uuid.New(), userID, name)
	}
	sql, args, err := q.Suffix("ON CONFLICT (user_id, name) DO NOTHING").ToSql()
	if err != nil {
		return 0, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, mapError(err)
	}
	return tag.RowsAffected(), nil
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Category, error) {
	sql, args, err := psql.Select("id", "user_id", "name", "created_at").
		From("categories").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) Rename(ctx context.Context, userID, id uuid.UUID, name string) error {
	return execAffecting(ctx, r.db, psql.Update("categories").
		Set("name", name).
		Where(squirrel.Eq{"id": id, "user_id": userID}))
}

func (r *CategoryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return execAffecting(ctx, r.db, psql.Delete("categories").
		Where(squirrel.Eq{"id": id, "user_id": userID}))
}
