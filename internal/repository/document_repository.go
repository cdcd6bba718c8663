package repository

import (
	"context"
	"fmt"

	"controle-financeiro/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var documentColumns = []string{
	"id", "user_id", "source", "reference", "content_type", "file_size", "extracted_text", "result_kind", "created_at",
}

type DocumentRepository struct {
	db     DB
	logger *zap.Logger
}

func NewDocumentRepository(db DB, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{
		db:     db,
		logger: logger,
	}
}

// SaveExtraction stores the ingestion log row and its purchases atomically.
// The purchases go in with a single statement.
func (r *DocumentRepository) SaveExtraction(ctx context.Context, doc *models.Document, purchases []*models.Purchase) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				r.logger.Warn("Rollback failed", zap.Error(rbErr))
			}
		}
	}()

	sql, args, err := psql.Insert("documents").
		Columns(documentColumns...).
		Values(doc.ID, doc.UserID, doc.Source, doc.Reference, doc.ContentType, doc.FileSize, doc.ExtractedText, doc.ResultKind, doc.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert document: %w", mapError(err))
	}

	if err = insertPurchases(ctx, tx, purchases); err != nil {
		return fmt.Errorf("insert purchases: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *DocumentRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Document, error) {
	sql, args, err := psql.Select(documentColumns...).
		From("documents").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []*models.Document
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(
			&doc.ID, &doc.UserID, &doc.Source, &doc.Reference, &doc.ContentType, &doc.FileSize, &doc.ExtractedText, &doc.ResultKind, &doc.CreatedAt,
		); err != nil {
			return nil, err
		}
		documents = append(documents, &doc)
	}
	return documents, rows.Err()
}
