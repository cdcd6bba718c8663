package models

import (
	"time"

	"github.com/google/uuid"
)

type DocumentSource string

const (
	DocumentSourceURL   DocumentSource = "url"
	DocumentSourceImage DocumentSource = "image"
)

// Document logs one saved ingestion.
type Document struct {
	ID            uuid.UUID      `db:"id"`
	UserID        uuid.UUID      `db:"user_id"`
	Source        DocumentSource `db:"source"`
	Reference     string         `db:"reference"`
	ContentType   string         `db:"content_type"`
	FileSize      int64          `db:"file_size"`
	ExtractedText string         `db:"extracted_text"`
	ResultKind    string         `db:"result_kind"`
	CreatedAt     time.Time      `db:"created_at"`
}
