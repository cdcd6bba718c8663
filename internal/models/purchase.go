package models

import (
	"time"

	"controle-financeiro/internal/recurrence"

	"github.com/google/uuid"
)

// Purchase is a stored one-off expense, typed in by hand or extracted from a
// receipt (DocumentID set).
type Purchase struct {
	ID         uuid.UUID  `db:"id"`
	UserID     uuid.UUID  `db:"user_id"`
	DocumentID *uuid.UUID `db:"document_id"`
	Name       string     `db:"name"`
	Category   string     `db:"category"`
	Quantity   float64    `db:"quantity"`
	UnitPrice  float64    `db:"unit_price"`
	Amount     float64    `db:"amount"`
	Date       time.Time  `db:"date"`
	CreatedAt  time.Time  `db:"created_at"`
}

// Transaction renders the purchase for the recurrence engine.
func (p *Purchase) Transaction() recurrence.Transaction {
	return recurrence.Transaction{
		ID:       p.ID.String(),
		Kind:     recurrence.KindPurchase,
		Name:     p.Name,
		Category: p.Category,
		Amount:   p.Amount,
		Date:     p.Date,
	}
}
