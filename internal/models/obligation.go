package models

import (
	"time"

	"controle-financeiro/internal/recurrence"

	"github.com/google/uuid"
)

// Obligation is a stored recurring fixed cost or income.
type Obligation struct {
	ID          uuid.UUID         `db:"id"`
	UserID      uuid.UUID         `db:"user_id"`
	Kind        recurrence.Kind   `db:"kind"`
	Name        string            `db:"name"`
	Category    string            `db:"category"`
	Amount      float64           `db:"amount"`
	Period      recurrence.Period `db:"period"`
	AnchorMonth int               `db:"anchor_month"`
	AnchorYear  int               `db:"anchor_year"`
	DueDay      int               `db:"due_day"`
	OneOffDate  *time.Time        `db:"one_off_date"`
	CreatedAt   time.Time         `db:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at"`
}

func (o *Obligation) Schedule() recurrence.Schedule {
	return recurrence.Schedule{
		Period:      o.Period,
		AnchorMonth: o.AnchorMonth,
		AnchorYear:  o.AnchorYear,
		DueDay:      o.DueDay,
		OneOffDate:  o.OneOffDate,
	}
}

// Recurring renders the obligation for the recurrence engine.
func (o *Obligation) Recurring() recurrence.Obligation {
	return recurrence.Obligation{
		ID:       o.ID.String(),
		Kind:     o.Kind,
		Name:     o.Name,
		Category: o.Category,
		Amount:   o.Amount,
		Schedule: o.Schedule(),
	}
}
