package recurrence

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind tells stored purchases apart from the two kinds of recurring obligation.
type Kind string

const (
	KindPurchase  Kind = "purchase"
	KindFixedCost Kind = "fixed_cost"
	KindIncome    Kind = "income"
)

// Uncategorized groups amounts that carry no category.
const Uncategorized = "Uncategorized"

// DefaultUpcomingLimit is how many upcoming obligations the dashboard shows.
const DefaultUpcomingLimit = 3

// Obligation is a recurring fixed cost or income as the engine sees it.
type Obligation struct {
	ID       string
	Kind     Kind
	Name     string
	Category string
	Amount   float64
	Schedule
}

// Transaction is either a stored row or a projected occurrence of an obligation.
// Projected transactions are never persisted; their ID is built by ProjectedID
// and SourceID points back at the obligation.
type Transaction struct {
	ID        string
	SourceID  string
	Kind      Kind
	Name      string
	Category  string
	Amount    float64
	Date      time.Time
	Projected bool
}

// CategoryTotal is the amount spent in one category over a period.
type CategoryTotal struct {
	Category string
	Total    float64
}

// ProjectedID builds the out-of-band identifier of an occurrence. It cannot
// collide with stored row ids, which are UUIDs.
func ProjectedID(obligationID string, month, year int) string {
	return fmt.Sprintf("recurring:%s:%04d-%02d", obligationID, year, month)
}

// Occurrence renders the obligation in the given month without checking whether
// it actually fires there.
func (o Obligation) Occurrence(month, year int) Transaction {
	return Transaction{
		ID:        ProjectedID(o.ID, month, year),
		SourceID:  o.ID,
		Kind:      o.Kind,
		Name:      o.Name,
		Category:  o.Category,
		Amount:    o.Amount,
		Date:      o.OccurrenceDate(month, year),
		Projected: true,
	}
}

// Project returns one transaction per obligation that fires in the month, in
// input order.
func Project(obligations []Obligation, month, year int) []Transaction {
	var out []Transaction
	for _, o := range obligations {
		if ShouldInclude(o.Schedule, month, year) {
			out = append(out, o.Occurrence(month, year))
		}
	}
	return out
}

// MergeMonth combines the stored transactions dated in the month with the
// projected obligations. The result is ordered by date; on equal dates stored
// rows come first, then input order is kept.
func MergeMonth(stored []Transaction, obligations []Obligation, month, year int) []Transaction {
	out := make([]Transaction, 0, len(stored)+len(obligations))
	for _, tx := range stored {
		if inMonth(tx.Date, month, year) {
			out = append(out, tx)
		}
	}
	out = append(out, Project(obligations, month, year)...)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// CategoryTotals sums spending per category for the month: stored purchases
// dated in the month plus fixed costs that fire in it. Incomes are not spending
// and are ignored. Results are ordered by total, largest first.
func CategoryTotals(purchases []Transaction, obligations []Obligation, month, year int) []CategoryTotal {
	sums := make(map[string]decimal.Decimal)
	add := func(category string, amount float64) {
		category = strings.TrimSpace(category)
		if category == "" {
			category = Uncategorized
		}
		sums[category] = sums[category].Add(decimal.NewFromFloat(amount))
	}

	for _, p := range purchases {
		if p.Kind == KindIncome || !inMonth(p.Date, month, year) {
			continue
		}
		add(p.Category, p.Amount)
	}
	for _, o := range obligations {
		if o.Kind != KindFixedCost || !ShouldInclude(o.Schedule, month, year) {
			continue
		}
		add(o.Category, o.Amount)
	}

	totals := make([]CategoryTotal, 0, len(sums))
	for category, sum := range sums {
		totals = append(totals, CategoryTotal{Category: category, Total: sum.InexactFloat64()})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Total != totals[j].Total {
			return totals[i].Total > totals[j].Total
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}

// Upcoming lists the obligations still due this month as of today: those that
// fire in today's month with a due day not yet passed. They are sorted by due
// day and truncated to limit (DefaultUpcomingLimit when limit <= 0).
func Upcoming(obligations []Obligation, today time.Time, limit int) []Transaction {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	month, year := int(today.Month()), today.Year()

	var due []Obligation
	for _, o := range obligations {
		if o.EffectiveDueDay() >= today.Day() && ShouldInclude(o.Schedule, month, year) {
			due = append(due, o)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].EffectiveDueDay() < due[j].EffectiveDueDay()
	})
	if len(due) > limit {
		due = due[:limit]
	}

	out := make([]Transaction, len(due))
	for i, o := range due {
		out[i] = o.Occurrence(month, year)
	}
	return out
}

func inMonth(t time.Time, month, year int) bool {
	return int(t.Month()) == month && t.Year() == year
}
