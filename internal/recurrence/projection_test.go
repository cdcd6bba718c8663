package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectMonthlyObligation(t *testing.T) {
	rent := Obligation{
		ID:       "rent",
		Kind:     KindFixedCost,
		Name:     "Rent",
		Category: "Home",
		Amount:   100,
		Schedule: Schedule{Period: Monthly, AnchorMonth: 1, AnchorYear: 2024, DueDay: 10},
	}

	got := Project([]Obligation{rent}, 5, 2024)
	require.Len(t, got, 1)
	assert.Equal(t, date(10, 5, 2024), got[0].Date)
	assert.Equal(t, 100.0, got[0].Amount)
	assert.True(t, got[0].Projected)
	assert.Equal(t, "recurring:rent:2024-05", got[0].ID)
	assert.Equal(t, "rent", got[0].SourceID)

	assert.Empty(t, Project([]Obligation{rent}, 12, 2023))
}

func TestMergeMonthOrdering(t *testing.T) {
	stored := []Transaction{
		{ID: "b", Kind: KindPurchase, Amount: 20, Date: date(10, 5, 2024)},
		{ID: "a", Kind: KindPurchase, Amount: 10, Date: date(2, 5, 2024)},
		{ID: "old", Kind: KindPurchase, Amount: 99, Date: date(30, 4, 2024)},
	}
	obligations := []Obligation{
		{ID: "rent", Kind: KindFixedCost, Amount: 100, Schedule: Schedule{Period: Monthly, AnchorMonth: 1, AnchorYear: 2024, DueDay: 10}},
		{ID: "salary", Kind: KindIncome, Amount: 500, Schedule: Schedule{Period: Monthly, AnchorMonth: 1, AnchorYear: 2024, DueDay: 5}},
		{ID: "ipva", Kind: KindFixedCost, Amount: 300, Schedule: Schedule{Period: Annual, AnchorMonth: 2, AnchorYear: 2024}},
	}

	got := MergeMonth(stored, obligations, 5, 2024)

	ids := make([]string, len(got))
	for i, tx := range got {
		ids[i] = tx.ID
	}
	assert.Equal(t, []string{"a", "recurring:salary:2024-05", "b", "recurring:rent:2024-05"}, ids)
}

func TestCategoryTotals(t *testing.T) {
	purchases := []Transaction{
		{Kind: KindPurchase, Category: "Food", Amount: 10.10, Date: date(3, 5, 2024)},
		{Kind: KindPurchase, Category: "Food", Amount: 20.20, Date: date(4, 5, 2024)},
		{Kind: KindPurchase, Category: "", Amount: 5, Date: date(4, 5, 2024)},
		{Kind: KindPurchase, Category: "Food", Amount: 1000, Date: date(4, 6, 2024)},
	}
	obligations := []Obligation{
		{Kind: KindFixedCost, Category: "Home", Amount: 100, Schedule: Schedule{Period: Monthly, AnchorMonth: 1, AnchorYear: 2024}},
		{Kind: KindIncome, Category: "Salary", Amount: 5000, Schedule: Schedule{Period: Monthly, AnchorMonth: 1, AnchorYear: 2024}},
	}

	got := CategoryTotals(purchases, obligations, 5, 2024)

	assert.Equal(t, []CategoryTotal{
		{Category: "Home", Total: 100},
		{Category: "Food", Total: 30.3},
		{Category: Uncategorized, Total: 5},
	}, got)
}

func TestUpcoming(t *testing.T) {
	today := time.Date(2024, time.May, 8, 14, 0, 0, 0, time.UTC)
	monthly := func(id string, due int) Obligation {
		return Obligation{ID: id, Kind: KindFixedCost, Schedule: Schedule{Period: Monthly, AnchorMonth: 1, AnchorYear: 2024, DueDay: due}}
	}
	obligations := []Obligation{
		monthly("late", 28),
		monthly("passed", 5),
		monthly("today", 8),
		monthly("soon", 12),
		monthly("later", 20),
		{ID: "annual", Kind: KindFixedCost, Schedule: Schedule{Period: Annual, AnchorMonth: 1, AnchorYear: 2024, DueDay: 9}},
	}

	got := Upcoming(obligations, today, 0)

	require.Len(t, got, DefaultUpcomingLimit)
	assert.Equal(t, "today", got[0].SourceID)
	assert.Equal(t, "soon", got[1].SourceID)
	assert.Equal(t, "later", got[2].SourceID)
	assert.Equal(t, date(12, 5, 2024), got[1].Date)

	assert.Len(t, Upcoming(obligations, today, 10), 4)
}
