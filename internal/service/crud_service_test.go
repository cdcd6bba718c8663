package service

import (
	"context"
	"testing"
	"time"

	"controle-financeiro/internal/dto"
	"controle-financeiro/internal/extraction"
	"controle-financeiro/internal/recurrence"
	"controle-financeiro/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCategoryService(t *testing.T) {
	ctx := context.Background()
	store := &memCategories{renameErr: repository.ErrNotFound}
	svc := NewCategoryService(store, zap.NewNop())
	userID := uuid.New()

	_, err := svc.Create(ctx, userID, &dto.CategoryRequest{Name: "   "})
	require.ErrorIs(t, err, ErrValidation)

	created, err := svc.Create(ctx, userID, &dto.CategoryRequest{Name: " Mercado "})
	require.NoError(t, err)
	assert.Equal(t, "Mercado", created.Name)

	_, err = svc.Create(ctx, userID, &dto.CategoryRequest{Name: "Mercado"})
	require.ErrorIs(t, err, ErrConflict)

	list, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	err = svc.Rename(ctx, userID, uuid.New(), &dto.CategoryRequest{Name: "Feira"})
	require.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(ctx, userID, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryServiceSeedDefaults(t *testing.T) {
	store := &memCategories{}
	svc := NewCategoryService(store, zap.NewNop())
	userID := uuid.New()

	n, err := svc.SeedDefaults(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(len(extraction.Vocabulary)), n)
	assert.Equal(t, userID, store.seedUserID)
	assert.Contains(t, store.seeded, extraction.Uncategorized)
}

func TestPurchaseServiceCreate(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     dto.PurchaseRequest
		wantErr error
		check   func(t *testing.T, resp *dto.PurchaseResponse)
	}{
		{
			name: "amount from quantity and unit price",
			req:  dto.PurchaseRequest{Name: "Arroz", Quantity: 3, UnitPrice: 4.1},
			check: func(t *testing.T, resp *dto.PurchaseResponse) {
				assert.Equal(t, 12.3, resp.Amount)
				assert.Equal(t, recurrence.Uncategorized, resp.Category)
				assert.Equal(t, "2025-03-14", resp.Date)
			},
		},
		{
			name: "unit price from amount",
			req:  dto.PurchaseRequest{Name: "Gasolina", Category: "Vehicle", Amount: 150, Date: "2025-03-01"},
			check: func(t *testing.T, resp *dto.PurchaseResponse) {
				assert.Equal(t, 1.0, resp.Quantity)
				assert.Equal(t, 150.0, resp.UnitPrice)
				assert.Equal(t, "2025-03-01", resp.Date)
			},
		},
		{name: "missing name", req: dto.PurchaseRequest{Amount: 10}, wantErr: ErrValidation},
		{name: "zero amount", req: dto.PurchaseRequest{Name: "Nada"}, wantErr: ErrValidation},
		{name: "negative", req: dto.PurchaseRequest{Name: "Estorno", Amount: -5}, wantErr: ErrValidation},
		{name: "bad date", req: dto.PurchaseRequest{Name: "Pão", Amount: 5, Date: "14/03/2025"}, wantErr: ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPurchaseService(&memPurchases{}, zap.NewNop())
			svc.now = fixedClock(now)

			resp, err := svc.Create(context.Background(), uuid.New(), &tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, resp)
		})
	}
}

func TestPurchaseServiceListAndDelete(t *testing.T) {
	ctx := context.Background()
	store := &memPurchases{}
	svc := NewPurchaseService(store, zap.NewNop())
	userID := uuid.New()

	created, err := svc.Create(ctx, userID, &dto.PurchaseRequest{Name: "Café", Amount: 18.5, Date: "2025-02-10"})
	require.NoError(t, err)

	_, err = svc.ListByMonth(ctx, userID, 13, 2025)
	require.ErrorIs(t, err, ErrValidation)

	list, err := svc.ListByMonth(ctx, userID, 2, 2025)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	id := uuid.MustParse(created.ID)
	require.NoError(t, svc.Delete(ctx, userID, id))
	require.ErrorIs(t, svc.Delete(ctx, userID, id), ErrNotFound)
}

func TestBuildObligation(t *testing.T) {
	tests := []struct {
		name    string
		kind    recurrence.Kind
		req     dto.ObligationRequest
		wantErr error
	}{
		{
			name: "monthly",
			kind: recurrence.KindFixedCost,
			req:  dto.ObligationRequest{Name: "Aluguel", Amount: 1500, Period: "monthly", AnchorMonth: 1, AnchorYear: 2025, DueDay: 10},
		},
		{
			name: "one-off",
			kind: recurrence.KindIncome,
			req:  dto.ObligationRequest{Name: "Bônus", Amount: 800, Period: "one-off", OneOffDate: "2025-12-20"},
		},
		{
			name:    "one-off without date",
			kind:    recurrence.KindIncome,
			req:     dto.ObligationRequest{Name: "Bônus", Amount: 800, Period: "one-off"},
			wantErr: recurrence.ErrMissingOneOffDate,
		},
		{
			name:    "repeating with date",
			kind:    recurrence.KindFixedCost,
			req:     dto.ObligationRequest{Name: "IPVA", Amount: 900, Period: "annual", AnchorMonth: 1, AnchorYear: 2025, OneOffDate: "2025-01-15"},
			wantErr: recurrence.ErrUnexpectedOneOff,
		},
		{
			name:    "unknown period",
			kind:    recurrence.KindFixedCost,
			req:     dto.ObligationRequest{Name: "Academia", Amount: 90, Period: "weekly", AnchorMonth: 1, AnchorYear: 2025},
			wantErr: recurrence.ErrInvalidPeriod,
		},
		{
			name:    "anchor month out of range",
			kind:    recurrence.KindFixedCost,
			req:     dto.ObligationRequest{Name: "Academia", Amount: 90, Period: "monthly", AnchorMonth: 13, AnchorYear: 2025},
			wantErr: recurrence.ErrInvalidMonth,
		},
		{
			name:    "due day out of range",
			kind:    recurrence.KindFixedCost,
			req:     dto.ObligationRequest{Name: "Academia", Amount: 90, Period: "monthly", AnchorMonth: 1, AnchorYear: 2025, DueDay: 32},
			wantErr: recurrence.ErrInvalidDueDay,
		},
		{
			name:    "zero amount",
			kind:    recurrence.KindFixedCost,
			req:     dto.ObligationRequest{Name: "Academia", Period: "monthly", AnchorMonth: 1, AnchorYear: 2025},
			wantErr: ErrValidation,
		},
		{
			name:    "purchase kind",
			kind:    recurrence.KindPurchase,
			req:     dto.ObligationRequest{Name: "Academia", Amount: 90, Period: "monthly", AnchorMonth: 1, AnchorYear: 2025},
			wantErr: ErrValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := buildObligation(tt.kind, &tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, ErrValidation)
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, o.Kind)
			assert.Equal(t, recurrence.Uncategorized, o.Category)
		})
	}
}

func TestObligationServiceScopesByKind(t *testing.T) {
	ctx := context.Background()
	store := &memObligations{}
	svc := NewObligationService(store, zap.NewNop())
	userID := uuid.New()

	cost, err := svc.Create(ctx, userID, recurrence.KindFixedCost, &dto.ObligationRequest{
		Name: "Internet", Category: "Services", Amount: 99.9, Period: "monthly", AnchorMonth: 1, AnchorYear: 2025, DueDay: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed_cost", cost.Kind)

	incomes, err := svc.List(ctx, userID, recurrence.KindIncome)
	require.NoError(t, err)
	assert.Empty(t, incomes)

	id := uuid.MustParse(cost.ID)
	update := &dto.ObligationRequest{Name: "Internet", Amount: 120, Period: "monthly", AnchorMonth: 1, AnchorYear: 2025}
	require.ErrorIs(t, svc.Update(ctx, userID, id, recurrence.KindIncome, update), ErrNotFound)
	require.NoError(t, svc.Update(ctx, userID, id, recurrence.KindFixedCost, update))

	costs, err := svc.List(ctx, userID, recurrence.KindFixedCost)
	require.NoError(t, err)
	require.Len(t, costs, 1)
	assert.Equal(t, 120.0, costs[0].Amount)

	require.ErrorIs(t, svc.Delete(ctx, userID, id, recurrence.KindIncome), ErrNotFound)
	require.NoError(t, svc.Delete(ctx, userID, id, recurrence.KindFixedCost))
}
