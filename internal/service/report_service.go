package service

import (
	"context"
	"time"

	"controle-financeiro/internal/dto"
	"controle-financeiro/internal/models"
	"controle-financeiro/internal/recurrence"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ReportService renders a user's month: stored purchases side by side with
// the fixed costs and incomes that fire in it. Projections are computed on
// every read and never stored.
type ReportService struct {
	purchases   PurchaseStore
	obligations ObligationStore
	opts        ReportOptions
	now         func() time.Time
	logger      *zap.Logger
}

type ReportOptions struct {
	// UpcomingLimit caps the dashboard's upcoming list.
	UpcomingLimit int
	// DefaultDueDay places repeating obligations stored without a due day.
	DefaultDueDay int
}

func NewReportService(purchases PurchaseStore, obligations ObligationStore, opts ReportOptions, logger *zap.Logger) *ReportService {
	return &ReportService{
		purchases:   purchases,
		obligations: obligations,
		opts:        opts,
		now:         time.Now,
		logger:      logger,
	}
}

type monthData struct {
	purchases   []recurrence.Transaction
	obligations []recurrence.Obligation
}

// load reads the month's purchases and all obligations concurrently.
func (s *ReportService) load(ctx context.Context, userID uuid.UUID, month, year int) (*monthData, error) {
	var (
		purchases   []*models.Purchase
		obligations []*models.Obligation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		purchases, err = s.purchases.ListByMonth(gctx, userID, month, year)
		return err
	})
	g.Go(func() error {
		var err error
		obligations, err = s.obligations.ListByUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := &monthData{
		purchases:   make([]recurrence.Transaction, 0, len(purchases)),
		obligations: make([]recurrence.Obligation, 0, len(obligations)),
	}
	for _, p := range purchases {
		data.purchases = append(data.purchases, p.Transaction())
	}
	for _, o := range obligations {
		r := o.Recurring()
		r.Schedule = r.Schedule.WithDefaultDueDay(s.opts.DefaultDueDay)
		data.obligations = append(data.obligations, r)
	}
	return data, nil
}

func (s *ReportService) Transactions(ctx context.Context, userID uuid.UUID, month, year int) (*dto.MonthTransactionsResponse, error) {
	if err := ValidateMonth(month, year); err != nil {
		return nil, err
	}
	data, err := s.load(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	merged := recurrence.MergeMonth(data.purchases, data.obligations, month, year)
	return &dto.MonthTransactionsResponse{
		Month:        month,
		Year:         year,
		Transactions: transactionResponses(merged),
	}, nil
}

func (s *ReportService) Categories(ctx context.Context, userID uuid.UUID, month, year int) (*dto.CategoryReportResponse, error) {
	if err := ValidateMonth(month, year); err != nil {
		return nil, err
	}
	data, err := s.load(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	totals := recurrence.CategoryTotals(data.purchases, data.obligations, month, year)
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(decimal.NewFromFloat(t.Total))
	}
	return &dto.CategoryReportResponse{
		Month:      month,
		Year:       year,
		Total:      sum.InexactFloat64(),
		Categories: categoryTotalResponses(totals),
	}, nil
}

// Dashboard summarizes the current month. Upcoming lists fixed costs still
// due from today on.
func (s *ReportService) Dashboard(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, error) {
	today := today(s.now)
	month, year := int(today.Month()), today.Year()

	data, err := s.load(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	spent := decimal.Zero
	for _, p := range data.purchases {
		spent = spent.Add(decimal.NewFromFloat(p.Amount))
	}
	fixed, income := decimal.Zero, decimal.Zero
	var fixedCosts []recurrence.Obligation
	for _, o := range data.obligations {
		switch o.Kind {
		case recurrence.KindFixedCost:
			fixedCosts = append(fixedCosts, o)
			if recurrence.ShouldInclude(o.Schedule, month, year) {
				fixed = fixed.Add(decimal.NewFromFloat(o.Amount))
			}
		case recurrence.KindIncome:
			if recurrence.ShouldInclude(o.Schedule, month, year) {
				income = income.Add(decimal.NewFromFloat(o.Amount))
			}
		}
	}

	return &dto.DashboardResponse{
		Month:      month,
		Year:       year,
		Spent:      spent.InexactFloat64(),
		FixedCosts: fixed.InexactFloat64(),
		Income:     income.InexactFloat64(),
		Balance:    income.Sub(spent).Sub(fixed).InexactFloat64(),
		Categories: categoryTotalResponses(recurrence.CategoryTotals(data.purchases, data.obligations, month, year)),
		Upcoming:   transactionResponses(recurrence.Upcoming(fixedCosts, today, s.opts.UpcomingLimit)),
	}, nil
}

func transactionResponses(txs []recurrence.Transaction) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, dto.TransactionResponse{
			ID:        t.ID,
			SourceID:  t.SourceID,
			Kind:      string(t.Kind),
			Name:      t.Name,
			Category:  t.Category,
			Amount:    t.Amount,
			Date:      t.Date.Format(DateLayout),
			Projected: t.Projected,
		})
	}
	return out
}

func categoryTotalResponses(totals []recurrence.CategoryTotal) []dto.CategoryTotalResponse {
	out := make([]dto.CategoryTotalResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, dto.CategoryTotalResponse{Category: t.Category, Total: t.Total})
	}
	return out
}
