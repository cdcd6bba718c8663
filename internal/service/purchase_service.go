package service

import (
	"context"
	"strings"
	"time"

	"controle-financeiro/internal/dto"
	"controle-financeiro/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PurchaseService struct {
	purchases PurchaseStore
	now       func() time.Time
	logger    *zap.Logger
}

func NewPurchaseService(purchases PurchaseStore, logger *zap.Logger) *PurchaseService {
	return &PurchaseService{purchases: purchases, now: time.Now, logger: logger}
}

func (s *PurchaseService) Create(ctx context.Context, userID uuid.UUID, req *dto.PurchaseRequest) (*dto.PurchaseResponse, error) {
	p, err := s.buildPurchase(userID, req)
	if err != nil {
		return nil, err
	}
	if err := s.purchases.Create(ctx, p); err != nil {
		return nil, storeError(err)
	}
	resp := purchaseResponse(p)
	return &resp, nil
}

func (s *PurchaseService) ListByMonth(ctx context.Context, userID uuid.UUID, month, year int) ([]dto.PurchaseResponse, error) {
	if err := ValidateMonth(month, year); err != nil {
		return nil, err
	}
	purchases, err := s.purchases.ListByMonth(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, purchaseResponse(p))
	}
	return out, nil
}

func (s *PurchaseService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return storeError(s.purchases.Delete(ctx, userID, id))
}

func (s *PurchaseService) buildPurchase(userID uuid.UUID, req *dto.PurchaseRequest) (*models.Purchase, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if req.Quantity < 0 || req.UnitPrice < 0 || req.Amount < 0 {
		return nil, invalid("quantity, unit price and amount cannot be negative")
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	unitPrice := req.UnitPrice
	amount := req.Amount
	switch {
	case amount == 0 && unitPrice > 0:
		amount = decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(unitPrice)).Round(2).InexactFloat64()
	case unitPrice == 0 && amount > 0:
		unitPrice = decimal.NewFromFloat(amount).Div(decimal.NewFromFloat(quantity)).Round(2).InexactFloat64()
	}
	if amount <= 0 {
		return nil, invalid("amount must be greater than zero")
	}

	date, err := parseDate(req.Date, today(s.now))
	if err != nil {
		return nil, err
	}

	return &models.Purchase{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Category:  categoryOrDefault(req.Category),
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Amount:    amount,
		Date:      date,
		CreatedAt: s.now(),
	}, nil
}

func purchaseResponse(p *models.Purchase) dto.PurchaseResponse {
	resp := dto.PurchaseResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Category:  p.Category,
		Quantity:  p.Quantity,
		UnitPrice: p.UnitPrice,
		Amount:    p.Amount,
		Date:      p.Date.Format(DateLayout),
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
	if p.DocumentID != nil {
		resp.DocumentID = p.DocumentID.String()
	}
	return resp
}
