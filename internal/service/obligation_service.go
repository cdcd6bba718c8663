package service

import (
	"context"
	"strings"
	"time"

	"controle-financeiro/internal/dto"
	"controle-financeiro/internal/models"
	"controle-financeiro/internal/recurrence"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObligationService manages fixed costs and incomes. Every call names the
// kind it works on; rows of the other kind are invisible to it.
type ObligationService struct {
	obligations ObligationStore
	now         func() time.Time
	logger      *zap.Logger
}

func NewObligationService(obligations ObligationStore, logger *zap.Logger) *ObligationService {
	return &ObligationService{obligations: obligations, now: time.Now, logger: logger}
}

func (s *ObligationService) List(ctx context.Context, userID uuid.UUID, kind recurrence.Kind) ([]dto.ObligationResponse, error) {
	obligations, err := s.obligations.ListByUser(ctx, userID, kind)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ObligationResponse, 0, len(obligations))
	for _, o := range obligations {
		out = append(out, obligationResponse(o))
	}
	return out, nil
}

func (s *ObligationService) Create(ctx context.Context, userID uuid.UUID, kind recurrence.Kind, req *dto.ObligationRequest) (*dto.ObligationResponse, error) {
	o, err := buildObligation(kind, req)
	if err != nil {
		return nil, err
	}
	now := s.now()
	o.ID = uuid.New()
	o.UserID = userID
	o.CreatedAt = now
	o.UpdatedAt = now

	if err := s.obligations.Create(ctx, o); err != nil {
		return nil, storeError(err)
	}
	resp := obligationResponse(o)
	return &resp, nil
}

// Update replaces every mutable field of the obligation.
func (s *ObligationService) Update(ctx context.Context, userID, id uuid.UUID, kind recurrence.Kind, req *dto.ObligationRequest) error {
	o, err := buildObligation(kind, req)
	if err != nil {
		return err
	}
	o.ID = id
	o.UserID = userID
	o.UpdatedAt = s.now()

	return storeError(s.obligations.Update(ctx, o))
}

func (s *ObligationService) Delete(ctx context.Context, userID, id uuid.UUID, kind recurrence.Kind) error {
	return storeError(s.obligations.Delete(ctx, userID, id, kind))
}

// buildObligation validates a request. One-off obligations keep no anchor;
// repeating ones keep no date.
func buildObligation(kind recurrence.Kind, req *dto.ObligationRequest) (*models.Obligation, error) {
	if kind != recurrence.KindFixedCost && kind != recurrence.KindIncome {
		return nil, invalid("unknown obligation kind %q", kind)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if req.Amount <= 0 {
		return nil, invalid("amount must be greater than zero")
	}

	period, err := recurrence.ParsePeriod(strings.ToLower(strings.TrimSpace(req.Period)))
	if err != nil {
		return nil, invalidErr(err)
	}

	o := &models.Obligation{
		Kind:     kind,
		Name:     name,
		Category: categoryOrDefault(req.Category),
		Amount:   req.Amount,
		Period:   period,
		DueDay:   req.DueDay,
	}
	if period == recurrence.OneOff {
		if strings.TrimSpace(req.OneOffDate) != "" {
			date, err := parseDate(req.OneOffDate, time.Time{})
			if err != nil {
				return nil, err
			}
			o.OneOffDate = &date
		}
		o.DueDay = 0
	} else {
		if strings.TrimSpace(req.OneOffDate) != "" {
			return nil, invalidErr(recurrence.ErrUnexpectedOneOff)
		}
		o.AnchorMonth = req.AnchorMonth
		o.AnchorYear = req.AnchorYear
	}

	if err := o.Schedule().Validate(); err != nil {
		return nil, invalidErr(err)
	}
	return o, nil
}

func obligationResponse(o *models.Obligation) dto.ObligationResponse {
	resp := dto.ObligationResponse{
		ID:          o.ID.String(),
		Kind:        string(o.Kind),
		Name:        o.Name,
		Category:    o.Category,
		Amount:      o.Amount,
		Period:      string(o.Period),
		AnchorMonth: o.AnchorMonth,
		AnchorYear:  o.AnchorYear,
		DueDay:      o.DueDay,
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   o.UpdatedAt.Format(time.RFC3339),
	}
	if o.OneOffDate != nil {
		resp.OneOffDate = o.OneOffDate.Format(DateLayout)
	}
	return resp
}
