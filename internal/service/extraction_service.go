package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"controle-financeiro/internal/dto"
	"controle-financeiro/internal/extraction"
	"controle-financeiro/internal/models"
	"controle-financeiro/internal/normalize"
	"controle-financeiro/internal/ocr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Extractor is the part of extraction.Orchestrator the service drives.
type Extractor interface {
	FromURL(ctx context.Context, url string) (*extraction.ItemsResult, error)
	FromImage(ctx context.Context, data []byte, contentType string) (extraction.Result, error)
	FromAccessKey(input string) (*extraction.AccessKeyResult, error)
}

// ExtractionService runs receipts through the extractor and, when asked,
// stores the items as purchases together with an ingestion log row.
type ExtractionService struct {
	extractor Extractor
	documents DocumentStore
	now       func() time.Time
	logger    *zap.Logger
}

func NewExtractionService(extractor Extractor, documents DocumentStore, logger *zap.Logger) *ExtractionService {
	return &ExtractionService{
		extractor: extractor,
		documents: documents,
		now:       time.Now,
		logger:    logger,
	}
}

// upload describes where a document came from, for the ingestion log.
type upload struct {
	source      models.DocumentSource
	reference   string
	contentType string
	size        int64
}

func (s *ExtractionService) ExtractURL(ctx context.Context, userID uuid.UUID, req *dto.ExtractURLRequest) (*dto.ExtractionResponse, error) {
	raw := strings.TrimSpace(req.URL)
	if raw == "" {
		return nil, invalid("url is required")
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, invalid("url must be an absolute http(s) address")
	}

	result, err := s.extractor.FromURL(ctx, raw)
	if err != nil {
		return nil, err
	}

	resp := itemsResponse(result)
	if req.Save {
		src := upload{source: models.DocumentSourceURL, reference: raw, contentType: "text/html"}
		if err := s.save(ctx, userID, src, result, resp); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// ExtractImage reads an uploaded image or PDF. Access-key results are returned
// as lookup links and never stored.
func (s *ExtractionService) ExtractImage(ctx context.Context, userID uuid.UUID, data []byte, fileName string, save bool) (*dto.ExtractionResponse, error) {
	if len(data) == 0 {
		return nil, invalid("file is empty")
	}
	contentType := ocr.Sniff(data)
	if !ocr.Supported(contentType) {
		return nil, invalidErr(fmt.Errorf("%w: %s", ocr.ErrUnsupportedType, contentType))
	}

	result, err := s.extractor.FromImage(ctx, data, contentType)
	if err != nil {
		return nil, err
	}

	switch r := result.(type) {
	case *extraction.AccessKeyResult:
		return accessKeyResponse(r), nil
	case *extraction.ItemsResult:
		resp := itemsResponse(r)
		if save {
			src := upload{
				source:      models.DocumentSourceImage,
				reference:   fileName,
				contentType: contentType,
				size:        int64(len(data)),
			}
			if err := s.save(ctx, userID, src, r, resp); err != nil {
				return nil, err
			}
		}
		return resp, nil
	default:
		return nil, fmt.Errorf("unexpected extraction result %T", result)
	}
}

func (s *ExtractionService) ExtractAccessKey(req *dto.AccessKeyRequest) (*dto.ExtractionResponse, error) {
	result, err := s.extractor.FromAccessKey(req.Key)
	if err != nil {
		return nil, invalidErr(err)
	}
	return accessKeyResponse(result), nil
}

func (s *ExtractionService) Documents(ctx context.Context, userID uuid.UUID, limit, offset int) ([]dto.DocumentResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	docs, err := s.documents.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, dto.DocumentResponse{
			ID:          d.ID.String(),
			Source:      string(d.Source),
			Reference:   d.Reference,
			ContentType: d.ContentType,
			FileSize:    d.FileSize,
			ResultKind:  d.ResultKind,
			CreatedAt:   d.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// save stores the document log row and one purchase per item in a single
// transaction. Receipts without a readable date are filed under today. Items
// without a positive amount are not stored as purchases.
func (s *ExtractionService) save(ctx context.Context, userID uuid.UUID, src upload, result *extraction.ItemsResult, resp *dto.ExtractionResponse) error {
	now := s.now()
	date, err := time.Parse(normalize.DateLayout, result.Document.Date)
	if err != nil {
		date = today(s.now)
	}

	doc := &models.Document{
		ID:            uuid.New(),
		UserID:        userID,
		Source:        src.source,
		Reference:     sanitizeText(src.reference),
		ContentType:   src.contentType,
		FileSize:      src.size,
		ExtractedText: sanitizeText(result.Text),
		ResultKind:    string(result.Kind()),
		CreatedAt:     now,
	}

	purchases := make([]*models.Purchase, 0, len(result.Document.Items))
	skipped := 0
	for _, item := range result.Document.Items {
		amount := decimal.NewFromFloat(item.Amount()).Round(2)
		if !amount.IsPositive() {
			skipped++
			continue
		}
		purchases = append(purchases, &models.Purchase{
			ID:         uuid.New(),
			UserID:     userID,
			DocumentID: &doc.ID,
			Name:       sanitizeText(item.Name),
			Category:   categoryOrDefault(item.Category),
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			Amount:     amount.InexactFloat64(),
			Date:       date,
			CreatedAt:  now,
		})
	}

	if err := s.documents.SaveExtraction(ctx, doc, purchases); err != nil {
		return fmt.Errorf("save extraction: %w", err)
	}
	s.logger.Info("Extraction saved",
		zap.String("document_id", doc.ID.String()),
		zap.String("source", string(src.source)),
		zap.Int("purchases", len(purchases)),
		zap.Int("skipped_without_amount", skipped),
	)

	resp.DocumentID = doc.ID.String()
	resp.Saved = true
	return nil
}

func itemsResponse(r *extraction.ItemsResult) *dto.ExtractionResponse {
	items := make([]dto.LineItemResponse, 0, len(r.Document.Items))
	for _, item := range r.Document.Items {
		items = append(items, dto.LineItemResponse{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Amount:    decimal.NewFromFloat(item.Amount()).Round(2).InexactFloat64(),
			Category:  item.Category,
		})
	}
	return &dto.ExtractionResponse{
		Kind:          string(extraction.ResultItems),
		Establishment: r.Document.Establishment,
		Date:          r.Document.Date,
		Items:         items,
		Total:         r.Document.Total,
	}
}

func accessKeyResponse(r *extraction.AccessKeyResult) *dto.ExtractionResponse {
	return &dto.ExtractionResponse{
		Kind:      string(extraction.ResultAccessKey),
		AccessKey: r.Key,
		LookupURL: r.LookupURL,
	}
}
