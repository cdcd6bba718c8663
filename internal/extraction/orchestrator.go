package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"controle-financeiro/internal/normalize"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Options tune an Orchestrator. Zero values are usable.
type Options struct {
	// LookupURLTemplate renders access-key lookup pages; see LookupURL.
	LookupURLTemplate string
	// CategorizeTableItems runs the batch categorizer on DANFE tables too.
	// Without it table items stay Uncategorized.
	CategorizeTableItems bool

	FetchTimeout      time.Duration
	OCRTimeout        time.Duration
	GenerationTimeout time.Duration

	TotalDetector TotalDetector
	Observer      Observer
	// Now supplies "today" for documents without a date.
	Now func() time.Time
}

// Orchestrator runs the extraction pipelines. It keeps no per-document state
// and is safe for concurrent use when its capabilities are.
type Orchestrator struct {
	web         WebSource
	ocr         TextDetector
	classifier  *Classifier
	categorizer *Categorizer
	summarizer  *Summarizer
	table       *TableExtractor
	totals      TotalDetector
	observer    Observer
	opts        Options
	logger      *zap.Logger
}

// NewOrchestrator wires the pipeline. gen and ocr may be nil when the
// capability is not configured.
func NewOrchestrator(gen Generator, web WebSource, ocr TextDetector, opts Options, logger *zap.Logger) *Orchestrator {
	observer := observerOrNop(opts.Observer)
	if opts.TotalDetector == nil {
		opts.TotalDetector = LastAmountDetector{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Orchestrator{
		web:         web,
		ocr:         ocr,
		classifier:  NewClassifier(gen, observer, logger),
		categorizer: NewCategorizer(gen, observer, logger),
		summarizer:  NewSummarizer(gen, observer, logger),
		table:       NewTableExtractor(gen, observer, logger),
		totals:      opts.TotalDetector,
		observer:    observer,
		opts:        opts,
		logger:      logger,
	}
}

// FromURL extracts a receipt page. A page without items is a success with an
// empty item list; fetch and parse failures wrap ErrFetch.
func (o *Orchestrator) FromURL(ctx context.Context, url string) (*ItemsResult, error) {
	if o.web == nil {
		o.observer.Outcome(SourceWeb, OutcomeError)
		return nil, fmt.Errorf("%w: no web source configured", ErrFetch)
	}

	fetchCtx, cancel := withTimeout(ctx, o.opts.FetchTimeout)
	receipt, err := o.web.Fetch(fetchCtx, url)
	cancel()
	if err != nil {
		o.observer.Outcome(SourceWeb, OutcomeError)
		if !errors.Is(err, ErrFetch) {
			err = fmt.Errorf("%w: %v", ErrFetch, err)
		}
		return nil, err
	}

	genCtx, cancel := withTimeout(ctx, o.opts.GenerationTimeout)
	establishment := o.classifier.Classify(genCtx, receipt.Merchant)
	cancel()

	genCtx, cancel = withTimeout(ctx, o.opts.GenerationTimeout)
	items := o.categorizer.Categorize(genCtx, receipt.Items, establishment)
	cancel()

	total := receipt.Total
	if total == nil && len(items) > 0 {
		sum := itemsTotal(items)
		total = &sum
	}

	date := receipt.Date
	if date == "" {
		date = normalize.NotFound
	}

	o.logger.Info("Receipt page extracted",
		zap.String("establishment", establishment),
		zap.Int("items", len(items)),
	)
	o.observer.Outcome(SourceWeb, OutcomeItems)

	return &ItemsResult{
		Document: Document{
			Establishment: establishment,
			Date:          date,
			Items:         items,
			Total:         total,
		},
	}, nil
}

// FromImage extracts an uploaded receipt image or PDF. The first stage that
// succeeds decides the result: access key, DANFE table, then a one-item
// summary. Only missing or empty OCR text is terminal.
func (o *Orchestrator) FromImage(ctx context.Context, data []byte, contentType string) (Result, error) {
	text, err := o.readText(ctx, data, contentType)
	if err != nil {
		o.observer.Outcome(SourceImage, OutcomeError)
		return nil, err
	}

	if key, ok := FindAccessKey(text); ok {
		o.logger.Info("Access key found in receipt", zap.String("key", key))
		o.observer.Outcome(SourceImage, OutcomeAccessKey)
		return &AccessKeyResult{Key: key, LookupURL: LookupURL(o.opts.LookupURLTemplate, key)}, nil
	}

	today := o.opts.Now().Format(normalize.DateLayout)

	genCtx, cancel := withTimeout(ctx, o.opts.GenerationTimeout)
	rows, ok := o.table.Extract(genCtx, text)
	cancel()
	if ok {
		o.observer.Outcome(SourceImage, OutcomeTable)
		return &ItemsResult{Document: o.tableDocument(ctx, rows, text, today), Text: text}, nil
	}

	genCtx, cancel = withTimeout(ctx, o.opts.GenerationTimeout)
	summary := o.summarizer.Summarize(genCtx, text)
	cancel()

	total, found := o.totals.DetectTotal(text)
	item := LineItem{
		RawLineItem: RawLineItem{Name: summary.Name, Quantity: 1, UnitPrice: total},
		Category:    summary.Category,
	}
	doc := Document{
		Date:  normalize.DateOr(text, today),
		Items: []LineItem{item},
	}
	if found {
		doc.Total = &total
	}

	o.observer.Outcome(SourceImage, OutcomeSummary)
	return &ItemsResult{Document: doc, Text: text}, nil
}

// FromAccessKey validates a typed-in access key and returns its lookup page.
func (o *Orchestrator) FromAccessKey(input string) (*AccessKeyResult, error) {
	key, err := NormalizeAccessKey(input)
	if err != nil {
		return nil, err
	}
	o.observer.Outcome(SourceAccessKey, OutcomeAccessKey)
	return &AccessKeyResult{Key: key, LookupURL: LookupURL(o.opts.LookupURLTemplate, key)}, nil
}

func (o *Orchestrator) readText(ctx context.Context, data []byte, contentType string) (string, error) {
	if o.ocr == nil {
		return "", ErrOCRUnavailable
	}

	ocrCtx, cancel := withTimeout(ctx, o.opts.OCRTimeout)
	defer cancel()

	text, err := o.ocr.DetectText(ocrCtx, data, contentType)
	if err != nil {
		if errors.Is(err, ErrOCRUnavailable) || errors.Is(err, ErrOCREmpty) {
			return "", err
		}
		return "", fmt.Errorf("text detection failed: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrOCREmpty
	}
	return text, nil
}

func (o *Orchestrator) tableDocument(ctx context.Context, rows []TableRow, text, today string) Document {
	raw := make([]RawLineItem, len(rows))
	for i, r := range rows {
		raw[i] = RawLineItem{Name: r.Name, Quantity: r.Quantity, UnitPrice: r.UnitPrice}
	}

	var items []LineItem
	if o.opts.CategorizeTableItems {
		genCtx, cancel := withTimeout(ctx, o.opts.GenerationTimeout)
		items = o.categorizer.Categorize(genCtx, raw, UnknownEstablishment)
		cancel()
	} else {
		items = make([]LineItem, len(raw))
		for i, r := range raw {
			items[i] = LineItem{RawLineItem: r, Category: Uncategorized}
		}
	}

	total := tableTotal(rows)
	return Document{
		Date:  normalize.DateOr(text, today),
		Items: items,
		Total: &total,
	}
}

func itemsTotal(items []LineItem) float64 {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromFloat(item.Quantity)))
	}
	return sum.Round(2).InexactFloat64()
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
