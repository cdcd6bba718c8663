// Package scraper reads NFC-e consultation pages published by the state tax
// authorities (SEFAZ).
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"controle-financeiro/internal/extraction"
	"controle-financeiro/internal/normalize"
	"controle-financeiro/pkg/config"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// Page selectors of the SEFAZ NFC-e layout.
const (
	merchantSelector  = "#u20"
	infoSelector      = "#infos"
	itemRowSelector   = "table#tabResult tr"
	itemNameSelector  = "span.txtTit"
	itemQtySelector   = ".Rqtd"
	itemPriceSelector = ".RvlUnit"
	totalSelector     = ".totalNumb.txtMax"

	issuedLabel = "Emissão"
)

type Scraper struct {
	client    *http.Client
	userAgent string
	maxBody   int64
	logger    *zap.Logger
}

func New(cfg config.ScraperConfig, logger *zap.Logger) *Scraper {
	return &Scraper{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		maxBody:   cfg.MaxBodySize,
		logger:    logger,
	}
}

// Fetch downloads and parses a receipt page. Network errors and non-2xx
// answers wrap extraction.ErrFetch.
func (s *Scraper) Fetch(ctx context.Context, url string) (*extraction.WebReceipt, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid url: %v", extraction.ErrFetch, err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", extraction.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", extraction.ErrFetch, resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if s.maxBody > 0 {
		body = io.LimitReader(resp.Body, s.maxBody)
	}
	// SEFAZ pages are often served as ISO-8859-1
	body, err = charset.NewReader(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("%w: decode charset: %v", extraction.ErrFetch, err)
	}

	receipt, err := Parse(body)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Receipt page scraped",
		zap.String("merchant", receipt.Merchant),
		zap.String("date", receipt.Date),
		zap.Int("items", len(receipt.Items)),
	)
	return receipt, nil
}

// Parse reads a receipt page. Missing merchant or date give normalize.NotFound,
// missing item rows give an empty list, a missing total gives nil.
func Parse(r io.Reader) (*extraction.WebReceipt, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %v", extraction.ErrFetch, err)
	}

	receipt := &extraction.WebReceipt{
		Merchant: textOr(doc.Find(merchantSelector).First(), normalize.NotFound),
		Date:     issuedDate(doc),
		Items:    []extraction.RawLineItem{},
	}

	doc.Find(itemRowSelector).Each(func(_ int, row *goquery.Selection) {
		if item, ok := parseItem(row); ok {
			receipt.Items = append(receipt.Items, item)
		}
	})

	if total := doc.Find(totalSelector).Last(); total.Length() > 0 {
		if text := strings.TrimSpace(total.Text()); text != "" {
			v := normalize.ParseAmount(text)
			receipt.Total = &v
		}
	}

	return receipt, nil
}

func parseItem(row *goquery.Selection) (extraction.RawLineItem, bool) {
	name := collapse(row.Find(itemNameSelector).First().Text())
	if name == "" {
		return extraction.RawLineItem{}, false
	}

	qty := 1.0
	if q := row.Find(itemQtySelector).First(); q.Length() > 0 {
		if v := normalize.ParseAmount(q.Text()); v > 0 {
			qty = v
		}
	}

	return extraction.RawLineItem{
		Name:      name,
		Quantity:  qty,
		UnitPrice: normalize.ParseAmount(row.Find(itemPriceSelector).First().Text()),
	}, true
}

// issuedDate takes the first date after the "Emissão" label.
func issuedDate(doc *goquery.Document) string {
	scope := doc.Find(infoSelector)
	if scope.Length() == 0 {
		scope = doc.Selection
	}
	text := scope.Text()

	i := strings.Index(text, issuedLabel)
	if i < 0 {
		return normalize.NotFound
	}
	return normalize.DateOr(text[i+len(issuedLabel):], normalize.NotFound)
}

func textOr(sel *goquery.Selection, fallback string) string {
	if text := collapse(sel.Text()); text != "" {
		return text
	}
	return fallback
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
