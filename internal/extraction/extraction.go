// Package extraction turns receipts into categorized purchase items.
//
// Two inputs are supported: a tax-authority receipt page (fetched and scraped)
// and an uploaded image or PDF (read through an OCR capability). Language-model
// calls are used for classification, categorization, table extraction and
// summarization; each of them degrades to a fixed sentinel when the model is
// missing or answers with something unusable.
package extraction

import (
	"context"
	"errors"
)

var (
	// ErrFetch means the receipt page could not be retrieved or parsed.
	ErrFetch = errors.New("failed to fetch receipt page")
	// ErrOCRUnavailable means no OCR capability is configured.
	ErrOCRUnavailable = errors.New("ocr capability unavailable")
	// ErrOCREmpty means OCR ran but produced no text.
	ErrOCREmpty = errors.New("ocr returned no text")
	// ErrInvalidAccessKey is returned for keys that are not exactly 44 digits.
	ErrInvalidAccessKey = errors.New("access key must have exactly 44 digits")
)

// Generator is a text-generation capability: prompt in, free text out.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TextDetector returns the full text printed on a document. contentType is the
// sniffed MIME type of data.
type TextDetector interface {
	DetectText(ctx context.Context, data []byte, contentType string) (string, error)
}

// WebSource retrieves and scrapes a receipt page. Failures wrap ErrFetch.
type WebSource interface {
	Fetch(ctx context.Context, url string) (*WebReceipt, error)
}

// WebReceipt is what a receipt page yields before any model is consulted.
// Missing text fields hold normalize.NotFound.
type WebReceipt struct {
	Merchant string
	Date     string
	Items    []RawLineItem
	Total    *float64
}

// RawLineItem is a parsed purchase line without a category.
type RawLineItem struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// LineItem is a RawLineItem with its category from Vocabulary.
type LineItem struct {
	RawLineItem
	Category string `json:"category"`
}

// Amount is quantity times unit price.
func (i RawLineItem) Amount() float64 {
	return i.Quantity * i.UnitPrice
}

// Document is a fully assembled extraction. Date is DD/MM/YYYY or
// normalize.NotFound.
type Document struct {
	Establishment string     `json:"establishment,omitempty"`
	Date          string     `json:"date"`
	Items         []LineItem `json:"items"`
	Total         *float64   `json:"total"`
}

// Result is the outcome of an extraction: either *AccessKeyResult or
// *ItemsResult. The set is closed.
type Result interface {
	Kind() ResultKind
	isResult()
}

type ResultKind string

const (
	ResultAccessKey ResultKind = "access_key"
	ResultItems     ResultKind = "items"
)

// AccessKeyResult is returned when an image carries an NF-e access key. The
// caller is pointed at the authority's lookup page instead of receiving items.
type AccessKeyResult struct {
	Key       string
	LookupURL string
}

func (*AccessKeyResult) Kind() ResultKind { return ResultAccessKey }
func (*AccessKeyResult) isResult()        {}

// ItemsResult carries an itemized document.
type ItemsResult struct {
	Document Document
	// Text is the raw text the document was read from, kept for the ingestion log.
	Text string
}

func (*ItemsResult) Kind() ResultKind { return ResultItems }
func (*ItemsResult) isResult()        {}
