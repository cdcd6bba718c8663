// Package ocr reads the text of uploaded receipts. PDFs are read locally with
// MuPDF; images go to a vision-capable model.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"controle-financeiro/internal/extraction"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

var ErrUnsupportedType = errors.New("unsupported document type")

// SupportedTypes lists the MIME types Reader accepts.
var SupportedTypes = []string{"image/jpeg", "image/png", "image/webp", "application/pdf"}

// Sniff detects the MIME type of data from its content.
func Sniff(data []byte) string {
	return mimetype.Detect(data).String()
}

// Supported reports whether a sniffed type can be read.
func Supported(contentType string) bool {
	for _, t := range SupportedTypes {
		if mimetype.EqualsAny(contentType, t) {
			return true
		}
	}
	return false
}

// Reader implements extraction.TextDetector.
type Reader struct {
	vision extraction.TextDetector
	logger *zap.Logger
}

// NewReader builds a Reader. vision may be nil, in which case images fail with
// extraction.ErrOCRUnavailable while PDFs still work.
func NewReader(vision extraction.TextDetector, logger *zap.Logger) *Reader {
	return &Reader{vision: vision, logger: logger}
}

// DetectText routes data by its sniffed type; the declared contentType is only
// used when sniffing is inconclusive.
func (r *Reader) DetectText(ctx context.Context, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", extraction.ErrOCREmpty
	}

	detected := mimetype.Detect(data)
	kind := detected.String()
	if detected.Is("application/octet-stream") && contentType != "" {
		kind = contentType
	}

	var (
		text   string
		err    error
		method string
	)
	switch {
	case mimetype.EqualsAny(kind, "application/pdf"):
		method = "go-fitz"
		text, err = r.readPDF(data)
	case Supported(kind):
		method = "vision"
		if r.vision == nil {
			return "", extraction.ErrOCRUnavailable
		}
		text, err = r.vision.DetectText(ctx, data, kind)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, kind)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	r.logger.Info("Document text read",
		zap.String("type", kind),
		zap.String("method", method),
		zap.Int("text_length", len(text)),
	)
	if text == "" {
		return "", extraction.ErrOCREmpty
	}
	return text, nil
}

func (r *Reader) readPDF(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var b strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			r.logger.Warn("Failed to extract text from page", zap.Int("page", i+1), zap.Error(err))
			continue
		}
		if pageText != "" {
			b.WriteString(pageText)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
