package extraction

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	FallbackSummaryName     = "Card purchase"
	FallbackSummaryCategory = "Other"
)

// Summary names a whole purchase when no item table is available.
type Summary struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Summarizer produces a Summary from the free text of a receipt.
type Summarizer struct {
	gen      Generator
	observer Observer
	logger   *zap.Logger
}

func NewSummarizer(gen Generator, observer Observer, logger *zap.Logger) *Summarizer {
	return &Summarizer{gen: gen, observer: observerOrNop(observer), logger: logger}
}

func fallbackSummary() Summary {
	return Summary{Name: FallbackSummaryName, Category: FallbackSummaryCategory}
}

// Summarize never fails; unusable answers yield the card-purchase fallback.
func (s *Summarizer) Summarize(ctx context.Context, text string) Summary {
	if s.gen == nil {
		s.fallback("text generation not configured", nil)
		return fallbackSummary()
	}

	prompt := fmt.Sprintf(`Below is the text of a Brazilian payment receipt (card slip, invoice or similar).
Describe the purchase with a short name (at most five words) and pick one category from this list:
%s

Return ONLY a JSON object, with no markdown and no comments:
{"name": "<short name>", "category": "<category>"}

Receipt text:
%s`, strings.Join(Vocabulary, ", "), text)

	resp, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		s.fallback("generation failed", err)
		return fallbackSummary()
	}

	var summary Summary
	if err := decodeObject(resp, &summary); err != nil {
		s.fallback("malformed response", err)
		return fallbackSummary()
	}

	summary.Name = strings.TrimSpace(summary.Name)
	if summary.Name == "" {
		s.fallback("empty name", nil)
		return fallbackSummary()
	}
	summary.Category = CanonicalCategory(summary.Category)
	return summary
}

func (s *Summarizer) fallback(reason string, err error) {
	s.observer.Fallback(StageSummarize)
	s.logger.Warn("Receipt summary fell back to default",
		zap.String("stage", StageSummarize),
		zap.String("reason", reason),
		zap.Error(err),
	)
}
