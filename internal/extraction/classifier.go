package extraction

import (
	"context"
	"fmt"
	"strings"

	"controle-financeiro/internal/normalize"

	"go.uber.org/zap"
)

const maxEstablishmentLen = 40

// Classifier labels a merchant with a short establishment type such as
// "supermarket" or "fuel station".
type Classifier struct {
	gen      Generator
	observer Observer
	logger   *zap.Logger
}

func NewClassifier(gen Generator, observer Observer, logger *zap.Logger) *Classifier {
	return &Classifier{gen: gen, observer: observerOrNop(observer), logger: logger}
}

// Classify never fails: without a merchant, a model, or a usable answer it
// returns UnknownEstablishment.
func (c *Classifier) Classify(ctx context.Context, merchant string) string {
	merchant = strings.TrimSpace(merchant)
	if merchant == "" || merchant == normalize.NotFound {
		return UnknownEstablishment
	}
	if c.gen == nil {
		c.fallback("text generation not configured", nil)
		return UnknownEstablishment
	}

	prompt := fmt.Sprintf(`Classify the type of establishment for the Brazilian merchant below.
Answer with a short label of at most three words in English, for example "supermarket", "fuel station", "pharmacy", "restaurant", "bakery".
Answer with the label only, no punctuation and no explanation.

Merchant: %s`, merchant)

	out, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		c.fallback("generation failed", err)
		return UnknownEstablishment
	}

	label := cleanLabel(out)
	if label == "" {
		c.fallback("empty label", nil)
		return UnknownEstablishment
	}
	return label
}

func (c *Classifier) fallback(reason string, err error) {
	c.observer.Fallback(StageClassify)
	c.logger.Warn("Establishment classification fell back to Unknown",
		zap.String("stage", StageClassify),
		zap.String("reason", reason),
		zap.Error(err),
	)
}

// cleanLabel keeps the first line of a model answer without quotes or trailing
// punctuation.
func cleanLabel(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	s = strings.Trim(s, " \t\"'`*.:;")
	if len(s) > maxEstablishmentLen {
		s = strings.TrimSpace(s[:maxEstablishmentLen])
	}
	return strings.ToLower(s)
}
