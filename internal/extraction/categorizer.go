package extraction

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Categorizer files line items under Vocabulary with a single model call per
// batch.
type Categorizer struct {
	gen      Generator
	observer Observer
	logger   *zap.Logger
}

func NewCategorizer(gen Generator, observer Observer, logger *zap.Logger) *Categorizer {
	return &Categorizer{gen: gen, observer: observerOrNop(observer), logger: logger}
}

type categoryPair struct {
	Item     string `json:"item"`
	Category string `json:"category"`
}

// Categorize returns one LineItem per input item, in order. Any failure puts
// every item under Uncategorized; labels outside Vocabulary do the same for the
// affected item.
func (c *Categorizer) Categorize(ctx context.Context, items []RawLineItem, establishment string) []LineItem {
	out := make([]LineItem, len(items))
	for i, item := range items {
		out[i] = LineItem{RawLineItem: item, Category: Uncategorized}
	}
	if len(items) == 0 {
		return out
	}
	if c.gen == nil {
		c.fallback("text generation not configured", nil)
		return out
	}

	resp, err := c.gen.Generate(ctx, c.prompt(items, establishment))
	if err != nil {
		c.fallback("generation failed", err)
		return out
	}

	var pairs []categoryPair
	if err := decodeArray(resp, &pairs); err != nil {
		c.fallback("malformed response", err)
		return out
	}

	byName := make(map[string]string, len(pairs))
	for _, p := range pairs {
		byName[foldKey(p.Item)] = CanonicalCategory(p.Category)
	}
	for i := range out {
		if category, ok := byName[foldKey(out[i].Name)]; ok {
			out[i].Category = category
		}
	}
	return out
}

func (c *Categorizer) prompt(items []RawLineItem, establishment string) string {
	var names strings.Builder
	for _, item := range items {
		fmt.Fprintf(&names, "- %s\n", item.Name)
	}
	if establishment == "" {
		establishment = UnknownEstablishment
	}

	return fmt.Sprintf(`You categorize items from a Brazilian purchase receipt.
The purchase happened at an establishment of type: %s.

Allowed categories (use exactly one of these labels):
%s

Use the establishment type as context when an item is ambiguous. For example, an item bought at a fuel station belongs to Vehicle, not Food.
If no category fits, use Uncategorized.

Items:
%s
Return ONLY a JSON array, with no markdown and no comments, in this format:
[{"item": "<item name exactly as given>", "category": "<category>"}]`,
		establishment, strings.Join(Vocabulary, ", "), names.String())
}

func (c *Categorizer) fallback(reason string, err error) {
	c.observer.Fallback(StageCategorize)
	c.logger.Warn("Item categorization fell back to Uncategorized",
		zap.String("stage", StageCategorize),
		zap.String("reason", reason),
		zap.Error(err),
	)
}
