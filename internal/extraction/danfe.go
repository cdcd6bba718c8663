package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TableRow is one product line of a DANFE table.
type TableRow struct {
	Name      string
	Quantity  float64
	UnitPrice float64
	LineTotal float64
}

type tableRowJSON struct {
	Name      string    `json:"name"`
	Quantity  flexFloat `json:"quantity"`
	UnitPrice flexFloat `json:"unitPrice"`
	LineTotal flexFloat `json:"lineTotal"`
}

// TableExtractor asks the model to recover the product table of a DANFE from
// noisy OCR text.
type TableExtractor struct {
	gen      Generator
	observer Observer
	logger   *zap.Logger
}

func NewTableExtractor(gen Generator, observer Observer, logger *zap.Logger) *TableExtractor {
	return &TableExtractor{gen: gen, observer: observerOrNop(observer), logger: logger}
}

// Extract returns ok == false whenever no valid table came back. The response
// must be a non-empty JSON array whose first element has a name.
func (t *TableExtractor) Extract(ctx context.Context, text string) ([]TableRow, bool) {
	if t.gen == nil {
		t.miss("text generation not configured", nil)
		return nil, false
	}

	prompt := fmt.Sprintf(`The text below was read by OCR from a Brazilian DANFE or NFC-e receipt.
Extract ONLY the product table. Ignore headers, footers, company data, taxes, payment and totals sections.
For every product return its name, quantity, unit price and line total.

Return ONLY a JSON array, with no markdown and no comments, in this format:
[{"name": "<product>", "quantity": <number>, "unitPrice": <number>, "lineTotal": <number>}]
If there is no product table, return [].

OCR text:
%s`, text)

	resp, err := t.gen.Generate(ctx, prompt)
	if err != nil {
		t.miss("generation failed", err)
		return nil, false
	}

	rows, err := parseTable(resp)
	if err != nil {
		t.miss("invalid table", err)
		return nil, false
	}
	return rows, true
}

func (t *TableExtractor) miss(reason string, err error) {
	t.observer.Fallback(StageTable)
	t.logger.Info("No DANFE table extracted",
		zap.String("stage", StageTable),
		zap.String("reason", reason),
		zap.Error(err),
	)
}

// parseTable validates and decodes a table response.
func parseTable(resp string) ([]TableRow, error) {
	trimmed := strings.TrimSpace(resp)
	if trimmed == "" {
		return nil, fmt.Errorf("empty response")
	}

	// the outermost JSON value has to be the array itself
	arrayAt := strings.Index(trimmed, "[")
	objectAt := strings.Index(trimmed, "{")
	if arrayAt == -1 || (objectAt != -1 && objectAt < arrayAt) {
		return nil, fmt.Errorf("response is not a JSON array")
	}

	raw, err := cutJSON(trimmed, "[", "]")
	if err != nil {
		return nil, err
	}

	var probe []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, fmt.Errorf("decode table: %w", err)
	}
	if len(probe) == 0 {
		return nil, fmt.Errorf("empty table")
	}
	if _, ok := probe[0]["name"]; !ok {
		return nil, fmt.Errorf("first row has no name")
	}

	var decoded []tableRowJSON
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("decode table rows: %w", err)
	}

	rows := make([]TableRow, 0, len(decoded))
	for _, d := range decoded {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			continue
		}
		rows = append(rows, completeRow(TableRow{
			Name:      name,
			Quantity:  float64(d.Quantity),
			UnitPrice: float64(d.UnitPrice),
			LineTotal: float64(d.LineTotal),
		}))
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no named rows")
	}
	return rows, nil
}

// completeRow fills in whichever of quantity, unit price and line total the
// model left out.
func completeRow(r TableRow) TableRow {
	if r.Quantity <= 0 {
		r.Quantity = 1
	}
	switch {
	case r.LineTotal == 0 && r.UnitPrice != 0:
		r.LineTotal = decimal.NewFromFloat(r.UnitPrice).Mul(decimal.NewFromFloat(r.Quantity)).Round(2).InexactFloat64()
	case r.UnitPrice == 0 && r.LineTotal != 0:
		r.UnitPrice = decimal.NewFromFloat(r.LineTotal).Div(decimal.NewFromFloat(r.Quantity)).Round(2).InexactFloat64()
	}
	return r
}

// tableTotal sums the line totals exactly.
func tableTotal(rows []TableRow) float64 {
	sum := decimal.Zero
	for _, r := range rows {
		sum = sum.Add(decimal.NewFromFloat(r.LineTotal))
	}
	return sum.InexactFloat64()
}
