package extraction

import (
	"context"
	"testing"
	"time"

	"controle-financeiro/internal/normalize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = func() time.Time { return time.Date(2025, time.March, 9, 15, 0, 0, 0, time.UTC) }

func newTestOrchestrator(gen Generator, web WebSource, ocr TextDetector, mutate func(*Options)) (*Orchestrator, *recordingObserver) {
	obs := &recordingObserver{}
	opts := Options{
		LookupURLTemplate: "https://lookup.example/?p={key}",
		Observer:          obs,
		Now:               fixedNow,
		GenerationTimeout: time.Second,
	}
	if mutate != nil {
		mutate(&opts)
	}
	return NewOrchestrator(gen, web, ocr, opts, zap.NewNop()), obs
}

func TestFromURL(t *testing.T) {
	total := 17.38
	receipt := &WebReceipt{
		Merchant: "POSTO IPIRANGA",
		Date:     "02/03/2025",
		Items: []RawLineItem{
			{Name: "ADITIVO", Quantity: 1, UnitPrice: 10.40},
			{Name: "AGUA", Quantity: 2, UnitPrice: 3.49},
		},
		Total: &total,
	}

	t.Run("classify then categorize", func(t *testing.T) {
		gen := &scriptedGenerator{answers: map[string]string{
			classifyPrompt:   "fuel station",
			categorizePrompt: `[{"item":"ADITIVO","category":"Vehicle"},{"item":"AGUA","category":"Beverages"}]`,
		}}
		o, obs := newTestOrchestrator(gen, fakeWeb{receipt: receipt}, nil, nil)

		res, err := o.FromURL(context.Background(), "https://sefaz.example/nfce?p=1")
		require.NoError(t, err)

		doc := res.Document
		assert.Equal(t, "fuel station", doc.Establishment)
		assert.Equal(t, "02/03/2025", doc.Date)
		require.Len(t, doc.Items, 2)
		assert.Equal(t, "Vehicle", doc.Items[0].Category)
		assert.Equal(t, "Beverages", doc.Items[1].Category)
		require.NotNil(t, doc.Total)
		assert.Equal(t, 17.38, *doc.Total)
		assert.Equal(t, []string{"web:items"}, obs.outcomes)
	})

	t.Run("categorizer failure still yields a document", func(t *testing.T) {
		gen := &scriptedGenerator{answers: map[string]string{
			classifyPrompt:   "fuel station",
			categorizePrompt: "not json at all",
		}}
		o, obs := newTestOrchestrator(gen, fakeWeb{receipt: receipt}, nil, nil)

		res, err := o.FromURL(context.Background(), "u")
		require.NoError(t, err)
		require.Len(t, res.Document.Items, 2)
		for _, item := range res.Document.Items {
			assert.Equal(t, Uncategorized, item.Category)
		}
		assert.Contains(t, obs.fallbacks, StageCategorize)
	})

	t.Run("no items is not an error", func(t *testing.T) {
		gen := &scriptedGenerator{answers: map[string]string{classifyPrompt: "bakery"}}
		empty := &WebReceipt{Merchant: "PADARIA", Date: normalize.NotFound}
		o, _ := newTestOrchestrator(gen, fakeWeb{receipt: empty}, nil, nil)

		res, err := o.FromURL(context.Background(), "u")
		require.NoError(t, err)
		assert.NotNil(t, res.Document.Items)
		assert.Empty(t, res.Document.Items)
		assert.Nil(t, res.Document.Total)
		assert.Equal(t, normalize.NotFound, res.Document.Date)
		assert.Zero(t, gen.calls(categorizePrompt))
	})

	t.Run("missing total is summed", func(t *testing.T) {
		noTotal := *receipt
		noTotal.Total = nil
		o, _ := newTestOrchestrator(nil, fakeWeb{receipt: &noTotal}, nil, nil)

		res, err := o.FromURL(context.Background(), "u")
		require.NoError(t, err)
		require.NotNil(t, res.Document.Total)
		assert.Equal(t, 17.38, *res.Document.Total)
		assert.Equal(t, UnknownEstablishment, res.Document.Establishment)
	})

	t.Run("fetch failure", func(t *testing.T) {
		o, obs := newTestOrchestrator(nil, fakeWeb{err: assert.AnError}, nil, nil)
		_, err := o.FromURL(context.Background(), "u")
		require.ErrorIs(t, err, ErrFetch)
		assert.Equal(t, []string{"web:error"}, obs.outcomes)
	})
}

func TestFromImageAccessKeyShortCircuits(t *testing.T) {
	key := "35240612345678000190650010000123451000123456"
	gen := &scriptedGenerator{answers: map[string]string{tablePrompt: `[{"name":"X","quantity":1,"unitPrice":1,"lineTotal":1}]`}}
	o, obs := newTestOrchestrator(gen, nil, fakeDetector{text: "NFC-e\n" + key + "\nTOTAL 10,00"}, nil)

	res, err := o.FromImage(context.Background(), []byte("img"), "image/png")
	require.NoError(t, err)

	ak, ok := res.(*AccessKeyResult)
	require.True(t, ok)
	assert.Equal(t, key, ak.Key)
	assert.Equal(t, "https://lookup.example/?p="+key, ak.LookupURL)
	assert.Zero(t, gen.calls(tablePrompt))
	assert.Empty(t, gen.prompts)
	assert.Equal(t, []string{"image:access_key"}, obs.outcomes)
}

func TestFromImageTable(t *testing.T) {
	text := "DANFE\nEMISSAO 05/02/25\nARROZ 2 24,90 49,80\nFEIJAO 1 8,50 8,50"
	table := `[{"name":"ARROZ","quantity":2,"unitPrice":24.9,"lineTotal":49.8},{"name":"FEIJAO","quantity":1,"unitPrice":8.5,"lineTotal":8.5}]`

	t.Run("items stay uncategorized by default", func(t *testing.T) {
		gen := &scriptedGenerator{answers: map[string]string{tablePrompt: table}}
		o, obs := newTestOrchestrator(gen, nil, fakeDetector{text: text}, nil)

		res, err := o.FromImage(context.Background(), []byte("img"), "image/jpeg")
		require.NoError(t, err)

		items, ok := res.(*ItemsResult)
		require.True(t, ok)
		doc := items.Document
		assert.Equal(t, "05/02/2025", doc.Date)
		require.Len(t, doc.Items, 2)
		for _, item := range doc.Items {
			assert.Equal(t, Uncategorized, item.Category)
		}
		require.NotNil(t, doc.Total)
		assert.Equal(t, 58.3, *doc.Total)
		assert.Equal(t, text, items.Text)
		assert.Zero(t, gen.calls(categorizePrompt))
		assert.Equal(t, []string{"image:table"}, obs.outcomes)
	})

	t.Run("categorization can be switched on", func(t *testing.T) {
		gen := &scriptedGenerator{answers: map[string]string{
			tablePrompt:      table,
			categorizePrompt: `[{"item":"ARROZ","category":"Food"},{"item":"FEIJAO","category":"Food"}]`,
		}}
		o, _ := newTestOrchestrator(gen, nil, fakeDetector{text: text}, func(o *Options) { o.CategorizeTableItems = true })

		res, err := o.FromImage(context.Background(), []byte("img"), "image/jpeg")
		require.NoError(t, err)

		doc := res.(*ItemsResult).Document
		assert.Equal(t, "Food", doc.Items[0].Category)
		assert.Equal(t, 1, gen.calls(categorizePrompt))
		assert.Contains(t, gen.prompts[len(gen.prompts)-1], UnknownEstablishment)
	})

	t.Run("date defaults to today", func(t *testing.T) {
		gen := &scriptedGenerator{answers: map[string]string{tablePrompt: table}}
		o, _ := newTestOrchestrator(gen, nil, fakeDetector{text: "DANFE sem data"}, nil)

		res, err := o.FromImage(context.Background(), []byte("img"), "image/jpeg")
		require.NoError(t, err)
		assert.Equal(t, "09/03/2025", res.(*ItemsResult).Document.Date)
	})
}

func TestFromImageBillPaymentLineIsNotAnAccessKey(t *testing.T) {
	text := "BOLETO\n8364 0000 0011 2345 6789 0123 4567 8901 2345 6789 0123 4567\nTOTAL 25,90"
	gen := &scriptedGenerator{answers: map[string]string{
		tablePrompt:   "[]",
		summaryPrompt: `{"name": "Energy bill", "category": "Home"}`,
	}}
	o, obs := newTestOrchestrator(gen, nil, fakeDetector{text: text}, nil)

	res, err := o.FromImage(context.Background(), []byte("img"), "image/jpeg")
	require.NoError(t, err)

	items, ok := res.(*ItemsResult)
	require.True(t, ok, "got %T", res)
	require.Len(t, items.Document.Items, 1)
	assert.Equal(t, 25.90, items.Document.Items[0].UnitPrice)
	assert.Equal(t, []string{"image:summary"}, obs.outcomes)
}

func TestFromImageSummaryFallback(t *testing.T) {
	text := "CIELO\nVIA CLIENTE\n01/03/2025 10:22\nSUBTOTAL 40,00\nVALOR APROVADO R$ 45,90"

	t.Run("summary with last amount", func(t *testing.T) {
		gen := &scriptedGenerator{answers: map[string]string{
			tablePrompt:   "[]",
			summaryPrompt: `{"name": "Restaurant bill", "category": "Food"}`,
		}}
		o, obs := newTestOrchestrator(gen, nil, fakeDetector{text: text}, nil)

		res, err := o.FromImage(context.Background(), []byte("img"), "image/jpeg")
		require.NoError(t, err)

		doc := res.(*ItemsResult).Document
		assert.Equal(t, "01/03/2025", doc.Date)
		require.Len(t, doc.Items, 1)
		assert.Equal(t, LineItem{
			RawLineItem: RawLineItem{Name: "Restaurant bill", Quantity: 1, UnitPrice: 45.90},
			Category:    "Food",
		}, doc.Items[0])
		require.NotNil(t, doc.Total)
		assert.Equal(t, 45.90, *doc.Total)
		assert.Equal(t, []string{StageTable}, obs.fallbacks)
		assert.Equal(t, []string{"image:summary"}, obs.outcomes)
	})

	t.Run("model down everywhere", func(t *testing.T) {
		o, _ := newTestOrchestrator(&scriptedGenerator{err: errModelDown}, nil, fakeDetector{text: "valor 12,00"}, nil)

		res, err := o.FromImage(context.Background(), []byte("img"), "image/jpeg")
		require.NoError(t, err)

		doc := res.(*ItemsResult).Document
		assert.Equal(t, "09/03/2025", doc.Date)
		assert.Equal(t, "Card purchase", doc.Items[0].Name)
		assert.Equal(t, "Other", doc.Items[0].Category)
		assert.Equal(t, 12.0, doc.Items[0].UnitPrice)
	})

	t.Run("custom total detector", func(t *testing.T) {
		o, _ := newTestOrchestrator(nil, nil, fakeDetector{text: "TOTAL 99,99 TROCO 0,01"}, func(o *Options) {
			o.TotalDetector = fixedTotal(99.99)
		})

		res, err := o.FromImage(context.Background(), []byte("img"), "image/jpeg")
		require.NoError(t, err)
		assert.Equal(t, 99.99, *res.(*ItemsResult).Document.Total)
	})
}

type fixedTotal float64

func (f fixedTotal) DetectTotal(string) (float64, bool) { return float64(f), true }

func TestFromImageTerminalFailures(t *testing.T) {
	tests := []struct {
		name    string
		ocr     TextDetector
		wantErr error
	}{
		{"no ocr configured", nil, ErrOCRUnavailable},
		{"ocr reports unavailable", fakeDetector{err: ErrOCRUnavailable}, ErrOCRUnavailable},
		{"blank text", fakeDetector{text: "  \n "}, ErrOCREmpty},
		{"ocr error", fakeDetector{err: assert.AnError}, assert.AnError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &scriptedGenerator{}
			o, obs := newTestOrchestrator(gen, nil, tt.ocr, nil)

			res, err := o.FromImage(context.Background(), []byte("img"), "image/jpeg")
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, res)
			assert.Empty(t, gen.prompts)
			assert.Equal(t, []string{"image:error"}, obs.outcomes)
		})
	}
}

func TestFromAccessKey(t *testing.T) {
	o, _ := newTestOrchestrator(nil, nil, nil, nil)

	res, err := o.FromAccessKey("3524 0612 3456 7800 0190 6500 1000 0123 4510 0012 3456")
	require.NoError(t, err)
	assert.Equal(t, ResultAccessKey, res.Kind())
	assert.Equal(t, "https://lookup.example/?p=35240612345678000190650010000123451000123456", res.LookupURL)

	_, err = o.FromAccessKey("123")
	require.ErrorIs(t, err, ErrInvalidAccessKey)
}
