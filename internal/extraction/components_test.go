package extraction

import (
	"context"
	"testing"

	"controle-financeiro/internal/normalize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClassifier(t *testing.T) {
	ctx := context.Background()

	t.Run("label is cleaned", func(t *testing.T) {
		gen := &scriptedGenerator{answers: map[string]string{classifyPrompt: "\"Fuel Station\".\nBecause it sells gas"}}
		c := NewClassifier(gen, nil, zap.NewNop())
		assert.Equal(t, "fuel station", c.Classify(ctx, "POSTO SHELL LTDA"))
	})

	t.Run("merchant not found skips the model", func(t *testing.T) {
		gen := &scriptedGenerator{answers: map[string]string{classifyPrompt: "supermarket"}}
		c := NewClassifier(gen, nil, zap.NewNop())
		assert.Equal(t, UnknownEstablishment, c.Classify(ctx, normalize.NotFound))
		assert.Zero(t, gen.calls(classifyPrompt))
	})

	t.Run("model failure", func(t *testing.T) {
		obs := &recordingObserver{}
		c := NewClassifier(&scriptedGenerator{err: errModelDown}, obs, zap.NewNop())
		assert.Equal(t, UnknownEstablishment, c.Classify(ctx, "PADARIA REAL"))
		assert.Equal(t, []string{StageClassify}, obs.fallbacks)
	})

	t.Run("no model", func(t *testing.T) {
		c := NewClassifier(nil, nil, zap.NewNop())
		assert.Equal(t, UnknownEstablishment, c.Classify(ctx, "PADARIA REAL"))
	})
}

func TestCategorizer(t *testing.T) {
	ctx := context.Background()
	items := []RawLineItem{
		{Name: "GASOLINA COMUM", Quantity: 20, UnitPrice: 5.89},
		{Name: "ÁGUA MINERAL 500ML", Quantity: 2, UnitPrice: 3.49},
		{Name: "CHICLETE", Quantity: 1, UnitPrice: 2},
	}

	t.Run("batched answer", func(t *testing.T) {
		gen := &scriptedGenerator{answers: map[string]string{categorizePrompt: "```json\n" + `[
			{"item": "GASOLINA COMUM", "category": "vehicle"},
			{"item": "agua mineral 500ml", "category": "Beverages"},
			{"item": "CHICLETE", "category": "Candy"}
		]` + "\n```"}}
		c := NewCategorizer(gen, nil, zap.NewNop())

		got := c.Categorize(ctx, items, "fuel station")

		require.Len(t, got, 3)
		assert.Equal(t, "Vehicle", got[0].Category)
		assert.Equal(t, "Beverages", got[1].Category)
		assert.Equal(t, Uncategorized, got[2].Category)
		assert.Equal(t, items[1], got[1].RawLineItem)
		assert.Equal(t, 1, gen.calls(categorizePrompt))
		assert.Contains(t, gen.prompts[0], "fuel station")
	})

	tests := []struct {
		name string
		gen  Generator
	}{
		{"model error", &scriptedGenerator{err: errModelDown}},
		{"not json", &scriptedGenerator{answers: map[string]string{categorizePrompt: "Sorry, I can't."}}},
		{"wrong shape", &scriptedGenerator{answers: map[string]string{categorizePrompt: `[1, 2, 3]`}}},
		{"no model", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewCategorizer(tt.gen, nil, zap.NewNop()).Categorize(ctx, items, "fuel station")
			require.Len(t, got, len(items))
			for _, item := range got {
				assert.Equal(t, Uncategorized, item.Category)
			}
		})
	}

	t.Run("no items means no call", func(t *testing.T) {
		gen := &scriptedGenerator{}
		got := NewCategorizer(gen, nil, zap.NewNop()).Categorize(ctx, nil, "x")
		assert.Empty(t, got)
		assert.Empty(t, gen.prompts)
	})
}

func TestSummarizer(t *testing.T) {
	ctx := context.Background()

	gen := &scriptedGenerator{answers: map[string]string{summaryPrompt: `Here you go: {"name": "Pharmacy purchase", "category": "pharmacy"}`}}
	got := NewSummarizer(gen, nil, zap.NewNop()).Summarize(ctx, "DROGARIA SAO PAULO TOTAL 45,90")
	assert.Equal(t, Summary{Name: "Pharmacy purchase", Category: "Pharmacy"}, got)

	for name, g := range map[string]Generator{
		"error":      &scriptedGenerator{err: errModelDown},
		"garbage":    &scriptedGenerator{answers: map[string]string{summaryPrompt: "no idea"}},
		"empty name": &scriptedGenerator{answers: map[string]string{summaryPrompt: `{"name": "", "category": "Food"}`}},
		"nil":        nil,
	} {
		t.Run(name, func(t *testing.T) {
			got := NewSummarizer(g, nil, zap.NewNop()).Summarize(ctx, "text")
			assert.Equal(t, Summary{Name: "Card purchase", Category: "Other"}, got)
		})
	}
}

func TestParseTable(t *testing.T) {
	tests := []struct {
		name    string
		resp    string
		want    []TableRow
		wantErr bool
	}{
		{
			name: "numbers and strings",
			resp: `[{"name": "ARROZ 5KG", "quantity": 2, "unitPrice": "24,90", "lineTotal": "49,80"},
				{"name": "FEIJAO", "quantity": "1", "unitPrice": 8.5}]`,
			want: []TableRow{
				{Name: "ARROZ 5KG", Quantity: 2, UnitPrice: 24.90, LineTotal: 49.80},
				{Name: "FEIJAO", Quantity: 1, UnitPrice: 8.5, LineTotal: 8.5},
			},
		},
		{name: "empty response", resp: "  ", wantErr: true},
		{name: "empty array", resp: "[]", wantErr: true},
		{name: "object wrapper", resp: `{"items": [{"name": "X"}]}`, wantErr: true},
		{name: "first row without name", resp: `[{"product": "X", "quantity": 1}]`, wantErr: true},
		{name: "prose", resp: "There is no table in this text.", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTable(tt.resp)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindAccessKey(t *testing.T) {
	key := "35240612345678000190650010000123451000123456"
	require.Len(t, key, 44)

	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"standalone", "CHAVE DE ACESSO\n" + key + "\nCONSULTE", key, true},
		{"grouped", "Chave: 3524 0612 3456 7800 0190 6500 1000 0123 4510 0012 3456 fim", key, true},
		{"too long", key + "7", "", false},
		{"bill payment line", "8364 0000 0011 2345 6789 0123 4567 8901 2345 6789 0123 4567", "", false},
		{"grouped with trailing group", "3524 0612 3456 7800 0190 6500 1000 0123 4510 0012 3456 7", "", false},
		{"ten groups", "3524 0612 3456 7800 0190 6500 1000 0123 4510 0012", "", false},
		{"too short", key[:43], "", false},
		{"none", "TOTAL R$ 12,50", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindAccessKey(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeAccessKey(t *testing.T) {
	key, err := NormalizeAccessKey(" 3524 0612 3456 7800 0190 6500 1000 0123 4510 0012 3456 ")
	require.NoError(t, err)
	assert.Equal(t, "35240612345678000190650010000123451000123456", key)

	_, err = NormalizeAccessKey("1234")
	require.ErrorIs(t, err, ErrInvalidAccessKey)

	_, err = NormalizeAccessKey("3524061234567800019065001000012345100012345X")
	require.ErrorIs(t, err, ErrInvalidAccessKey)
}

func TestLookupURL(t *testing.T) {
	assert.Equal(t, "https://portal/?chave=123", LookupURL("https://portal/?chave={key}", "123"))
	assert.Equal(t, "https://portal/123", LookupURL("https://portal/", "123"))
}

func TestCanonicalCategory(t *testing.T) {
	assert.Equal(t, "Personal Care", CanonicalCategory("  personal   care "))
	assert.Equal(t, "Electronics", CanonicalCategory("ELECTRÔNICS"))
	assert.Equal(t, Uncategorized, CanonicalCategory("Groceries"))
	assert.Len(t, Vocabulary, 21)
}
