package dto

type ExtractURLRequest struct {
	URL  string `json:"url"`
	Save bool   `json:"save"`
}

type AccessKeyRequest struct {
	Key string `json:"key"`
}

type LineItemResponse struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Amount    float64 `json:"amount"`
	Category  string  `json:"category"`
}

// ExtractionResponse is either an itemized receipt or, for kind "access_key",
// a pointer to the tax authority's lookup page.
type ExtractionResponse struct {
	Kind          string             `json:"kind"`
	Establishment string             `json:"establishment,omitempty"`
	Date          string             `json:"date,omitempty"`
	Items         []LineItemResponse `json:"items,omitempty"`
	Total         *float64           `json:"total,omitempty"`
	AccessKey     string             `json:"access_key,omitempty"`
	LookupURL     string             `json:"lookup_url,omitempty"`
	DocumentID    string             `json:"document_id,omitempty"`
	Saved         bool               `json:"saved"`
}

type DocumentResponse struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	Reference   string `json:"reference"`
	ContentType string `json:"content_type,omitempty"`
	FileSize    int64  `json:"file_size,omitempty"`
	ResultKind  string `json:"result_kind"`
	CreatedAt   string `json:"created_at"`
}
