package dto

// PurchaseRequest creates a purchase by hand. Amount defaults to quantity
// times unit price; Date is YYYY-MM-DD and defaults to today.
type PurchaseRequest struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
}

type PurchaseResponse struct {
	ID         string  `json:"id"`
	DocumentID string  `json:"document_id,omitempty"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Amount     float64 `json:"amount"`
	Date       string  `json:"date"`
	CreatedAt  string  `json:"created_at"`
}
