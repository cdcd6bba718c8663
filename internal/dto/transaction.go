package dto

// TransactionResponse is a stored purchase or a projected occurrence of a fixed
// cost or income. Projected rows carry a "recurring:" id and cannot be edited.
type TransactionResponse struct {
	ID        string  `json:"id"`
	SourceID  string  `json:"source_id,omitempty"`
	Kind      string  `json:"kind"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
	Projected bool    `json:"projected"`
}

type MonthTransactionsResponse struct {
	Month        int                   `json:"month"`
	Year         int                   `json:"year"`
	Transactions []TransactionResponse `json:"transactions"`
}
