package dto

// ObligationRequest creates or replaces a fixed cost or an income.
// OneOffDate (YYYY-MM-DD) is required for period "one-off" and rejected
// otherwise; AnchorMonth and AnchorYear are required for every other period.
type ObligationRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Period      string  `json:"period"`
	AnchorMonth int     `json:"anchor_month"`
	AnchorYear  int     `json:"anchor_year"`
	DueDay      int     `json:"due_day"`
	OneOffDate  string  `json:"one_off_date"`
}

type ObligationResponse struct {
	ID          string  `json:"id"`
	Kind        string  `json:"kind"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Period      string  `json:"period"`
	AnchorMonth int     `json:"anchor_month,omitempty"`
	AnchorYear  int     `json:"anchor_year,omitempty"`
	DueDay      int     `json:"due_day,omitempty"`
	OneOffDate  string  `json:"one_off_date,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
