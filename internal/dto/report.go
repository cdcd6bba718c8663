package dto

type CategoryTotalResponse struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type CategoryReportResponse struct {
	Month      int                     `json:"month"`
	Year       int                     `json:"year"`
	Total      float64                 `json:"total"`
	Categories []CategoryTotalResponse `json:"categories"`
}

// DashboardResponse summarizes the current month. Spent covers stored
// purchases only; Balance is Income minus Spent minus FixedCosts.
type DashboardResponse struct {
	Month      int                     `json:"month"`
	Year       int                     `json:"year"`
	Spent      float64                 `json:"spent"`
	FixedCosts float64                 `json:"fixed_costs"`
	Income     float64                 `json:"income"`
	Balance    float64                 `json:"balance"`
	Categories []CategoryTotalResponse `json:"categories"`
	Upcoming   []TransactionResponse   `json:"upcoming"`
}
