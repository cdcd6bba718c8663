package dto

type CategoryRequest struct {
	Name string `json:"name"`
}

type CategoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type SeedCategoriesResponse struct {
	Created int64 `json:"created"`
}
