package paginator

// PaginateQuery is the page a list endpoint was asked for. Page is 1-indexed.
type PaginateQuery struct {
	Page  int   `json:"page" form:"page"`
	Limit int64 `json:"limit" form:"limit"`
}

// Paginator describes one page of a list.
type Paginator struct {
	Total       int64
	Count       int64
	PerPage     int64
	CurrentPage int
}

// PaginatorResponse is the JSON form of Paginator.
type PaginatorResponse struct {
	Total       int64 `json:"total"`
	Count       int64 `json:"count"`
	PerPage     int64 `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}
