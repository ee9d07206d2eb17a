package domain

// Pagination carries paging params and totals for list endpoints.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total,omitempty"`
}

// NewPagination normalizes raw query values into sane paging.
func NewPagination(page, pageSize int) Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return Pagination{Page: page, PageSize: pageSize}
}

// Slice returns the window bounds for a list of n items.
func (p Pagination) Slice(n int) (int, int) {
	start := (p.Page - 1) * p.PageSize
	if start > n {
		start = n
	}
	end := start + p.PageSize
	if end > n {
		end = n
	}
	return start, end
}
