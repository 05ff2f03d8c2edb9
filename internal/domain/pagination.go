package domain

// PageSize is the fixed number of users per list page.
const PageSize = 5

// Pagination describes one page of an id-descending listing. Total is the
// count of all rows matching the filter, independent of the page that was
// fetched.
type Pagination struct {
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	Total      int64 `json:"total"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewPagination derives the envelope for a 1-based page over total rows.
// totalPages = ceil(total/PageSize).
func NewPagination(page int, total int64) Pagination {
	totalPages := int((total + PageSize - 1) / PageSize)
	return Pagination{
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
