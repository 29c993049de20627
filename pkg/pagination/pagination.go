package pagination

// Page size bounds for list endpoints
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Pagination describes where a page sits in the full list
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// PaginationParams is the page request taken from the query string
type PaginationParams struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// Validate clamps the page to 1 or more and the page size to 1..MaxPerPage.
// A missing page size falls back to DefaultPerPage.
func (p *PaginationParams) Validate() {
	p.Page = max(p.Page, 1)
	switch {
	case p.PerPage < 1:
		p.PerPage = DefaultPerPage
	case p.PerPage > MaxPerPage:
		p.PerPage = MaxPerPage
	}
}

// Offset calculates the offset of the first item on the page
func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// NewPagination computes page counts for total items
func NewPagination(page, perPage int, total int64) *Pagination {
	totalPages := 0
	if perPage > 0 {
		totalPages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// PaginatedResult is one page of items plus its position
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// Slice cuts the requested page out of an in-memory list. A nil params
// selects the first page; params is validated in place.
func Slice[T any](items []T, params *PaginationParams) *PaginatedResult[T] {
	if params == nil {
		params = &PaginationParams{}
	}
	params.Validate()

	total := len(items)
	start := min(params.Offset(), total)
	end := min(start+params.PerPage, total)

	page := make([]T, end-start)
	copy(page, items[start:end])

	return &PaginatedResult[T]{
		Items:      page,
		Pagination: NewPagination(params.Page, params.PerPage, int64(total)),
	}
}
