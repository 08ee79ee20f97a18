package domain

// Listing limits shared by every paginated or ranked result.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// PaginationParams selects one page of a tag listing. Page is 1-indexed.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams resolves optional page and limit values. Missing or
// non-positive values fall back to page 1 and DefaultLimit; the limit is
// capped at MaxLimit.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultLimit}
	if page != nil && *page > 0 {
		p.Page = *page
	}
	if limit != nil && *limit > 0 {
		p.Limit = min(*limit, MaxLimit)
	}
	return p
}

// Offset is the number of rows that precede the page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
