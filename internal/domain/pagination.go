package domain

// PaginationParams holds page-based pagination for list queries. Page is
// 1-based.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Limit returns the row limit for one page.
func (p PaginationParams) Limit() int {
	return p.PageSize
}

// Offset returns the 0-based row offset of the page.
func (p PaginationParams) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
