package helpers

import (
	"net/http"
	"strconv"

	"confportal/internal/domain"
)

// Pagination query parameter defaults and limits.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePagination reads the page and page_size query parameters and clamps
// them to valid ranges. Missing or malformed values fall back to the
// defaults rather than erroring; pagination is never a reason to reject a
// list request.
func ParsePagination(r *http.Request) domain.PaginationParams {
	q := r.URL.Query()
	return domain.PaginationParams{
		Page:     clampedInt(q.Get("page"), DefaultPage, 1, 0),
		PageSize: clampedInt(q.Get("page_size"), DefaultPageSize, 1, MaxPageSize),
	}
}

// clampedInt parses s as an integer no smaller than min and, when max is
// positive, no larger than max. Unparsable or out-of-range-low input yields
// fallback.
func clampedInt(s string, fallback, min, max int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < min {
		return fallback
	}
	if max > 0 && v > max {
		return max
	}
	return v
}
