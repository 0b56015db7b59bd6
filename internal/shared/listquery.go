// Package shared holds request primitives used by every entity family.
package shared

import (
	"net/http"
	"strconv"
)

// ListQuery carries the common list-endpoint parameters.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

// ParseListQuery extracts page/limit/search from the request query string.
func ParseListQuery(r *http.Request) ListQuery {
	q := ListQuery{Page: 1, Limit: 20}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		q.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 1000 {
		q.Limit = v
	}
	q.Search = r.URL.Query().Get("search")
	return q
}

// Offset returns the row offset for the requested page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}
