package domain

// Page is the core API's pagination envelope. Every list endpoint responds
// with this shape.
type Page[T any] struct {
	Results     []T `json:"results"`
	CurrentPage int `json:"currentPage"`
	PageCount   int `json:"pageCount"`
	PageSize    int `json:"pageSize"`
	TotalItems  int `json:"totalItems"`
}

// PageRequest carries the page/pageSize query params for a list call.
// A zero PageSize means the backend default.
type PageRequest struct {
	Page     int
	PageSize int
}

// Pagination is the reconciled paging state a store holds between fetches.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	PageCount   int `json:"pageCount"`
	PageSize    int `json:"pageSize"`
	TotalItems  int `json:"totalItems"`
}

// HasPrev reports whether a previous page exists. The "Previous" control is
// disabled exactly when this is false.
func (p Pagination) HasPrev() bool { return p.CurrentPage > 1 }

// HasNext reports whether a next page exists.
func (p Pagination) HasNext() bool { return p.CurrentPage < p.PageCount }

// Clamp forces CurrentPage into [1, max(PageCount, 1)]. Backends occasionally
// report a current page past the last one after deletions shrink the set.
func (p Pagination) Clamp() Pagination {
	last := p.PageCount
	if last < 1 {
		last = 1
	}
	if p.CurrentPage > last {
		p.CurrentPage = last
	}
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	return p
}
