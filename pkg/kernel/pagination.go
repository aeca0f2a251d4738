package kernel

import (
	"net/url"
	"strconv"
)

const DefaultPageSize = 10

// PaginationOptions selects a zero-based page
type PaginationOptions struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

// Normalize clamps negative page numbers and fills in a page size
func (p PaginationOptions) Normalize() PaginationOptions {
	if p.PageNumber < 0 {
		p.PageNumber = 0
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	return p
}

// Query renders the options as pageNumber/pageSize query parameters
func (p PaginationOptions) Query() url.Values {
	q := url.Values{}
	q.Set("pageNumber", strconv.Itoa(p.PageNumber))
	q.Set("pageSize", strconv.Itoa(p.PageSize))
	return q
}

// Offset is the index of the first item on the page
func (p PaginationOptions) Offset() int {
	return p.PageNumber * p.PageSize
}

// Page is the pagination cursor a store keeps next to its items
type Page struct {
	Number int `json:"pageNumber"`
	Size   int `json:"pageSize"`
	Total  int `json:"totalCount"`
	Pages  int `json:"totalPages"`
}

// HasPrev reports whether a previous page exists
func (p Page) HasPrev() bool { return p.Number > 0 }

// HasNext reports whether a following page exists
func (p Page) HasNext() bool { return p.Number+1 < p.Pages }

// Paginated is the list envelope returned by the API
type Paginated[T any] struct {
	Items      []T `json:"items"`
	Count      int `json:"count"`
	TotalPages int `json:"totalPages,omitempty"`
}

// Page builds the cursor for the requested options. totalPages is derived
// from count when the server omits it.
func (p Paginated[T]) Page(opts PaginationOptions) Page {
	pages := p.TotalPages
	if pages == 0 && opts.PageSize > 0 {
		pages = (p.Count + opts.PageSize - 1) / opts.PageSize
	}
	return Page{
		Number: opts.PageNumber,
		Size:   opts.PageSize,
		Total:  p.Count,
		Pages:  pages,
	}
}

// NewPaginated slices all into the requested page
func NewPaginated[T any](all []T, opts PaginationOptions) Paginated[T] {
	opts = opts.Normalize()
	start := opts.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + opts.PageSize
	if end > len(all) {
		end = len(all)
	}
	items := make([]T, end-start)
	copy(items, all[start:end])
	return Paginated[T]{
		Items:      items,
		Count:      len(all),
		TotalPages: (len(all) + opts.PageSize - 1) / opts.PageSize,
	}
}
