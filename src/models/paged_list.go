package models

import "math"

// PaginationMeta describes the page of a listing. It is serialized into the
// X-Pagination response header rather than the body, so the body stays a
// plain array of items.
type PaginationMeta struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	PageSize    int  `json:"page_size"`
	TotalItems  int  `json:"total_items"`
	ItemsOnPage int  `json:"items_on_page"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

type PagedList[T any] struct {
	Items []T
	Meta  PaginationMeta
}

// NewPagedList computes pagination metadata from the total matching row count,
// independent of which page was fetched.
func NewPagedList[T any](items []T, totalItems, currentPage, pageSize int) PagedList[T] {
	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))
	return PagedList[T]{
		Items: items,
		Meta: PaginationMeta{
			CurrentPage: currentPage,
			TotalPages:  totalPages,
			PageSize:    pageSize,
			TotalItems:  totalItems,
			ItemsOnPage: len(items),
			HasPrevious: currentPage > 1,
			HasNext:     currentPage < totalPages,
		},
	}
}
