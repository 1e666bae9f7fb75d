package domain

import "math"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest is a validated 1-based page selector.
type PageRequest struct {
	Page     int
	PageSize int
}

// NewPageRequest rejects non-positive values and pages whose offset does not
// fit in an int, and clamps oversized pages to MaxPageSize.
func NewPageRequest(page, pageSize int) (PageRequest, error) {
	if page < 1 {
		return PageRequest{}, ErrInvalidPage
	}
	if pageSize < 1 {
		return PageRequest{}, ErrInvalidPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page-1 > math.MaxInt/pageSize {
		return PageRequest{}, ErrPageOutOfRange
	}
	return PageRequest{Page: page, PageSize: pageSize}, nil
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func (p PageRequest) Limit() int {
	return p.PageSize
}

// Page bundles one slice of results with the counts needed for navigation.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

func NewPage[T any](items []T, totalCount int, req PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		TotalCount: totalCount,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: TotalPages(totalCount, req.PageSize),
	}
}

// TotalPages is ceil(total/size), zero for an empty result.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
