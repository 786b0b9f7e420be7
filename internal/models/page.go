package models

import "strings"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest selects a zero-based page of a sorted result set.
type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// Normalized clamps the request to sane bounds and lowercases the direction.
func (r PageRequest) Normalized() PageRequest {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.Size <= 0 {
		r.Size = DefaultPageSize
	}
	if r.Size > MaxPageSize {
		r.Size = MaxPageSize
	}
	if strings.EqualFold(r.SortDir, "desc") {
		r.SortDir = "desc"
	} else {
		r.SortDir = "asc"
	}
	return r
}

func (r PageRequest) Offset() int {
	return r.Page * r.Size
}

// Page is one slice of a larger result set.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewPage builds a Page and derives TotalPages.
func NewPage[T any](items []T, req PageRequest, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Items:      items,
		Page:       req.Page,
		Size:       req.Size,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
