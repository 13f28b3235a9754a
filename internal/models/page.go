package models

import (
	"errors"
	"math"
)

// Pagination defaults used when a boundary omits page parameters
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Pagination contract violations
var (
	ErrInvalidPageSize  = errors.New("page size must be greater than zero")
	ErrInvalidPageIndex = errors.New("page index is out of range")
	ErrPageSizeTooLarge = errors.New("page size exceeds the maximum allowed")
)

// PageRequest selects one zero-indexed page of a list ordered newest first
type PageRequest struct {
	Size  int
	Index int
}

// Validate rejects non-positive sizes, sizes above maxSize and indexes that
// are negative or whose offset overflows. A maxSize of zero disables the
// upper bound.
func (r PageRequest) Validate(maxSize int) error {
	if r.Size <= 0 {
		return ErrInvalidPageSize
	}
	if r.Index < 0 {
		return ErrInvalidPageIndex
	}
	if maxSize > 0 && r.Size > maxSize {
		return ErrPageSizeTooLarge
	}
	if r.Index > math.MaxInt/r.Size {
		return ErrInvalidPageIndex
	}
	return nil
}

// Offset is the number of rows skipped before this page
func (r PageRequest) Offset() int {
	return r.Index * r.Size
}

// Page is a bounded slice of an ordered result set plus total-count metadata
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	Size       int `json:"size"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// NewPage assembles a page. Items is never nil so it encodes as [].
func NewPage[T any](items []T, req PageRequest, totalItems int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Page:       req.Index,
		Size:       req.Size,
		TotalItems: totalItems,
		TotalPages: TotalPages(totalItems, req.Size),
	}
}

// TotalPages is ceil(totalItems / size), and 0 when there are no items
func TotalPages(totalItems, size int) int {
	if totalItems <= 0 || size <= 0 {
		return 0
	}
	return (totalItems + size - 1) / size
}
