package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
)

// PageRequest is a validated 1-based page request.
type PageRequest struct {
	Page int
	Size int
}

// NewPageRequest validates a 1-based page number and a page size.
func NewPageRequest(page, size int) (PageRequest, error) {
	if page < constants.DefaultPage {
		return PageRequest{}, apierrors.InvalidArgumentf("page must be at least %d", constants.DefaultPage)
	}
	if size < constants.MinPageSize {
		return PageRequest{}, apierrors.InvalidArgumentf("size must be at least %d", constants.MinPageSize)
	}
	// (page-1)*size must fit in an int offset.
	if page-1 > math.MaxInt/size {
		return PageRequest{}, apierrors.InvalidArgumentf("page %d is out of range for size %d", page, size)
	}
	return PageRequest{Page: page, Size: size}, nil
}

// Offset converts the 1-based page into the store's 0-based row offset.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}

// Limit returns the maximum number of rows for the page.
func (p PageRequest) Limit() int {
	return p.Size
}

// Page is the envelope returned for every list operation.
type Page[T any] struct {
	Items         []T   `json:"items"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
	IsFirst       bool  `json:"is_first"`
	IsLast        bool  `json:"is_last"`
}

// NewPage builds the page envelope for items already mapped to DTOs.
func NewPage[T any](items []T, req PageRequest, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := TotalPages(total, req.Size)
	return Page[T]{
		Items:         items,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		IsFirst:       req.Page == 1 || totalPages == 0,
		IsLast:        req.Page >= totalPages,
	}
}

// MapPage converts the items of a page while keeping its metadata.
func MapPage[S, T any](p Page[S], fn func(S) T) Page[T] {
	items := make([]T, len(p.Items))
	for i, item := range p.Items {
		items[i] = fn(item)
	}
	return Page[T]{
		Items:         items,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		IsFirst:       p.IsFirst,
		IsLast:        p.IsLast,
	}
}

// TotalPages returns ceil(total/size); zero when there are no elements.
func TotalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// GetPageRequest extracts the page and size query parameters.
// Missing values fall back to the defaults; malformed or out-of-range values are rejected.
func GetPageRequest(c *gin.Context) (PageRequest, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.DefaultPage)))
	if err != nil {
		return PageRequest{}, apierrors.InvalidArgumentf("page must be an integer")
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(constants.DefaultPageSize)))
	if err != nil {
		return PageRequest{}, apierrors.InvalidArgumentf("size must be an integer")
	}
	if size > constants.MaxPageSize {
		return PageRequest{}, apierrors.InvalidArgumentf("size must be at most %d", constants.MaxPageSize)
	}
	return NewPageRequest(page, size)
}
