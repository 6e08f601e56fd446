package repository

import (
	"fmt"
	"math"

	"github.com/baharkarakas/blog-backend/internal/models"
)

type SortField string

const (
	SortReadCount   SortField = "read_count"
	SortReadingTime SortField = "reading_time"
	SortTimestamp   SortField = "timestamp"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage keeps (Page-1)*PageSize inside int for any accepted page size.
	MaxPage         = math.MaxInt / MaxPageSize
)

// ParseSortField accepts "" (default ordering) or one of the three sortable fields.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(s); f {
	case "", SortReadCount, SortReadingTime, SortTimestamp:
		return f, nil
	default:
		return "", fmt.Errorf("invalid sort field %q", s)
	}
}

// BlogFilter drives Blogs.List. Results are always ordered descending.
type BlogFilter struct {
	State    models.BlogState
	AuthorID string // optional restriction to one author
	Search   string // case-insensitive substring over title, tags and author names
	SortBy   SortField
	Page     int
	PageSize int
}

// Normalize fills paging defaults and clamps the page and page size.
func (f BlogFilter) Normalize() BlogFilter {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Page > MaxPage {
		f.Page = MaxPage
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	return f
}

func (f BlogFilter) Offset() int { return (f.Page - 1) * f.PageSize }
