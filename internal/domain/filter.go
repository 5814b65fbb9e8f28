package domain

import "github.com/google/uuid"

// ListFilter contains the filtering, sorting and pagination parameters
// shared by every catalog list operation.
type ListFilter struct {
	// IsCustom: nil means "defaults plus the caller's customs", false means
	// defaults only, true means the caller's customs only.
	IsCustom *bool

	// UserID scopes custom rows. Required whenever customs are in scope.
	UserID *uuid.UUID

	// Name and Description are substring filters (ILIKE), nil = no filter.
	Name        *string
	Description *string

	// NeedsEquipment is an exercise-only filter.
	NeedsEquipment *bool

	// MentalTypeID / NutritionTypeID are taxonomy filters.
	MentalTypeID    *uuid.UUID
	NutritionTypeID *uuid.UUID

	SortBy    string // column name, whitelisted per repository
	SortOrder string // "ASC" or "DESC"

	PageNumber int // zero-based
	PageSize   int
}

// Pagination bounds applied to every catalog listing.
// MaxPageNumber keeps PageNumber*PageSize far from integer overflow, so a
// normalized filter always yields a sane OFFSET.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	MaxPageNumber   = 10_000_000
)

// Normalized returns a copy of the filter with the page number and size
// clamped to their bounds. Repositories and services apply the same bounds
// so the page envelope reports the size actually queried.
func (f ListFilter) Normalized() ListFilter {
	if f.PageNumber < 0 {
		f.PageNumber = 0
	}
	if f.PageNumber > MaxPageNumber {
		f.PageNumber = MaxPageNumber
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	return f
}

// Page is one page of a filtered listing.
type Page[T any] struct {
	Items         []T
	PageNumber    int
	PageSize      int
	TotalElements int
}

// MapPage converts a page's items, keeping the pagination envelope.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, len(p.Items))
	for i, it := range p.Items {
		items[i] = fn(it)
	}
	return Page[U]{
		Items:         items,
		PageNumber:    p.PageNumber,
		PageSize:      p.PageSize,
		TotalElements: p.TotalElements,
	}
}
