package entities

import "math"

const (
	SortByDate  = "date"
	SortByTitle = "title"

	OrderAsc  = "asc"
	OrderDesc = "desc"

	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// NoteFilter selects one page of a user's notes.
type NoteFilter struct {
	UserId  uint
	Page    int
	PerPage int
	SortBy  string
	Order   string
	Tag     string
}

// Normalize fills defaults for zero or unknown values.
func (f NoteFilter) Normalize() NoteFilter {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.PerPage < 1 {
		f.PerPage = DefaultPerPage
	}
	if f.PerPage > MaxPerPage {
		f.PerPage = MaxPerPage
	}
	if f.SortBy != SortByTitle {
		f.SortBy = SortByDate
	}
	if f.Order != OrderAsc {
		f.Order = OrderDesc
	}
	return f
}

// Offset saturates at math.MaxInt for pages too large to address.
func (f NoteFilter) Offset() int {
	if f.Page <= 1 || f.PerPage <= 0 {
		return 0
	}
	if f.Page-1 > math.MaxInt/f.PerPage {
		return math.MaxInt
	}
	return (f.Page - 1) * f.PerPage
}

// PastEnd reports whether the page starts beyond the last of total rows.
func (f NoteFilter) PastEnd(total int64) bool {
	return f.Page > TotalPages(total, f.PerPage)
}

func (f NoteFilter) Descending() bool {
	return f.Order == OrderDesc
}

// TotalPages is ceil(total / perPage); zero when nothing matches.
func TotalPages(total int64, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	pages := total / int64(perPage)
	if total%int64(perPage) != 0 {
		pages++
	}
	return int(pages)
}
