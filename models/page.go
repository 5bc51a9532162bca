package models

// Default pagination window, applied when _start or _end are omitted.
const (
	DefaultPageStart = 0
	DefaultPageEnd   = 10

	// MaxPageSize bounds End - Start of a single list request.
	MaxPageSize = 1000
)

// Page is a half-open [Start, End) window over an ordered result set,
// expressed the way list endpoints receive it (_start, _end).
type Page struct {
	Start uint64
	End   uint64
}

// Offset is the number of rows to skip.
func (p Page) Offset() uint64 {
	return p.Start
}

// Size is the requested window width, End - Start.
func (p Page) Size() uint64 {
	if p.End < p.Start {
		return 0
	}
	return p.End - p.Start
}

// Limit is the maximum number of rows to return, never above MaxPageSize.
func (p Page) Limit() uint64 {
	return min(p.Size(), MaxPageSize)
}

// PageResult is one page of items together with the total row count of the
// underlying query.
type PageResult[T any] struct {
	Items []T
	Total int64
}
