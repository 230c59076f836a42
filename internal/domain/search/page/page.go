// Package page computes fixed-size page windows and pagination metadata.
package page

import "math"

// Size is the fixed number of items per page.
const Size = 15

// MaxPage is the largest page whose offset fits in an int.
const MaxPage = math.MaxInt / Size

// Meta describes a page window within the full set of matches.
type Meta struct {
	Total     int
	Paginated bool

	// The fields below are only meaningful when Paginated is true.
	CurrentPage      int
	TotalPages       int
	CurrentPageItems int
	Offset           int
	Limit            int
}

// Unpaginated returns metadata for a request without a page parameter.
func Unpaginated(total int) Meta {
	return Meta{Total: total}
}

// Compute returns metadata for a 1-based page over total matches.
// CurrentPageItems is 15 on every full page, the remainder on a partial last page
// and 0 for pages past the end.
func Compute(total, current int) Meta {
	offset, limit := Window(current)
	return Meta{
		Total:            total,
		Paginated:        true,
		CurrentPage:      current,
		TotalPages:       TotalPages(total),
		CurrentPageItems: min(limit, max(0, total-offset)),
		Offset:           offset,
		Limit:            limit,
	}
}

// InRange reports whether the window overlaps any match.
func (m Meta) InRange() bool {
	return !m.Paginated || m.Offset < m.Total
}

// Window returns the offset and limit for a 1-based page. Pages below 1 are treated
// as 1 and pages above MaxPage as MaxPage.
func Window(current int) (offset, limit int) {
	current = min(max(current, 1), MaxPage)
	return (current - 1) * Size, Size
}

// TotalPages returns ceil(total / Size).
func TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + Size - 1) / Size
}

// Slice returns the items of a 1-based page from an in-memory list.
func Slice[T any](items []T, current int) []T {
	offset, limit := Window(current)
	if offset >= len(items) {
		return nil
	}
	return items[offset:min(offset+limit, len(items))]
}
