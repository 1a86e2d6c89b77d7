// Package pagination turns a total record count plus an untrusted 1-indexed
// page number into the bounds of a single page. Out-of-range or garbage page
// numbers clamp to the nearest valid page instead of erroring, so malformed
// query parameters never surface as a user-visible fault.
package pagination

import "strconv"

// Page describes one bounded slice of an ordered record set.
type Page struct {
	Number     int  `json:"number"`
	Size       int  `json:"size"`
	TotalPages int  `json:"total_pages"`
	TotalItems int  `json:"total_items"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Offset returns the number of records to skip for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Paginate computes the page metadata for the requested page number,
// clamping to [1, totalPages]. A zero-record set yields a single empty page
// so callers always have a valid page to render.
func Paginate(totalItems, pageSize, requested int) Page {
	if pageSize < 1 {
		pageSize = 1
	}

	totalPages := (totalItems + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Page{
		Number:     number,
		Size:       pageSize,
		TotalPages: totalPages,
		TotalItems: totalItems,
		HasNext:    number < totalPages,
		HasPrev:    number > 1,
	}
}

// ParsePageParam parses a raw "page" query value. Anything unparseable
// falls back to page 1; Paginate handles range clamping.
func ParsePageParam(raw string) int {
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return n
}
