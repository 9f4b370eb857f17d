package pagination

// DefaultPageSize is the fixed page size used by the bookings surfaces.
const DefaultPageSize = 10

// Page describes one window over an in-memory result set.
type Page struct {
	Number     int
	Size       int
	TotalItems int
	TotalPages int
}

// NormalizePage clamps the requested page number into [1, totalPages]. A zero
// total still yields page 1 so empty lists render a stable first page.
func NormalizePage(requested, totalItems, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	totalPages := (totalItems + size - 1) / size
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
		Size:       size,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Bounds returns the half-open [start, end) slice indexes for the page.
func (p Page) Bounds() (int, int) {
	start := (p.Number - 1) * p.Size
	if start > p.TotalItems {
		start = p.TotalItems
	}
	end := start + p.Size
	if end > p.TotalItems {
		end = p.TotalItems
	}
	return start, end
}

// HasNext reports whether a later page exists.
func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}
