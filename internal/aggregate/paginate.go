package aggregate

// DefaultPageSize matches the dashboard's fixed table size.
const DefaultPageSize = 10

// Page slices out the 1-based page of the given size. Out-of-range pages
// return nil.
func Page[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 {
		return nil
	}

	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}

	end := start + size
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}

// PageCount is ceil(total / size).
func PageCount(total, size int) int {
	if total <= 0 || size < 1 {
		return 0
	}

	return (total + size - 1) / size
}

// Paginator tracks the dashboard table's current page. Navigating past
// either bound is a no-op, not an error.
type Paginator struct {
	size  int
	page  int
	total int
}

func NewPaginator(size int) Paginator {
	if size < 1 {
		size = DefaultPageSize
	}

	return Paginator{size: size, page: 1}
}

// SetTotal records the collection size and clamps the current page back
// into range when the collection shrank.
func (p *Paginator) SetTotal(total int) {
	p.total = total

	if count := PageCount(total, p.size); p.page > count && count > 0 {
		p.page = count
	}
}

// Reset returns to the first page; applied whenever the filter changes.
func (p *Paginator) Reset() { p.page = 1 }

func (p *Paginator) Next() {
	if p.page < PageCount(p.total, p.size) {
		p.page++
	}
}

func (p *Paginator) Prev() {
	if p.page > 1 {
		p.page--
	}
}

func (p Paginator) Page() int      { return p.page }
func (p Paginator) PageCount() int { return PageCount(p.total, p.size) }

// Slice returns the current page of items.
func Slice[T any](p Paginator, items []T) []T {
	return Page(items, p.page, p.size)
}
