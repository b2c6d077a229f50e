package shared

// Filter represents query filter options common to list endpoints.
// Listings are always newest-first; callers control only the page
// window and optional field filters.
type Filter struct {
	Page     int
	PageSize int
	Filters  map[string]interface{}
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		Filters:  make(map[string]interface{}),
	}
}

// Offset returns the row offset for the current page
func (f Filter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}
