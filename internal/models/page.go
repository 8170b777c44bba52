package models

// Keyed is implemented by records that carry a stable server identity.
type Keyed interface {
	Key() int64
}

// Page is one bounded slice of a server-side collection.
type Page[T any] struct {
	Items       []T
	TotalCount  int
	PageIndex   int // 1-based
	PageSize    int
	HasNext     bool
	HasPrevious bool
}

// NewPage builds a page and derives its navigation flags from the counts.
// Items beyond pageSize are dropped.
func NewPage[T any](items []T, total, index, size int) *Page[T] {
	if size > 0 && len(items) > size {
		items = items[:size]
	}
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:       items,
		TotalCount:  total,
		PageIndex:   index,
		PageSize:    size,
		HasNext:     index*size < total,
		HasPrevious: index > 1,
	}
}

// Clone returns a copy that does not share the items slice.
func (p *Page[T]) Clone() *Page[T] {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Items = append([]T(nil), p.Items...)
	return &cp
}

// MaxPage returns the last valid page index for total records, never less than 1.
func MaxPage(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}
