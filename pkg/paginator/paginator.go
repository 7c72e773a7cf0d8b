package paginator

// Adjust replaces out of range values with the defaults and caps Limit at MaxLimit.
func (q *PaginateQuery) Adjust() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	switch {
	case q.Limit < 1:
		q.Limit = DefaultLimit
	case q.Limit > MaxLimit:
		q.Limit = MaxLimit
	}
}

// Offset is the index of the first item on the page.
func (q PaginateQuery) Offset() int64 {
	return int64(q.Page-1) * q.Limit
}

// Slice returns the page of items selected by q, after adjusting q.
func Slice[T any](items []T, q PaginateQuery) ([]T, Paginator) {
	q.Adjust()

	total := int64(len(items))
	start := min(q.Offset(), total)
	end := min(start+q.Limit, total)

	return items[start:end], Paginator{
		Total:       total,
		Count:       end - start,
		PerPage:     q.Limit,
		CurrentPage: q.Page,
	}
}

func (p Paginator) TotalPages() int {
	if p.Total == 0 || p.PerPage == 0 {
		return 0
	}
	return int((p.Total + p.PerPage - 1) / p.PerPage)
}

func (p Paginator) HasNextPage() bool {
	return p.CurrentPage < p.TotalPages()
}

func (p Paginator) HasPreviousPage() bool {
	return p.CurrentPage > 1
}

func (p Paginator) ToResponse() PaginatorResponse {
	return PaginatorResponse{
		Total:       p.Total,
		Count:       p.Count,
		PerPage:     p.PerPage,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages(),
		HasNext:     p.HasNextPage(),
		HasPrev:     p.HasPreviousPage(),
	}
}
