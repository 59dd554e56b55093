package server

import "net/http"

// pager turns the ?page= query value into a page within [1, last].
type pager struct {
	page, last, size int
}

func newPager(r *http.Request, size, total int) pager {
	last := (total + size - 1) / size
	if last < 1 {
		last = 1
	}
	page := atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	if page > last {
		page = last
	}
	return pager{page: page, last: last, size: size}
}

func (p pager) offset() int { return (p.page - 1) * p.size }

// fill sets PrevPage and NextPage for the templates when they exist.
func (p pager) fill(data map[string]any) {
	if p.page > 1 {
		data["PrevPage"] = p.page - 1
	}
	if p.page < p.last {
		data["NextPage"] = p.page + 1
	}
}
