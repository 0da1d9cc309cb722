// Package listing parses pagination and ordering parameters for list queries.
package listing

import (
	"strconv"
	"strings"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100

	DefaultOrderBy = "id"
	OrderAsc       = "asc"
	OrderDesc      = "desc"
)

// Params describes one page of an ordered listing.
type Params struct {
	Page    int
	PerPage int
	OrderBy string
	Order   string
}

// Default returns the first page ordered by id descending.
func Default() Params {
	return Params{Page: DefaultPage, PerPage: DefaultPerPage, OrderBy: DefaultOrderBy, Order: OrderDesc}
}

// Parse reads raw query values. orderBy may carry the order too, as in
// "title,asc"; an explicit order argument wins over the embedded one.
func Parse(page, perPage, orderBy, order string) Params {
	p := Params{
		Page:    parsePositive(page, DefaultPage),
		PerPage: parsePositive(perPage, DefaultPerPage),
	}

	field, embedded, _ := strings.Cut(strings.TrimSpace(orderBy), ",")
	p.OrderBy = strings.ToLower(strings.TrimSpace(field))
	if strings.TrimSpace(order) == "" {
		order = embedded
	}
	p.Order = strings.ToLower(strings.TrimSpace(order))
	return p.Normalize()
}

// Normalize fills defaults and clamps the page size.
func (p Params) Normalize() Params {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	p.OrderBy = strings.ToLower(strings.TrimSpace(p.OrderBy))
	if p.OrderBy == "" {
		p.OrderBy = DefaultOrderBy
	}
	p.Order = strings.ToLower(strings.TrimSpace(p.Order))
	if p.Order != OrderAsc {
		p.Order = OrderDesc
	}
	return p
}

// Limit returns the page size.
func (p Params) Limit() int {
	return p.Normalize().PerPage
}

// Offset returns the number of rows to skip.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PerPage
}

// Descending reports whether the listing is ordered high to low.
func (p Params) Descending() bool {
	return p.Normalize().Order == OrderDesc
}

// Column resolves OrderBy against allowed, returning the mapped column or
// the mapping for DefaultOrderBy when the field is unknown.
func (p Params) Column(allowed map[string]string) string {
	if col, ok := allowed[p.Normalize().OrderBy]; ok {
		return col
	}
	return allowed[DefaultOrderBy]
}

func parsePositive(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
