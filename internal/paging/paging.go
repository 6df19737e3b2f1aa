// Package paging holds the page/limit rules shared by every dashboard listing.
package paging

import (
	"math"
	"net/url"
	"strconv"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params selects one page of a listing.
type Params struct {
	Page  int
	Limit int
}

// FromQuery reads page and limit from q, applying defaults.
func FromQuery(q url.Values) Params {
	p := Params{}
	p.Page, _ = strconv.Atoi(q.Get("page"))
	p.Limit, _ = strconv.Atoi(q.Get("limit"))
	return p.Normalize()
}

// Normalize starts paging at 1 and keeps the limit within (0, MaxLimit].
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		p.Limit = DefaultLimit
	}
	return p
}

// Encode writes page and limit into q.
func (p Params) Encode(q url.Values) {
	p = p.Normalize()
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("limit", strconv.Itoa(p.Limit))
}

// TotalPages is never less than one so an empty listing still has a page.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return int(math.Max(math.Ceil(float64(total)/float64(limit)), 1))
}
