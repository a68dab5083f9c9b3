// Package pagination implements page-number pagination for list endpoints.
// Responses carry the total count plus absolute links to the adjacent pages.
package pagination

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const (
	pageParam  = "page"
	limitParam = "limit"

	// MaxLimit caps the page size a client may request.
	MaxLimit = 100
)

// Params is a parsed page request. Page is 1-based.
type Params struct {
	Page  int32
	Limit int32
}

// Offset returns the row offset for the page.
func (p Params) Offset() int32 {
	return (p.Page - 1) * p.Limit
}

// Parse reads page and limit from the query string, falling back to
// defaultLimit and clamping out-of-range values rather than erroring.
func Parse(query url.Values, defaultLimit int32) Params {
	p := Params{Page: 1, Limit: defaultLimit}
	if raw := query.Get(pageParam); raw != "" {
		if page, err := strconv.ParseInt(raw, 10, 32); err == nil && page > 0 {
			p.Page = int32(page)
		}
	}
	if raw := query.Get(limitParam); raw != "" {
		if limit, err := strconv.ParseInt(raw, 10, 32); err == nil && limit > 0 {
			p.Limit = int32(limit)
		}
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Page is the envelope every list endpoint responds with.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPage wraps results in the response envelope, deriving the next and
// previous links from the request URL so all other query parameters
// (filters, search terms) survive into the links.
func NewPage[T any](r *http.Request, params Params, count int64, results []T) Page[T] {
	if results == nil {
		results = []T{}
	}
	page := Page[T]{
		Count:   count,
		Results: results,
	}
	lastPage := (count + int64(params.Limit) - 1) / int64(params.Limit)
	if int64(params.Page) < lastPage {
		page.Next = pageLink(r, params.Page+1)
	}
	if params.Page > 1 {
		page.Previous = pageLink(r, params.Page-1)
	}
	return page
}

func pageLink(r *http.Request, page int32) *string {
	u := *r.URL
	query := u.Query()
	query.Set(pageParam, strconv.FormatInt(int64(page), 10))
	u.RawQuery = query.Encode()

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	link := fmt.Sprintf("%s://%s%s", scheme, r.Host, u.RequestURI())
	return &link
}
