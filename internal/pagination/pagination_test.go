package pagination

import (
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int32
		wantLimit int32
	}{
		{
			name:      "Defaults",
			query:     "",
			wantPage:  1,
			wantLimit: 6,
		},
		{
			name:      "Explicit",
			query:     "page=3&limit=12",
			wantPage:  3,
			wantLimit: 12,
		},
		{
			name:      "NonNumericIgnored",
			query:     "page=abc&limit=xyz",
			wantPage:  1,
			wantLimit: 6,
		},
		{
			name:      "NegativeIgnored",
			query:     "page=-1&limit=-5",
			wantPage:  1,
			wantLimit: 6,
		},
		{
			name:      "LimitClamped",
			query:     "limit=5000",
			wantPage:  1,
			wantLimit: MaxLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parsing query: %v", err)
			}
			got := Parse(query, 6)
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit {
				t.Errorf("Parse() = {Page: %d, Limit: %d}, want {Page: %d, Limit: %d}",
					got.Page, got.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := Params{Page: 3, Limit: 6}
	if got := p.Offset(); got != 12 {
		t.Errorf("Offset() = %d, want 12", got)
	}
}

func TestNewPageLinks(t *testing.T) {
	r := httptest.NewRequest("GET", "http://api.local/api/recipes/?page=2&limit=2&tags=dinner", nil)
	params := Params{Page: 2, Limit: 2}

	page := NewPage(r, params, 5, []int{3, 4})

	if page.Count != 5 {
		t.Errorf("count = %d, want 5", page.Count)
	}
	if page.Next == nil {
		t.Fatal("next = nil, want link to page 3")
	}
	next, err := url.Parse(*page.Next)
	if err != nil {
		t.Fatalf("parsing next link: %v", err)
	}
	if got := next.Query().Get("page"); got != "3" {
		t.Errorf("next page = %q, want 3", got)
	}
	if got := next.Query().Get("tags"); got != "dinner" {
		t.Errorf("next link dropped filter params, tags = %q", got)
	}
	if page.Previous == nil {
		t.Fatal("previous = nil, want link to page 1")
	}
	prev, err := url.Parse(*page.Previous)
	if err != nil {
		t.Fatalf("parsing previous link: %v", err)
	}
	if got := prev.Query().Get("page"); got != "1" {
		t.Errorf("previous page = %q, want 1", got)
	}
}

func TestNewPageBoundaries(t *testing.T) {
	params := Params{Page: 1, Limit: 6}
	r := httptest.NewRequest("GET", "http://api.local/api/recipes/", nil)

	page := NewPage(r, params, 4, []int{1, 2, 3, 4})
	if page.Next != nil {
		t.Errorf("next = %q on the only page, want nil", *page.Next)
	}
	if page.Previous != nil {
		t.Errorf("previous = %q on the first page, want nil", *page.Previous)
	}

	empty := NewPage[int](r, params, 0, nil)
	if empty.Results == nil {
		t.Error("results = nil for empty page, want empty slice")
	}
}
