package domain

import "testing"

func TestNewPagination(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		page       int
		total      int64
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{name: "empty", page: 1, total: 0, totalPages: 0, hasNext: false, hasPrev: false},
		{name: "single partial page", page: 1, total: 3, totalPages: 1, hasNext: false, hasPrev: false},
		{name: "exact page boundary", page: 1, total: 5, totalPages: 1, hasNext: false, hasPrev: false},
		{name: "first of two", page: 1, total: 6, totalPages: 2, hasNext: true, hasPrev: false},
		{name: "last of two", page: 2, total: 6, totalPages: 2, hasNext: false, hasPrev: true},
		{name: "middle page", page: 2, total: 11, totalPages: 3, hasNext: true, hasPrev: true},
		{name: "past the end", page: 9, total: 11, totalPages: 3, hasNext: false, hasPrev: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := NewPagination(tc.page, tc.total)
			if p.Page != tc.page || p.Total != tc.total {
				t.Fatalf("echoed fields wrong: %+v", p)
			}
			if p.TotalPages != tc.totalPages {
				t.Fatalf("totalPages: got %d want %d", p.TotalPages, tc.totalPages)
			}
			if p.HasNext != tc.hasNext || p.HasPrev != tc.hasPrev {
				t.Fatalf("hasNext/hasPrev: got %v/%v want %v/%v", p.HasNext, p.HasPrev, tc.hasNext, tc.hasPrev)
			}
		})
	}
}
