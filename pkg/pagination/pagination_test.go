package pagination

import "testing"

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	cases := []struct {
		name     string
		params   *PaginationParams
		want     []int
		hasNext  bool
		hasPrev  bool
		numPages int
	}{
		{"first page", &PaginationParams{Page: 1, PerPage: 3}, []int{1, 2, 3}, true, false, 3},
		{"last partial page", &PaginationParams{Page: 3, PerPage: 3}, []int{7}, false, true, 3},
		{"past the end", &PaginationParams{Page: 9, PerPage: 3}, []int{}, false, true, 3},
		{"defaults", nil, []int{1, 2, 3, 4, 5, 6, 7}, false, false, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Slice(items, tc.params)
			if len(res.Items) != len(tc.want) {
				t.Fatalf("expected %d items, got %d (%v)", len(tc.want), len(res.Items), res.Items)
			}
			for i := range tc.want {
				if res.Items[i] != tc.want[i] {
					t.Fatalf("item %d: expected %d, got %d", i, tc.want[i], res.Items[i])
				}
			}
			if res.Pagination.HasNext != tc.hasNext || res.Pagination.HasPrev != tc.hasPrev {
				t.Errorf("unexpected has_next/has_prev: %+v", res.Pagination)
			}
			if res.Pagination.TotalPages != tc.numPages {
				t.Errorf("expected %d pages, got %d", tc.numPages, res.Pagination.TotalPages)
			}
			if res.Pagination.Total != int64(len(items)) {
				t.Errorf("expected total %d, got %d", len(items), res.Pagination.Total)
			}
		})
	}
}

func TestValidateClampsPerPage(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 500}
	p.Validate()
	if p.Page != 1 || p.PerPage != 100 {
		t.Fatalf("expected page 1 per_page 100, got %+v", p)
	}
}
