package domain

import (
	"math"
	"testing"
)

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, size, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 5, 5},
		{26, 5, 6},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.size); got != tc.want {
			t.Fatalf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.size, got, tc.want)
		}
	}
}

func TestNewPageRequest(t *testing.T) {
	if _, err := NewPageRequest(0, 10); err != ErrInvalidPage {
		t.Fatalf("expected ErrInvalidPage, got %v", err)
	}
	if _, err := NewPageRequest(1, 0); err != ErrInvalidPageSize {
		t.Fatalf("expected ErrInvalidPageSize, got %v", err)
	}
	if _, err := NewPageRequest(1, -5); err != ErrInvalidPageSize {
		t.Fatalf("expected ErrInvalidPageSize, got %v", err)
	}

	req, err := NewPageRequest(3, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.PageSize != MaxPageSize {
		t.Fatalf("page size should clamp to %d, got %d", MaxPageSize, req.PageSize)
	}
	if req.Offset() != 2*MaxPageSize || req.Limit() != MaxPageSize {
		t.Fatalf("offset/limit: %d/%d", req.Offset(), req.Limit())
	}
}

func TestNewPageBeyondData(t *testing.T) {
	req, _ := NewPageRequest(4, 10)
	page := NewPage[int](nil, 25, req)
	if page.Items == nil || len(page.Items) != 0 {
		t.Fatalf("expected empty items, got %#v", page.Items)
	}
	if page.TotalCount != 25 || page.TotalPages != 3 || page.Page != 4 || page.PageSize != 10 {
		t.Fatalf("unexpected metadata: %+v", page)
	}
}

func TestNewPageRequestRejectsOverflowingOffset(t *testing.T) {
	if _, err := NewPageRequest(math.MaxInt/50, 100); err != ErrPageOutOfRange {
		t.Fatalf("expected ErrPageOutOfRange, got %v", err)
	}
	if _, err := NewPageRequest(math.MaxInt, 1000); err != ErrPageOutOfRange {
		t.Fatalf("expected ErrPageOutOfRange after clamping, got %v", err)
	}

	last := math.MaxInt/MaxPageSize + 1
	req, err := NewPageRequest(last, MaxPageSize)
	if err != nil {
		t.Fatalf("largest representable page rejected: %v", err)
	}
	if req.Offset() < 0 {
		t.Fatalf("offset overflowed to %d", req.Offset())
	}
}
