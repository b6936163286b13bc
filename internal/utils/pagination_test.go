package utils

import "testing"

func TestPaginate(t *testing.T) {
	p := Paginate(25, 1, 10)
	if p.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", p.TotalPages)
	}
	if !p.HasNext || p.HasPrev {
		t.Fatalf("page 1 of 3: hasNext=%v hasPrev=%v", p.HasNext, p.HasPrev)
	}

	p = Paginate(25, 3, 10)
	if p.HasNext || !p.HasPrev {
		t.Fatalf("page 3 of 3: hasNext=%v hasPrev=%v", p.HasNext, p.HasPrev)
	}
}

func TestPaginateExactMultiple(t *testing.T) {
	p := Paginate(20, 2, 10)
	if p.TotalPages != 2 || p.HasNext || !p.HasPrev {
		t.Fatalf("unexpected pagination: %+v", p)
	}
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate(0, 1, 10)
	if p.TotalPages != 0 || p.HasNext || p.HasPrev {
		t.Fatalf("unexpected pagination for empty set: %+v", p)
	}
}
