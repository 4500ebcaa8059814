package pagination

import "testing"

func TestPageRequestDefaults(t *testing.T) {
	p := PageRequest{}
	p.Defaults()
	if p.Page != 1 || p.PageSize != 20 {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	p.Page = 3
	if p.Offset() != 40 {
		t.Errorf("offset = %d, want 40", p.Offset())
	}
}

func TestNewPageResponse(t *testing.T) {
	resp := NewPageResponse[int](nil, 2, 10, 21)
	if resp.TotalPages != 3 {
		t.Errorf("total pages = %d, want 3", resp.TotalPages)
	}
	if resp.Data == nil {
		t.Error("expected empty, non-nil data")
	}
}

func TestDateRangeBounds(t *testing.T) {
	from, to := DateRange{From: "2024-01-01"}.Bounds()
	if from.String() != "2024-01-01" {
		t.Errorf("from = %s", from)
	}
	if !to.IsZero() {
		t.Errorf("expected open upper bound, got %s", to)
	}
}
