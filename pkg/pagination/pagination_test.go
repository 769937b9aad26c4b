package pagination_test

import (
	"net/url"
	"testing"

	"github.com/fieldline/triage/pkg/pagination"
)

func testConfig() pagination.Config {
	cfg := pagination.Config{DefaultSize: 20, MaxSize: 100}
	if err := cfg.Finalize(nil); err != nil {
		panic(err)
	}
	return cfg
}

func TestNormalize(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name     string
		req      pagination.PageRequest
		wantPage int
		wantSize int
	}{
		{"zero values", pagination.PageRequest{}, 1, 20},
		{"negative page", pagination.PageRequest{Page: -3, Size: 10}, 1, 10},
		{"size above max", pagination.PageRequest{Page: 2, Size: 500}, 2, 100},
		{"valid untouched", pagination.PageRequest{Page: 3, Size: 50}, 3, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize(cfg)
			if tt.req.Page != tt.wantPage || tt.req.Size != tt.wantSize {
				t.Errorf("got page=%d size=%d, want page=%d size=%d",
					tt.req.Page, tt.req.Size, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestFromQuery(t *testing.T) {
	cfg := testConfig()

	values := url.Values{}
	values.Set("page", "2")
	values.Set("page_size", "25")
	values.Set("search", "login")
	values.Set("sort", "subject,-created_at")

	req := pagination.FromQuery(values, cfg)

	if req.Page != 2 || req.Size != 25 {
		t.Errorf("page=%d size=%d, want 2/25", req.Page, req.Size)
	}
	if req.Search == nil || *req.Search != "login" {
		t.Errorf("search = %v", req.Search)
	}
	if len(req.Sort) != 2 || req.Sort[0].Field != "subject" || !req.Sort[1].Descending {
		t.Errorf("sort = %+v", req.Sort)
	}
}

func TestFromQuerySizeAlias(t *testing.T) {
	cfg := testConfig()

	values := url.Values{}
	values.Set("size", "15")

	req := pagination.FromQuery(values, cfg)
	if req.Size != 15 {
		t.Errorf("size = %d, want 15", req.Size)
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		page        int
		size        int
		wantHasNext bool
	}{
		{"more pages", 45, 1, 20, true},
		{"last page", 45, 3, 20, false},
		{"exact boundary", 40, 2, 20, false},
		{"empty", 0, 1, 20, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult([]int{}, tt.total, tt.page, tt.size)
			if result.HasNext != tt.wantHasNext {
				t.Errorf("HasNext = %v, want %v", result.HasNext, tt.wantHasNext)
			}
		})
	}
}

func TestNewPageResultNilData(t *testing.T) {
	result := pagination.NewPageResult[int](nil, 0, 1, 20)
	if result.Data == nil {
		t.Error("Data is nil, want empty slice")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := pagination.Config{DefaultSize: 50, MaxSize: 10}
	if err := cfg.Finalize(nil); err == nil {
		t.Error("Finalize() accepted default_size > max_size")
	}
}
