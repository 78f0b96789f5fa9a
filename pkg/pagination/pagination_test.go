package pagination_test

import (
	"encoding/json"
	"net/url"
	"reflect"
	"testing"

	"github.com/lucasclyra-cmd/normative/pkg/pagination"
	"github.com/lucasclyra-cmd/normative/pkg/query"
)

func defaultConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := pagination.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if cfg.DefaultPageSize != 20 || cfg.MaxPageSize != 100 {
		t.Errorf("cfg = %+v, want defaults 20/100", cfg)
	}
}

func TestConfigFinalizeValidation(t *testing.T) {
	cfg := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
	if err := cfg.Finalize(nil); err == nil {
		t.Error("expected error when default exceeds max")
	}
}

func TestPageRequestNormalize(t *testing.T) {
	cfg := defaultConfig()

	tests := []struct {
		name         string
		req          pagination.PageRequest
		wantPage     int
		wantPageSize int
	}{
		{"zero values get defaults", pagination.PageRequest{}, 1, 20},
		{"negative page corrected", pagination.PageRequest{Page: -1, PageSize: 10}, 1, 10},
		{"page size clamped to max", pagination.PageRequest{Page: 2, PageSize: 500}, 2, 100},
		{"valid values preserved", pagination.PageRequest{Page: 3, PageSize: 50}, 3, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize(cfg)
			if tt.req.Page != tt.wantPage || tt.req.PageSize != tt.wantPageSize {
				t.Errorf("normalized = %d/%d, want %d/%d",
					tt.req.Page, tt.req.PageSize, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	req := pagination.PageRequest{Page: 3, PageSize: 25}
	if got := req.Offset(); got != 50 {
		t.Errorf("Offset() = %d, want 50", got)
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{
		"page":      {"2"},
		"page_size": {"30"},
		"search":    {"manual"},
		"sort":      {"-CreatedAt"},
	}

	req := pagination.PageRequestFromQuery(values, defaultConfig())

	if req.Page != 2 || req.PageSize != 30 {
		t.Errorf("page/size = %d/%d, want 2/30", req.Page, req.PageSize)
	}
	if req.Search == nil || *req.Search != "manual" {
		t.Errorf("Search = %v, want manual", req.Search)
	}
	wantSort := pagination.SortFields{{Field: "CreatedAt", Descending: true}}
	if !reflect.DeepEqual(req.Sort, wantSort) {
		t.Errorf("Sort = %v, want %v", req.Sort, wantSort)
	}
}

func TestPageRequestFromQueryEmpty(t *testing.T) {
	req := pagination.PageRequestFromQuery(url.Values{}, defaultConfig())

	if req.Page != 1 || req.PageSize != 20 {
		t.Errorf("page/size = %d/%d, want normalized 1/20", req.Page, req.PageSize)
	}
	if req.Search != nil {
		t.Errorf("Search = %v, want nil", req.Search)
	}
}

func TestSortFieldsUnmarshalJSON(t *testing.T) {
	t.Run("string form", func(t *testing.T) {
		var req pagination.PageRequest
		if err := json.Unmarshal([]byte(`{"sort": "Title,-UpdatedAt"}`), &req); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		want := pagination.SortFields{
			{Field: "Title"},
			{Field: "UpdatedAt", Descending: true},
		}
		if !reflect.DeepEqual(req.Sort, want) {
			t.Errorf("Sort = %v, want %v", req.Sort, want)
		}
	})

	t.Run("array form", func(t *testing.T) {
		var req pagination.PageRequest
		payload := `{"sort": [{"Field": "Title", "Descending": true}]}`
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		want := pagination.SortFields{{Field: "Title", Descending: true}}
		if !reflect.DeepEqual(req.Sort, want) {
			t.Errorf("Sort = %v, want %v", req.Sort, want)
		}
	})
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		pageSize       int
		wantTotalPages int
	}{
		{"exact division", 100, 20, 5},
		{"remainder rounds up", 101, 20, 6},
		{"empty result has one page", 0, 20, 1},
		{"single item", 1, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult([]string{}, tt.total, 1, tt.pageSize)
			if result.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantTotalPages)
			}
		})
	}

	t.Run("nil data becomes empty slice", func(t *testing.T) {
		result := pagination.NewPageResult[query.SortField](nil, 0, 1, 20)
		if result.Data == nil {
			t.Error("Data should never be nil")
		}
	})
}
