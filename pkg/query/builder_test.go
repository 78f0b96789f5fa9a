package query_test

import (
	"reflect"
	"testing"

	"github.com/lucasclyra-cmd/normative/pkg/query"
)

func versionProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "document_versions", "v").
		Project("id", "ID").
		Project("status", "Status").
		Project("created_at", "CreatedAt")
}

func ptr(s string) *string { return &s }

func TestProjectionMapFrom(t *testing.T) {
	p := versionProjection()
	want := "public.document_versions v"
	if got := p.From(); got != want {
		t.Errorf("From() = %q, want %q", got, want)
	}
}

func TestProjectionMapJoin(t *testing.T) {
	p := query.NewProjectionMap("public", "documents", "d").
		Project("id", "ID").
		Join("public", "document_versions", "v", "INNER JOIN",
			"d.id = v.document_id").
		Project("status", "Status")

	wantFrom := "public.documents d INNER JOIN public.document_versions v ON d.id = v.document_id"
	if got := p.From(); got != wantFrom {
		t.Errorf("From() = %q, want %q", got, wantFrom)
	}
	if got := p.Column("Status"); got != "v.status" {
		t.Errorf("Column(Status) = %q, want v.status (joined alias)", got)
	}
	if got := p.Column("ID"); got != "d.id" {
		t.Errorf("Column(ID) = %q, want d.id (base alias)", got)
	}
}

func TestBuildNoConditions(t *testing.T) {
	sql, args := query.NewBuilder(versionProjection()).Build()

	want := "SELECT v.id, v.status, v.created_at FROM public.document_versions v"
	if sql != want {
		t.Errorf("Build() = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuildWithConditionsAndSort(t *testing.T) {
	sql, args := query.
		NewBuilder(versionProjection(), query.SortField{Field: "CreatedAt", Descending: true}).
		WhereEquals("Status", "in_review").
		WhereContains("ID", ptr("abc")).
		Build()

	want := "SELECT v.id, v.status, v.created_at FROM public.document_versions v" +
		" WHERE v.status = $1 AND v.id ILIKE $2 ORDER BY v.created_at DESC"
	if sql != want {
		t.Errorf("Build() = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"in_review", "%abc%"}) {
		t.Errorf("args = %v, want [in_review %%abc%%]", args)
	}
}

func TestBuildNilFiltersSkipped(t *testing.T) {
	sql, args := query.
		NewBuilder(versionProjection()).
		WhereEquals("Status", nil).
		WhereEquals("ID", (*string)(nil)).
		WhereContains("Status", nil).
		WhereIn("Status", nil).
		Build()

	want := "SELECT v.id, v.status, v.created_at FROM public.document_versions v"
	if sql != want {
		t.Errorf("Build() = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuildWhereIn(t *testing.T) {
	sql, args := query.
		NewBuilder(versionProjection()).
		WhereIn("Status", []any{"analyzing", "formatting"}).
		Build()

	want := "SELECT v.id, v.status, v.created_at FROM public.document_versions v" +
		" WHERE v.status IN ($1, $2)"
	if sql != want {
		t.Errorf("Build() = %q, want %q", sql, want)
	}
	if len(args) != 2 {
		t.Errorf("args = %v, want 2 values", args)
	}
}

func TestBuildWhereNull(t *testing.T) {
	sql, _ := query.
		NewBuilder(versionProjection()).
		WhereNull("Status").
		WhereEquals("ID", "x").
		Build()

	want := "SELECT v.id, v.status, v.created_at FROM public.document_versions v" +
		" WHERE v.status IS NULL AND v.id = $1"
	if sql != want {
		t.Errorf("Build() = %q, want %q", sql, want)
	}
}

func TestBuildCount(t *testing.T) {
	sql, args := query.
		NewBuilder(versionProjection()).
		WhereEquals("Status", "draft").
		BuildCount()

	want := "SELECT COUNT(*) FROM public.document_versions v WHERE v.status = $1"
	if sql != want {
		t.Errorf("BuildCount() = %q, want %q", sql, want)
	}
	if len(args) != 1 {
		t.Errorf("args = %v, want 1 value", args)
	}
}

func TestBuildPage(t *testing.T) {
	sql, _ := query.
		NewBuilder(versionProjection(), query.SortField{Field: "CreatedAt"}).
		BuildPage(3, 25)

	want := "SELECT v.id, v.status, v.created_at FROM public.document_versions v" +
		" ORDER BY v.created_at ASC LIMIT 25 OFFSET 50"
	if sql != want {
		t.Errorf("BuildPage() = %q, want %q", sql, want)
	}
}

func TestBuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(versionProjection()).BuildSingle("ID", "some-id")

	want := "SELECT v.id, v.status, v.created_at FROM public.document_versions v WHERE v.id = $1"
	if sql != want {
		t.Errorf("BuildSingle() = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"some-id"}) {
		t.Errorf("args = %v, want [some-id]", args)
	}
}

func TestBuildSingleOrNull(t *testing.T) {
	sql, _ := query.
		NewBuilder(versionProjection(), query.SortField{Field: "CreatedAt", Descending: true}).
		WhereNull("Status").
		BuildSingleOrNull()

	want := "SELECT v.id, v.status, v.created_at FROM public.document_versions v" +
		" WHERE v.status IS NULL ORDER BY v.created_at DESC LIMIT 1"
	if sql != want {
		t.Errorf("BuildSingleOrNull() = %q, want %q", sql, want)
	}
}

func TestOrderByFieldsOverridesDefault(t *testing.T) {
	sql, _ := query.
		NewBuilder(versionProjection(), query.SortField{Field: "CreatedAt", Descending: true}).
		OrderByFields([]query.SortField{{Field: "Status"}}).
		Build()

	want := "SELECT v.id, v.status, v.created_at FROM public.document_versions v ORDER BY v.status ASC"
	if sql != want {
		t.Errorf("Build() = %q, want %q", sql, want)
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []query.SortField
	}{
		{"empty", "", nil},
		{"single ascending", "Status", []query.SortField{{Field: "Status"}}},
		{"descending prefix", "-CreatedAt", []query.SortField{{Field: "CreatedAt", Descending: true}}},
		{
			"mixed with spaces",
			"Status, -CreatedAt",
			[]query.SortField{{Field: "Status"}, {Field: "CreatedAt", Descending: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSortFields(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWhereSearch(t *testing.T) {
	sql, args := query.
		NewBuilder(versionProjection()).
		WhereSearch(ptr("manual"), "ID", "Status").
		Build()

	want := "SELECT v.id, v.status, v.created_at FROM public.document_versions v" +
		" WHERE (v.id ILIKE $1 OR v.status ILIKE $2)"
	if sql != want {
		t.Errorf("Build() = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"%manual%", "%manual%"}) {
		t.Errorf("args = %v, want doubled pattern", args)
	}
}
