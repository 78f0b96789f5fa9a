package documents

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "manual.pdf", "manual.pdf"},
		{"path stripped", "../../etc/passwd", "passwd"},
		{"windows-ish segments", "reports/q1/norma.docx", "norma.docx"},
		{"empty", "", "document"},
		{"dot", ".", "document"},
		{"spaces escaped", "plano de voo.pdf", "plano%20de%20voo.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeFilename(tt.in); got != tt.want {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuildStorageKey(t *testing.T) {
	id := uuid.MustParse("6fa1e5ad-0b5a-4f44-9b0e-2f8f2f1c9a33")
	got := buildStorageKey(id, 3, "manual.pdf")
	want := "documents/6fa1e5ad-0b5a-4f44-9b0e-2f8f2f1c9a33/v3/manual.pdf"
	if got != want {
		t.Errorf("buildStorageKey() = %q, want %q", got, want)
	}
}

func TestDetectContentType(t *testing.T) {
	pdf := []byte("%PDF-1.7\n")

	tests := []struct {
		name   string
		header string
		data   []byte
		want   string
	}{
		{"explicit header wins", "application/pdf", []byte("whatever"), "application/pdf"},
		{"octet-stream sniffed", "application/octet-stream", pdf, "application/pdf"},
		{"empty header sniffed", "", pdf, "application/pdf"},
		{"whitespace header sniffed", "  ", pdf, "application/pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectContentType(tt.header, tt.data); got != tt.want {
				t.Errorf("detectContentType(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	values := url.Values{
		"title":         {"norma"},
		"document_type": {"procedure"},
		"author_name":   {"ana"},
		"status":        {"in_review"},
	}

	f := FiltersFromQuery(values)

	if f.Title == nil || *f.Title != "norma" {
		t.Errorf("Title = %v, want norma", f.Title)
	}
	if f.DocumentType == nil || *f.DocumentType != "procedure" {
		t.Errorf("DocumentType = %v, want procedure", f.DocumentType)
	}
	if f.AuthorName == nil || *f.AuthorName != "ana" {
		t.Errorf("AuthorName = %v, want ana", f.AuthorName)
	}
	if f.Status == nil || *f.Status != "in_review" {
		t.Errorf("Status = %v, want in_review", f.Status)
	}

	empty := FiltersFromQuery(url.Values{})
	if empty.Title != nil || empty.DocumentType != nil || empty.AuthorName != nil || empty.Status != nil {
		t.Errorf("empty query should yield nil filters, got %+v", empty)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"version not found", ErrVersionNotFound, http.StatusNotFound},
		{"duplicate", ErrDuplicate, http.StatusConflict},
		{"file too large", ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"wrapped file too large", fmt.Errorf("upload: %w", ErrFileTooLarge), http.StatusRequestEntityTooLarge},
		{"invalid file", ErrInvalidFile, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
