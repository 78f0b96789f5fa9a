package documents

import (
	"net/url"

	"github.com/lucasclyra-cmd/normative/pkg/query"
	"github.com/lucasclyra-cmd/normative/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "documents", "d").
	Project("id", "ID").
	Project("title", "Title").
	Project("document_type", "DocumentType").
	Project("author_name", "AuthorName").
	Project("current_version", "CurrentVersion").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt").
	Join("public", "document_versions", "v", "INNER JOIN",
		"d.id = v.document_id AND v.version_number = d.current_version").
	Project("id", "CurrentVersionID").
	Project("status", "Status")

var versionProjection = query.
	NewProjectionMap("public", "document_versions", "v").
	Project("id", "ID").
	Project("document_id", "DocumentID").
	Project("version_number", "VersionNumber").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("storage_key", "StorageKey").
	Project("extracted_text", "ExtractedText").
	Project("status", "Status").
	Project("ai_approved", "AIApproved").
	Project("archived_at", "ArchivedAt").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "UpdatedAt",
	Descending: true,
}

var versionSort = query.SortField{
	Field:      "VersionNumber",
	Descending: false,
}

// Filters contains optional filtering criteria for document queries.
// Nil fields are ignored. Title uses case-insensitive contains matching;
// the rest match exactly.
type Filters struct {
	Title        *string `json:"title,omitempty"`
	DocumentType *string `json:"document_type,omitempty"`
	AuthorName   *string `json:"author_name,omitempty"`
	Status       *string `json:"status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Title", f.Title).
		WhereEquals("DocumentType", f.DocumentType).
		WhereEquals("AuthorName", f.AuthorName).
		WhereEquals("Status", f.Status)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if t := values.Get("title"); t != "" {
		f.Title = &t
	}

	if dt := values.Get("document_type"); dt != "" {
		f.DocumentType = &dt
	}

	if an := values.Get("author_name"); an != "" {
		f.AuthorName = &an
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	return f
}

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.Title,
		&d.DocumentType,
		&d.AuthorName,
		&d.CurrentVersion,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.CurrentVersionID,
		&d.Status,
	)
	return d, err
}

func scanVersion(s repository.Scanner) (DocumentVersion, error) {
	var v DocumentVersion
	err := s.Scan(
		&v.ID,
		&v.DocumentID,
		&v.VersionNumber,
		&v.Filename,
		&v.ContentType,
		&v.SizeBytes,
		&v.PageCount,
		&v.StorageKey,
		&v.ExtractedText,
		&v.Status,
		&v.AIApproved,
		&v.ArchivedAt,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	return v, err
}
