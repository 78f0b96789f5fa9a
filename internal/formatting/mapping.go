package formatting

import (
	"github.com/lucasclyra-cmd/normative/pkg/query"
	"github.com/lucasclyra-cmd/normative/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "format_records", "fr").
	Project("id", "ID").
	Project("version_id", "VersionID").
	Project("docx_path", "DocxPath").
	Project("pdf_path", "PdfPath").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

func scanRecord(s repository.Scanner) (FormatRecord, error) {
	var f FormatRecord
	err := s.Scan(
		&f.ID,
		&f.VersionID,
		&f.DocxPath,
		&f.PdfPath,
		&f.CreatedAt,
	)
	return f, err
}
