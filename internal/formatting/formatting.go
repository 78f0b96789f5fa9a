// Package formatting implements the export domain for Normative: requesting
// the external formatting collaborator for an approved version, tracking the
// rendered outputs, and publishing the formatted result.
package formatting

import (
	"time"

	"github.com/google/uuid"
)

// FormatRecord tracks one successful formatting run for a version with the
// rendered output locations reported by the collaborator.
type FormatRecord struct {
	ID        uuid.UUID `json:"id"`
	VersionID uuid.UUID `json:"version_id"`
	DocxPath  string    `json:"docx_path"`
	PdfPath   string    `json:"pdf_path"`
	CreatedAt time.Time `json:"created_at"`
}
