// Package documents implements the controlled document domain for Normative.
// A document owns an ordered, append-only sequence of versions; uploads and
// resubmissions create new versions, prior versions are archived and never
// overwritten.
package documents

import (
	"time"

	"github.com/google/uuid"

	"github.com/lucasclyra-cmd/normative/internal/workflow"
)

// Document represents a controlled document. CurrentVersion always equals
// the highest version number; Status mirrors the current version's status.
type Document struct {
	ID               uuid.UUID       `json:"id"`
	Title            string          `json:"title"`
	DocumentType     string          `json:"document_type"`
	AuthorName       string          `json:"author_name"`
	CurrentVersion   int             `json:"current_version"`
	CurrentVersionID uuid.UUID       `json:"current_version_id"`
	Status           workflow.Status `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// DocumentVersion is one immutable submission of file content. Superseded
// versions get ArchivedAt set; the row itself is never deleted.
type DocumentVersion struct {
	ID            uuid.UUID       `json:"id"`
	DocumentID    uuid.UUID       `json:"document_id"`
	VersionNumber int             `json:"version_number"`
	Filename      string          `json:"filename"`
	ContentType   string          `json:"content_type"`
	SizeBytes     int64           `json:"size_bytes"`
	PageCount     *int            `json:"page_count"`
	StorageKey    string          `json:"storage_key"`
	ExtractedText *string         `json:"extracted_text,omitempty"`
	Status        workflow.Status `json:"status"`
	AIApproved    *bool           `json:"ai_approved"`
	ArchivedAt    *time.Time      `json:"archived_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateCommand carries the data needed to register a new document and its
// first version. Data holds the raw file bytes. ExtractedText is optional
// and supplied by the caller when text extraction has already run.
type CreateCommand struct {
	Title         string
	DocumentType  string
	AuthorName    string
	Data          []byte
	Filename      string
	ContentType   string
	PageCount     *int
	ExtractedText *string
}

// ResubmitCommand carries the file content for a new version of an existing
// document. The current version is archived and a fresh version starts in
// draft with its own review and approval history.
type ResubmitCommand struct {
	DocumentID    uuid.UUID
	Data          []byte
	Filename      string
	ContentType   string
	PageCount     *int
	ExtractedText *string
}
