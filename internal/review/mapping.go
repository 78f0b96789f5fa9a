package review

import (
	"encoding/json"
	"fmt"

	"github.com/lucasclyra-cmd/normative/pkg/query"
	"github.com/lucasclyra-cmd/normative/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "text_reviews", "tr").
	Project("id", "ID").
	Project("version_id", "VersionID").
	Project("iteration", "Iteration").
	Project("original_text", "OriginalText").
	Project("ai_corrected_text", "AICorrectedText").
	Project("spelling_errors", "SpellingErrors").
	Project("clarity_suggestions", "ClaritySuggestions").
	Project("has_spelling_errors", "HasSpellingErrors").
	Project("status", "Status").
	Project("created_at", "CreatedAt")

var iterationSort = query.SortField{
	Field:      "Iteration",
	Descending: false,
}

var latestSort = query.SortField{
	Field:      "Iteration",
	Descending: true,
}

func scanReview(s repository.Scanner) (TextReview, error) {
	var (
		tr       TextReview
		spelling []byte
		clarity  []byte
	)

	err := s.Scan(
		&tr.ID,
		&tr.VersionID,
		&tr.Iteration,
		&tr.OriginalText,
		&tr.AICorrectedText,
		&spelling,
		&clarity,
		&tr.HasSpellingErrors,
		&tr.Status,
		&tr.CreatedAt,
	)
	if err != nil {
		return tr, err
	}

	if len(spelling) > 0 {
		if err := json.Unmarshal(spelling, &tr.SpellingErrors); err != nil {
			return tr, fmt.Errorf("decode spelling errors: %w", err)
		}
	}

	if len(clarity) > 0 {
		if err := json.Unmarshal(clarity, &tr.ClaritySuggestions); err != nil {
			return tr, fmt.Errorf("decode clarity suggestions: %w", err)
		}
	}

	return tr, nil
}
