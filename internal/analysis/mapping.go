package analysis

import (
	"encoding/json"
	"fmt"

	"github.com/lucasclyra-cmd/normative/pkg/query"
	"github.com/lucasclyra-cmd/normative/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "ai_analyses", "a").
	Project("id", "ID").
	Project("version_id", "VersionID").
	Project("approved", "Approved").
	Project("feedback_items", "FeedbackItems").
	Project("has_spelling_errors", "HasSpellingErrors").
	Project("involves_safety", "InvolvesSafety").
	Project("safety_topics", "SafetyTopics").
	Project("safety_recommendation", "SafetyRecommendation").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

func scanAnalysis(s repository.Scanner) (AIAnalysis, error) {
	var (
		a        AIAnalysis
		feedback []byte
		topics   []byte
	)

	err := s.Scan(
		&a.ID,
		&a.VersionID,
		&a.Approved,
		&feedback,
		&a.HasSpellingErrors,
		&a.InvolvesSafety,
		&topics,
		&a.SafetyRecommendation,
		&a.CreatedAt,
	)
	if err != nil {
		return a, err
	}

	if len(feedback) > 0 {
		if err := json.Unmarshal(feedback, &a.FeedbackItems); err != nil {
			return a, fmt.Errorf("decode feedback items: %w", err)
		}
	}

	if len(topics) > 0 {
		if err := json.Unmarshal(topics, &a.SafetyTopics); err != nil {
			return a, fmt.Errorf("decode safety topics: %w", err)
		}
	}

	return a, nil
}

func marshalJSONB(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
