package workflow

import (
	"github.com/lucasclyra-cmd/normative/pkg/query"
	"github.com/lucasclyra-cmd/normative/pkg/repository"
)

var activityProjection = query.
	NewProjectionMap("public", "workflow_activity", "wa").
	Project("id", "ID").
	Project("version_id", "VersionID").
	Project("event", "Event").
	Project("from_status", "FromStatus").
	Project("to_status", "ToStatus").
	Project("actor_name", "ActorName").
	Project("actor_profile", "ActorProfile").
	Project("override", "Override").
	Project("detail", "Detail").
	Project("occurred_at", "OccurredAt")

var activitySort = query.SortField{
	Field:      "OccurredAt",
	Descending: false,
}

func scanActivity(s repository.Scanner) (ActivityEntry, error) {
	var e ActivityEntry
	err := s.Scan(
		&e.ID,
		&e.VersionID,
		&e.Event,
		&e.FromStatus,
		&e.ToStatus,
		&e.ActorName,
		&e.ActorProfile,
		&e.Override,
		&e.Detail,
		&e.OccurredAt,
	)
	return e, err
}
