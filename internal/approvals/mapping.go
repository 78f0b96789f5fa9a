package approvals

import (
	"github.com/lucasclyra-cmd/normative/pkg/query"
	"github.com/lucasclyra-cmd/normative/pkg/repository"
)

var chainProjection = query.
	NewProjectionMap("public", "approval_chains", "ac").
	Project("id", "ID").
	Project("version_id", "VersionID").
	Project("chain_type", "ChainType").
	Project("requires_training", "RequiresTraining").
	Project("created_at", "CreatedAt").
	Project("completed_at", "CompletedAt")

var chainSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

var entryProjection = query.
	NewProjectionMap("public", "approver_entries", "ae").
	Project("id", "ID").
	Project("chain_id", "ChainID").
	Project("approver_name", "ApproverName").
	Project("approver_role", "ApproverRole").
	Project("approver_profile", "ApproverProfile").
	Project("is_required", "IsRequired").
	Project("ai_recommended", "AIRecommended").
	Project("entry_order", "Order").
	Project("action", "Action").
	Project("comments", "Comments").
	Project("acted_at", "ActedAt")

var entrySort = query.SortField{
	Field:      "Order",
	Descending: false,
}

var defaultsProjection = query.
	NewProjectionMap("public", "default_approvers", "da").
	Project("id", "ID").
	Project("name", "Name").
	Project("role", "Role").
	Project("profile", "Profile").
	Project("document_type", "DocumentType").
	Project("is_required", "IsRequired").
	Project("entry_order", "Order").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultsSort = query.SortField{
	Field:      "Order",
	Descending: false,
}

func scanChain(s repository.Scanner) (ApprovalChain, error) {
	var c ApprovalChain
	err := s.Scan(
		&c.ID,
		&c.VersionID,
		&c.ChainType,
		&c.RequiresTraining,
		&c.CreatedAt,
		&c.CompletedAt,
	)
	return c, err
}

func scanEntry(s repository.Scanner) (ApproverEntry, error) {
	var e ApproverEntry
	err := s.Scan(
		&e.ID,
		&e.ChainID,
		&e.ApproverName,
		&e.ApproverRole,
		&e.ApproverProfile,
		&e.IsRequired,
		&e.AIRecommended,
		&e.Order,
		&e.Action,
		&e.Comments,
		&e.ActedAt,
	)
	return e, err
}

func scanDefault(s repository.Scanner) (DefaultApprover, error) {
	var d DefaultApprover
	err := s.Scan(
		&d.ID,
		&d.Name,
		&d.Role,
		&d.Profile,
		&d.DocumentType,
		&d.IsRequired,
		&d.Order,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}
