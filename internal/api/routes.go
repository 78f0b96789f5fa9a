package api

import (
	"net/http"

	"github.com/lucasclyra-cmd/normative/internal/config"
	"github.com/lucasclyra-cmd/normative/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	routes.Register(
		mux,
		domain.Documents.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Workflow.Handler().Routes(),
		domain.Analysis.Handler().Routes(),
		domain.Review.Handler().Routes(),
		domain.Approvals.Handler().Routes(),
		domain.Formatting.Handler().Routes(),
		domain.Queue.Handler().Routes(),
	)
}
