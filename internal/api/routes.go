package api

import (
	"net/http"

	"github.com/fieldline/triage/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Tickets.Handler(domain.Classifications).Routes(),
		domain.Classifications.Handler().Routes(),
		domain.Stats.Handler().Routes(),
	)
}
