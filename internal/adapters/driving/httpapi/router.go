package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/ytpicker/internal/core/domain"
	"github.com/custodia-labs/ytpicker/internal/core/ports/driving"
)

// NewRouter builds the chi router serving the picker API.
func NewRouter(gateway driving.VideoGateway) http.Handler {
	h := &Handler{gateway: gateway}

	r := chi.NewRouter()
	r.Use(RequestLogger)

	r.Get("/healthz", h.Health)
	r.Get(domain.OAuthCallbackPath, h.OAuthCallback)
	r.Route("/api/youtube", func(r chi.Router) {
		r.Get("/search", h.Search)
		r.Get("/videos/{id}", h.Video)
		r.Get("/videos/{id}/label", h.Label)
	})

	return r
}
