package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/ytpicker/internal/adapters/driving/oauth"
	"github.com/custodia-labs/ytpicker/internal/core/domain"
	"github.com/custodia-labs/ytpicker/internal/core/ports/driving"
	"github.com/custodia-labs/ytpicker/internal/logger"
)

// MaxSearchResults is the largest page the search endpoint will request.
const MaxSearchResults = 50

// Handler serves the picker endpoints.
type Handler struct {
	gateway driving.VideoGateway
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	status := "disabled"
	if h.gateway.Ready() {
		status = "ready"
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"youtube": status,
	})
}

// OAuthCallback handles GET /youtube/oauth/callback. It displays the code
// so the operator can paste it into the refresh-token wizard.
func (h *Handler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	q := r.URL.Query()

	if errParam := q.Get("error"); errParam != "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = oauth.ErrorPage(w, "Authorization failed: "+errParam)
		return
	}

	code := q.Get("code")
	if code == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = oauth.ErrorPage(w, "No authorization code received.")
		return
	}

	_ = oauth.CodePage(w, code)
}

// Search handles GET /api/youtube/search.
// Terms shorter than domain.MinQueryLength yield {} without a remote call.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if utf8.RuneCountInString(term) < domain.MinQueryLength {
		respondJSON(w, http.StatusOK, domain.SearchResult{})
		return
	}

	maxResults := 0
	if raw := r.URL.Query().Get("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondJSON(w, http.StatusBadRequest, domain.SearchFailed("max must be a non-negative integer"))
			return
		}
		maxResults = min(n, MaxSearchResults)
	}

	respondJSON(w, http.StatusOK, h.gateway.SearchVideos(r.Context(), term, maxResults))
}

// Video handles GET /api/youtube/videos/{id}.
func (h *Handler) Video(w http.ResponseWriter, r *http.Request) {
	detail := h.gateway.GetVideoDetails(r.Context(), chi.URLParam(r, "id"))
	if detail == nil {
		respondJSON(w, http.StatusNotFound, nil)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// Label handles GET /api/youtube/videos/{id}/label.
func (h *Handler) Label(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"label": h.gateway.GetVideoLabel(r.Context(), chi.URLParam(r, "id")),
	})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Warn("encoding response: %v", err)
	}
}
