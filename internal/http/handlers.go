package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"carteira/internal/core"
	"carteira/internal/services"
)

type sellerRequest struct {
	SellerID string `json:"sellerId"`
}

func decodeSellerRequest(r *http.Request) (string, bool) {
	var req sellerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", false
	}
	id := sanitizeInput(req.SellerID)
	return id, id != ""
}

// handleSession records the active seller so stale background refreshes for a
// previous session get discarded.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := decodeSellerRequest(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "sellerId is required")
		return
	}

	s.dashboard.SetActiveSeller(sellerID)
	writeJSON(w, http.StatusOK, map[string]string{"sellerId": sellerID})
}

type metricsResponse struct {
	FromCache bool              `json:"fromCache"`
	Snapshot  services.Snapshot `json:"snapshot"`
}

func (s *Server) handleDashboardMetrics(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := decodeSellerRequest(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "sellerId is required")
		return
	}

	snap, fromCache, err := s.dashboard.Metrics(r.Context(), sellerID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard metrics failed",
			"seller_id", sellerID,
			"error", err)
		writeError(w, http.StatusBadGateway, "failed to build dashboard snapshot")
		return
	}

	writeJSON(w, http.StatusOK, metricsResponse{FromCache: fromCache, Snapshot: snap})
}

func (s *Server) handleDashboardRefresh(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := decodeSellerRequest(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "sellerId is required")
		return
	}

	snap, err := s.dashboard.Refresh(r.Context(), sellerID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard refresh failed",
			"seller_id", sellerID,
			"error", err)
		writeError(w, http.StatusBadGateway, "failed to refresh dashboard snapshot")
		return
	}

	writeJSON(w, http.StatusOK, metricsResponse{FromCache: false, Snapshot: snap})
}

type clientsResponse struct {
	Clients []core.ClassifiedClient `json:"clients"`
	Total   int                     `json:"total"`
}

func (s *Server) handleClients(w http.ResponseWriter, r *http.Request) {
	sellerID := sanitizeInput(r.URL.Query().Get("sellerId"))
	if sellerID == "" {
		writeError(w, http.StatusBadRequest, "sellerId is required")
		return
	}

	status, ok := core.ParseStatusFilter(r.URL.Query().Get("status"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown status filter")
		return
	}
	search := sanitizeInput(r.URL.Query().Get("q"))

	clients, err := s.dashboard.Clients(r.Context(), sellerID, status, search)
	if err != nil {
		slog.ErrorContext(r.Context(), "Client listing failed",
			"seller_id", sellerID,
			"error", err)
		writeError(w, http.StatusBadGateway, "failed to load clients")
		return
	}

	writeJSON(w, http.StatusOK, clientsResponse{Clients: clients, Total: len(clients)})
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	kind, ok := core.ParseReportKind(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown report kind")
		return
	}

	sellerID, okSeller := decodeSellerRequest(r)
	if !okSeller {
		writeError(w, http.StatusBadRequest, "sellerId is required")
		return
	}

	rep, err := s.reports.Generate(r.Context(), sellerID, kind)
	if err != nil {
		slog.ErrorContext(r.Context(), "Report generation failed",
			"seller_id", sellerID,
			"kind", kind,
			"error", err)
		writeError(w, http.StatusBadGateway, "failed to generate report")
		return
	}

	writeJSON(w, http.StatusCreated, rep)
}
