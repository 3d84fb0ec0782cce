// Package web serves the dashboard pages and the small write API over the
// benchmark registry.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"gcdashboard/internal/registry"
	"gcdashboard/internal/regstore"
)

// DefaultScanLimit bounds the dashboard listing, matching the registry's
// scan page size.
const DefaultScanLimit = 50

// Presigner signs internal artifact locations for browser access. Optional.
type Presigner interface {
	PresignGet(ctx context.Context, uri string) (string, error)
}

// Handler serves the dashboard, the two detail pages, and the diff-request
// write endpoint.
type Handler struct {
	Store     regstore.Store
	Presigner Presigner
	ScanLimit int
	now       func() time.Time
}

// NewHandler constructs the dashboard HTTP handler.
func NewHandler(store regstore.Store) *Handler {
	return &Handler{Store: store, ScanLimit: DefaultScanLimit, now: time.Now}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusInternalServerError, "registry store not configured")
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case r.Method == http.MethodGet && path == "":
		h.handleDashboard(w, r)
	case r.Method == http.MethodGet && path == "/"+registry.APISimulation:
		h.handleSimulation(w, r)
	case r.Method == http.MethodGet && path == "/"+registry.APIDifference:
		h.handleDifference(w, r)
	case path == "/api/v1/diff-requests":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.handleDiffRequest(w, r)
	case r.Method == http.MethodGet && path == "/healthz":
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	limit := h.ScanLimit
	if limit <= 0 {
		limit = DefaultScanLimit
	}
	items, err := h.Store.Scan(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	entries := registry.EntriesFromScan(items)
	renderPage(w, dashboardTmpl, newDashboardData(entries))
}

func (h *Handler) handleSimulation(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("primary_key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "primary_key query parameter required")
		return
	}
	items, err := h.Store.BatchGet(r.Context(), []string{key})
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	if len(items) == 0 {
		writeError(w, http.StatusNotFound, "no registry entry for "+key)
		return
	}
	entry := registry.NewSimulationEntry(items[0])
	renderPage(w, simulationTmpl, simulationData{
		Entry:         newEntryFields(entry.Entry),
		Setup:         h.newStageView(r.Context(), entry.Setup),
		RunSimulation: h.newStageView(r.Context(), entry.RunSimulation),
	})
}

func (h *Handler) handleDifference(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("primary_key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "primary_key query parameter required")
		return
	}
	items, err := h.Store.BatchGet(r.Context(), []string{key})
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	if len(items) == 0 {
		writeError(w, http.StatusNotFound, "no registry entry for "+key)
		return
	}
	entry := registry.NewDiffEntry(items[0])
	renderPage(w, differenceTmpl, differenceData{
		Entry:         newEntryFields(entry.Entry),
		RunComparison: h.newStageView(r.Context(), entry.RunComparison),
	})
}

type diffRequest struct {
	Ref  string `json:"ref"`
	Dev  string `json:"dev"`
	Site string `json:"site"`
}

func (h *Handler) handleDiffRequest(w http.ResponseWriter, r *http.Request) {
	var req diffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid diff request payload")
		return
	}
	if req.Ref == "" || req.Dev == "" || req.Site == "" {
		writeError(w, http.StatusBadRequest, "ref, dev and site are required")
		return
	}
	item, err := registry.NewDiffRequest(req.Ref, req.Dev, req.Site, h.now().UTC())
	if err != nil {
		if errors.Is(err, registry.ErrUnrecognizedCadence) || errors.Is(err, registry.ErrUnknownSite) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.Store.Put(r.Context(), item); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	key := item.String(registry.AttrInstanceID)
	writeJSON(w, http.StatusCreated, map[string]any{"instance_id": *key})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
