package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"partyline/internal/model"
	"partyline/internal/service"
	"partyline/internal/transport/rest/middleware"
)

// PartyHandler handles party endpoints
type PartyHandler struct {
	partySvc *service.PartyService
}

// NewPartyHandler creates a new party handler
func NewPartyHandler(partySvc *service.PartyService) *PartyHandler {
	return &PartyHandler{partySvc: partySvc}
}

// CreatePartyRequest is the request body for creating a party
type CreatePartyRequest struct {
	Name     string    `json:"name"`
	StartsAt time.Time `json:"startsAt"`
}

// Create handles POST /v1/parties
func (h *PartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreatePartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	party := &model.Party{
		HostID:   hostID,
		Name:     req.Name,
		StartsAt: req.StartsAt,
	}

	id, err := h.partySvc.Create(r.Context(), party)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"partyId": id})
}

// List handles GET /v1/parties
func (h *PartyHandler) List(w http.ResponseWriter, r *http.Request) {
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	parties, err := h.partySvc.GetByHostID(r.Context(), hostID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"parties": parties})
}

// Get handles GET /v1/parties/{partyId}
func (h *PartyHandler) Get(w http.ResponseWriter, r *http.Request) {
	partyID := mux.Vars(r)["partyId"]

	party, err := h.partySvc.GetByID(r.Context(), partyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if party == nil {
		writeError(w, http.StatusNotFound, "party not found")
		return
	}

	writeJSON(w, http.StatusOK, party)
}

// Update handles PUT /v1/parties/{partyId}
func (h *PartyHandler) Update(w http.ResponseWriter, r *http.Request) {
	partyID := mux.Vars(r)["partyId"]
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	existing, err := h.partySvc.GetByID(r.Context(), partyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "party not found")
		return
	}

	var req CreatePartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	existing.Name = req.Name
	existing.StartsAt = req.StartsAt

	if err := h.partySvc.Update(r.Context(), existing); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, existing)
}

// Delete handles DELETE /v1/parties/{partyId}
func (h *PartyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	partyID := mux.Vars(r)["partyId"]

	if err := h.partySvc.Delete(r.Context(), partyID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
