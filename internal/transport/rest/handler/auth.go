package handler

import (
	"encoding/json"
	"net/http"

	"partyline/internal/model"
	"partyline/internal/service"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authSvc  *service.AuthService
	partySvc *service.PartyService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *service.AuthService, partySvc *service.PartyService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, partySvc: partySvc}
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authSvc.Login(req.Username, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// GuestSignIn handles POST /v1/auth/guest: resolves the party join code,
// mints a magic-link token and ensures the guest profile exists. Mailing
// the link out is handled by the hosted auth collaborator.
func (h *AuthHandler) GuestSignIn(w http.ResponseWriter, r *http.Request) {
	var req model.MagicLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.JoinCode == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "joinCode and email are required")
		return
	}

	resp, err := h.partySvc.SignInGuest(r.Context(), &req)
	if err == service.ErrPartyNotFound {
		writeError(w, http.StatusNotFound, "party not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
