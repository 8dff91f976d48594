package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"partyline/internal/model"
	"partyline/internal/service"
)

// GameHandler handles party game endpoints
type GameHandler struct {
	gameSvc *service.GameService
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameSvc *service.GameService) *GameHandler {
	return &GameHandler{gameSvc: gameSvc}
}

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	Type      model.GameType `json:"type"`
	Title     string         `json:"title"`
	Moderated bool           `json:"moderated"`
}

// Create handles POST /v1/parties/{partyId}/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	partyID := mux.Vars(r)["partyId"]

	var req CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game := &model.Game{
		PartyID:   partyID,
		Type:      req.Type,
		Title:     req.Title,
		Moderated: req.Moderated,
	}

	id, err := h.gameSvc.Create(r.Context(), game)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"gameId": id})
}

// List handles GET /v1/parties/{partyId}/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	partyID := mux.Vars(r)["partyId"]

	games, err := h.gameSvc.GetByPartyID(r.Context(), partyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"games": games})
}

// ToggleRequest flips a game switch
type ToggleRequest struct {
	Value bool `json:"value"`
}

// SetEnabled handles POST /v1/games/{gameId}/enabled
func (h *GameHandler) SetEnabled(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameId"]

	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, err := h.gameSvc.SetEnabled(r.Context(), gameID, req.Value)
	if err == service.ErrGameNotFound {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, game)
}

// SetModerated handles POST /v1/games/{gameId}/moderated
func (h *GameHandler) SetModerated(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameId"]

	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, err := h.gameSvc.SetModerated(r.Context(), gameID, req.Value)
	if err == service.ErrGameNotFound {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, game)
}

// Delete handles DELETE /v1/games/{gameId}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameId"]

	if err := h.gameSvc.Delete(r.Context(), gameID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
