package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"partyline/internal/codec"
	"partyline/internal/service"
	"partyline/internal/transport/rest/middleware"
)

// QuestionnaireHandler handles the guest-facing about-you endpoints
type QuestionnaireHandler struct {
	profileSvc *service.ProfileService
	uploader   service.Uploader
}

// NewQuestionnaireHandler creates a new questionnaire handler
func NewQuestionnaireHandler(profileSvc *service.ProfileService, uploader service.Uploader) *QuestionnaireHandler {
	return &QuestionnaireHandler{
		profileSvc: profileSvc,
		uploader:   uploader,
	}
}

// AnswersRequest carries the raw inputs for one batch
type AnswersRequest struct {
	Answers map[string]codec.RawInput `json:"answers"`
}

// Batches handles GET /v1/me/batches
func (h *QuestionnaireHandler) Batches(w http.ResponseWriter, r *http.Request) {
	partyID := middleware.GetPartyID(r.Context())
	respondentID := middleware.GetRespondentID(r.Context())

	views, err := h.profileSvc.Batches(r.Context(), partyID, respondentID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"batches": views})
}

// Prefill handles GET /v1/me/batches/{batchId}
func (h *QuestionnaireHandler) Prefill(w http.ResponseWriter, r *http.Request) {
	partyID := middleware.GetPartyID(r.Context())
	respondentID := middleware.GetRespondentID(r.Context())
	batchID := mux.Vars(r)["batchId"]

	inputs, err := h.profileSvc.Prefill(r.Context(), partyID, respondentID, batchID)
	if err == service.ErrUnknownBatch {
		writeError(w, http.StatusNotFound, "batch not found")
		return
	}
	if err == service.ErrBatchLocked {
		writeError(w, http.StatusConflict, "batch is locked")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"answers": inputs})
}

// SaveDraft handles PUT /v1/me/batches/{batchId}/draft
func (h *QuestionnaireHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	partyID := middleware.GetPartyID(r.Context())
	respondentID := middleware.GetRespondentID(r.Context())
	batchID := mux.Vars(r)["batchId"]

	var req AnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.profileSvc.SaveDraft(r.Context(), partyID, respondentID, batchID, req.Answers)
	if err == service.ErrUnknownBatch {
		writeError(w, http.StatusNotFound, "batch not found")
		return
	}
	if err == service.ErrBatchLocked {
		writeError(w, http.StatusConflict, "batch is locked")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"progress": profile.Progress})
}

// Submit handles POST /v1/me/batches/{batchId}/submit
func (h *QuestionnaireHandler) Submit(w http.ResponseWriter, r *http.Request) {
	partyID := middleware.GetPartyID(r.Context())
	respondentID := middleware.GetRespondentID(r.Context())
	batchID := mux.Vars(r)["batchId"]

	var req AnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome, err := h.profileSvc.SubmitBatch(r.Context(), partyID, respondentID, batchID, req.Answers)
	if err == service.ErrUnknownBatch {
		writeError(w, http.StatusNotFound, "batch not found")
		return
	}
	if err == service.ErrBatchLocked {
		writeError(w, http.StatusConflict, "batch is locked")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"validation": outcome.Validation,
		"progress":   outcome.Profile.Progress,
		"completion": outcome.Completion,
	})
}

// SelectRequest carries one tap on an either_or question: an option id
// or a modifier keyword.
type SelectRequest struct {
	Token string `json:"token"`
}

// SelectOption handles POST /v1/me/batches/{batchId}/questions/{questionId}/select
func (h *QuestionnaireHandler) SelectOption(w http.ResponseWriter, r *http.Request) {
	partyID := middleware.GetPartyID(r.Context())
	respondentID := middleware.GetRespondentID(r.Context())
	vars := mux.Vars(r)

	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	state, err := h.profileSvc.SelectOption(r.Context(), partyID, respondentID, vars["batchId"], vars["questionId"], req.Token)
	if err == service.ErrUnknownBatch || err == service.ErrUnknownQuestion {
		writeError(w, http.StatusNotFound, "question not found")
		return
	}
	if err == service.ErrBatchLocked {
		writeError(w, http.StatusConflict, "batch is locked")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"state": state})
}

// UploadPhoto handles POST /v1/me/photos: streams the blob to the file
// store and returns the URL for the client to submit as a photo answer.
func (h *QuestionnaireHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing photo file")
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
