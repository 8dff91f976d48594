package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"partyline/internal/service"
)

// ReportHandler handles host report endpoints
type ReportHandler struct {
	reportSvc *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportSvc *service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Get handles GET /v1/parties/{partyId}/report
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	partyID := mux.Vars(r)["partyId"]

	report, err := h.reportSvc.Report(r.Context(), partyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// ExportCSV handles GET /v1/parties/{partyId}/report.csv
func (h *ReportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	partyID := mux.Vars(r)["partyId"]

	data, err := h.reportSvc.ExportCSV(r.Context(), partyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="party-report.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(data))
}
