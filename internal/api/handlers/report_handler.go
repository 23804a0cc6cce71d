package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JibinB02/pehlahath/internal/api/middleware"
	"github.com/JibinB02/pehlahath/internal/entity"
	"github.com/JibinB02/pehlahath/internal/usecase"
)

type ReportHandler struct {
	reportService *usecase.ReportService
}

func NewReportHandler(reportService *usecase.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req entity.SubmitReportRequest
	if !decodeValid(w, r, &req) {
		return
	}

	report, err := h.reportService.SubmitReport(r.Context(), &req, caller)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error submitting report")
		return
	}

	writeJSON(w, http.StatusCreated, report)
}

func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reportService.ListReports(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error fetching reports")
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid report id")
		return
	}

	report, err := h.reportService.GetReport(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrReportNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "error fetching report")
		return
	}

	writeJSON(w, http.StatusOK, report)
}
