package handlers

import (
	"net/http"

	"talentdesk/internal/app"
	"talentdesk/internal/http/response"
)

type ReportHandler struct {
	reports *app.ReportService
}

func NewReportHandler(reports *app.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) Pipeline(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.Pipeline(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, report)
}

func (h *ReportHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	items, err := h.reports.Schedule(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
