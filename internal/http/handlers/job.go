package handlers

import (
	"net/http"
	"strings"

	"talentdesk/internal/app"
	"talentdesk/internal/domain/job"
	"talentdesk/internal/http/response"
)

type JobHandler struct {
	jobs *app.JobService
}

func NewJobHandler(jobs *app.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var j job.Job
	if err := decodeJSON(r, &j); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.jobs.Create(r.Context(), j)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r.URL.Path, "/jobs/", "")
	if err != nil {
		response.Error(w, err)
		return
	}
	var j job.Job
	if err := decodeJSON(r, &j); err != nil {
		response.Error(w, err)
		return
	}
	j.ID = id
	updated, err := h.jobs.Update(r.Context(), j)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r.URL.Path, "/jobs/", "")
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.jobs.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	if strings.EqualFold(r.URL.Query().Get("status"), string(job.StatusPublished)) {
		items, err := h.jobs.ListPublished(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, items)
		return
	}
	items, err := h.jobs.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

type jobStatusRequest struct {
	Status string `json:"status"`
}

func (h *JobHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r.URL.Path, "/jobs/", "/status")
	if err != nil {
		response.Error(w, err)
		return
	}
	var req jobStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	status := job.Status(strings.ToLower(strings.TrimSpace(req.Status)))
	updated, err := h.jobs.UpdateStatus(r.Context(), id, status)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}
