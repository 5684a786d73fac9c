package handlers

import (
	"net/http"
	"strings"
	"time"

	"talentdesk/internal/app"
	"talentdesk/internal/common"
	"talentdesk/internal/domain/application"
	"talentdesk/internal/http/middleware"
	"talentdesk/internal/http/response"
	"talentdesk/internal/pipeline"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	limiter      middleware.Limiter
}

func NewApplicationHandler(applications *app.ApplicationService, limiter middleware.Limiter) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, limiter: limiter}
}

// applicationResponse flattens the confirmation variant into the wire shape
// the dashboard reads (tri-state confirmed plus derived overdue flags) and
// adds the current stage snapshot with its policy deadline.
type applicationResponse struct {
	*application.JobApplication
	Confirmation *application.View     `json:"confirmation,omitempty"`
	Tracker      pipeline.StageTracker `json:"stage_tracker"`
}

func (h *ApplicationHandler) toResponse(a *application.JobApplication) applicationResponse {
	resp := applicationResponse{
		JobApplication: a,
		Tracker:        h.applications.StageTracker(a),
	}
	if a.Confirmation != nil {
		view := a.Confirmation.View(time.Now().UTC())
		resp.Confirmation = &view
	}
	return resp
}

func (h *ApplicationHandler) toResponseList(items []application.JobApplication) []applicationResponse {
	out := make([]applicationResponse, len(items))
	for i := range items {
		out[i] = h.toResponse(&items[i])
	}
	return out
}

type applyRequest struct {
	JobID       string `json:"job_id"`
	CandidateID string `json:"candidate_id"`
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	jobID, err := common.ParseUUID(strings.TrimSpace(req.JobID))
	if err != nil {
		response.Error(w, common.NewValidationError("invalid job_id", map[string]string{"job_id": "invalid uuid"}))
		return
	}
	candidateID, err := common.ParseUUID(strings.TrimSpace(req.CandidateID))
	if err != nil {
		response.Error(w, common.NewValidationError("invalid candidate_id", map[string]string{"candidate_id": "invalid uuid"}))
		return
	}
	if h.limiter != nil {
		key := "apply:" + jobID.String() + ":" + candidateID.String()
		if !h.limiter.Allow(key, 3, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "apply rate limit exceeded", nil))
			return
		}
	}
	created, err := h.applications.Apply(r.Context(), jobID, candidateID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, h.toResponse(created))
}

func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r.URL.Path, "/applications/", "")
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.applications.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, h.toResponse(item))
}

func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if raw := strings.TrimSpace(query.Get("job_id")); raw != "" {
		jobID, err := common.ParseUUID(raw)
		if err != nil {
			response.Error(w, common.NewValidationError("invalid job_id", map[string]string{"job_id": "invalid uuid"}))
			return
		}
		items, err := h.applications.ListByJob(r.Context(), jobID)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, h.toResponseList(items))
		return
	}
	if raw := strings.TrimSpace(query.Get("candidate_id")); raw != "" {
		candidateID, err := common.ParseUUID(raw)
		if err != nil {
			response.Error(w, common.NewValidationError("invalid candidate_id", map[string]string{"candidate_id": "invalid uuid"}))
			return
		}
		items, err := h.applications.ListByCandidate(r.Context(), candidateID)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, h.toResponseList(items))
		return
	}
	items, err := h.applications.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, h.toResponseList(items))
}

type updateStageRequest struct {
	Stage string `json:"stage"`
	Note  string `json:"note,omitempty"`
}

func (h *ApplicationHandler) UpdateStage(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r.URL.Path, "/applications/", "/stage")
	if err != nil {
		response.Error(w, err)
		return
	}
	actor := actorFromRequest(r)
	if actor == "" {
		response.Error(w, common.NewValidationError("missing actor", map[string]string{"X-Actor-Id": "header is required"}))
		return
	}
	var req updateStageRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	target := application.Stage(strings.ToLower(strings.TrimSpace(req.Stage)))
	updated, err := h.applications.UpdateStage(r.Context(), id, target, actor, req.Note)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, h.toResponse(updated))
}

type confirmationRequest struct {
	Accepted *bool `json:"accepted"`
}

func (h *ApplicationHandler) RespondConfirmation(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r.URL.Path, "/applications/", "/confirmation")
	if err != nil {
		response.Error(w, err)
		return
	}
	var req confirmationRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Accepted == nil {
		response.Error(w, common.NewValidationError("missing accepted", map[string]string{"accepted": "true or false is required"}))
		return
	}
	updated, err := h.applications.RespondConfirmation(r.Context(), id, *req.Accepted)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, h.toResponse(updated))
}

func (h *ApplicationHandler) AcknowledgeMail(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r.URL.Path, "/applications/", "/mail-ack")
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.applications.AcknowledgeMail(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, h.toResponse(updated))
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func (h *ApplicationHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r.URL.Path, "/applications/", "/status")
	if err != nil {
		response.Error(w, err)
		return
	}
	var req setStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	status := application.Status(strings.ToLower(strings.TrimSpace(req.Status)))
	updated, err := h.applications.SetStatus(r.Context(), id, status)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, h.toResponse(updated))
}
