package handlers

import (
	"net/http"

	"talentdesk/internal/app"
	"talentdesk/internal/domain/candidate"
	"talentdesk/internal/http/response"
)

type CandidateHandler struct {
	candidates *app.CandidateService
}

func NewCandidateHandler(candidates *app.CandidateService) *CandidateHandler {
	return &CandidateHandler{candidates: candidates}
}

func (h *CandidateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c candidate.Candidate
	if err := decodeJSON(r, &c); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.candidates.Create(r.Context(), c)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *CandidateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r.URL.Path, "/candidates/", "")
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.candidates.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.candidates.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
