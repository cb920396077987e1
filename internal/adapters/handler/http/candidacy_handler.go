package http

import (
	"encoding/json"
	"net/http"

	"github.com/vncsmyrnk/election/internal/core/ports"
)

type CandidacyHandler struct {
	service ports.CandidacyService
}

func NewCandidacyHandler(service ports.CandidacyService) *CandidacyHandler {
	return &CandidacyHandler{
		service: service,
	}
}

type registerCandidacyRequest struct {
	Name   string `json:"name"`
	Slogan string `json:"slogan"`
	Goals  string `json:"goals"`
}

func (h *CandidacyHandler) RegisterCandidacy(w http.ResponseWriter, r *http.Request) {
	electionID, err := electionIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	caller, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized: missing account context", http.StatusUnauthorized)
		return
	}

	var req registerCandidacyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	candidate, err := h.service.Register(r.Context(), ports.RegisterCandidacyInput{
		ElectionID: electionID,
		CallerID:   caller,
		Name:       req.Name,
		Slogan:     req.Slogan,
		Goals:      req.Goals,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, candidate)
}
