package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vncsmyrnk/election/internal/core/ports"
)

type ElectionHandler struct {
	service ports.ElectionService
	queries ports.QueryService
}

func NewElectionHandler(service ports.ElectionService, queries ports.QueryService) *ElectionHandler {
	return &ElectionHandler{
		service: service,
		queries: queries,
	}
}

type createElectionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	// StartsIn and EndsIn are Go duration strings. Omitted fields take the
	// configured defaults; an explicit start must be positive.
	StartsIn string `json:"starts_in,omitempty"`
	EndsIn   string `json:"ends_in,omitempty"`
}

func (h *ElectionHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	initiator, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized: missing account context", http.StatusUnauthorized)
		return
	}

	var req createElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.CreateElectionInput{
		Initiator:   initiator,
		Title:       req.Title,
		Description: req.Description,
	}

	var err error
	if input.StartsIn, err = parseDuration(req.StartsIn); err != nil {
		http.Error(w, "invalid starts_in: "+err.Error(), http.StatusBadRequest)
		return
	}
	if input.EndsIn, err = parseDuration(req.EndsIn); err != nil {
		http.Error(w, "invalid ends_in: "+err.Error(), http.StatusBadRequest)
		return
	}

	info, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, info)
}

func (h *ElectionHandler) ListElections(w http.ResponseWriter, r *http.Request) {
	infos, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, infos)
}

func (h *ElectionHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	id, err := electionIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	info, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (h *ElectionHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	id, err := electionIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	candidates, err := h.queries.ListCandidates(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, candidates)
}

func (h *ElectionHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	id, err := electionIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	votes, err := h.queries.ListVotes(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, votes)
}

// parseDuration returns nil for an absent field so the service default applies.
func parseDuration(s string) (*time.Duration, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
