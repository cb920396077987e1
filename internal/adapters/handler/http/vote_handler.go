package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

// DepositHeader carries the amount attached to a vote, in the smallest monetary unit.
const DepositHeader = "X-Attached-Deposit"

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type castVoteRequest struct {
	CandidateID domain.AccountID `json:"candidate_id"`
	Comment     string           `json:"comment"`
}

func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
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

	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	deposit, err := attachedDeposit(r)
	if err != nil {
		http.Error(w, "invalid "+DepositHeader+" header", http.StatusBadRequest)
		return
	}

	vote, err := h.service.Cast(r.Context(), ports.CastVoteInput{
		ElectionID:  electionID,
		CallerID:    caller,
		CandidateID: req.CandidateID,
		Comment:     req.Comment,
		Donation:    deposit,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, vote)
}

func attachedDeposit(r *http.Request) (domain.Amount, error) {
	raw := r.Header.Get(DepositHeader)
	if raw == "" {
		return 0, nil
	}
	amount, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return domain.Amount(amount), nil
}
