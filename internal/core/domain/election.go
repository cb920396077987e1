package domain

import (
	"fmt"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
)

type ElectionID uint32

type ElectionInfo struct {
	ID           ElectionID `json:"id"`
	Initiator    AccountID  `json:"initiator"`
	CreationDate time.Time  `json:"creation_date"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      time.Time  `json:"end_date"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
}

// AcceptsCandidacies reports whether the registration window is open at t.
// The window closes at StartDate.
func (i ElectionInfo) AcceptsCandidacies(t time.Time) bool {
	return t.Before(i.StartDate)
}

// VotingError returns nil when t falls in [StartDate, EndDate].
func (i ElectionInfo) VotingError(t time.Time) error {
	if t.Before(i.StartDate) {
		return ErrElectionNotStarted
	}
	if t.After(i.EndDate) {
		return ErrElectionFinished
	}
	return nil
}

// Election is the aggregate of one election and everything cast in it.
type Election struct {
	Info             ElectionInfo
	Candidates       []Candidate
	CandidateIDs     mapset.Set[AccountID]
	VotesByCandidate map[AccountID][]Vote
	Voters           mapset.Set[AccountID]
}

func NewElection(info ElectionInfo) *Election {
	return &Election{
		Info:             info,
		CandidateIDs:     mapset.NewThreadUnsafeSet[AccountID](),
		VotesByCandidate: make(map[AccountID][]Vote),
		Voters:           mapset.NewThreadUnsafeSet[AccountID](),
	}
}

func (e *Election) HasCandidate(id AccountID) bool {
	return e.CandidateIDs.Contains(id)
}

func (e *Election) HasVoted(id AccountID) bool {
	return e.Voters.Contains(id)
}

// Validate checks that the id sets agree with the candidate and vote records.
func (e *Election) Validate() error {
	listed := mapset.NewThreadUnsafeSet[AccountID]()
	for _, c := range e.Candidates {
		listed.Add(c.AccountID)
	}
	if !listed.Equal(e.CandidateIDs) {
		return fmt.Errorf("election %d: candidate ids %v do not match candidates %v", e.Info.ID, e.CandidateIDs, listed)
	}

	voters := mapset.NewThreadUnsafeSet[AccountID]()
	for candidateID, votes := range e.VotesByCandidate {
		if !e.CandidateIDs.Contains(candidateID) {
			return fmt.Errorf("election %d: votes recorded for unknown candidate %q", e.Info.ID, candidateID)
		}
		for _, v := range votes {
			if v.CandidateID != candidateID {
				return fmt.Errorf("election %d: vote by %q for %q filed under %q", e.Info.ID, v.AccountID, v.CandidateID, candidateID)
			}
			if !voters.Add(v.AccountID) {
				return fmt.Errorf("election %d: %q voted more than once", e.Info.ID, v.AccountID)
			}
		}
	}
	if !voters.Equal(e.Voters) {
		return fmt.Errorf("election %d: voters %v do not match cast votes %v", e.Info.ID, e.Voters, voters)
	}
	return nil
}
