package domain

import "time"

// Amount is a non-negative sum in the smallest monetary unit.
type Amount uint64

type Vote struct {
	AccountID   AccountID `json:"account_id"`
	Date        time.Time `json:"date"`
	CandidateID AccountID `json:"candidate_id"`
	Comment     string    `json:"comment"`
	Donation    Amount    `json:"donation"`
}

type CandidateVotes struct {
	Candidate Candidate `json:"candidate"`
	Votes     []Vote    `json:"votes"`
}

type ElectionVotes struct {
	Election ElectionInfo     `json:"election"`
	Votes    []CandidateVotes `json:"votes"`
}

// TotalVotes counts the votes across all candidates.
func (ev ElectionVotes) TotalVotes() int {
	n := 0
	for _, cv := range ev.Votes {
		n += len(cv.Votes)
	}
	return n
}
