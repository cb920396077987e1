package domain

import "errors"

// Error kinds. Every error returned by the election services unwraps to one of these.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
)

var (
	ErrElectionNotFound   = newError(ErrNotFound, "election not found")
	ErrCandidateNotFound  = newError(ErrNotFound, "candidate is not registered in the election")
	ErrElectionStarted    = newError(ErrInvalidState, "election already started")
	ErrElectionNotStarted = newError(ErrInvalidState, "election not yet started")
	ErrElectionFinished   = newError(ErrInvalidState, "election already finished")
	ErrAlreadyRegistered  = newError(ErrConflict, "candidate is already registered in the election")
	ErrAlreadyVoted       = newError(ErrConflict, "account has already voted in the election")
	ErrNameRequired       = newError(ErrInvalidInput, "name is required")
	ErrSloganRequired     = newError(ErrInvalidInput, "slogan is required")
	ErrGoalsRequired      = newError(ErrInvalidInput, "goals are required")
	ErrInvalidWindow      = newError(ErrInvalidInput, "invalid election window")
	ErrInvalidAccountID   = newError(ErrInvalidInput, "account id must be non-empty valid UTF-8")
)

type kindError struct {
	kind error
	msg  string
}

func newError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }
