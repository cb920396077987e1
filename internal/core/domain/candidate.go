package domain

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// AccountID identifies the caller of an operation.
type AccountID string

// Validate rejects ids that cannot round-trip through the JSON encoded
// storage keys.
func (id AccountID) Validate() error {
	if id == "" || !utf8.ValidString(string(id)) {
		return fmt.Errorf("%w: %q", ErrInvalidAccountID, string(id))
	}
	return nil
}

type Candidate struct {
	AccountID        AccountID `json:"account_id"`
	RegistrationDate time.Time `json:"registration_date"`
	Name             string    `json:"name"`
	Slogan           string    `json:"slogan"`
	Goals            string    `json:"goals"`
}
