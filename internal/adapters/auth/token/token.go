package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

const DefaultTTL = 15 * time.Minute

var ErrMissingSubject = errors.New("token has no subject")

// HMAC issues and verifies HS256 tokens whose subject is the account id.
type HMAC struct {
	secret []byte
	now    func() time.Time
}

var _ ports.TokenVerifier = (*HMAC)(nil)

func NewHMAC(secret string) *HMAC {
	return &HMAC{
		secret: []byte(secret),
		now:    time.Now,
	}
}

func (h *HMAC) Issue(accountID domain.AccountID, ttl time.Duration) (string, error) {
	if accountID == "" {
		return "", ErrMissingSubject
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	now := h.now()
	claims := jwt.MapClaims{
		"sub": string(accountID),
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.secret)
}

func (h *HMAC) Verify(_ context.Context, tokenString string) (domain.AccountID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return h.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(h.now))
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if subject == "" {
		return "", ErrMissingSubject
	}
	return domain.AccountID(subject), nil
}
