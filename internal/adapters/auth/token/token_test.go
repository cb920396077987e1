package token

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/election/internal/core/domain"
)

func TestIssueAndVerify(t *testing.T) {
	h := NewHMAC("test-secret")

	signed, err := h.Issue("alice.near", time.Minute)
	require.NoError(t, err)

	accountID, err := h.Verify(context.Background(), signed)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountID("alice.near"), accountID)
}

func TestIssueRequiresAccount(t *testing.T) {
	_, err := NewHMAC("test-secret").Issue("", time.Minute)
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestIssueDefaultTTL(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	h := NewHMAC("test-secret")
	h.now = func() time.Time { return now }

	signed, err := h.Issue("alice.near", 0)
	require.NoError(t, err)

	h.now = func() time.Time { return now.Add(DefaultTTL - time.Second) }
	_, err = h.Verify(context.Background(), signed)
	require.NoError(t, err)

	h.now = func() time.Time { return now.Add(DefaultTTL + time.Second) }
	_, err = h.Verify(context.Background(), signed)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyRejects(t *testing.T) {
	h := NewHMAC("test-secret")

	otherSecret, err := NewHMAC("other-secret").Issue("alice.near", time.Minute)
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	wrongMethod, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "alice.near",
		"exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "wrong secret", token: otherSecret},
		{name: "no subject", token: noSubject},
		{name: "wrong method", token: wrongMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accountID, err := h.Verify(context.Background(), tt.token)
			assert.Error(t, err)
			assert.Empty(t, accountID)
		})
	}
}
