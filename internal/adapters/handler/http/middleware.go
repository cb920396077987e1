package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type contextKey string

const AccountIDKey contextKey = "account_id"

// Authenticate reads the caller's token from the Authorization header or the
// access_token cookie and stores the verified account id in the request context.
func Authenticate(verifier ports.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				http.Error(w, "Unauthorized: missing token", http.StatusUnauthorized)
				return
			}

			accountID, err := verifier.Verify(r.Context(), token)
			if err != nil {
				http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), AccountIDKey, accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		token, found := strings.CutPrefix(header, "Bearer ")
		if found {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	return ""
}

func callerID(r *http.Request) (domain.AccountID, bool) {
	accountID, ok := r.Context().Value(AccountIDKey).(domain.AccountID)
	return accountID, ok && accountID != ""
}
