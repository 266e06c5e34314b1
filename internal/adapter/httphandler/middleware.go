package httphandler

import (
	"context"
	"net/http"
	"strings"

	"github.com/babisha/storefront-admin/internal/core/port"
)

type claimsKey struct{}

// claimsFrom returns the verified token claims stored by Authenticate.
func claimsFrom(ctx context.Context) (port.TokenClaims, bool) {
	c, ok := ctx.Value(claimsKey{}).(port.TokenClaims)
	return c, ok
}

// Authenticate gates a handler behind a bearer token. A missing token is
// 401, a token that fails verification is 403.
func Authenticate(tokens port.TokenAuthority) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hf := func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "access denied, no token provided")
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				writeError(w, http.StatusForbidden, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hf)
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// AllowContent rejects request bodies that are neither JSON nor multipart
// form submissions.
func AllowContent(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		ct := r.Header.Get("Content-Type")
		if !strings.HasPrefix(ct, "application/json") &&
			!strings.HasPrefix(ct, "multipart/form-data") {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}
