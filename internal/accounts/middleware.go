package accounts

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hydrowatch/hydrowatch/internal/platform/httpx"
)

type accountIDContextKey struct{}

// ContextWithAccountID stores the authenticated account id in context.
func ContextWithAccountID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, accountIDContextKey{}, id)
}

// AccountIDFromContext extracts the authenticated account id from context.
func AccountIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(accountIDContextKey{}).(string)
	return id
}

// RequireToken verifies the bearer token against this service's signing
// secret and attaches the account id to the request context. Requests with a
// missing, malformed, or badly signed token are rejected before the handler
// runs.
func (s *Service) RequireToken(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
				return
			}
			accountID, err := s.Verify(raw)
			if err != nil {
				if logger != nil {
					logger.Warn("token rejected", slog.String("path", r.URL.Path), slog.Any("error", err))
				}
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid token")
				return
			}
			ctx := ContextWithAccountID(r.Context(), accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
