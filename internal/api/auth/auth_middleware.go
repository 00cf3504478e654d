package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FACorreiaa/go-user-directory/internal/api"
	"github.com/FACorreiaa/go-user-directory/internal/types"
)

type contextKey string

const actorKey contextKey = "actor"

// Authenticate is middleware that validates the bearer access token and stores
// the caller identity in the request context.
func Authenticate(logger *slog.Logger, issuer *TokenIssuer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			l := logger.With(slog.String("middleware", "Authenticate"))

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				l.WarnContext(ctx, "Missing Authorization header")
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Authorization header required")
				return
			}

			scheme, tokenString, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || tokenString == "" {
				l.WarnContext(ctx, "Invalid Authorization header format")
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
				return
			}

			claims, err := issuer.ParseToken(tokenString)
			if err != nil {
				l.WarnContext(ctx, "Token parsing/validation failed", slog.Any("error", err))
				errMsg := "Invalid or expired token"
				switch {
				case errors.Is(err, jwt.ErrTokenExpired):
					errMsg = "Token has expired"
				case errors.Is(err, jwt.ErrTokenMalformed):
					errMsg = "Malformed token"
				case errors.Is(err, jwt.ErrTokenSignatureInvalid):
					errMsg = "Invalid token signature"
				case errors.Is(err, jwt.ErrTokenInvalidIssuer):
					errMsg = "Invalid token issuer"
				case errors.Is(err, jwt.ErrTokenInvalidAudience):
					errMsg = "Invalid token audience"
				}
				api.ErrorResponse(w, r, http.StatusUnauthorized, errMsg)
				return
			}

			actor := claims.Actor()
			ctx = WithActor(ctx, actor)
			l.DebugContext(ctx, "Authentication successful", slog.String("login", actor.Login), slog.String("role", actor.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithActor returns a copy of ctx carrying actor.
func WithActor(ctx context.Context, actor types.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext returns the caller stored by Authenticate.
func ActorFromContext(ctx context.Context) (types.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(types.Actor)
	return actor, ok
}
