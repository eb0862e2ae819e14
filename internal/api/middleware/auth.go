package middleware

import (
	"context"
	"customer-service/internal/config"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type subjectKey struct{}

var (
	errMissingBearer = errors.New("missing or malformed bearer token")
	errNoSecret      = errors.New("no JWT secret configured")
)

// SubjectFromContext returns the authenticated token subject, if any.
func SubjectFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(subjectKey{}).(string)
	return sub, ok
}

func AuthMiddleware(cfg config.AuthConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	logger = logger.With("component", "AuthMiddleware")
	if cfg.JWTSecret == "" {
		logger.Error("Authentication enabled without a JWT secret; rejecting all protected requests")
		return func(http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logger.WarnContext(r.Context(), "Rejected request: no JWT secret configured", "path", r.URL.Path)
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
			})
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, err := validateJWT(r, cfg.JWTSecret)
			if err != nil {
				logger.WarnContext(r.Context(), "Rejected unauthenticated request", "path", r.URL.Path, "error", err)
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			logger.DebugContext(r.Context(), "Authenticated request", "subject", subject)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), subjectKey{}, subject)))
		})
	}
}

func validateJWT(r *http.Request, secret string) (string, error) {
	if secret == "" {
		return "", errNoSecret
	}
	scheme, tokenString, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || tokenString == "" {
		return "", errMissingBearer
	}

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", jwt.ErrTokenUnverifiable
	}
	return claims.Subject, nil
}
