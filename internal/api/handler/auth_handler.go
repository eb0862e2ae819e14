package handler

import (
	"customer-service/internal/api/handler/dto"
	"customer-service/internal/config"
	"customer-service/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer     = "customer-service"
	defaultTokenTTL = 24 * time.Hour
)

type AuthHandler struct {
	cfg      config.AuthConfig
	validate *validator.Validate
	now      func() time.Time
	logger   *slog.Logger
}

func NewAuthHandler(cfg config.AuthConfig, l *slog.Logger) *AuthHandler {
	return &AuthHandler{
		cfg:      cfg,
		validate: newValidator(),
		now:      time.Now,
		logger:   l.With("component", "AuthHandler"),
	}
}

// GenerateBearerToken handles POST /auth/token and issues an HS256 token whose subject is the username.
//
// @Summary Issue a bearer token
// @Description Issues an HS256 JWT whose subject is the given username. Use it as "Bearer <token>" on /customers routes.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "Token request payload"
// @Success 200 {object} dto.TokenResponse "Token issued"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 500 {object} dto.ErrorResponse "Token signing is not configured"
// @Router /auth/token [post]
func (h *AuthHandler) GenerateBearerToken(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode token request", slog.Any("error", err))
		respondError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.logger.WarnContext(r.Context(), "Token request validation failed", slog.Any("error", err))
		respondError(w, err)
		return
	}
	if h.cfg.JWTSecret == "" {
		h.logger.ErrorContext(r.Context(), "Cannot issue token: JWT secret is not configured")
		respondError(w, fmt.Errorf("%w: token signing is not configured", apperrors.ErrInternalServer))
		return
	}

	ttl := h.cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	now := h.now().UTC()
	expiresAt := now.Add(ttl)

	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   req.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to sign token", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: failed to sign token: %w", apperrors.ErrInternalServer, err))
		return
	}

	h.logger.InfoContext(r.Context(), "Issued bearer token", slog.String("subject", req.Username), slog.Time("expiresAt", expiresAt))
	respondJSON(w, http.StatusOK, dto.TokenResponse{
		Token:     tokenString,
		TokenType: "Bearer",
		ExpiresAt: expiresAt.Truncate(time.Second),
	})
}
