package handler_test

import (
	"customer-service/internal/api/handler"
	"customer-service/internal/api/handler/dto"
	"customer-service/internal/config"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestAuthHandler_GenerateBearerToken(t *testing.T) {
	t.Run("issues a verifiable token", func(t *testing.T) {
		h := handler.NewAuthHandler(config.AuthConfig{Enabled: true, JWTSecret: testSecret, TokenTTL: time.Hour}, testLogger)
		before := time.Now().Truncate(time.Second)

		rec := do(t, http.HandlerFunc(h.GenerateBearerToken), http.MethodPost, "/auth/token", `{"username":"backoffice"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp dto.TokenResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.WithinDuration(t, before.Add(time.Hour), resp.ExpiresAt, 5*time.Second)

		claims := &jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (any, error) {
			return []byte(testSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		require.NoError(t, err)
		assert.Equal(t, "backoffice", claims.Subject)
		assert.Equal(t, "customer-service", claims.Issuer)
	})

	t.Run("default ttl", func(t *testing.T) {
		h := handler.NewAuthHandler(config.AuthConfig{JWTSecret: testSecret}, testLogger)

		rec := do(t, http.HandlerFunc(h.GenerateBearerToken), http.MethodPost, "/auth/token", `{"username":"ops"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp dto.TokenResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), resp.ExpiresAt, 5*time.Second)
	})

	t.Run("missing username", func(t *testing.T) {
		h := handler.NewAuthHandler(config.AuthConfig{JWTSecret: testSecret}, testLogger)

		rec := do(t, http.HandlerFunc(h.GenerateBearerToken), http.MethodPost, "/auth/token", `{"username":""}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "username", decodeError(t, rec).Field)
	})

	t.Run("unknown field", func(t *testing.T) {
		h := handler.NewAuthHandler(config.AuthConfig{JWTSecret: testSecret}, testLogger)

		rec := do(t, http.HandlerFunc(h.GenerateBearerToken), http.MethodPost, "/auth/token", `{"username":"ops","role":"admin"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("secret not configured", func(t *testing.T) {
		h := handler.NewAuthHandler(config.AuthConfig{}, testLogger)

		rec := do(t, http.HandlerFunc(h.GenerateBearerToken), http.MethodPost, "/auth/token", `{"username":"ops"}`)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "token")
	})
}
