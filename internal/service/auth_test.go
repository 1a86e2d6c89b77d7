package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"microblog/internal/config"
	"microblog/internal/model"
)

func authTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		AccessTokenMaxAge:  900,
		RefreshTokenMaxAge: 2592000,
	}
}

func TestAuthService_GenerateTokenPair(t *testing.T) {
	var stored *model.RefreshToken
	repo := &mockRefreshTokenRepository{
		createFn: func(ctx context.Context, token *model.RefreshToken) error {
			stored = token
			return nil
		},
	}
	svc := NewAuthService(repo, authTestConfig())

	pair, err := svc.GenerateTokenPair(context.Background(), 1, "test-device", "127.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Access token carries the user id, signed with the configured secret
	parsed, err := jwt.Parse(pair.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("access token did not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if uid, ok := claims["user_id"].(float64); !ok || int64(uid) != 1 {
		t.Errorf("user_id claim = %v, want 1", claims["user_id"])
	}

	// Refresh token is stored hashed, never raw
	if stored == nil {
		t.Fatal("refresh token was not persisted")
	}
	if stored.TokenHash == pair.RefreshToken {
		t.Error("refresh token stored unhashed")
	}
	if stored.UserID != 1 {
		t.Errorf("stored user_id = %d, want 1", stored.UserID)
	}
}

func TestAuthService_RefreshTokens_UnknownToken(t *testing.T) {
	svc := NewAuthService(&mockRefreshTokenRepository{}, authTestConfig())

	_, _, err := svc.RefreshTokens(context.Background(), "no-such-token", "", "")
	if !errors.Is(err, model.ErrRefreshTokenNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrRefreshTokenNotFound)
	}
}

func TestAuthService_RefreshTokens_ReuseRevokesFamily(t *testing.T) {
	revokedAt := time.Now().Add(-time.Hour)
	repo := &mockRefreshTokenRepository{
		findByTokenHashFn: func(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
			return &model.RefreshToken{
				ID:        "tok-1",
				UserID:    7,
				RevokedAt: &revokedAt,
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		},
	}
	svc := NewAuthService(repo, authTestConfig())

	_, _, err := svc.RefreshTokens(context.Background(), "reused-token", "", "")
	if !errors.Is(err, model.ErrRefreshTokenReused) {
		t.Errorf("error = %v, want %v", err, model.ErrRefreshTokenReused)
	}
	if repo.revokeAllCalls != 1 {
		t.Errorf("RevokeAllForUser called %d times, want 1", repo.revokeAllCalls)
	}
}

func TestAuthService_RefreshTokens_Expired(t *testing.T) {
	repo := &mockRefreshTokenRepository{
		findByTokenHashFn: func(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
			return &model.RefreshToken{
				ID:        "tok-1",
				UserID:    7,
				ExpiresAt: time.Now().Add(-time.Minute),
			}, nil
		},
	}
	svc := NewAuthService(repo, authTestConfig())

	_, _, err := svc.RefreshTokens(context.Background(), "expired-token", "", "")
	if !errors.Is(err, model.ErrRefreshTokenExpired) {
		t.Errorf("error = %v, want %v", err, model.ErrRefreshTokenExpired)
	}
}
