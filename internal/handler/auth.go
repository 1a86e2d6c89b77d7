package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"microblog/internal/httputil"
	"microblog/internal/model"
	"microblog/internal/service"
	"microblog/internal/transport/http/middleware"
)

// AuthHandler groups auth-related HTTP endpoints and their dependencies.
type AuthHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

// NewAuthHandler wires dependencies for authentication endpoints.
func NewAuthHandler(userService *service.UserService, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		authService: authService,
	}
}

// Register handles sign-up
// POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		httputil.WriteBadRequest(w, "Username is required")
		return
	}
	if req.Password == "" {
		httputil.WriteBadRequest(w, "Password is required")
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrUsernameExists) {
			httputil.WriteConflict(w, "Username already exists")
			return
		}
		httputil.WriteInternalError(w, "Failed to register")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, user)
}

// Login handles user login
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if req.Username == "" {
		httputil.WriteBadRequest(w, "Username is required")
		return
	}
	if req.Password == "" {
		httputil.WriteBadRequest(w, "Password is required")
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			httputil.WriteUnauthorized(w, "Invalid username or password")
			return
		}
		httputil.WriteInternalError(w, "Failed to login")
		return
	}

	deviceInfo := r.Header.Get("User-Agent")
	ipAddress := clientIP(r)

	tokenPair, err := h.authService.GenerateTokenPair(r.Context(), user.ID, deviceInfo, ipAddress)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to generate tokens")
		return
	}

	// Browsers get the access token as a cookie so page actions can
	// authenticate without a header.
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    tokenPair.AccessToken,
		Path:     "/",
		MaxAge:   tokenPair.ExpiresIn,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	httputil.WriteJSON(w, http.StatusOK, model.LoginResponse{
		User:         user,
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	})
}

// Me returns the currently authenticated user
// GET /me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to get user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// Refresh handles token refresh
// POST /auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req model.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if req.RefreshToken == "" {
		httputil.WriteBadRequest(w, "Refresh token is required")
		return
	}

	tokenPair, _, err := h.authService.RefreshTokens(r.Context(), req.RefreshToken, r.Header.Get("User-Agent"), clientIP(r))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrRefreshTokenNotFound):
			httputil.WriteUnauthorized(w, "Invalid refresh token")
		case errors.Is(err, model.ErrRefreshTokenExpired):
			httputil.WriteUnauthorizedWithCode(w, model.CodeTokenExpired, "Refresh token has expired")
		case errors.Is(err, model.ErrRefreshTokenReused):
			httputil.WriteUnauthorizedWithCode(w, model.CodeTokenReused, "Refresh token reuse detected. Please login again.")
		default:
			httputil.WriteInternalError(w, "Failed to refresh tokens")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, tokenPair)
}

// Logout revokes the presented refresh token
// POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req model.LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if req.RefreshToken == "" {
		httputil.WriteBadRequest(w, "Refresh token is required")
		return
	}

	err := h.authService.RevokeRefreshToken(r.Context(), req.RefreshToken)
	if err != nil && !errors.Is(err, model.ErrRefreshTokenNotFound) {
		httputil.WriteInternalError(w, "Failed to logout")
		return
	}

	// An already-revoked or unknown token still logs out cleanly
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Logged out successfully",
	})
}

// LogoutAll revokes every refresh token the user holds
// POST /auth/logout-all
func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	if err := h.authService.RevokeAllUserTokens(r.Context(), userID); err != nil {
		httputil.WriteInternalError(w, "Failed to logout from all devices")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Logged out from all devices",
	})
}

// clientIP extracts the client IP from the request
func clientIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return xri
	}

	// RemoteAddr is "IP:port"
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
