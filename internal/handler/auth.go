package handler

import (
	"errors"
	"net/http"

	"github.com/msomdec/recipe-api/internal/domain"
	"github.com/msomdec/recipe-api/internal/service"
)

// AuthHandler handles account and token HTTP requests.
type AuthHandler struct {
	auth         *service.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure}
}

// HandleCreateUser registers a new account.
// POST /api/user/create
// Request:  {"email":"...","name":"...","password":"..."}
// Response: 201 {"id":1,"email":"...","name":"..."}
func (h *AuthHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := readJSON(w, r, &req); err != nil {
		writeServiceError(w, r, "decode register request", err)
		return
	}

	user, err := h.auth.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, "register user", err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserDTO(user))
}

// HandleCreateToken exchanges credentials for a JWT. The token is also
// set as the auth_token cookie.
// POST /api/user/token
// Request:  {"email":"...","password":"..."}
// Response: {"token":"...","user":{...}}
func (h *AuthHandler) HandleCreateToken(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := readJSON(w, r, &req); err != nil {
		writeServiceError(w, r, "decode login request", err)
		return
	}

	token, user, err := h.auth.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		writeServiceError(w, r, "login user", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.auth.TokenTTL().Seconds()),
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  toUserDTO(user),
	})
}

// HandleMe returns the currently authenticated user.
// GET /api/user/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toUserDTO(UserFromContext(r.Context())))
}

// HandleUpdateMe changes the authenticated user's name and/or password.
// PATCH /api/user/me
// Request:  {"name":"...","password":"..."} (both optional)
func (h *AuthHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateProfileRequest
	if err := readJSON(w, r, &req); err != nil {
		writeServiceError(w, r, "decode profile request", err)
		return
	}

	user, err := h.auth.UpdateProfile(r.Context(), UserFromContext(r.Context()).ID, req)
	if err != nil {
		writeServiceError(w, r, "update profile", err)
		return
	}

	writeJSON(w, http.StatusOK, toUserDTO(user))
}
