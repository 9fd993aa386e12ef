package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yelpcamp/backend/internal/auth/middleware"
	"github.com/yelpcamp/backend/internal/models"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication business logic
type AuthService interface {
	// Register validates the credentials, creates the user and issues a token.
	//
	// "req" parameter contains username, email, password and an optional display name.
	//
	// If the credentials are invalid or already taken, a validation error will be returned together with "nil" value.
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	// Login verifies the credentials and issues a token.
	//
	// If the username is unknown or the password does not match, an invalid-credentials error will be returned together with "nil" value.
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	// Me returns the user behind the authenticated identity.
	Me(ctx context.Context, userID string) (*models.User, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	service     AuthService
	tokenExpiry time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service AuthService, tokenExpiry time.Duration, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
		tokenExpiry: tokenExpiry,
	}
}

// RegisterRoutes registers all auth handler routes
func (h *AuthHandler) RegisterRoutes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", h.Me)
		})
	})
}

// setTokenCookie stores the credential token as an HTTP-only cookie
func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenExpiry.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Register handles POST /api/auth/register
// @Summary Register a new user
// @Description Register a new user with username, email, password and optional display name. Returns the user and a token; the token is also set as an HTTP-only cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 201 {object} models.AuthResponse "Registered user and token"
// @Failure 400 {object} models.ErrorResponse "Invalid body or validation error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.setTokenCookie(w, resp.Token)
	h.RespondJSON(w, http.StatusCreated, resp)
}

// Login handles POST /api/auth/login
// @Summary Login
// @Description Authenticate with username and password. Returns the user and a token; the token is also set as an HTTP-only cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.AuthResponse "Authenticated user and token"
// @Failure 400 {object} models.ErrorResponse "Invalid body"
// @Failure 401 {object} models.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.setTokenCookie(w, resp.Token)
	h.RespondJSON(w, http.StatusOK, resp)
}

// Logout handles POST /api/auth/logout
// @Summary Logout
// @Description Clear the credential token cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} models.SuccessResponse "Logged out"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.RespondJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: "Logged out"})
}

// Me handles GET /api/auth/me
// @Summary Current user
// @Description Get the authenticated user. Requires authentication.
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.User "Authenticated user"
// @Failure 401 {object} models.ErrorResponse "Authentication required"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "Unauthorized", "You must be logged in")
		return
	}

	user, err := h.service.Me(r.Context(), userID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}
