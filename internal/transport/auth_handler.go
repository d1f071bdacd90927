package transport

import (
	"net/http"
	"time"

	"corpsite/internal/middleware"
	"corpsite/internal/repository"
	"corpsite/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisterRequest represents the admin registration payload
type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries an issued session token
type TokenResponse struct {
	Token string `json:"token"`
}

// AdminProfile is the whoami payload
type AdminProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthHandler handles admin registration, login and the whoami endpoint
type AuthHandler struct {
	auth         service.AuthService
	logger       *zap.Logger
	cookieMaxAge time.Duration
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. secureCookie should be true in
// production so the session cookie is HTTPS-only.
func NewAuthHandler(auth service.AuthService, logger *zap.Logger, cookieMaxAge time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		logger:       logger,
		cookieMaxAge: cookieMaxAge,
		secureCookie: secureCookie,
	}
}

// RegisterRoutes registers all auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router, bearerAuth func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(bearerAuth)
			r.Get("/me", h.Me)
		})
	})
}

// Register creates an admin account and returns a session token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Registration validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.auth.Register(r.Context(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		switch err {
		case service.ErrPasswordMismatch:
			middleware.RespondWithError(w, http.StatusBadRequest, "passwords do not match")
		case repository.ErrAdminAlreadyExists:
			middleware.RespondWithError(w, http.StatusBadRequest, "email already registered")
		default:
			h.logger.Error("Registration failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to register")
		}
		return
	}

	h.logger.Info("Admin registered", zap.String("email", req.Email))
	middleware.RespondWithJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// Login authenticates an admin, sets the session cookie, and returns the
// token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, admin, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			middleware.RespondWithError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Error("Login failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("Admin logged in", zap.String("admin_id", admin.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// Me reports the admin behind the presented bearer token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	idStr, ok := middleware.GetAdminID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid admin ID")
		return
	}

	admin, err := h.auth.GetAdminByID(r.Context(), id)
	if err != nil {
		if err == repository.ErrAdminNotFound {
			middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		h.logger.Error("Failed to fetch admin profile", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch profile")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]AdminProfile{
		"user": {ID: admin.ID.String(), Email: admin.Email},
	})
}
