package transport

import (
	"net/http"

	"corpsite/internal/middleware"
	"corpsite/internal/repository"
	"corpsite/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContactRequest represents the public contact-form payload
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"required"`
}

// ContactResponse wraps the created message for the public form
type ContactResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ContactHandler handles the public contact form and the admin inbox
type ContactHandler struct {
	visitors  service.VisitorService
	logger    *zap.Logger
	rateLimit func(http.Handler) http.Handler
}

// NewContactHandler creates a new ContactHandler. rateLimit guards the
// public submit endpoint and may be nil in tests.
func NewContactHandler(visitors service.VisitorService, logger *zap.Logger, rateLimit func(http.Handler) http.Handler) *ContactHandler {
	return &ContactHandler{visitors: visitors, logger: logger, rateLimit: rateLimit}
}

// RegisterRoutes registers all contact routes
func (h *ContactHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/contact", func(r chi.Router) {
		r.Get("/", h.List)
		r.Delete("/", h.DeleteByQuery)
		r.Delete("/{id}", h.Delete)

		if h.rateLimit != nil {
			r.With(h.rateLimit).Post("/", h.Create)
		} else {
			r.Post("/", h.Create)
		}
	})
}

// List returns the admin inbox, newest first.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.visitors.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list messages", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "error fetching messages")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, messages)
}

// Create stores a contact-form submission.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Contact form validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	visitor, err := h.visitors.Create(r.Context(), req.Name, req.Email, req.Phone, req.Message)
	if err != nil {
		h.logger.Error("Failed to save contact message", zap.Error(err))
		middleware.RespondWithJSON(w, http.StatusInternalServerError, ContactResponse{
			Success: false,
			Message: "Sorry, something went wrong. Please try again.",
		})
		return
	}

	h.logger.Info("Contact message received", zap.String("visitor_id", visitor.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, ContactResponse{
		Success: true,
		Message: "Your message has been sent. We will contact you shortly.",
		Data:    visitor,
	})
}

// Delete removes a message by path ID.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, chi.URLParam(r, "id"))
}

// DeleteByQuery supports the legacy ?id= form of the delete call.
func (h *ContactHandler) DeleteByQuery(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, r.URL.Query().Get("id"))
}

func (h *ContactHandler) deleteByID(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid message ID")
		return
	}

	if err := h.visitors.Delete(r.Context(), id); err != nil {
		if err == repository.ErrVisitorNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "message not found")
			return
		}
		h.logger.Error("Failed to delete message", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "error deleting message")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "message deleted successfully"})
}
