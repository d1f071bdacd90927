package transport

import (
	"errors"
	"net/http"

	"corpsite/internal/middleware"
	"corpsite/internal/repository"
	"corpsite/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TestimonialHandler handles HTTP requests for the testimonial collection
type TestimonialHandler struct {
	testimonials service.TestimonialService
	logger       *zap.Logger
}

// NewTestimonialHandler creates a new TestimonialHandler
func NewTestimonialHandler(testimonials service.TestimonialService, logger *zap.Logger) *TestimonialHandler {
	return &TestimonialHandler{testimonials: testimonials, logger: logger}
}

// RegisterRoutes registers all testimonial routes
func (h *TestimonialHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/testimonials", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *TestimonialHandler) List(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.testimonials.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list testimonials", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "error fetching testimonials")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, testimonials)
}

func (h *TestimonialHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	upload, file, err := formUpload(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid image upload")
		return
	}
	if file != nil {
		defer file.Close()
	}

	testimonial, err := h.testimonials.Create(r.Context(), testimonialInput(r), upload)
	if err != nil {
		if isTestimonialValidationError(err) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to create testimonial", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create testimonial")
		return
	}

	h.logger.Info("Testimonial created", zap.String("testimonial_id", testimonial.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, testimonial)
}

func (h *TestimonialHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid testimonial ID")
		return
	}

	testimonial, err := h.testimonials.Get(r.Context(), id)
	if err != nil {
		if err == repository.ErrTestimonialNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "testimonial not found")
			return
		}
		h.logger.Error("Failed to fetch testimonial", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "error fetching testimonial")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, testimonial)
}

func (h *TestimonialHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid testimonial ID")
		return
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	upload, file, err := formUpload(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid image upload")
		return
	}
	if file != nil {
		defer file.Close()
	}

	testimonial, err := h.testimonials.Update(r.Context(), id, testimonialInput(r), upload)
	if err != nil {
		if isTestimonialValidationError(err) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err == repository.ErrTestimonialNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "testimonial not found")
			return
		}
		h.logger.Error("Failed to update testimonial", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update testimonial")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, testimonial)
}

func (h *TestimonialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid testimonial ID")
		return
	}

	if err := h.testimonials.Delete(r.Context(), id); err != nil {
		if err == repository.ErrTestimonialNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "testimonial not found")
			return
		}
		h.logger.Error("Failed to delete testimonial", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "error deleting testimonial")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "testimonial deleted successfully"})
}

func testimonialInput(r *http.Request) service.TestimonialInput {
	return service.TestimonialInput{
		Name:    r.FormValue("name"),
		Company: r.FormValue("company"),
		Message: r.FormValue("message"),
		Rating:  formInt(r, "rating", 5),
	}
}

func isTestimonialValidationError(err error) bool {
	return errors.Is(err, service.ErrNotAnImage) ||
		errors.Is(err, service.ErrFileTooLarge) ||
		errors.Is(err, service.ErrBadRating)
}
