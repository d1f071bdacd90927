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

// BlogHandler handles HTTP requests for the blog collection
type BlogHandler struct {
	blogs  service.BlogService
	logger *zap.Logger
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(blogs service.BlogService, logger *zap.Logger) *BlogHandler {
	return &BlogHandler{blogs: blogs, logger: logger}
}

// RegisterRoutes registers all blog routes
func (h *BlogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/blogs", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/slug/{slug}", h.GetBySlug)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogs.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list blogs", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "error fetching blogs")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, blogs)
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	blog, err := h.blogs.Create(r.Context(), blogInput(r), upload)
	if err != nil {
		h.logger.Error("Failed to create blog", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create blog")
		return
	}

	h.logger.Info("Blog created",
		zap.String("blog_id", blog.ID.String()),
		zap.String("slug", blog.Slug),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, blog)
}

func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid blog ID")
		return
	}

	blog, err := h.blogs.Get(r.Context(), id)
	if err != nil {
		if err == repository.ErrBlogNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "blog not found")
			return
		}
		h.logger.Error("Failed to fetch blog", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "error fetching blog")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, blog)
}

// GetBySlug serves the public permalink lookup.
func (h *BlogHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	blog, err := h.blogs.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if err == repository.ErrBlogNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "blog not found")
			return
		}
		h.logger.Error("Failed to fetch blog by slug", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "error fetching blog")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, blog)
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid blog ID")
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

	blog, err := h.blogs.Update(r.Context(), id, blogInput(r), upload)
	if err != nil {
		if err == repository.ErrBlogNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "blog not found")
			return
		}
		h.logger.Error("Failed to update blog", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update blog")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, blog)
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid blog ID")
		return
	}

	if err := h.blogs.Delete(r.Context(), id); err != nil {
		if err == repository.ErrBlogNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "blog not found")
			return
		}
		h.logger.Error("Failed to delete blog", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "error deleting blog")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "blog deleted successfully"})
}

func blogInput(r *http.Request) service.BlogInput {
	return service.BlogInput{
		Title:   r.FormValue("title"),
		Slug:    r.FormValue("slug"),
		Content: r.FormValue("content"),
		Author:  r.FormValue("author"),
	}
}
