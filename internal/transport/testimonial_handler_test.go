package transport

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"corpsite/internal/domain"
	"corpsite/internal/repository"
	"corpsite/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type mockTestimonialService struct {
	createErr  error
	lastInput  service.TestimonialInput
	lastUpload *service.Upload
}

func (m *mockTestimonialService) List(ctx context.Context) ([]*domain.Testimonial, error) {
	return []*domain.Testimonial{}, nil
}

func (m *mockTestimonialService) Get(ctx context.Context, id uuid.UUID) (*domain.Testimonial, error) {
	return nil, repository.ErrTestimonialNotFound
}

func (m *mockTestimonialService) Create(ctx context.Context, input service.TestimonialInput, upload *service.Upload) (*domain.Testimonial, error) {
	m.lastInput = input
	m.lastUpload = upload
	if m.createErr != nil {
		return nil, m.createErr
	}
	now := time.Now()
	return &domain.Testimonial{
		ID:        uuid.New(),
		Name:      input.Name,
		Company:   input.Company,
		Message:   input.Message,
		Rating:    input.Rating,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (m *mockTestimonialService) Update(ctx context.Context, id uuid.UUID, input service.TestimonialInput, upload *service.Upload) (*domain.Testimonial, error) {
	return nil, repository.ErrTestimonialNotFound
}

func (m *mockTestimonialService) Delete(ctx context.Context, id uuid.UUID) error {
	return repository.ErrTestimonialNotFound
}

func testimonialRouter(svc service.TestimonialService) chi.Router {
	r := chi.NewRouter()
	NewTestimonialHandler(svc, zap.NewNop()).RegisterRoutes(r)
	return r
}

// multipartForm builds a multipart body with the given fields and, when
// filename is non-empty, an attached image file.
func multipartForm(t *testing.T, fields map[string]string, filename, contentType, content string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write field %q: %v", key, err)
		}
	}

	if filename != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("failed to create file part: %v", err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write file content: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestTestimonialCreateParsesForm(t *testing.T) {
	svc := &mockTestimonialService{}
	router := testimonialRouter(svc)

	body, contentType := multipartForm(t, map[string]string{
		"name":    "Jane Doe",
		"company": "Acme",
		"message": "Great service",
		"rating":  "4",
	}, "photo.jpg", "image/jpeg", "jpeg-bytes")

	req := httptest.NewRequest(http.MethodPost, "/api/testimonials", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if svc.lastInput.Name != "Jane Doe" || svc.lastInput.Rating != 4 {
		t.Errorf("input = %+v, want Jane Doe with rating 4", svc.lastInput)
	}
	if svc.lastUpload == nil {
		t.Fatal("upload was not passed to the service")
	}
	if svc.lastUpload.Filename != "photo.jpg" {
		t.Errorf("upload filename = %q, want photo.jpg", svc.lastUpload.Filename)
	}
	if svc.lastUpload.ContentType != "image/jpeg" {
		t.Errorf("upload content type = %q, want image/jpeg", svc.lastUpload.ContentType)
	}
}

func TestTestimonialCreateWithoutImage(t *testing.T) {
	svc := &mockTestimonialService{}
	router := testimonialRouter(svc)

	body, contentType := multipartForm(t, map[string]string{
		"name":    "Jane Doe",
		"message": "Great service",
	}, "", "", "")

	req := httptest.NewRequest(http.MethodPost, "/api/testimonials", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if svc.lastUpload != nil {
		t.Error("upload should be nil when no file is attached")
	}
	if svc.lastInput.Rating != 5 {
		t.Errorf("rating = %d, want default 5", svc.lastInput.Rating)
	}
}

func TestTestimonialCreateValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"not an image", service.ErrNotAnImage},
		{"too large", service.ErrFileTooLarge},
		{"bad rating", service.ErrBadRating},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockTestimonialService{createErr: tc.err}
			router := testimonialRouter(svc)

			body, contentType := multipartForm(t, map[string]string{"name": "Jane"}, "", "", "")
			req := httptest.NewRequest(http.MethodPost, "/api/testimonials", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestTestimonialGetInvalidID(t *testing.T) {
	router := testimonialRouter(&mockTestimonialService{})

	req := httptest.NewRequest(http.MethodGet, "/api/testimonials/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestTestimonialGetUnknownID(t *testing.T) {
	router := testimonialRouter(&mockTestimonialService{})

	req := httptest.NewRequest(http.MethodGet, "/api/testimonials/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
