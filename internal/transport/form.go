package transport

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"corpsite/internal/service"
)

// maxFormMemory bounds how much of a multipart body is held in memory while
// parsing; larger files spill to temp files.
const maxFormMemory = 32 << 20

// formUpload extracts the optional "image" file from a multipart form.
// Returns (nil, nil, nil) when the field is absent. The caller must close
// the returned file when it is non-nil.
func formUpload(r *http.Request) (*service.Upload, multipart.File, error) {
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	upload := &service.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}
	return upload, file, nil
}

// formFloat parses a form field as a float, defaulting to zero on absence or
// garbage, matching the original form behavior of defaulting instead of
// rejecting.
func formFloat(r *http.Request, field string) float64 {
	v, err := strconv.ParseFloat(r.FormValue(field), 64)
	if err != nil {
		return 0
	}
	return v
}

// formInt parses a form field as an int with a fallback default.
func formInt(r *http.Request, field string, fallback int) int {
	v, err := strconv.Atoi(r.FormValue(field))
	if err != nil {
		return fallback
	}
	return v
}
